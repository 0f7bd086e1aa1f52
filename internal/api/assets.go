package api

import (
	"context"
	"net/http"

	"github.com/foliohq/folioclient/internal/restapi"
	"github.com/foliohq/folioclient/internal/schema"
	"github.com/foliohq/folioclient/internal/wirecase"
)

// assetNumericKeys are the asset registry fields the backend stringifies.
var assetNumericKeys = wirecase.NewNumericKeys("started")

// Assets fetches the registry of every asset the backend knows about.
func (c *Client) Assets(ctx context.Context) (schema.AssetRegistry, error) {
	var registry schema.AssetRegistry
	err := c.getParsed(ctx, restapi.Call{
		Method: http.MethodGet,
		Path:   "/assets/all",
	}, assetNumericKeys, &registry)
	if err != nil {
		return nil, err
	}
	return registry, nil
}
