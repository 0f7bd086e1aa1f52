package api

import (
	"context"
	"net/http"

	"github.com/foliohq/folioclient/internal/restapi"
	"github.com/foliohq/folioclient/internal/schema"
	"github.com/foliohq/folioclient/internal/wirecase"
)

// Exchanges lists the configured exchange connections.
func (c *Client) Exchanges(ctx context.Context) (schema.Exchanges, error) {
	var exchanges schema.Exchanges
	err := c.getParsed(ctx, restapi.Call{
		Method: http.MethodGet,
		Path:   "/exchanges",
	}, wirecase.NoNumericKeys, &exchanges)
	if err != nil {
		return nil, err
	}
	return exchanges, nil
}

// exchangeSetupRequest is the exchange connection body. Credentials go to the
// backend only; they are never logged or stored client-side.
type exchangeSetupRequest struct {
	Location   string `json:"location"`
	Name       string `json:"name"`
	APIKey     string `json:"apiKey"`
	APISecret  string `json:"apiSecret"`
	Passphrase string `json:"passphrase,omitempty"`
}

// SetupExchange connects a new exchange.
func (c *Client) SetupExchange(ctx context.Context, location, name, apiKey, apiSecret, passphrase string) (bool, error) {
	transformed, err := c.getRaw(ctx, restapi.Call{
		Method: http.MethodPut,
		Path:   "/exchanges",
		Body: exchangeSetupRequest{
			Location:   location,
			Name:       name,
			APIKey:     apiKey,
			APISecret:  apiSecret,
			Passphrase: passphrase,
		},
	}, wirecase.NoNumericKeys)
	if err != nil {
		return false, err
	}
	var ok bool
	if err := decodeBool(transformed, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

// RemoveExchange disconnects an exchange.
func (c *Client) RemoveExchange(ctx context.Context, location, name string) (bool, error) {
	transformed, err := c.getRaw(ctx, restapi.Call{
		Method: http.MethodDelete,
		Path:   "/exchanges",
		Body:   map[string]interface{}{"location": location, "name": name},
	}, wirecase.NoNumericKeys)
	if err != nil {
		return false, err
	}
	var ok bool
	if err := decodeBool(transformed, &ok); err != nil {
		return false, err
	}
	return ok, nil
}

// Tags lists the user's account tags.
func (c *Client) Tags(ctx context.Context) (schema.Tags, error) {
	var tags schema.Tags
	err := c.getParsed(ctx, restapi.Call{
		Method: http.MethodGet,
		Path:   "/tags",
	}, wirecase.NoNumericKeys, &tags)
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// AddTag creates a tag and returns the resulting tag set.
func (c *Client) AddTag(ctx context.Context, tag schema.Tag) (schema.Tags, error) {
	var tags schema.Tags
	err := c.getParsed(ctx, restapi.Call{
		Method: http.MethodPut,
		Path:   "/tags",
		Body:   tag,
	}, wirecase.NoNumericKeys, &tags)
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// DeleteTag removes a tag and returns the resulting tag set.
func (c *Client) DeleteTag(ctx context.Context, name string) (schema.Tags, error) {
	var tags schema.Tags
	err := c.getParsed(ctx, restapi.Call{
		Method: http.MethodDelete,
		Path:   "/tags",
		Body:   map[string]interface{}{"name": name},
	}, wirecase.NoNumericKeys, &tags)
	if err != nil {
		return nil, err
	}
	return tags, nil
}
