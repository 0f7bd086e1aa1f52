package api

import (
	"context"
	"net/http"

	"github.com/foliohq/folioclient/internal/restapi"
	"github.com/foliohq/folioclient/internal/schema"
	"github.com/foliohq/folioclient/internal/wirecase"
)

// settingsNumericKeys are the stringified timestamp fields of the settings
// payload.
var settingsNumericKeys = wirecase.NewNumericKeys(
	"last_write_ts",
	"last_balance_save",
	"last_data_upload_ts",
)

// Settings fetches the user settings.
func (c *Client) Settings(ctx context.Context) (*schema.Settings, error) {
	var settings schema.Settings
	err := c.getParsed(ctx, restapi.Call{
		Method: http.MethodGet,
		Path:   "/settings",
	}, settingsNumericKeys, &settings)
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateSettings applies a partial settings change and returns the resulting
// full settings.
func (c *Client) UpdateSettings(ctx context.Context, update schema.SettingsUpdate) (*schema.Settings, error) {
	var settings schema.Settings
	err := c.getParsed(ctx, restapi.Call{
		Method: http.MethodPut,
		Path:   "/settings",
		Body:   map[string]interface{}{"settings": update},
	}, settingsNumericKeys, &settings)
	if err != nil {
		return nil, err
	}
	return &settings, nil
}
