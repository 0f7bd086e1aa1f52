package api

import (
	"context"
	"net/http"

	"github.com/foliohq/folioclient/internal/restapi"
	"github.com/foliohq/folioclient/internal/schema"
	"github.com/foliohq/folioclient/internal/wirecase"
)

// Ping checks whether the backend process is up and answering. Valid with or
// without a session: startup probes run before anyone logs in.
func (c *Client) Ping(ctx context.Context) error {
	_, _, err := c.session.Load().rest.DoResult(ctx, restapi.Call{
		Method: http.MethodGet,
		Path:   "/ping",
		Accept: restapi.AcceptWithoutSession,
	})
	return err
}

// Info fetches the backend detection payload.
func (c *Client) Info(ctx context.Context) (*schema.BackendInfo, error) {
	var info schema.BackendInfo
	err := c.getParsed(ctx, restapi.Call{
		Method: http.MethodGet,
		Path:   "/info",
		Accept: restapi.AcceptWithoutSession,
	}, wirecase.NoNumericKeys, &info)
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// Version fetches the backend version report.
func (c *Client) Version(ctx context.Context) (*schema.VersionInfo, error) {
	var version schema.VersionInfo
	err := c.getParsed(ctx, restapi.Call{
		Method: http.MethodGet,
		Path:   "/version",
		Accept: restapi.AcceptWithoutSession,
	}, wirecase.NoNumericKeys, &version)
	if err != nil {
		return nil, err
	}
	return &version, nil
}

// ForceSync pushes or pulls the premium database copy. action is "upload" or
// "download". A 300 answer carries the conflict payload and surfaces as
// *SyncConflictError so the caller can decide which side wins.
func (c *Client) ForceSync(ctx context.Context, action string) (bool, error) {
	resp, err := c.session.Load().rest.Do(ctx, restapi.Call{
		Method: http.MethodPut,
		Path:   "/premium/sync",
		Body:   map[string]interface{}{"action": action},
		Accept: restapi.AcceptSyncConflict,
	})
	if err != nil {
		return false, err
	}

	transformed, err := unwrapTransformed(resp, wirecase.NoNumericKeys)
	if err != nil {
		return false, err
	}

	if restapi.Classify(resp.StatusCode) == restapi.OutcomeConflict {
		var conflict schema.SyncConflict
		if err := schema.Decode(transformed, &conflict); err != nil {
			return false, err
		}
		return false, &SyncConflictError{Conflict: conflict}
	}

	var ok bool
	if err := decodeBool(transformed, &ok); err != nil {
		return false, err
	}
	return ok, nil
}
