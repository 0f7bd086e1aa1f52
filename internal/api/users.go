package api

import (
	"context"
	"net/http"

	"github.com/foliohq/folioclient/internal/restapi"
	"github.com/foliohq/folioclient/internal/schema"
	"github.com/foliohq/folioclient/internal/wirecase"
)

// LoginResult is the tagged outcome of a login attempt. Kind is
// OutcomeSuccess with Account set, or OutcomeConflict with Conflict set when
// the backend answered 300 because local and remote databases diverged.
type LoginResult struct {
	Kind     restapi.OutcomeKind
	Account  *schema.UserAccount
	Conflict *schema.SyncConflict
}

// loginRequest is the login action body.
type loginRequest struct {
	Action           string `json:"action"`
	Password         string `json:"password"`
	SyncApproval     string `json:"syncApproval,omitempty"`
	PremiumAPIKey    string `json:"premiumApiKey,omitempty"`
	PremiumAPISecret string `json:"premiumApiSecret,omitempty"`
}

// LoginOptions carries the optional parts of a login call.
type LoginOptions struct {
	// SyncApproval resolves a previous sync conflict: "yes", "no", or
	// empty for "unknown" (the backend then reports the conflict again).
	SyncApproval string

	PremiumAPIKey    string
	PremiumAPISecret string
}

// Login authenticates the user against the backend. A 300 answer is a
// conditional success: the result carries the conflict payload and the
// caller decides sync approval on a follow-up login.
func (c *Client) Login(ctx context.Context, username, password string, opts LoginOptions) (*LoginResult, error) {
	resp, err := c.session.Load().rest.Do(ctx, restapi.Call{
		Method: http.MethodPatch,
		Path:   "/users/" + username,
		Body: loginRequest{
			Action:           "login",
			Password:         password,
			SyncApproval:     opts.SyncApproval,
			PremiumAPIKey:    opts.PremiumAPIKey,
			PremiumAPISecret: opts.PremiumAPISecret,
		},
		Accept: restapi.AcceptSyncConflict,
	})
	if err != nil {
		return nil, err
	}

	// The success payload embeds the user settings, so the settings
	// timestamp fields need numeric promotion here too.
	transformed, err := unwrapTransformed(resp, settingsNumericKeys)
	if err != nil {
		return nil, err
	}

	kind := restapi.Classify(resp.StatusCode)
	if kind == restapi.OutcomeConflict {
		var conflict schema.SyncConflict
		if err := schema.Decode(transformed, &conflict); err != nil {
			return nil, err
		}
		return &LoginResult{Kind: kind, Conflict: &conflict}, nil
	}

	var account schema.UserAccount
	if err := schema.Decode(transformed, &account); err != nil {
		return nil, err
	}
	return &LoginResult{Kind: kind, Account: &account}, nil
}

// logoutRequest is the logout action body.
type logoutRequest struct {
	Action string `json:"action"`
}

// Logout ends the user's session. Logging out an already logged-out user is
// an idempotent no-op: the backend's 409 is reported as success. The local
// session's in-flight requests are cancelled either way.
func (c *Client) Logout(ctx context.Context, username string) (bool, error) {
	sess := c.session.Load()
	resp, err := sess.rest.Do(ctx, restapi.Call{
		Method: http.MethodPatch,
		Path:   "/users/" + username,
		Body:   logoutRequest{Action: "logout"},
		Accept: restapi.AcceptAlreadyInState,
	})
	if err != nil {
		return false, err
	}

	sess.rest.CancelAll()

	if restapi.Classify(resp.StatusCode) == restapi.OutcomeAlreadyInState {
		return true, nil
	}

	transformed, err := unwrapTransformed(resp, wirecase.NoNumericKeys)
	if err != nil {
		return false, err
	}
	var ok bool
	if err := decodeBool(transformed, &ok); err != nil {
		return false, err
	}
	return ok, nil
}
