package api

import (
	"context"
	"net/http"

	"github.com/foliohq/folioclient/internal/restapi"
	"github.com/foliohq/folioclient/internal/schema"
	"github.com/foliohq/folioclient/internal/task"
	"github.com/foliohq/folioclient/internal/wirecase"
)

// BlockchainAccounts lists the tracked accounts for one chain.
func (c *Client) BlockchainAccounts(ctx context.Context, chain string) (schema.BlockchainAccounts, error) {
	var accounts schema.BlockchainAccounts
	err := c.getParsed(ctx, restapi.Call{
		Method: http.MethodGet,
		Path:   "/blockchains/" + chain + "/accounts",
	}, wirecase.NoNumericKeys, &accounts)
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

// AccountPayload is the request body for adding or editing accounts.
type AccountPayload struct {
	Accounts []schema.BlockchainAccount `json:"accounts"`
}

// AddBlockchainAccounts registers accounts on a chain. Balance detection runs
// server-side in the background, so the call is submitted asynchronously.
func (c *Client) AddBlockchainAccounts(ctx context.Context, chain string, accounts []schema.BlockchainAccount) (task.PendingTask, error) {
	return c.submitAsync(ctx, restapi.Call{
		Method: http.MethodPut,
		Path:   "/blockchains/" + chain + "/accounts",
		Body:   AccountPayload{Accounts: accounts},
	})
}

// RemoveBlockchainAccounts drops accounts from a chain.
func (c *Client) RemoveBlockchainAccounts(ctx context.Context, chain string, addresses []string) (task.PendingTask, error) {
	return c.submitAsync(ctx, restapi.Call{
		Method: http.MethodDelete,
		Path:   "/blockchains/" + chain + "/accounts",
		Body:   map[string]interface{}{"accounts": addresses},
	})
}

// balanceNumericKeys are the balance snapshot fields the backend stringifies.
var balanceNumericKeys = wirecase.NewNumericKeys("amount", "usd_value", "price_per_unit")

// Balances fetches the full balance snapshot synchronously.
func (c *Client) Balances(ctx context.Context, ignoreCache bool) (*schema.BalanceSnapshot, error) {
	var snapshot schema.BalanceSnapshot
	err := c.getParsed(ctx, restapi.Call{
		Method: http.MethodGet,
		Path:   "/balances",
		Params: map[string]interface{}{"ignoreCache": ignoreCache},
	}, balanceNumericKeys, &snapshot)
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// BalancesAsync submits the balance snapshot query as a task.
func (c *Client) BalancesAsync(ctx context.Context, ignoreCache bool) (task.PendingTask, error) {
	return c.submitAsync(ctx, restapi.Call{
		Method: http.MethodGet,
		Path:   "/balances",
		Params: map[string]interface{}{"ignoreCache": ignoreCache},
	})
}

// AwaitBalances polls a submitted balance query and decodes its result.
func (c *Client) AwaitBalances(ctx context.Context, pending task.PendingTask) (*schema.BalanceSnapshot, error) {
	raw, err := c.Tasks().Await(ctx, pending, c.PollPolicy(), balanceNumericKeys)
	if err != nil {
		return nil, err
	}
	var snapshot schema.BalanceSnapshot
	if err := schema.Decode(raw, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}
