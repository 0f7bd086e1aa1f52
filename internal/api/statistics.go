package api

import (
	"context"
	"net/http"

	"github.com/foliohq/folioclient/internal/restapi"
	"github.com/foliohq/folioclient/internal/schema"
	"github.com/foliohq/folioclient/internal/task"
	"github.com/foliohq/folioclient/internal/wirecase"
)

// statisticsNumericKeys are the stringified fields of statistics payloads.
var statisticsNumericKeys = wirecase.NewNumericKeys(
	"timestamp", "amount", "usd_value",
)

// NetValue fetches the net-worth time series.
func (c *Client) NetValue(ctx context.Context) (*schema.NetValue, error) {
	var netValue schema.NetValue
	err := c.getParsed(ctx, restapi.Call{
		Method: http.MethodGet,
		Path:   "/statistics/netvalue",
	}, wirecase.NoNumericKeys, &netValue)
	if err != nil {
		return nil, err
	}
	return &netValue, nil
}

// ValueDistribution fetches the worth breakdown by "location" or "asset".
func (c *Client) ValueDistribution(ctx context.Context, distributionBy string) (schema.ValueDistribution, error) {
	var distribution schema.ValueDistribution
	err := c.getParsed(ctx, restapi.Call{
		Method: http.MethodGet,
		Path:   "/statistics/value_distribution",
		Params: map[string]interface{}{"distributionBy": distributionBy},
	}, statisticsNumericKeys, &distribution)
	if err != nil {
		return nil, err
	}
	return distribution, nil
}

// StakingQuery narrows a staking event listing.
type StakingQuery struct {
	FromTimestamp int64
	ToTimestamp   int64
	Asset         string
	OnlyCache     bool
}

func (q StakingQuery) params() map[string]interface{} {
	params := map[string]interface{}{"onlyCache": q.OnlyCache}
	if q.FromTimestamp > 0 {
		params["fromTimestamp"] = q.FromTimestamp
	}
	if q.ToTimestamp > 0 {
		params["toTimestamp"] = q.ToTimestamp
	}
	if q.Asset != "" {
		params["asset"] = q.Asset
	}
	return params
}

// stakingNumericKeys are the stringified fields of staking event payloads.
var stakingNumericKeys = wirecase.NewNumericKeys(
	"timestamp", "amount", "usd_value",
)

// StakingEvents fetches staking history synchronously.
func (c *Client) StakingEvents(ctx context.Context, query StakingQuery) (*schema.StakingEvents, error) {
	var events schema.StakingEvents
	err := c.getParsed(ctx, restapi.Call{
		Method: http.MethodGet,
		Path:   "/staking/events",
		Params: query.params(),
	}, stakingNumericKeys, &events)
	if err != nil {
		return nil, err
	}
	return &events, nil
}

// StakingEventsAsync submits the staking history query as a task. Fresh
// (non-cache) queries hit remote services and can take a while.
func (c *Client) StakingEventsAsync(ctx context.Context, query StakingQuery) (task.PendingTask, error) {
	return c.submitAsync(ctx, restapi.Call{
		Method: http.MethodGet,
		Path:   "/staking/events",
		Params: query.params(),
	})
}

// AwaitStakingEvents polls a submitted staking query and decodes its result.
func (c *Client) AwaitStakingEvents(ctx context.Context, pending task.PendingTask) (*schema.StakingEvents, error) {
	raw, err := c.Tasks().Await(ctx, pending, c.PollPolicy(), stakingNumericKeys)
	if err != nil {
		return nil, err
	}
	var events schema.StakingEvents
	if err := schema.Decode(raw, &events); err != nil {
		return nil, err
	}
	return &events, nil
}

// TradeQuery narrows a trade history listing.
type TradeQuery struct {
	FromTimestamp int64
	ToTimestamp   int64
	Location      string
	OnlyCache     bool
}

func (q TradeQuery) params() map[string]interface{} {
	params := map[string]interface{}{"onlyCache": q.OnlyCache}
	if q.FromTimestamp > 0 {
		params["fromTimestamp"] = q.FromTimestamp
	}
	if q.ToTimestamp > 0 {
		params["toTimestamp"] = q.ToTimestamp
	}
	if q.Location != "" {
		params["location"] = q.Location
	}
	return params
}

// tradeNumericKeys are the stringified fields of trade payloads.
var tradeNumericKeys = wirecase.NewNumericKeys(
	"timestamp", "amount", "rate", "fee",
)

// Trades fetches trade history synchronously.
func (c *Client) Trades(ctx context.Context, query TradeQuery) (*schema.TradeHistory, error) {
	var history schema.TradeHistory
	err := c.getParsed(ctx, restapi.Call{
		Method: http.MethodGet,
		Path:   "/trades",
		Params: query.params(),
	}, tradeNumericKeys, &history)
	if err != nil {
		return nil, err
	}
	return &history, nil
}

// TradesAsync submits the trade history query as a task.
func (c *Client) TradesAsync(ctx context.Context, query TradeQuery) (task.PendingTask, error) {
	return c.submitAsync(ctx, restapi.Call{
		Method: http.MethodGet,
		Path:   "/trades",
		Params: query.params(),
	})
}

// AwaitTrades polls a submitted trade query and decodes its result.
func (c *Client) AwaitTrades(ctx context.Context, pending task.PendingTask) (*schema.TradeHistory, error) {
	raw, err := c.Tasks().Await(ctx, pending, c.PollPolicy(), tradeNumericKeys)
	if err != nil {
		return nil, err
	}
	var history schema.TradeHistory
	if err := schema.Decode(raw, &history); err != nil {
		return nil, err
	}
	return &history, nil
}
