package schema

import "github.com/shopspring/decimal"

// NetValue is the net-worth time series: parallel times/data sequences.
type NetValue struct {
	Times []int64           `json:"times"`
	Data  []decimal.Decimal `json:"data"`
}

// Validate implements Validatable.
func (n *NetValue) Validate() error {
	if len(n.Times) != len(n.Data) {
		return invalid("net value", "times/data length mismatch: %d vs %d", len(n.Times), len(n.Data))
	}
	for i := 1; i < len(n.Times); i++ {
		if n.Times[i] < n.Times[i-1] {
			return invalid("net value", "timestamps not monotonic at index %d", i)
		}
	}
	return nil
}

// DistributionSlice is one slice of a value distribution.
type DistributionSlice struct {
	Timestamp int64           `json:"timestamp"`
	Location  string          `json:"location"`
	Asset     string          `json:"asset"`
	Amount    decimal.Decimal `json:"amount"`
	UsdValue  decimal.Decimal `json:"usdValue"`
}

// ValueDistribution is the worth breakdown by location or by asset.
type ValueDistribution []DistributionSlice

// Validate implements Validatable.
func (d ValueDistribution) Validate() error {
	for i := range d {
		if d[i].Location == "" && d[i].Asset == "" {
			return invalid("value distribution", "slice %d names neither location nor asset", i)
		}
		if d[i].UsdValue.IsNegative() {
			return invalid("value distribution", "negative value at slice %d", i)
		}
	}
	return nil
}

// StakingEvent is one staking reward or deposit event.
type StakingEvent struct {
	EventType string          `json:"eventType"`
	Asset     string          `json:"asset"`
	Timestamp int64           `json:"timestamp"`
	Location  string          `json:"location"`
	Amount    decimal.Decimal `json:"amount"`
	UsdValue  decimal.Decimal `json:"usdValue"`
}

// Validate implements Validatable.
func (e *StakingEvent) Validate() error {
	if e.EventType == "" {
		return invalid("staking event", "missing event type")
	}
	if e.Asset == "" {
		return invalid("staking event", "missing asset")
	}
	if e.Timestamp <= 0 {
		return invalid("staking event", "non-positive timestamp")
	}
	return nil
}

// StakingEvents is a paged staking event listing.
type StakingEvents struct {
	Entries      []StakingEvent `json:"entries"`
	EntriesFound int            `json:"entriesFound"`
	EntriesTotal int            `json:"entriesTotal"`
}

// Validate implements Validatable.
func (s *StakingEvents) Validate() error {
	if s.EntriesFound < 0 || s.EntriesTotal < 0 {
		return invalid("staking events", "negative entry count")
	}
	for i := range s.Entries {
		if err := s.Entries[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}
