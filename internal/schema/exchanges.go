package schema

import "github.com/shopspring/decimal"

// Exchange is one configured exchange connection.
type Exchange struct {
	Location string `json:"location"`
	Name     string `json:"name"`
}

// Validate implements Validatable.
func (e *Exchange) Validate() error {
	if e.Location == "" {
		return invalid("exchange", "missing location")
	}
	if e.Name == "" {
		return invalid("exchange", "missing name")
	}
	return nil
}

// Exchanges is the configured exchange listing.
type Exchanges []Exchange

// Validate implements Validatable.
func (e Exchanges) Validate() error {
	for i := range e {
		if err := e[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Tag is a user-defined account label with display colors.
type Tag struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	BackgroundColor string `json:"backgroundColor"`
	ForegroundColor string `json:"foregroundColor"`
}

// Validate implements Validatable.
func (t *Tag) Validate() error {
	if t.Name == "" {
		return invalid("tag", "missing name")
	}
	return nil
}

// Tags is the tag listing keyed by tag name.
type Tags map[string]Tag

// Validate implements Validatable.
func (t Tags) Validate() error {
	for name, tag := range t {
		if tag.Name == "" {
			return invalid("tag", "entry %q missing name", name)
		}
		if err := tag.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// TradeEntry is one historic trade.
type TradeEntry struct {
	TradeID     string          `json:"tradeId"`
	Timestamp   int64           `json:"timestamp"`
	Location    string          `json:"location"`
	BaseAsset   string          `json:"baseAsset"`
	QuoteAsset  string          `json:"quoteAsset"`
	TradeType   string          `json:"tradeType"`
	Amount      decimal.Decimal `json:"amount"`
	Rate        decimal.Decimal `json:"rate"`
	Fee         decimal.Decimal `json:"fee"`
	FeeCurrency string          `json:"feeCurrency"`
}

// Validate implements Validatable.
func (t *TradeEntry) Validate() error {
	if t.TradeID == "" {
		return invalid("trade", "missing trade id")
	}
	if t.Timestamp <= 0 {
		return invalid("trade", "non-positive timestamp for trade %s", t.TradeID)
	}
	if t.BaseAsset == "" || t.QuoteAsset == "" {
		return invalid("trade", "missing asset pair for trade %s", t.TradeID)
	}
	return nil
}

// TradeHistory is a paged trade listing.
type TradeHistory struct {
	Entries      []TradeEntry `json:"entries"`
	EntriesFound int          `json:"entriesFound"`
	EntriesLimit int          `json:"entriesLimit"`
}

// Validate implements Validatable.
func (h *TradeHistory) Validate() error {
	if h.EntriesFound < 0 {
		return invalid("trade history", "negative entry count")
	}
	for i := range h.Entries {
		if err := h.Entries[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}
