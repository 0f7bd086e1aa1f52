package schema

import "github.com/shopspring/decimal"

// AssetBalance is one asset position: amount held and its value in the
// profit currency. Amounts arrive stringified on the wire; decimal keeps
// them exact.
type AssetBalance struct {
	Asset        string          `json:"asset"`
	Amount       decimal.Decimal `json:"amount"`
	UsdValue     decimal.Decimal `json:"usdValue"`
	PricePerUnit decimal.Decimal `json:"pricePerUnit"`
}

// Validate implements Validatable.
func (b *AssetBalance) Validate() error {
	if b.Asset == "" {
		return invalid("asset balance", "missing asset identifier")
	}
	if b.Amount.IsNegative() {
		return invalid("asset balance", "negative amount for %s", b.Asset)
	}
	return nil
}

// BalanceSnapshot is the full balances query result keyed by asset.
type BalanceSnapshot struct {
	Assets      map[string]AssetBalance `json:"assets"`
	Liabilities map[string]AssetBalance `json:"liabilities"`
}

// Validate implements Validatable. Entries without an asset identifier get
// it backfilled from their map key.
func (s *BalanceSnapshot) Validate() error {
	for asset, balance := range s.Assets {
		if balance.Asset == "" {
			balance.Asset = asset
			s.Assets[asset] = balance
		}
		if err := balance.Validate(); err != nil {
			return err
		}
	}
	for asset, balance := range s.Liabilities {
		if balance.Asset == "" {
			balance.Asset = asset
			s.Liabilities[asset] = balance
		}
		if err := balance.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// BlockchainAccount is one tracked on-chain account with optional metadata.
type BlockchainAccount struct {
	Address string   `json:"address"`
	Label   string   `json:"label"`
	Tags    []string `json:"tags"`
}

// Validate implements Validatable.
func (a *BlockchainAccount) Validate() error {
	if a.Address == "" {
		return invalid("blockchain account", "missing address")
	}
	return nil
}

// BlockchainAccounts is the account listing for one chain.
type BlockchainAccounts []BlockchainAccount

// Validate implements Validatable.
func (a BlockchainAccounts) Validate() error {
	for i := range a {
		if err := a[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}
