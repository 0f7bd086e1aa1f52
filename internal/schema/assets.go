package schema

// AssetInfo is the registry metadata for one known asset. Started is a unix
// timestamp and arrives stringified on the wire.
type AssetInfo struct {
	Identifier string `json:"identifier"`
	AssetType  string `json:"assetType"`
	Name       string `json:"name"`
	Symbol     string `json:"symbol"`
	Started    int64  `json:"started"`
	Forked     string `json:"forked"`
	SwappedFor string `json:"swappedFor"`
}

// Validate implements Validatable.
func (a *AssetInfo) Validate() error {
	if a.Name == "" {
		return invalid("asset info", "missing name for %s", a.Identifier)
	}
	if a.Started < 0 {
		return invalid("asset info", "negative start timestamp for %s", a.Identifier)
	}
	return nil
}

// AssetRegistry is the known-asset listing keyed by identifier.
type AssetRegistry map[string]AssetInfo

// Validate implements Validatable. Entries without an identifier get it
// backfilled from their map key.
func (r AssetRegistry) Validate() error {
	for id, info := range r {
		if info.Identifier == "" {
			info.Identifier = id
			r[id] = info
		}
		if err := info.Validate(); err != nil {
			return err
		}
	}
	return nil
}
