package schema

// UserAccount is the payload of a successful login: the user's settings plus
// session exchange credentials metadata.
type UserAccount struct {
	Settings  Settings          `json:"settings"`
	Exchanges []ExchangeBinding `json:"exchanges"`
}

// Validate implements Validatable.
func (u *UserAccount) Validate() error {
	if err := u.Settings.Validate(); err != nil {
		return err
	}
	for i := range u.Exchanges {
		if err := u.Exchanges[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ExchangeBinding names an exchange the user has credentials for.
type ExchangeBinding struct {
	Location string `json:"location"`
	Name     string `json:"name"`
}

// Validate implements Validatable.
func (e *ExchangeBinding) Validate() error {
	if e.Location == "" {
		return invalid("exchange binding", "missing location")
	}
	if e.Name == "" {
		return invalid("exchange binding", "missing name")
	}
	return nil
}

// SyncConflict is the 300 payload of a login when local and remote databases
// diverge. Timestamps are unix seconds.
type SyncConflict struct {
	LocalLastModified  int64 `json:"localLastModified"`
	RemoteLastModified int64 `json:"remoteLastModified"`
	LocalSize          int64 `json:"localSize"`
	RemoteSize         int64 `json:"remoteSize"`
}

// Validate implements Validatable.
func (s *SyncConflict) Validate() error {
	if s.LocalLastModified < 0 || s.RemoteLastModified < 0 {
		return invalid("sync conflict", "negative modification timestamp")
	}
	if s.LocalSize < 0 || s.RemoteSize < 0 {
		return invalid("sync conflict", "negative database size")
	}
	return nil
}
