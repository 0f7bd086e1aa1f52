package schema

// VersionInfo is the backend version report.
type VersionInfo struct {
	OurVersion    string `json:"ourVersion"`
	LatestVersion string `json:"latestVersion"`
	DownloadURL   string `json:"downloadUrl"`
}

// Validate implements Validatable.
func (v *VersionInfo) Validate() error {
	if v.OurVersion == "" {
		return invalid("version info", "missing running version")
	}
	return nil
}

// BackendInfo is the startup detection payload: version plus data directory.
type BackendInfo struct {
	Version       VersionInfo `json:"version"`
	DataDirectory string      `json:"dataDirectory"`
	LogLevel      string      `json:"logLevel"`
}

// Validate implements Validatable.
func (b *BackendInfo) Validate() error {
	return b.Version.Validate()
}
