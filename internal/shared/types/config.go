package types

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	BaseURL    string              `json:"base_url" yaml:"base_url" toml:"base_url"`
	APIKey     string              `json:"api_key" yaml:"api_key" toml:"api_key"`
	Cookie     string              `json:"cookie" yaml:"cookie" toml:"cookie"`
	Periodo    string              `json:"periodo" yaml:"periodo" toml:"periodo"`
	Bairro     string              `json:"bairro" yaml:"bairro" toml:"bairro"`
	Timeout    int                 `json:"timeout" yaml:"timeout" toml:"timeout"`
	Hide       []string            `json:"hide" yaml:"hide" toml:"hide"`
	ReportName string              `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType []string            `json:"report_type" yaml:"report_type" toml:"report_type"`
	Dir        string              `json:"dir" yaml:"dir" toml:"dir"`
	BannerTTL  int                 `json:"banner_ttl" yaml:"banner_ttl" toml:"banner_ttl"`
	Listen     string              `json:"listen" yaml:"listen" toml:"listen"`
	Interval   int                 `json:"notification_interval" yaml:"notification_interval" toml:"notification_interval"`
	LabelKeys  map[string][]string `json:"label_keys" yaml:"label_keys" toml:"label_keys"`
}
