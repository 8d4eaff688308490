package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile string
	BaseURL    string
	APIKey     string
	Cookie     string
	Periodo    string
	Bairro     string
	Timeout    int
	Hide       []string
	ReportName string
	ReportType []string
	Dir        string
	NoPrompt   bool
	Verbose    bool
	BannerTTL  int
	LabelKeys  map[string][]string
	Listen     string
	Interval   int
}
