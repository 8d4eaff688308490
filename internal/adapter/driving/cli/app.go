package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ameg/ameg-charts-go/internal/adapter/driven/api"
	"github.com/ameg/ameg-charts-go/internal/adapter/driven/config"
	"github.com/ameg/ameg-charts-go/internal/adapter/driven/export"
	"github.com/ameg/ameg-charts-go/internal/application/report"
	"github.com/ameg/ameg-charts-go/internal/application/usecase"
	"github.com/ameg/ameg-charts-go/internal/domain/entity"
	"github.com/ameg/ameg-charts-go/internal/domain/repository"
	"github.com/ameg/ameg-charts-go/internal/shared/types"
	"github.com/ameg/ameg-charts-go/pkg/console"
	"github.com/ameg/ameg-charts-go/pkg/logger"
	"github.com/ameg/ameg-charts-go/pkg/version"
)

const (
	DefaultBaseURL = "http://localhost:5000"
	defaultTimeout = 10
)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd    *cobra.Command
	configRepo repository.ConfigRepository
	exportRepo repository.ExportRepository
	console    types.ConsoleInterface
	version    string
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		configRepo: config.NewConfigRepository(),
		exportRepo: export.NewExportRepository(),
		console:    console.NewConsole(),
		version:    versionStr,
	}

	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:          "ameg-charts",
		Short:        "AMEG Charts - gráficos e estatísticas do cadastro AMEG",
		Version:      formattedVersion,
		SilenceUsage: true,
		RunE:         app.runCommand,
	}

	rootCmd.SetVersionTemplate(`{{printf "AMEG Charts version: %s\n" .Version}}`)

	flags := rootCmd.PersistentFlags()
	flags.StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	flags.StringP("base-url", "u", DefaultBaseURL, "Base URL of the AMEG backend")
	flags.String("api-key", "", "API key sent as X-API-Key")
	flags.String("cookie", "", "Session cookie sent with every request")
	flags.String("periodo", entity.DefaultFilterValue, "Period filter (todos, 30, 90, 180, 365)")
	flags.String("bairro", entity.DefaultFilterValue, "Neighborhood filter (see 'ameg-charts filtros')")
	flags.Int("timeout", defaultTimeout, "Timeout in seconds for each category request")
	flags.StringSlice("hide", nil, "Chart slots without a mount point (comma-separated)")
	flags.StringP("report-name", "n", "", "Specify the base name for the report file (without extension)")
	flags.StringSliceP("report-type", "y", []string{"csv"}, "Specify report types: csv, json, pdf, xlsx, png")
	flags.StringP("dir", "d", "", "Directory to save the report files (default: current directory)")
	flags.Bool("no-prompt", false, "Do not ask to retry failed categories")
	flags.BoolP("verbose", "v", false, "Enable debug logging")
	flags.Int("banner-ttl", int(report.DefaultTTL/time.Second), "Seconds before an error banner expires (0 = never)")

	rootCmd.AddCommand(
		app.filtrosCmd(),
		app.notificacoesCmd(),
		app.validarCmd(),
		app.schemaCmd(),
		app.serveCmd(),
	)

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application. SIGINT/SIGTERM cancelam o contexto dos comandos.
func (app *CLIApp) Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return app.rootCmd.ExecuteContext(ctx)
}

// SetConfigRepository sets the repository used to read --config-file.
func (app *CLIApp) SetConfigRepository(repo repository.ConfigRepository) {
	app.configRepo = repo
}

// SetExportRepository sets the report exporter.
func (app *CLIApp) SetExportRepository(repo repository.ExportRepository) {
	app.exportRepo = repo
}

// SetConsole sets the terminal console.
func (app *CLIApp) SetConsole(c types.ConsoleInterface) {
	app.console = c
}

// parseArgs lê as flags do comando em execução e completa com o arquivo de configuração
// os valores que não foram passados explicitamente.
func (app *CLIApp) parseArgs(cmd *cobra.Command) (*types.CLIArgs, error) {
	flags := cmd.Flags()
	configFile, _ := flags.GetString("config-file")
	baseURL, _ := flags.GetString("base-url")
	apiKey, _ := flags.GetString("api-key")
	cookie, _ := flags.GetString("cookie")
	timeout, _ := flags.GetInt("timeout")
	hide, _ := flags.GetStringSlice("hide")
	reportName, _ := flags.GetString("report-name")
	reportType, _ := flags.GetStringSlice("report-type")
	dir, _ := flags.GetString("dir")
	noPrompt, _ := flags.GetBool("no-prompt")
	verbose, _ := flags.GetBool("verbose")
	bannerTTL, _ := flags.GetInt("banner-ttl")
	listen, _ := flags.GetString("listen")
	interval, _ := flags.GetInt("interval")

	args := &types.CLIArgs{
		ConfigFile: configFile,
		BaseURL:    baseURL,
		APIKey:     apiKey,
		Cookie:     cookie,
		Timeout:    timeout,
		Hide:       hide,
		ReportName: reportName,
		ReportType: reportType,
		Dir:        dir,
		NoPrompt:   noPrompt,
		Verbose:    verbose,
		BannerTTL:  bannerTTL,
		Listen:     listen,
		Interval:   interval,
	}

	var cfg *types.Config
	if configFile != "" {
		loaded, err := app.configRepo.LoadConfigFile(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		mergeConfig(args, cfg, flags.Changed)
	}

	// O filtro vem das flags explícitas e, na falta delas, do arquivo.
	sources := usecase.ChainSource{flagSource{cmd: cmd}}
	if cfg != nil {
		sources = append(sources, usecase.MapSource{"periodo": cfg.Periodo, "bairro": cfg.Bairro})
	}
	filter := usecase.ReadFilter(sources)
	args.Periodo, args.Bairro = filter.Periodo, filter.Bairro

	if args.Dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		args.Dir = cwd
	} else {
		absDir, err := filepath.Abs(args.Dir)
		if err != nil {
			return nil, err
		}
		args.Dir = absDir
	}

	if args.Timeout < 0 || args.BannerTTL < 0 || args.Interval < 0 {
		return nil, fmt.Errorf("timeout, banner-ttl and interval must not be negative")
	}

	return args, nil
}

// mergeConfig copia do arquivo os campos cuja flag não foi alterada.
func mergeConfig(args *types.CLIArgs, cfg *types.Config, changed func(string) bool) {
	if !changed("base-url") && cfg.BaseURL != "" {
		args.BaseURL = cfg.BaseURL
	}
	if !changed("api-key") && cfg.APIKey != "" {
		args.APIKey = cfg.APIKey
	}
	if !changed("cookie") && cfg.Cookie != "" {
		args.Cookie = cfg.Cookie
	}
	if !changed("timeout") && cfg.Timeout > 0 {
		args.Timeout = cfg.Timeout
	}
	if !changed("hide") && len(cfg.Hide) > 0 {
		args.Hide = cfg.Hide
	}
	if !changed("report-name") && cfg.ReportName != "" {
		args.ReportName = cfg.ReportName
	}
	if !changed("report-type") && len(cfg.ReportType) > 0 {
		args.ReportType = cfg.ReportType
	}
	if !changed("dir") && cfg.Dir != "" {
		args.Dir = cfg.Dir
	}
	if !changed("banner-ttl") && cfg.BannerTTL > 0 {
		args.BannerTTL = cfg.BannerTTL
	}
	if !changed("listen") && cfg.Listen != "" {
		args.Listen = cfg.Listen
	}
	if !changed("interval") && cfg.Interval > 0 {
		args.Interval = cfg.Interval
	}
	args.LabelKeys = cfg.LabelKeys
}

// flagSource expõe as flags de filtro como ControlSource; só flags alteradas contam.
type flagSource struct {
	cmd *cobra.Command
}

func (s flagSource) Lookup(name string) (string, bool) {
	if !s.cmd.Flags().Changed(name) {
		return "", false
	}
	v, err := s.cmd.Flags().GetString(name)
	if err != nil {
		return "", false
	}
	return v, true
}

// wiring reúne as dependências montadas a partir dos argumentos.
type wiring struct {
	args      *types.CLIArgs
	logger    *zap.Logger
	layout    entity.Layout
	client    *api.Client
	reporter  *report.ErrorReporter
	dashboard *usecase.DashboardUseCase
}

// surfaceFunc cria a superfície de renderização para o layout em uso.
type surfaceFunc func(layout entity.Layout, args *types.CLIArgs) types.Surface

// wire monta cliente, reporter e caso de uso sobre a superfície dada.
func (app *CLIApp) wire(args *types.CLIArgs, surface surfaceFunc, log *zap.Logger) (*wiring, error) {
	layout := entity.DefaultLayout()
	if len(args.LabelKeys) > 0 {
		layout = layout.WithLabelKeys(args.LabelKeys)
	}

	client, err := api.NewClient(api.ClientConfig{
		BaseURL: args.BaseURL,
		APIKey:  args.APIKey,
		Cookie:  args.Cookie,
		Layout:  layout,
		Timeout: time.Duration(args.Timeout) * time.Second,
	}, log.Named("api"))
	if err != nil {
		return nil, err
	}

	reporter := report.NewErrorReporter(time.Duration(args.BannerTTL)*time.Second, log.Named("report"))
	dashboard := usecase.NewDashboardUseCase(
		client,
		app.exportRepo,
		surface(layout, args),
		reporter,
		app.console,
		log.Named("dashboard"),
		usecase.DashboardConfig{
			Layout:  layout,
			Timeout: time.Duration(args.Timeout) * time.Second,
		},
	)

	return &wiring{
		args:      args,
		logger:    log,
		layout:    layout,
		client:    client,
		reporter:  reporter,
		dashboard: dashboard,
	}, nil
}

// prepare faz parse dos argumentos, cria o logger e monta as dependências.
func (app *CLIApp) prepare(cmd *cobra.Command, server bool, surface surfaceFunc) (*wiring, error) {
	args, err := app.parseArgs(cmd)
	if err != nil {
		return nil, err
	}

	newLogger := logger.New
	if server {
		newLogger = logger.NewServer
	}
	log, err := newLogger(args.Verbose)
	if err != nil {
		return nil, err
	}

	w, err := app.wire(args, surface, log)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}
	return w, nil
}

// runCommand é o ponto de entrada principal para o comando CLI.
func (app *CLIApp) runCommand(cmd *cobra.Command, _ []string) error {
	displayWelcomeBanner()

	go version.CheckLatestVersion(app.version)

	w, err := app.prepare(cmd, false, terminalSurface)
	if err != nil {
		return err
	}
	defer func() { _ = w.logger.Sync() }()

	return w.dashboard.RunDashboard(cmd.Context(), w.args)
}
