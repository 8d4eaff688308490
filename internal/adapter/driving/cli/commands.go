package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ameg/ameg-charts-go/internal/adapter/driven/api"
	"github.com/ameg/ameg-charts-go/internal/adapter/driven/echarts"
	"github.com/ameg/ameg-charts-go/internal/adapter/driving/web"
	"github.com/ameg/ameg-charts-go/internal/application/notify"
	"github.com/ameg/ameg-charts-go/internal/domain/entity"
	"github.com/ameg/ameg-charts-go/internal/shared/types"
	"github.com/ameg/ameg-charts-go/pkg/console"
	"github.com/ameg/ameg-charts-go/pkg/validators"
)

// ErrValidation é retornado pelo comando validar quando algum valor é inválido.
var ErrValidation = errors.New("validation failed")

func terminalSurface(layout entity.Layout, args *types.CLIArgs) types.Surface {
	return console.NewTerminalSurface(layout.Slots(), args.Hide)
}

// htmlSurface monta um container por slot, exceto os escondidos com --hide.
func htmlSurface(layout entity.Layout, args *types.CLIArgs) types.Surface {
	hidden := make(map[string]bool, len(args.Hide))
	for _, slot := range args.Hide {
		hidden[slot] = true
	}
	var slots []string
	for _, slot := range layout.Slots() {
		if !hidden[slot] {
			slots = append(slots, slot)
		}
	}
	return echarts.NewSurface(slots)
}

func (app *CLIApp) filtrosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "filtros",
		Short: "Lista as opções do filtro de bairro",
		RunE: func(cmd *cobra.Command, _ []string) error {
			w, err := app.prepare(cmd, false, terminalSurface)
			if err != nil {
				return err
			}
			defer func() { _ = w.logger.Sync() }()
			return w.dashboard.RunFilterOptions(cmd.Context())
		},
	}
}

func (app *CLIApp) schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Confere as chaves de rótulo do layout contra uma amostra da API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			w, err := app.prepare(cmd, false, terminalSurface)
			if err != nil {
				return err
			}
			defer func() { _ = w.logger.Sync() }()

			if problems := w.dashboard.RunSchemaCheck(cmd.Context()); problems > 0 {
				return fmt.Errorf("%d série(s) com mapeamento de rótulos divergente", problems)
			}
			return nil
		},
	}
}

func (app *CLIApp) notificacoesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notificacoes",
		Short: "Acompanha as notificações do painel no terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			w, err := app.prepare(cmd, false, terminalSurface)
			if err != nil {
				return err
			}
			defer func() { _ = w.logger.Sync() }()

			once, _ := cmd.Flags().GetBool("once")
			interval := time.Duration(w.args.Interval) * time.Second
			poller := notify.NewPoller(w.client, console.NewToastPrinter(), notify.PollerConfig{
				Interval: interval,
			}, w.logger.Named("notify"))

			if once {
				if !poller.Tick(cmd.Context()) {
					return fmt.Errorf("failed to load notifications from %s", w.args.BaseURL)
				}
				return nil
			}

			if err := poller.Start(cmd.Context()); err != nil {
				return err
			}
			app.console.LogInfo("Consultando notificações a cada %s (Ctrl+C para sair)", interval)
			<-cmd.Context().Done()
			poller.Stop()
			return nil
		},
	}
	cmd.Flags().Bool("once", false, "Fetch notifications once and exit")
	cmd.Flags().Int("interval", int(notify.DefaultInterval/time.Second), "Polling interval in seconds")
	return cmd
}

func (app *CLIApp) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve o dashboard HTML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			w, err := app.prepare(cmd, true, htmlSurface)
			if err != nil {
				return err
			}
			defer func() { _ = w.logger.Sync() }()

			interval := time.Duration(w.args.Interval) * time.Second
			if interval <= 0 {
				interval = notify.DefaultInterval
			}
			// A página conta como visível por dois intervalos após a última consulta.
			visibility := web.NewVisibility(2 * interval)
			toasts := notify.NewToastBoard()
			poller := notify.NewPoller(w.client, toasts, notify.PollerConfig{
				Interval: interval,
				Visible:  visibility.Visible,
			}, w.logger.Named("notify"))

			server := web.NewServer(web.Config{
				Dashboard:       w.dashboard,
				Exporter:        app.exportRepo,
				Toasts:          toasts,
				Poller:          poller,
				Visibility:      visibility,
				RemotePreloader: api.NewHTTPPreloader(nil),
				ToastRefresh:    interval,
			}, w.logger.Named("web"))

			app.console.LogInfo("Dashboard disponível em http://%s/charts", displayAddr(w.args.Listen))
			return server.Run(cmd.Context(), w.args.Listen)
		},
	}
	cmd.Flags().String("listen", web.DefaultListen, "Address for the HTML dashboard")
	cmd.Flags().Int("interval", int(notify.DefaultInterval/time.Second), "Notification polling interval in seconds")
	return cmd
}

func displayAddr(addr string) string {
	if addr == "" {
		addr = web.DefaultListen
	}
	if strings.HasPrefix(addr, ":") {
		return "localhost" + addr
	}
	return addr
}

// validarForm liga cada flag do comando validar a um validador.
type validarForm struct {
	CPF      string `validator:"cpf" form:"cpf"`
	Email    string `validator:"email"`
	Telefone string `validator:"telefone"`
	Senha    string `validator:"senha"`
}

func (app *CLIApp) validarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validar",
		Short: "Valida CPF, e-mail, telefone, senha ou um formulário completo",
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			preset, _ := flags.GetString("form")
			if preset != "" {
				fields, _ := flags.GetStringToString("campo")
				return app.validatePreset(preset, fields)
			}

			var form validarForm
			form.CPF, _ = flags.GetString("cpf")
			form.Email, _ = flags.GetString("email")
			form.Telefone, _ = flags.GetString("telefone")
			form.Senha, _ = flags.GetString("senha")

			fv, err := validators.NewFormValidator(&form)
			if err != nil {
				return err
			}

			checked, invalid := 0, 0
			for _, field := range fv.Validate().Fields {
				if !flags.Changed(field.Field) {
					continue
				}
				checked++
				if !field.Valid {
					invalid++
				}
				app.printField(field)
			}

			if checked == 0 {
				return fmt.Errorf("informe ao menos um de --cpf, --email, --telefone ou --senha")
			}
			if invalid > 0 {
				return fmt.Errorf("%w: %d campo(s) inválido(s)", ErrValidation, invalid)
			}
			return nil
		},
	}
	cmd.Flags().String("cpf", "", "CPF to validate")
	cmd.Flags().String("email", "", "E-mail to validate")
	cmd.Flags().String("telefone", "", "Phone number to validate")
	cmd.Flags().String("senha", "", "Password to check against the password rules")
	cmd.Flags().String("form", "", "Validate a whole form preset (cadastro, usuario)")
	cmd.Flags().StringToString("campo", nil, "Form field as name=value (repeatable), used with --form")
	return cmd
}

func (app *CLIApp) printField(field validators.FieldResult) {
	if field.Valid {
		app.console.LogSuccess("%s: válido", field.Field)
	} else {
		app.console.LogError("%s: inválido", field.Field)
	}
	for _, rule := range field.Rules {
		app.console.Println(fmt.Sprintf("  %s %s", rule.Icon(), rule.Message))
	}
}

func (app *CLIApp) validatePreset(preset string, fields map[string]string) error {
	result, err := validators.ValidateForm(preset, fields)
	if err != nil {
		return err
	}
	for _, field := range result.Fields {
		app.printField(field)
	}
	for _, msg := range result.Errors {
		app.console.LogError("%s", msg)
	}
	if !result.SubmitEnabled {
		return fmt.Errorf("%w: formulário %s com %d erro(s)", ErrValidation, preset, len(result.Errors))
	}
	app.console.LogSuccess("Formulário %s válido", preset)
	return nil
}
