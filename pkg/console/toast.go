package console

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pterm/pterm"

	"github.com/ameg/ameg-charts-go/internal/application/notify"
)

// ToastPrinter exibe notificações no terminal, respeitando o escalonamento dos toasts.
type ToastPrinter struct {
	out   io.Writer
	sleep func(time.Duration)
	now   func() time.Time
}

// NewToastPrinter cria um ToastPrinter que escreve em stdout.
func NewToastPrinter() *ToastPrinter {
	return &ToastPrinter{out: os.Stdout, sleep: time.Sleep, now: time.Now}
}

// Clear separa o novo lote do anterior; o terminal não apaga o que já foi impresso.
func (p *ToastPrinter) Clear() {
	fmt.Fprintln(p.out, BrightMagenta(fmt.Sprintf("── Notificações %s ──", p.now().Format("15:04:05"))))
}

// Show prints each toast after its stagger delay.
func (p *ToastPrinter) Show(toasts []notify.Toast) {
	if len(toasts) == 0 {
		fmt.Fprintln(p.out, pterm.FgGray.Sprint("Nenhuma notificação."))
		return
	}

	var waited time.Duration
	for _, t := range toasts {
		if t.Delay > waited {
			p.sleep(t.Delay - waited)
			waited = t.Delay
		}
		fmt.Fprintln(p.out, FormatToast(t))
	}
}

// FormatToast formata um toast com a cor da prioridade.
func FormatToast(t notify.Toast) string {
	marker := hexColor(t.Color).Sprint("▌")
	icon := t.Notification.Icon
	if icon == "" {
		icon = "🔔"
	}
	priority := string(t.Notification.Priority)
	if priority == "" {
		priority = "info"
	}
	return fmt.Sprintf("%s %s %s %s", marker, icon, hexColor(t.Color).Sprintf("[%s]", priority), t.Notification.Message)
}
