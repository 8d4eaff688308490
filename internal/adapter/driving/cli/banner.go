package cli

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/ameg/ameg-charts-go/pkg/version"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner() {
	banner := `
     _    __  __ _____ ____    ____ _                _       
    / \  |  \/  | ____/ ___|  / ___| |__   __ _ _ __| |_ ___ 
   / _ \ | |\/| |  _|| |  _  | |   | '_ \ / _' | '__| __/ __|
  / ___ \| |  | | |__| |_| | | |___| | | | (_| | |  | |_\__ \
 /_/   \_\_|  |_|_____\____|  \____|_| |_|\__,_|_|   \__|___/
        `
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(cyan(banner))
	fmt.Println(blue(fmt.Sprintf("AMEG Charts CLI (v%s)", version.FormatVersion())))
}
