package main

import (
	"fmt"
	"os"

	"github.com/ameg/ameg-charts-go/internal/adapter/driven/config"
	"github.com/ameg/ameg-charts-go/internal/adapter/driven/export"
	"github.com/ameg/ameg-charts-go/internal/adapter/driving/cli"
	"github.com/ameg/ameg-charts-go/pkg/console"
	"github.com/ameg/ameg-charts-go/pkg/version"
)

func main() {
	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.Version)

	// Repositórios sem dependência de flags; o cliente da API é montado por comando
	app.SetConfigRepository(config.NewConfigRepository())
	app.SetExportRepository(export.NewExportRepository())
	app.SetConsole(console.NewConsole())

	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
