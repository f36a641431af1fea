package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sheetdeck/sheetdeck/internal/api"
	"github.com/sheetdeck/sheetdeck/internal/clientcfg"
)

var version = "dev"

// rootFlags carries the persistent flags shared by every subcommand.
type rootFlags struct {
	server     string
	configPath string
}

// load resolves the client configuration and builds an API client from it.
// Precedence for the server address: --server, then SHEETDECK_SERVER, then
// the config file, then the built-in default.
func (f *rootFlags) load() (*clientcfg.Config, *api.Client, error) {
	cfg, err := clientcfg.Resolve(f.configPath)
	if err != nil {
		return nil, nil, err
	}

	server := f.server
	if server == "" {
		server = os.Getenv("SHEETDECK_SERVER")
	}
	if server == "" {
		server = cfg.ServerURL
	}

	client, err := api.New(server)
	if err != nil {
		return nil, nil, err
	}
	return cfg, client, nil
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "sheetdeck",
		Short: "SheetDeck - turn Excel workbooks into presentations through AI chat",
		Long: `SheetDeck is the command-line client for the SheetDeck service.

Upload an Excel workbook, discuss it with the AI analyst, and generate a
PowerPoint deck from the conversation. Generated decks can be listed,
downloaded, or opened straight from the command line.`,
		Version:      version,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&flags.server, "server", "", "Service base URL (overrides config and SHEETDECK_SERVER)")
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Path to a .sheetdeck.yaml config file")
	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newChatCommand(flags))
	cmd.AddCommand(newFilesCommand(flags))
	cmd.AddCommand(newConfigCommand(flags))
	cmd.AddCommand(newLogsCommand(flags))

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
