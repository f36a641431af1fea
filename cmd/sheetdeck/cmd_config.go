package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sheetdeck/sheetdeck/internal/api"
)

func newConfigCommand(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or update the service's AI configuration",
	}
	cmd.AddCommand(newConfigShowCommand(flags))
	cmd.AddCommand(newConfigSetCommand(flags))
	return cmd
}

func newConfigShowCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the service's current AI configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := flags.load()
			if err != nil {
				return err
			}

			cfg, err := client.GetConfig(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "API key:    %s\n", maskKey(cfg.APIKey))  //nolint:errcheck
			fmt.Fprintf(out, "Base URL:   %s\n", cfg.BaseURL)          //nolint:errcheck
			fmt.Fprintf(out, "Model:      %s\n", cfg.Model)            //nolint:errcheck
			fmt.Fprintf(out, "Configured: %v\n", cfg.IsConfigured)     //nolint:errcheck
			fmt.Fprintf(out, "Config at:  %s\n", cfg.ConfigFilePath)   //nolint:errcheck
			return nil
		},
	}
}

// maskKey hides all but a short prefix of an API key.
func maskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "****"
}

func newConfigSetCommand(flags *rootFlags) *cobra.Command {
	var update api.ConfigUpdate

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update the service's AI configuration",
		Long: `Update the AI provider configuration held by the service.

On a terminal, an interactive form pre-filled with the current values is
shown. Otherwise all three values must be passed as flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := flags.load()
			if err != nil {
				return err
			}

			interactive := !cmd.Flags().Changed("api-key") &&
				!cmd.Flags().Changed("base-url") &&
				!cmd.Flags().Changed("model")

			if interactive {
				current, err := client.GetConfig(cmd.Context())
				if err != nil {
					return err
				}
				update = api.ConfigUpdate{
					APIKey:  current.APIKey,
					BaseURL: current.BaseURL,
					Model:   current.Model,
				}
				if err := promptConfigForm(cmd.InOrStdin(), cmd.OutOrStdout(), &update); err != nil {
					return err
				}
			}

			if update.APIKey == "" || update.BaseURL == "" || update.Model == "" {
				return errors.New("api-key, base-url, and model must all be set")
			}

			if err := client.SaveConfig(cmd.Context(), update); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Configuration saved.") //nolint:errcheck
			return nil
		},
	}

	cmd.Flags().StringVar(&update.APIKey, "api-key", "", "AI provider API key")
	cmd.Flags().StringVar(&update.BaseURL, "base-url", "", "AI provider base URL")
	cmd.Flags().StringVar(&update.Model, "model", "", "Model name")
	return cmd
}

// promptConfigForm is a test hook for replacing the interactive form.
var promptConfigForm = defaultPromptConfigForm

func defaultPromptConfigForm(in io.Reader, out io.Writer, update *api.ConfigUpdate) error {
	f, ok := in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return errors.New("not a terminal; pass --api-key, --base-url, and --model")
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("API key").
				EchoMode(huh.EchoModePassword).
				Value(&update.APIKey),
			huh.NewInput().
				Title("Base URL").
				Value(&update.BaseURL),
			huh.NewInput().
				Title("Model").
				Value(&update.Model),
		),
	).WithInput(in).WithOutput(out).Run()
}
