package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sheetdeck/sheetdeck/internal/format"
	"github.com/sheetdeck/sheetdeck/internal/outputs"
)

func newFilesCommand(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "files",
		Short: "List, download, or open generated presentations",
	}
	cmd.AddCommand(newFilesListCommand(flags))
	cmd.AddCommand(newFilesGetCommand(flags))
	cmd.AddCommand(newFilesOpenCommand(flags))
	return cmd
}

func newFilesListCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List generated presentations, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := flags.load()
			if err != nil {
				return err
			}

			registry := outputs.NewRegistry(client)
			if err := registry.Refresh(cmd.Context()); err != nil {
				return err
			}

			files := registry.Files()
			out := cmd.OutOrStdout()
			if len(files) == 0 {
				fmt.Fprintln(out, "No presentations generated yet.") //nolint:errcheck
				return nil
			}

			fmt.Fprintf(out, "%s  %s  %s\n", //nolint:errcheck
				format.PadRight("NAME", 40), format.PadRight("SIZE", 10), "CREATED")
			for _, f := range files {
				fmt.Fprintf(out, "%s  %s  %s\n", //nolint:errcheck
					format.PadRight(f.Filename, 40),
					format.PadRight(format.HumanSize(f.Size), 10),
					format.Timestamp(f.CreatedTime))
			}
			return nil
		},
	}
}

func newFilesGetCommand(flags *rootFlags) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "get <filename>",
		Short: "Download a generated presentation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, client, err := flags.load()
			if err != nil {
				return err
			}
			if dir == "" {
				dir = cfg.DownloadDir
			}

			registry := outputs.NewRegistry(client)
			path, err := registry.Download(cmd.Context(), args[0], dir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", path) //nolint:errcheck
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Directory to save into (default: download_dir from config)")
	return cmd
}

func newFilesOpenCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "open <filename>",
		Short: "Open a generated presentation in the browser",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := flags.load()
			if err != nil {
				return err
			}
			return outputs.NewRegistry(client).OpenInBrowser(args[0])
		},
	}
}
