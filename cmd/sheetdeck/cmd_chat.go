package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sheetdeck/sheetdeck/internal/format"
	"github.com/sheetdeck/sheetdeck/internal/notify"
	"github.com/sheetdeck/sheetdeck/internal/orchestrator"
	"github.com/sheetdeck/sheetdeck/internal/poller"
	"github.com/sheetdeck/sheetdeck/internal/progress"
	"github.com/sheetdeck/sheetdeck/internal/transcript"
)

func newChatCommand(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat [workbook.xlsx]",
		Short: "Analyze a workbook in an interactive chat session",
		Long: `Start an interactive session with the SheetDeck analyst.

Pass a workbook to upload it immediately, or upload one later with /upload.
Plain input is sent as a chat message; lines starting with / are commands:

  /upload <path>     Upload a workbook (replaces the current session)
  /generate [brief]  Generate a presentation from the conversation
  /files             List generated presentations
  /get <filename>    Download a generated presentation
  /clear             Clear the conversation (keeps the session)
  /logs              Show recent AI interactions
  /export <path>     Export the transcript (.html, .csv, or .zst archive)
  /end               End the session (keeps the prompt open)
  /quit              End the session and exit`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, args, flags)
		},
	}
	return cmd
}

func runChat(cmd *cobra.Command, args []string, flags *rootFlags) error {
	cfg, client, err := flags.load()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	app := orchestrator.New(client,
		orchestrator.WithNotifier(notify.NewConsole(out)),
		orchestrator.WithProgressSink(progress.NewMeter(out)),
		orchestrator.WithLogLimit(cfg.LogLimit),
		orchestrator.WithPollerOptions(
			poller.WithInterval(cfg.PollInterval()),
			poller.WithMaxAttempts(cfg.PollMaxAttempts),
		),
	)

	r := newREPL(app, out, cfg.DownloadDir)
	defer app.Sessions.Drain()

	ctx := cmd.Context()
	if len(args) == 1 {
		if _, err := app.Upload(ctx, args[0]); err != nil {
			return err
		}
	}

	return r.run(ctx, cmd.InOrStdin())
}

// replCommand is one slash command available at the prompt.
type replCommand struct {
	name string
	help string
	run  func(ctx context.Context, arg string) error
}

// errQuit unwinds the prompt loop; it never reaches the user.
var errQuit = errors.New("quit")

type repl struct {
	app         *orchestrator.App
	out         io.Writer
	downloadDir string
	commands    map[string]replCommand
}

func newREPL(app *orchestrator.App, out io.Writer, downloadDir string) *repl {
	r := &repl{app: app, out: out, downloadDir: downloadDir}
	r.commands = map[string]replCommand{
		"/upload":   {"/upload", "Upload a workbook (replaces the current session)", r.cmdUpload},
		"/generate": {"/generate", "Generate a presentation from the conversation", r.cmdGenerate},
		"/files":    {"/files", "List generated presentations", r.cmdFiles},
		"/get":      {"/get", "Download a generated presentation", r.cmdGet},
		"/clear":    {"/clear", "Clear the conversation", r.cmdClear},
		"/logs":     {"/logs", "Show recent AI interactions", r.cmdLogs},
		"/export":   {"/export", "Export the transcript (.html, .csv, or .zst)", r.cmdExport},
		"/end":      {"/end", "End the session", r.cmdEnd},
		"/quit":     {"/quit", "End the session and exit", r.cmdQuit},
		"/help":     {"/help", "Show available commands", r.cmdHelp},
	}
	r.commands["/exit"] = replCommand{"/exit", "Alias for /quit", r.cmdQuit}
	return r
}

func (r *repl) run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(r.out, "> ") //nolint:errcheck
		if !scanner.Scan() {
			r.app.EndSession(ctx)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if err := r.dispatch(ctx, line); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			// Command failures are reported at the prompt, not fatal.
			fmt.Fprintf(r.out, "error: %v\n", err) //nolint:errcheck
		}
	}
}

func (r *repl) dispatch(ctx context.Context, line string) error {
	if !strings.HasPrefix(line, "/") {
		return r.send(ctx, line)
	}

	name, arg, _ := strings.Cut(line, " ")
	c, ok := r.commands[name]
	if !ok {
		return fmt.Errorf("unknown command %s (try /help)", name)
	}
	return c.run(ctx, strings.TrimSpace(arg))
}

func (r *repl) send(ctx context.Context, message string) error {
	stop := progress.Spin(r.out, "thinking")
	err := r.app.Send(ctx, message)
	stop()
	if err != nil {
		return err
	}

	entries := r.app.Transcript.Entries()
	if len(entries) == 0 {
		return nil
	}
	last := entries[len(entries)-1]
	if last.Role == transcript.RoleAssistant {
		fmt.Fprintln(r.out, transcript.RenderText(last.Content)) //nolint:errcheck
	}
	return nil
}

func (r *repl) cmdUpload(ctx context.Context, arg string) error {
	if arg == "" {
		return errors.New("usage: /upload <workbook.xlsx>")
	}
	_, err := r.app.Upload(ctx, arg)
	return err
}

func (r *repl) cmdGenerate(ctx context.Context, arg string) error {
	_, err := r.app.Generate(ctx, arg)
	return err
}

func (r *repl) cmdFiles(ctx context.Context, _ string) error {
	if err := r.app.RefreshOutputs(ctx); err != nil {
		return err
	}
	files := r.app.Outputs.Files()
	if len(files) == 0 {
		fmt.Fprintln(r.out, "No presentations generated yet.") //nolint:errcheck
		return nil
	}
	for _, f := range files {
		fmt.Fprintf(r.out, "%s  %s  %s\n", //nolint:errcheck
			format.PadRight(f.Filename, 40), format.PadRight(format.HumanSize(f.Size), 10),
			format.Timestamp(f.CreatedTime))
	}
	return nil
}

func (r *repl) cmdGet(ctx context.Context, arg string) error {
	if arg == "" {
		return errors.New("usage: /get <filename>")
	}
	path, err := r.app.Outputs.Download(ctx, arg, r.downloadDir)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Saved %s\n", path) //nolint:errcheck
	return nil
}

func (r *repl) cmdClear(context.Context, string) error {
	r.app.ClearChat()
	return nil
}

func (r *repl) cmdLogs(ctx context.Context, _ string) error {
	entries, err := r.app.RecentLogs(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(r.out, "No interactions logged yet.") //nolint:errcheck
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(r.out, "%s  %s\n", format.Timestamp(e.Timestamp), e.Context) //nolint:errcheck
	}
	return nil
}

func (r *repl) cmdExport(_ context.Context, arg string) error {
	if arg == "" {
		return errors.New("usage: /export <transcript.html|.csv|.zst>")
	}

	entries := r.app.Transcript.Entries()
	switch strings.ToLower(filepath.Ext(arg)) {
	case ".html":
		f, err := os.Create(arg)
		if err != nil {
			return err
		}
		defer f.Close() //nolint:errcheck
		title := r.app.Sessions.Filename()
		if title == "" {
			title = "SheetDeck transcript"
		}
		if err := transcript.ExportHTML(f, title, entries); err != nil {
			return err
		}
	case ".csv":
		if err := exportCSV(arg, entries); err != nil {
			return err
		}
	case ".zst":
		if err := transcript.WriteArchive(arg, r.app.Sessions.Filename(), entries); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported export format %q (use .html, .csv, or .zst)", filepath.Ext(arg))
	}

	fmt.Fprintf(r.out, "Exported %d entries to %s\n", len(entries), arg) //nolint:errcheck
	return nil
}

// exportCSV writes the transcript as role,timestamp,message rows.
func exportCSV(path string, entries []transcript.Entry) error {
	var b strings.Builder
	b.WriteString(format.CSVLine("role", "timestamp", "message") + "\n")
	for _, e := range entries {
		b.WriteString(format.CSVLine(string(e.Role), format.Timestamp(e.Timestamp), transcript.RenderText(e.Content)) + "\n")
	}
	return os.WriteFile(path, []byte(b.String()), 0644)
}

func (r *repl) cmdEnd(ctx context.Context, _ string) error {
	r.app.EndSession(ctx)
	return nil
}

func (r *repl) cmdQuit(ctx context.Context, _ string) error {
	r.app.EndSession(ctx)
	return errQuit
}

func (r *repl) cmdHelp(context.Context, string) error {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c := r.commands[name]
		fmt.Fprintf(r.out, "%s %s\n", format.PadRight(c.name, 12), c.help) //nolint:errcheck
	}
	return nil
}
