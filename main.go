package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"bytedit/internal/buffer"
	"bytedit/internal/config"
	"bytedit/internal/editor"
	"bytedit/internal/render"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var version = "0.1.0"

var errDeclined = errors.New("no buffer created")

type options struct {
	configPath string
	debugLog   string
	print      bool
	force      bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "bytedit [file]",
		Short: "Byte-level file editor with hex, binary and char views",
		Long: `bytedit loads a file into memory and shows it as a grid of hex or binary
cells, or as raw characters. Move with the arrow keys, edit the byte under
the cursor in any representation and save it back.

If the file cannot be read, bytedit offers to start from a fresh buffer.

Examples:
  bytedit firmware.bin           # Edit a file
  bytedit                        # Prompt for a path
  bytedit data.bin --print       # Print one frame and exit`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default ~/.config/bytedit/bytedit.toml)")
	root.Flags().StringVar(&opts.debugLog, "debug", "", "Write debug log to this file")
	root.Flags().BoolVar(&opts.print, "print", false, "Render a single frame to stdout and exit")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	configInitCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd.OutOrStdout(), opts)
		},
	}
	configInitCmd.Flags().BoolVar(&opts.force, "force", false, "Overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
	root.AddCommand(configCmd)

	return root
}

func run(cmd *cobra.Command, opts *options, args []string) error {
	if opts.debugLog != "" {
		f, err := tea.LogToFile(opts.debugLog, "bytedit")
		if err != nil {
			return fmt.Errorf("failed to open debug log: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		log.Printf("config: %v, using defaults", err)
	}

	in := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	var path string
	if len(args) > 0 {
		path = args[0]
	} else {
		fmt.Fprint(out, "File path: ")
		path = readLine(in)
	}

	buf, err := loadOrCreate(in, out, path, cfg.Editor.NewBufferSize)
	if err != nil {
		return err
	}

	model := editor.NewModel(buf, cfg, path)
	if opts.print {
		return printFrame(out, model)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

// loadOrCreate opens path, or asks whether to start from a fresh A..Z
// buffer of size bytes when it cannot be read.
func loadOrCreate(in *bufio.Reader, out io.Writer, path string, size int) (*buffer.Buffer, error) {
	buf, err := buffer.Open(path)
	if err == nil {
		return buf, nil
	}
	log.Printf("load: %v", err)

	fmt.Fprint(out, "No file found. Create a new buffer? (y/n): ")
	switch strings.ToLower(readLine(in)) {
	case "y", "yes", "j":
		return buffer.NewFilled(size), nil
	}
	return nil, fmt.Errorf("%w: %v", errDeclined, err)
}

func readLine(in *bufio.Reader) string {
	line, _ := in.ReadString('\n')
	return strings.TrimSpace(line)
}

func printFrame(out io.Writer, m *editor.Model) error {
	f := m.Frame()
	if file, ok := out.(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		return render.WriteANSI(out, f)
	}
	_, err := fmt.Fprintln(out, f.String())
	return err
}

func initConfig(out io.Writer, opts *options) error {
	path := opts.configPath
	if path == "" {
		path = config.ConfigPath()
	}
	if _, err := os.Stat(path); err == nil && !opts.force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.DefaultConfig().Save(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Fprintf(out, "Wrote %s\n", path)
	return nil
}
