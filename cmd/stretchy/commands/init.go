package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/agiangrant/stretchy/internal/config"
)

type initOptions struct {
	dir    string
	format string
	force  bool
}

func newInitCmd() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default header configuration and an example gesture script",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.dir, "dir", ".", "Directory to write into")
	cmd.Flags().StringVar(&opts.format, "format", "toml", "Configuration format (toml or yaml)")
	cmd.Flags().BoolVar(&opts.force, "force", false, "Overwrite existing files")

	return cmd
}

func runInit(cmd *cobra.Command, opts *initOptions) error {
	format := config.Format(opts.format)
	if format != config.FormatTOML && format != config.FormatYAML {
		return fmt.Errorf("%w: %q", config.ErrUnsupportedFormat, opts.format)
	}

	configName := "stretchy." + string(format)
	configPath := filepath.Join(opts.dir, configName)
	scriptPath := filepath.Join(opts.dir, "swipe.toml")

	if !opts.force {
		for _, p := range []string{configPath, scriptPath} {
			if _, err := os.Stat(p); err == nil {
				return fmt.Errorf("%s already exists (use --force to overwrite)", p)
			}
		}
	}

	if err := os.MkdirAll(opts.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", opts.dir, err)
	}

	cfg := config.Default()
	cfg.Header.Background = []string{"header-1.png", "header-2.png", "header-3.png"}
	cfg.Header.Content = "Title"

	data, err := config.Encode(&cfg, format)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  ✓ Created %s\n", configPath)

	script := fmt.Sprintf(exampleScriptToml, configName)
	if err := os.WriteFile(scriptPath, []byte(script), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", scriptPath, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  ✓ Created %s\n", scriptPath)

	fmt.Fprintln(cmd.OutOrStdout())
	fmt.Fprintf(cmd.OutOrStdout(), "Next: stretchy simulate %s\n", scriptPath)
	return nil
}

const exampleScriptToml = `# Swipe the gallery forward, scroll the page, then pull past the top.
config = %q
width = 375.0

[[steps]]
do = "down"
x = 300.0
y = 60.0

[[steps]]
do = "move"
x = 290.0
y = 60.0
after_ms = 16

[[steps]]
do = "move"
x = 120.0
y = 60.0
after_ms = 120

[[steps]]
do = "up"
x = 80.0
y = 60.0
after_ms = 32

[[steps]]
do = "settle"

[[steps]]
do = "scroll"
y = 106.0
after_ms = 16

[[steps]]
do = "scroll"
y = -80.0
after_ms = 300

[[steps]]
do = "frames"
frames = 2
`
