package commands

import (
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/agiangrant/stretchy/internal/config"
	"github.com/agiangrant/stretchy/internal/preview"
	"github.com/agiangrant/stretchy/internal/script"
)

type previewOptions struct {
	width    float64
	viewport float64
}

func newPreviewCmd(flags *rootFlags) *cobra.Command {
	opts := &previewOptions{}

	cmd := &cobra.Command{
		Use:   "preview [config]",
		Short: "Drive a header interactively in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal(cmd.OutOrStdout()) {
				return errNotTerminal
			}
			log, err := flags.logger(cmd)
			if err != nil {
				return err
			}

			sess, err := newPreviewSession(args, opts)
			if err != nil {
				return err
			}
			// The session gets no logger while the alternate screen is up
			log.DebugFn("preview starting", func(e *zerolog.Event) {
				e.Float64("width", opts.width).
					Float64("viewport", opts.viewport).
					Int("elements", sess.View().Header().Gallery().Len())
			})

			p := tea.NewProgram(preview.New(sess), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil {
				return err
			}
			log.DebugFn("preview finished", func(e *zerolog.Event) {
				e.Ints("changes", sess.Changes())
			})
			return nil
		},
	}

	cmd.Flags().Float64Var(&opts.width, "width", 375, "Header width in points")
	cmd.Flags().Float64Var(&opts.viewport, "viewport", 667, "Viewport height in points")

	return cmd
}

var errNotTerminal = errors.New("preview needs an interactive terminal")

func isTerminal(writer any) bool {
	if file, ok := writer.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}

func newPreviewSession(args []string, opts *previewOptions) (*script.Session, error) {
	s := script.Default()
	s.Width = opts.width
	s.Viewport = opts.viewport
	s.Header.Background = []string{"header-1.png", "header-2.png", "header-3.png"}

	if len(args) == 1 {
		file, err := config.Load(args[0])
		if err != nil {
			return nil, err
		}
		s.Header = file.Header
		s.Scroll = file.Scroll
	}
	return script.NewSession(&s, nil)
}
