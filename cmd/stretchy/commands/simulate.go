package commands

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/agiangrant/stretchy/internal/script"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Bold(true)
	claimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#28D223"))
)

func newSimulateCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "simulate <script>",
		Short: "Replay a gesture script and print the header after every step",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := flags.logger(cmd)
			if err != nil {
				return err
			}

			s, err := script.Load(args[0])
			if err != nil {
				return err
			}

			records, err := script.Run(cmd.Context(), s, log)
			if len(records) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), RecordTable(records))
			}
			return err
		},
	}
}

// RecordTable renders replay records as a borderless table.
func RecordTable(records []script.Record) string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		claimed := ""
		if r.Claimed {
			claimed = "yes"
		}
		rows = append(rows, []string{
			strconv.Itoa(r.Step),
			r.Do,
			strconv.FormatInt(r.At.Milliseconds(), 10),
			claimed,
			r.State.String(),
			fmt.Sprintf("%.3f", r.Frame.Index),
			r.Pager,
			fmt.Sprintf("%.1f", r.Frame.ScrollY),
			fmt.Sprintf("%.3f", r.Frame.Opacity),
			fmt.Sprintf("%.3f", r.Frame.Scale),
			fmt.Sprintf("%.1f", r.Frame.TranslateX),
			fmt.Sprintf("%.1f", r.Frame.TranslateY),
			string(r.Frame.Overflow),
			strconv.Itoa(r.Updates),
		})
	}

	return table.New().
		Headers("STEP", "DO", "MS", "CLAIMED", "STATE", "INDEX", "PAGER", "SCROLL", "OPACITY", "SCALE", "TX", "TY", "OVERFLOW", "UPDATES").
		Rows(rows...).
		BorderTop(false).BorderBottom(false).BorderLeft(false).BorderRight(false).
		BorderColumn(false).BorderRow(false).BorderHeader(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().PaddingRight(2)
			if row == table.HeaderRow {
				return style.Inherit(headerStyle)
			}
			if col == 3 {
				return style.Inherit(claimStyle)
			}
			return style
		}).
		Render()
}
