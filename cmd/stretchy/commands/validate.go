package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agiangrant/stretchy"
	"github.com/agiangrant/stretchy/internal/config"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config>",
		Short: "Check a header configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args[0])
		},
	}
}

func runValidate(cmd *cobra.Command, path string) error {
	file, err := config.Load(path)
	if err != nil {
		var verr *config.ValidationError
		if errors.As(err, &verr) {
			for _, f := range verr.Fields {
				fmt.Fprintf(cmd.ErrOrStderr(), "  ✗ %s\n", describeField(f))
			}
		}
		return err
	}

	header, err := stretchy.HeaderConfigFromFile(file.Header)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  ✓ %s\n", path)
	fmt.Fprintf(out, "    height:     %g\n", header.Height)
	fmt.Fprintf(out, "    background: %d element(s)\n", len(header.Background))
	if len(header.Background) > 1 && (file.Header.ShowPager == nil || *file.Header.ShowPager) {
		fmt.Fprintf(out, "    pager:      %q\n", header.Pager.Text(0, len(header.Background)))
	}
	return nil
}

func describeField(f config.FieldError) string {
	switch f.Tag {
	case "gt", "gte":
		return fmt.Sprintf("%s must be %s %s", f.Field, map[string]string{"gt": ">", "gte": ">="}[f.Tag], f.Param)
	case "color":
		return fmt.Sprintf("%s is not a color (#RGB, #RRGGBB, #RRGGBBAA, rgba(), transparent)", f.Field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", f.Field, f.Param)
	case "required":
		return fmt.Sprintf("%s is required", f.Field)
	default:
		return fmt.Sprintf("%s failed %s", f.Field, f.Tag)
	}
}
