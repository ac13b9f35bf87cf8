package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/aspxgen/internal/logging"
	"github.com/yaklabco/aspxgen/pkg/check"
	"github.com/yaklabco/aspxgen/pkg/config"
)

type checksFlags struct {
	checkFormat string
	format      string
}

// checkInfo represents a check in JSON output.
type checkInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Severity    string   `json:"severity"`
	Enabled     bool     `json:"enabled"`
	Fixable     bool     `json:"fixable"`
	Tags        []string `json:"tags,omitempty"`
}

func newChecksCommand() *cobra.Command {
	flags := &checksFlags{}

	cmd := &cobra.Command{
		Use:     "checks",
		GroupID: groupProject,
		Short:   "List available checks",
		Long: `List all available checks with their IDs, descriptions, default
severity, whether they run by default and whether they can fix documents.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			checks := check.DefaultRegistry.Checks()

			if flags.format == formatJSON {
				return writeChecksJSON(cmd.OutOrStdout(), checks)
			}

			logger := logging.NewInteractive(cmd.OutOrStdout())
			logger.Info("available checks")

			checkFormat := config.CheckFormat(flags.checkFormat)
			for _, c := range checks {
				fixable := "-"
				if c.CanFix() {
					fixable = "yes"
				}
				enabled := "on"
				if !c.DefaultEnabled() {
					enabled = "off"
				}

				logger.Info(config.FormatCheckID(checkFormat, c.ID(), c.Name()),
					logging.FieldSeverity, c.DefaultSeverity(),
					logging.FieldEnabled, enabled,
					logging.FieldFixable, fixable,
					logging.FieldDescription, c.Description(),
				)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&flags.checkFormat, "check-format", "combined",
		"check identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.format, "format", formatText,
		"output format: text, json")

	return cmd
}

func writeChecksJSON(w io.Writer, checks []check.Check) error {
	infos := make([]checkInfo, 0, len(checks))
	for _, c := range checks {
		infos = append(infos, checkInfo{
			ID:          c.ID(),
			Name:        c.Name(),
			Description: c.Description(),
			Severity:    string(c.DefaultSeverity()),
			Enabled:     c.DefaultEnabled(),
			Fixable:     c.CanFix(),
			Tags:        c.Tags(),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding checks: %w", err)
	}
	return nil
}
