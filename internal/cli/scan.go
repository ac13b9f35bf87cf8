package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/aspxgen/internal/logging"
	"github.com/yaklabco/aspxgen/internal/ui/pretty"
	"github.com/yaklabco/aspxgen/pkg/analysis"
	"github.com/yaklabco/aspxgen/pkg/check"
	"github.com/yaklabco/aspxgen/pkg/codegen"
	"github.com/yaklabco/aspxgen/pkg/config"
	"github.com/yaklabco/aspxgen/pkg/fsutil"
	"github.com/yaklabco/aspxgen/pkg/runner"
)

// ErrScanFailed is returned when declarations could not be generated for
// at least one document.
var ErrScanFailed = errors.New("declaration generation failed")

const (
	formatText  = "text"
	formatTable = "table"
	formatJSON  = "json"
)

type scanFlags struct {
	format string
	ignore []string
}

// scanEntry is one document in JSON scan output.
type scanEntry struct {
	Path         string                `json:"path"`
	Declarations *codegen.Declarations `json:"declarations,omitempty"`
	Error        string                `json:"error,omitempty"`
}

func newScanCommand() *cobra.Command {
	flags := &scanFlags{}

	cmd := &cobra.Command{
		Use:     "scan [paths...]",
		GroupID: groupDocuments,
		Short:   "Print the designer declarations of markup documents",
		Long: `Parse markup documents and print the declarations their designer files
hold: the class name, the strongly typed Master and PreviousPage properties and
one field per server control with an id.`,
		Example: `  aspxgen scan                       # Scan current directory
  aspxgen scan Default.aspx          # Scan a single document
  aspxgen scan --format table        # Print one table per document
  aspxgen scan --format json         # Output as JSON`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", formatText, "output format: text, table, json")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")

	return cmd
}

func runScan(cmd *cobra.Command, args []string, flags *scanFlags) error {
	switch flags.format {
	case formatText, formatTable, formatJSON:
	default:
		return fmt.Errorf("invalid format %q: must be text, table or json", flags.format)
	}

	s, err := loadSession(cmd, &config.Config{Ignore: flags.ignore})
	if err != nil {
		return err
	}

	opts, err := s.parserOptions()
	if err != nil {
		return err
	}
	engine := check.NewEngine(opts, check.DefaultRegistry)
	gen := codegen.NewGenerator(codegen.GeneratorOptions{
		Parser:     opts,
		FailureLog: codegen.FailureLogPath(s.cfg.FailureLog),
		Logger:     s.logger,
	})

	runOpts := runner.OptionsFromConfig(s.cfg, args)
	runOpts.WorkingDir = s.workDir
	files, err := runner.Discover(s.ctx, runOpts)
	if err != nil {
		return fmt.Errorf("discover documents: %w", err)
	}

	entries := make([]scanEntry, 0, len(files))
	failed := 0
	for _, path := range files {
		entry := scanEntry{Path: analysis.DisplayPath(path, s.workDir)}

		decls, err := scanDocument(s, gen, engine.VirtualPath(path), path)
		entry.Declarations = decls
		if err != nil {
			failed++
			entry.Error = err.Error()
			s.logger.Debug("generation failed", logging.FieldPath, path, logging.FieldError, err)
		}
		entries = append(entries, entry)
	}

	if err := writeScan(cmd.OutOrStdout(), colorMode(cmd), flags.format, entries); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d documents", ErrScanFailed, failed, len(files))
	}
	return nil
}

func scanDocument(s *session, gen *codegen.Generator, virtualPath, path string) (*codegen.Declarations, error) {
	content, _, err := fsutil.ReadFile(s.ctx, path)
	if err != nil {
		return nil, err
	}
	text := fsutil.DecodeText(content).Text
	if text == "" {
		return nil, nil
	}
	return gen.Generate(s.ctx, virtualPath, text)
}

func writeScan(w io.Writer, color, format string, entries []scanEntry) error {
	if format == formatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(entries); err != nil {
			return fmt.Errorf("encoding declarations: %w", err)
		}
		return nil
	}

	colorEnabled := pretty.IsColorEnabled(color, w)
	styles := pretty.NewStyles(colorEnabled)
	table := pretty.NewTableFormatter(styles, colorEnabled, 0, config.CheckFormatName)

	for i, entry := range entries {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, styles.FilePath.Render(entry.Path))

		switch {
		case entry.Declarations == nil && entry.Error == "":
			fmt.Fprintln(w, styles.Dim.Render("  empty document"))
		case entry.Declarations == nil:
		case format == formatTable:
			fmt.Fprint(w, table.FormatDeclarations(entry.Declarations))
		default:
			writeDeclarations(w, styles, entry.Declarations)
		}
		if entry.Error != "" {
			fmt.Fprintf(w, "  %s %s\n", styles.Error.Render("error:"), entry.Error)
		}
	}
	return nil
}

func writeDeclarations(w io.Writer, styles *pretty.Styles, decls *codegen.Declarations) {
	class := styles.ClassName.Render(decls.FullClassName())
	if decls.Language != "" {
		class += styles.Dim.Render(" (" + string(decls.Language) + ")")
	}
	fmt.Fprintf(w, "  class %s\n", class)

	for _, p := range decls.Properties {
		fmt.Fprintf(w, "  property %s %s\n", styles.FieldName.Render(p.Name), styles.TypeName.Render(p.TypeName))
	}
	for _, f := range decls.Fields {
		fmt.Fprintf(w, "  field %s %s %s\n",
			styles.FieldName.Render(f.Name),
			styles.TypeName.Render(f.TypeName),
			styles.Location.Render(fmt.Sprintf("%d:%d", f.Line, f.Column)),
		)
	}
}
