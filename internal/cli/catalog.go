package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/aspxgen/internal/logging"
	"github.com/yaklabco/aspxgen/pkg/config"
	"github.com/yaklabco/aspxgen/pkg/typeinfo"
)

// catalogEntry is one type in JSON catalog output.
type catalogEntry struct {
	Name       string   `json:"name"`
	Assembly   string   `json:"assembly,omitempty"`
	Base       string   `json:"base,omitempty"`
	Template   bool     `json:"template,omitempty"`
	Collection bool     `json:"collection,omitempty"`
	Properties []string `json:"properties,omitempty"`
}

type catalogFlags struct {
	format    string
	namespace string
	controls  bool
}

func newCatalogCommand() *cobra.Command {
	flags := &catalogFlags{}

	cmd := &cobra.Command{
		Use:     "catalog [catalog files...]",
		GroupID: groupProject,
		Short:   "List control types known to the type catalog",
		Long: `List the types of the built-in catalog merged with the configured
catalogs and any catalog files given as arguments. Later catalogs override
types of the same name.`,
		Example: `  aspxgen catalog                              # Built-in and configured types
  aspxgen catalog --controls                   # Only server controls
  aspxgen catalog --namespace Shop.Controls    # Only one namespace
  aspxgen catalog types.yaml --format json     # Include an extra catalog`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalog(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", formatText, "output format: text, json")
	cmd.Flags().StringVar(&flags.namespace, "namespace", "", "only list types in this namespace")
	cmd.Flags().BoolVar(&flags.controls, "controls", false, "only list types deriving from System.Web.UI.Control")

	return cmd
}

func runCatalog(cmd *cobra.Command, args []string, flags *catalogFlags) error {
	if flags.format != formatText && flags.format != formatJSON {
		return fmt.Errorf("invalid format %q: must be text or json", flags.format)
	}

	s, err := loadSession(cmd, &config.Config{Catalogs: args})
	if err != nil {
		return err
	}

	catalog, err := typeinfo.Load(s.cfg.Catalogs...)
	if err != nil {
		return fmt.Errorf("load catalogs: %w", err)
	}

	types := filterTypes(catalog, flags)

	if flags.format == formatJSON {
		return writeCatalogJSON(cmd.OutOrStdout(), types)
	}

	logger := logging.NewInteractive(cmd.OutOrStdout())
	for _, t := range types {
		logger.Info(t.Name,
			logging.FieldBase, t.Base,
			logging.FieldAssembly, t.Assembly,
			logging.FieldProperties, len(t.Properties),
		)
	}
	logger.Info(fmt.Sprintf("%d types", len(types)))
	return nil
}

func filterTypes(catalog *typeinfo.Catalog, flags *catalogFlags) []*typeinfo.Type {
	all := catalog.Types()
	out := make([]*typeinfo.Type, 0, len(all))
	for _, t := range all {
		if flags.namespace != "" && !strings.EqualFold(t.Namespace(), flags.namespace) {
			continue
		}
		if flags.controls && !typeinfo.AssignableTo(catalog, t, typeinfo.TypeControl) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func writeCatalogJSON(w io.Writer, types []*typeinfo.Type) error {
	entries := make([]catalogEntry, 0, len(types))
	for _, t := range types {
		entry := catalogEntry{
			Name:       t.Name,
			Assembly:   t.Assembly,
			Base:       t.Base,
			Template:   t.Template,
			Collection: t.Collection,
		}
		for _, p := range t.Properties {
			entry.Properties = append(entry.Properties, p.Name)
		}
		entries = append(entries, entry)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	return nil
}
