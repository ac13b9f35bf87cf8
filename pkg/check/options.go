package check

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/aspxgen/pkg/config"
	"github.com/yaklabco/aspxgen/pkg/parser"
	"github.com/yaklabco/aspxgen/pkg/typeinfo"
	"github.com/yaklabco/aspxgen/pkg/vpath"
)

// ParserOptions builds parse session options from a configuration: the
// application root, a directory source, configured registrations and the
// built-in type catalog merged with the configured catalogs.
func ParserOptions(cfg *config.Config, logger *log.Logger) (parser.Options, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	root := cfg.AppRoot
	if root == "" {
		root = "."
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return parser.Options{}, fmt.Errorf("resolve app root: %w", err)
	}

	catalog, err := typeinfo.Load(cfg.Catalogs...)
	if err != nil {
		return parser.Options{}, fmt.Errorf("load catalogs: %w", err)
	}

	app := vpath.NewApp(cfg.AppVirtualPath, absRoot)
	return parser.Options{
		Version:          cfg.TargetFramework,
		App:              app,
		Source:           vpath.NewDirSource(app),
		Registrations:    cfg.RegistrationDirectives(),
		Types:            typeinfo.NewCachedResolver(catalog, typeinfo.DefaultExpiration),
		DefaultNamespace: cfg.DefaultNamespace,
		Logger:           logger,
	}, nil
}
