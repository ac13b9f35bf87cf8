package checks

import (
	"github.com/yaklabco/aspxgen/pkg/check"
	"github.com/yaklabco/aspxgen/pkg/config"
)

// RegisterAll registers all built-in checks with registry.
func RegisterAll(registry *check.Registry) {
	registry.Register(NewParseFailureCheck())        // AX001
	registry.Register(NewUnresolvedTypeCheck())      // AX002
	registry.Register(NewUserControlFallbackCheck()) // AX003
	registry.Register(NewCaseConflictCheck())        // AX004
	registry.Register(NewDuplicateIDCheck())         // AX005
	registry.Register(NewCodeFileDirectiveCheck())   // AX006
	registry.Register(NewUnregisteredPrefixCheck())  // AX007
}

//nolint:gochecknoinits // Init is intentional for automatic check registration
func init() {
	RegisterAll(check.DefaultRegistry)
	config.DefaultCheckInfoProvider = check.DefaultRegistry.Infos
}
