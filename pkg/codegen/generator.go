package codegen

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	gocache "github.com/patrickmn/go-cache"

	"github.com/yaklabco/aspxgen/internal/logging"
	"github.com/yaklabco/aspxgen/pkg/parser"
)

// FailureLogEnv names the environment variable that enables the failure log
// when no path is configured.
const FailureLogEnv = "ASPXGEN_FAILURE_LOG"

// Cache lifetimes for remembered documents.
const (
	DefaultExpiration      = 30 * time.Minute
	DefaultCleanupInterval = time.Hour
)

// GeneratorOptions configures a Generator.
type GeneratorOptions struct {
	// Parser configures the parse sessions.
	Parser parser.Options

	// FailureLog is the file generation failures are appended to.
	// Empty disables the log.
	FailureLog string

	// Expiration bounds how long a generated document is remembered.
	// Defaults to DefaultExpiration.
	Expiration time.Duration

	Logger *log.Logger
}

// Generator produces declarations for documents and remembers the last
// generated content of each document.
type Generator struct {
	opts  GeneratorOptions
	cache *gocache.Cache

	// mu serializes parse sessions; a parser.Parser is single-threaded.
	mu     sync.Mutex
	parser *parser.Parser
}

// NewGenerator creates a Generator.
func NewGenerator(opts GeneratorOptions) *Generator {
	if opts.Expiration <= 0 {
		opts.Expiration = DefaultExpiration
	}
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}
	if opts.Parser.Logger == nil {
		opts.Parser.Logger = opts.Logger
	}

	return &Generator{
		opts:   opts,
		cache:  gocache.New(opts.Expiration, DefaultCleanupInterval),
		parser: parser.New(opts.Parser),
	}
}

// Generate parses the document at virtualPath and builds its declarations.
// When text is empty the document is read from the parser's source.
//
// A case conflict still returns the declarations together with the error.
// Other failures return nil declarations. Every failure is appended to the
// failure log when one is configured, including strongly typed property
// references that could not be resolved, which do not fail generation.
func (g *Generator) Generate(ctx context.Context, virtualPath, text string) (*Declarations, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	defer g.parser.EndParse()

	g.remember(virtualPath, text)

	if err := g.parser.BeginParse(ctx, virtualPath, text); err != nil {
		g.logFailure(virtualPath, text, err)
		return nil, err
	}

	result, err := g.parser.Parse(ctx)
	if err != nil {
		g.logFailure(virtualPath, text, err)
		return nil, err
	}

	for _, typeErr := range result.TypeErrors {
		g.logFailure(result.VirtualPath, text, typeErr)
	}

	decls, err := Build(result)
	if err != nil {
		g.logFailure(result.VirtualPath, text, err)
	}

	g.opts.Logger.Debug("generated declarations",
		logging.FieldVirtualPath, result.VirtualPath,
		logging.FieldControls, len(decls.Fields))

	return decls, err
}

// HasDocumentChanged reports whether content differs from what was last
// generated for path. Paths compare case-insensitively and content exactly.
// Empty paths or content always count as changed.
func (g *Generator) HasDocumentChanged(path, content string) bool {
	if path == "" || content == "" {
		return true
	}

	value, found := g.cache.Get(documentKey(path))
	if !found {
		return true
	}

	last, ok := value.(string)
	return !ok || last != content
}

// Forget drops the remembered content of path.
func (g *Generator) Forget(path string) {
	g.cache.Delete(documentKey(path))
}

func (g *Generator) remember(path, content string) {
	if path == "" || content == "" {
		return
	}
	g.cache.SetDefault(documentKey(path), content)
}

func documentKey(path string) string {
	return strings.ToLower(path)
}
