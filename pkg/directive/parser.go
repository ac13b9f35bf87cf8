package directive

import "github.com/yaklabco/aspxgen/pkg/markup"

// Parser reads only the directives of a document. It is used for referenced
// pages and controls, where nothing but the main directive matters.
type Parser struct {
	scanner *markup.Scanner
}

// NewParser creates a directive parser over text.
func NewParser(text, version string) *Parser {
	return &Parser{scanner: markup.NewScanner(text, version, nil)}
}

// Next returns the next directive in the document.
func (p *Parser) Next() (*Directive, bool) {
	e, ok := p.scanner.NextOfKind(markup.KindDirective)
	if !ok {
		return nil, false
	}
	return FromElement(e), true
}

// Main returns the first main directive in the document.
func (p *Parser) Main() (*Directive, bool) {
	for {
		d, ok := p.Next()
		if !ok {
			return nil, false
		}
		if d.IsMain() {
			return d, true
		}
	}
}
