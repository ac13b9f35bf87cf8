package markup

import (
	"time"

	"github.com/dlclark/regexp2"
)

// Grammar of the Web Forms page parser. Every pattern is anchored with \G so a
// match must begin exactly at the scan cursor.
const (
	tagPattern = `\G<(?<tagname>[\w:\.]+)` +
		`(\s+(?<attrname>\w[-\w:]*)(` +
		`\s*=\s*"(?<attrval>[^"]*)"|` +
		`\s*=\s*'(?<attrval>[^']*)'|` +
		`\s*=\s*(?<attrval><%#.*?%>)|` +
		`\s*=\s*(?<attrval>[^\s="'/>]*)|` +
		`(?<attrval>\s*?)))*` +
		`\s*(?<empty>/)?>`

	// Grammar used for target frameworks below 4.0. Unquoted values may
	// contain quote characters and names allow a single colon.
	legacyTagPattern = `\G<(?<tagname>[\w:\.]+)` +
		`(\s+(?<attrname>[-\w]+(:[-\w]+)?)(` +
		`\s*=\s*"(?<attrval>[^"]*)"|` +
		`\s*=\s*'(?<attrval>[^']*)'|` +
		`\s*=\s*(?<attrval><%#.*?%>)|` +
		`\s*=\s*(?<attrval>[^\s=/>]*)|` +
		`(?<attrval>\s*?)))*` +
		`\s*(?<empty>/)?>`

	directivePattern = `\G<%\s*@(\s*(?<attrname>\w[\w:]*(?=\W))(` +
		`\s*(?<equal>=)\s*"(?<attrval>[^"]*)"|` +
		`\s*(?<equal>=)\s*'(?<attrval>[^']*)'|` +
		`\s*(?<equal>=)\s*(?<attrval>[^\s"'%>]*)|` +
		`(?<equal>)(?<attrval>\s*?)))*\s*?%>`

	endTagPattern     = `\G</(?<tagname>[\w:\.]+)\s*>`
	codePattern       = `\G<%(?!@)(?<code>.*?)%>`
	expressionPattern = `\G<%\s*?=(?<code>.*?)?%>`
	dataBindPattern   = `\G<%#(?<code>.*?)?%>`
	commentPattern    = `\G<%--(([^-]*)-)*?-%>`
	includePattern    = `\G<!--\s*#(?i:include)\s*(?<pathtype>[\w]+)\s*=\s*["']?(?<filename>[^\"']*?)["']?\s*-->`
	textPattern       = `\G[^<]+`
)

// grammar is the compiled pattern set. It is immutable and shared.
type grammar struct {
	tag        *regexp2.Regexp
	legacyTag  *regexp2.Regexp
	directive  *regexp2.Regexp
	endTag     *regexp2.Regexp
	code       *regexp2.Regexp
	expression *regexp2.Regexp
	dataBind   *regexp2.Regexp
	comment    *regexp2.Regexp
	include    *regexp2.Regexp
	text       *regexp2.Regexp
}

// matchTimeout bounds a single match attempt. Malformed tags can make the
// attribute grammar backtrack exponentially; a timed out match counts as no
// match, so the cursor falls back to text.
const matchTimeout = 250 * time.Millisecond

var patterns = compileGrammar()

func compileGrammar() *grammar {
	return &grammar{
		tag:        compile(tagPattern),
		legacyTag:  compile(legacyTagPattern),
		directive:  compile(directivePattern),
		endTag:     compile(endTagPattern),
		code:       compile(codePattern),
		expression: compile(expressionPattern),
		dataBind:   compile(dataBindPattern),
		comment:    compile(commentPattern),
		include:    compile(includePattern),
		text:       compile(textPattern),
	}
}

func compile(pattern string) *regexp2.Regexp {
	re := regexp2.MustCompile(pattern, regexp2.Singleline|regexp2.Multiline)
	re.MatchTimeout = matchTimeout
	return re
}

// matchAt runs re anchored at pos. A nil match means no match.
func matchAt(re *regexp2.Regexp, text []rune, pos int) *regexp2.Match {
	if pos > len(text) {
		return nil
	}
	m, err := re.FindRunesMatchStartingAt(text, pos)
	if err != nil || m == nil || m.Index != pos {
		return nil
	}
	return m
}

// captures returns the captures of a named group, or nil.
func captures(m *regexp2.Match, name string) []regexp2.Capture {
	g := m.GroupByName(name)
	if g == nil {
		return nil
	}
	return g.Captures
}
