// Package langdetect identifies the code-behind language of a page.
// It uses go-enry to map file names and code snippets to languages, which
// decides whether generated field names are compared with or without case.
package langdetect

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"

	"github.com/yaklabco/aspxgen/pkg/directive"
)

// Language is a code-behind language.
type Language string

// Known code-behind languages.
const (
	Unknown     Language = ""
	CSharp      Language = "csharp"
	VisualBasic Language = "vb"
	FSharp      Language = "fsharp"
)

// classifierCandidates limits the classifier to .NET languages.
var classifierCandidates = []string{"C#", "Visual Basic .NET", "F#"}

// CaseSensitive reports whether identifiers in l are case sensitive.
// Unknown languages are treated as case sensitive.
func (l Language) CaseSensitive() bool {
	return l != VisualBasic
}

// ByName maps a language attribute value ("C#", "vb", "VisualBasic") to a Language.
func ByName(name string) Language {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "c#", "cs", "csharp":
		return CSharp
	case "vb", "vbs", "visualbasic", "vbscript", "visual basic", "visual basic .net":
		return VisualBasic
	case "f#", "fs", "fsharp":
		return FSharp
	default:
		return Unknown
	}
}

// ByFilename detects the language of a code file from its extension.
func ByFilename(filename string) Language {
	if filename == "" {
		return Unknown
	}
	// An extension may belong to several languages (.cs is also Smalltalk).
	for _, lang := range enry.GetLanguagesByExtension(filepath.Base(filename), nil, nil) {
		if l := fromEnry(lang); l != Unknown {
			return l
		}
	}
	return Unknown
}

// IsVisualBasicFile reports whether filename has the .vb extension.
func IsVisualBasicFile(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".vb")
}

// ForDirective returns the language of a page from its main directive.
// The language attribute wins, then the code file, code behind and src
// attribute extensions.
func ForDirective(d *directive.Directive) Language {
	if d == nil {
		return Unknown
	}
	if lang := ByName(d.Value(directive.AttrLanguage)); lang != Unknown {
		return lang
	}
	for _, key := range []string{directive.AttrCodeFile, directive.AttrCodeBehind, directive.AttrSrc} {
		if lang := ByFilename(d.Value(key)); lang != Unknown {
			return lang
		}
	}
	return Unknown
}

// Detect returns the language of code-behind source text.
// Returns Unknown if detection fails or confidence is low.
func Detect(content []byte) Language {
	if len(bytes.TrimSpace(content)) == 0 {
		return Unknown
	}

	if lang := detectByPattern(content); lang != Unknown {
		return lang
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return fromEnry(lang)
	}

	return Unknown
}

// detectByPattern checks for declarations that only one language uses.
func detectByPattern(content []byte) Language {
	lower := bytes.ToLower(content)

	switch {
	case bytes.Contains(lower, []byte("partial class")) && bytes.Contains(lower, []byte("end class")):
		return VisualBasic
	case bytes.Contains(lower, []byte("imports system")):
		return VisualBasic
	case bytes.Contains(content, []byte("using System")) && bytes.Contains(content, []byte("{")):
		return CSharp
	case bytes.Contains(content, []byte("partial class")) && bytes.Contains(content, []byte(";")):
		return CSharp
	case bytes.Contains(content, []byte("open System")) || bytes.Contains(content, []byte("inherit Page")):
		return FSharp
	}
	return Unknown
}

func fromEnry(lang string) Language {
	switch strings.ToLower(lang) {
	case "c#":
		return CSharp
	case "visual basic .net", "visual basic", "vb.net", "vba", "vbscript":
		return VisualBasic
	case "f#":
		return FSharp
	default:
		return Unknown
	}
}
