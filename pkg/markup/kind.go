// Package markup scans ASP.NET Web Forms markup into lexical elements and
// reconciles them into a document tree.
//
// Offsets are kept in a Tracker: spans hold handles into its position
// arena, so text inserted through Element.AddAttribute moves every span
// after the insertion point. Tag matching follows the browser-forgiving
// policy of the ASP.NET page parser: an end tag closes the nearest open tag
// with the same name and leaves the tags in between unclosed.
package markup

// Kind classifies a lexical element.
type Kind uint8

// Element kinds in scanner priority order.
const (
	KindDocument Kind = iota
	KindText
	KindDirective
	KindInclude
	KindComment
	KindCodeExpression
	KindDataBinding
	KindCode
	KindTag
	KindEndTag
)

var kindNames = [...]string{
	KindDocument:       "Document",
	KindText:           "Text",
	KindDirective:      "Directive",
	KindInclude:        "Include",
	KindComment:        "Comment",
	KindCodeExpression: "CodeExpression",
	KindDataBinding:    "DataBinding",
	KindCode:           "Code",
	KindTag:            "Tag",
	KindEndTag:         "EndTag",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}
