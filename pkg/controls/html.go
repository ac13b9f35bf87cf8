package controls

import (
	"strings"

	"github.com/yaklabco/aspxgen/pkg/framework"
	"github.com/yaklabco/aspxgen/pkg/markup"
)

const htmlNamespace = "System.Web.UI.HtmlControls."

// HTML control type names.
const (
	TypeHTMLGenericControl      = htmlNamespace + "HtmlGenericControl"
	TypeHTMLInputGenericControl = htmlNamespace + "HtmlInputGenericControl"
	TypeHTMLTitle               = htmlNamespace + "HtmlTitle"
	TypeHTMLLink                = htmlNamespace + "HtmlLink"
	TypeHTMLMeta                = htmlNamespace + "HtmlMeta"
)

// htmlTables maps unprefixed tag names and input types to HTML control types.
// Keys are lower-case. Tables never change once built.
type htmlTables struct {
	tags         map[string]string
	inputs       map[string]string
	genericInput bool
}

func newHTMLTables(version string) htmlTables {
	tags := map[string]string{
		"a":        htmlNamespace + "HtmlAnchor",
		"button":   htmlNamespace + "HtmlButton",
		"form":     htmlNamespace + "HtmlForm",
		"head":     htmlNamespace + "HtmlHead",
		"img":      htmlNamespace + "HtmlImage",
		"textarea": htmlNamespace + "HtmlTextArea",
		"select":   htmlNamespace + "HtmlSelect",
		"table":    htmlNamespace + "HtmlTable",
		"tr":       htmlNamespace + "HtmlTableRow",
		"td":       htmlNamespace + "HtmlTableCell",
		"th":       htmlNamespace + "HtmlTableCell",
	}

	newer := framework.AtLeast(version, framework.V45)
	if newer {
		tags["audio"] = htmlNamespace + "HtmlAudio"
		tags["video"] = htmlNamespace + "HtmlVideo"
		tags["track"] = htmlNamespace + "HtmlTrack"
		tags["source"] = htmlNamespace + "HtmlSource"
		tags["iframe"] = htmlNamespace + "HtmlIframe"
		tags["embed"] = htmlNamespace + "HtmlEmbed"
		tags["area"] = htmlNamespace + "HtmlArea"
		tags["html"] = htmlNamespace + "HtmlElement"
	}

	inputs := map[string]string{
		"text":     htmlNamespace + "HtmlInputText",
		"password": htmlNamespace + "HtmlInputPassword",
		"button":   htmlNamespace + "HtmlInputButton",
		"submit":   htmlNamespace + "HtmlInputSubmit",
		"reset":    htmlNamespace + "HtmlInputReset",
		"image":    htmlNamespace + "HtmlInputImage",
		"checkbox": htmlNamespace + "HtmlInputCheckBox",
		"radio":    htmlNamespace + "HtmlInputRadioButton",
		"hidden":   htmlNamespace + "HtmlInputHidden",
		"file":     htmlNamespace + "HtmlInputFile",
	}

	return htmlTables{tags: tags, inputs: inputs, genericInput: newer}
}

// lookup returns the HTML control type for an unprefixed tag. It reports
// false for input tags of an unknown type on older frameworks.
func (t htmlTables) lookup(e *markup.Element, name string) (string, bool) {
	lname := strings.ToLower(name)

	if lname == "input" {
		inputType, ok := e.AttrValue("type")
		if !ok {
			inputType = "text"
		}
		if typeName, found := t.inputs[strings.ToLower(inputType)]; found {
			return typeName, true
		}
		if t.genericInput {
			return TypeHTMLInputGenericControl, true
		}
		return "", false
	}

	if typeName, found := t.tags[lname]; found {
		return typeName, true
	}

	if markup.ServerHead(e) {
		switch lname {
		case "title":
			return TypeHTMLTitle, true
		case "link":
			return TypeHTMLLink, true
		case "meta":
			return TypeHTMLMeta, true
		}
	}
	return TypeHTMLGenericControl, true
}

// isAutoServerTag reports whether e is a title, link or meta tag inside a
// server head. Such tags are controls without runat="server".
func isAutoServerTag(e *markup.Element) bool {
	switch e.LowerName() {
	case "title", "link", "meta":
		return markup.ServerHead(e)
	default:
		return false
	}
}
