package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/aspxgen/pkg/directive"
	"github.com/yaklabco/aspxgen/pkg/langdetect"
)

func TestByName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		expected langdetect.Language
	}{
		{"C#", langdetect.CSharp},
		{" csharp ", langdetect.CSharp},
		{"VB", langdetect.VisualBasic},
		{"VisualBasic", langdetect.VisualBasic},
		{"F#", langdetect.FSharp},
		{"", langdetect.Unknown},
		{"cobol", langdetect.Unknown},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.expected, langdetect.ByName(testCase.name))
		})
	}
}

func TestByFilename(t *testing.T) {
	t.Parallel()

	assert.Equal(t, langdetect.CSharp, langdetect.ByFilename("Default.aspx.cs"))
	assert.Equal(t, langdetect.VisualBasic, langdetect.ByFilename("pages/Default.aspx.vb"))
	assert.Equal(t, langdetect.Unknown, langdetect.ByFilename(""))
	assert.Equal(t, langdetect.Unknown, langdetect.ByFilename("Default.aspx"))
}

func TestIsVisualBasicFile(t *testing.T) {
	t.Parallel()

	assert.True(t, langdetect.IsVisualBasicFile("Menu.ascx.VB"))
	assert.False(t, langdetect.IsVisualBasicFile("Menu.ascx.cs"))
	assert.False(t, langdetect.IsVisualBasicFile("vb"))
}

func TestForDirective(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		attrs    map[string]string
		expected langdetect.Language
	}{
		{"language attribute wins", map[string]string{"Language": "VB", "CodeFile": "a.aspx.cs"}, langdetect.VisualBasic},
		{"code file", map[string]string{"CodeFile": "a.aspx.cs"}, langdetect.CSharp},
		{"code behind", map[string]string{"CodeBehind": "a.aspx.vb"}, langdetect.VisualBasic},
		{"nothing", map[string]string{"Inherits": "A.B"}, langdetect.Unknown},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			d := directive.New(directive.NamePage, testCase.attrs)
			assert.Equal(t, testCase.expected, langdetect.ForDirective(d))
		})
	}

	assert.Equal(t, langdetect.Unknown, langdetect.ForDirective(nil))
}

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected langdetect.Language
	}{
		{
			name:     "csharp code behind",
			content:  "using System;\n\nnamespace Site\n{\n    public partial class Default : System.Web.UI.Page\n    {\n    }\n}",
			expected: langdetect.CSharp,
		},
		{
			name:     "vb code behind",
			content:  "Imports System\n\nPartial Class _Default\n    Inherits System.Web.UI.Page\nEnd Class",
			expected: langdetect.VisualBasic,
		},
		{
			name:     "empty",
			content:  "   ",
			expected: langdetect.Unknown,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.expected, langdetect.Detect([]byte(testCase.content)))
		})
	}
}

func TestCaseSensitive(t *testing.T) {
	t.Parallel()

	assert.True(t, langdetect.CSharp.CaseSensitive())
	assert.True(t, langdetect.Unknown.CaseSensitive())
	assert.False(t, langdetect.VisualBasic.CaseSensitive())
}
