package fix

import (
	"fmt"
	"slices"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// contextLines is the number of unchanged lines shown around a change.
const contextLines = 3

// Diff is a unified diff of a fixed document.
type Diff struct {
	Path     string
	Original []byte
	Modified []byte
	Hunks    []DiffHunk

	// Additions and Deletions count added and removed lines.
	Additions int
	Deletions int
}

// DiffHunk is one "@@" section of a diff. Starts are 1-based line numbers.
type DiffHunk struct {
	OriginalStart int
	OriginalCount int
	ModifiedStart int
	ModifiedCount int
	Lines         []DiffLine
}

// DiffLine is a line of a hunk without its diff prefix.
type DiffLine struct {
	Kind    DiffLineKind
	Content string
}

// DiffLineKind tells context, added and removed lines apart.
type DiffLineKind int

const (
	DiffLineContext DiffLineKind = iota
	DiffLineAdd
	DiffLineRemove
)

// prefix returns the unified diff marker of the kind.
func (k DiffLineKind) prefix() byte {
	switch k {
	case DiffLineAdd:
		return '+'
	case DiffLineRemove:
		return '-'
	default:
		return ' '
	}
}

// numberedLine is a diff line with the original and modified line numbers
// it sits at.
type numberedLine struct {
	DiffLine
	original int
	modified int
}

// GenerateDiff diffs original against modified line by line. It returns nil
// when both hold the same lines.
func GenerateDiff(path string, original, modified []byte) *Diff {
	if slices.Equal(splitLines(string(original)), splitLines(string(modified))) {
		return nil
	}

	hunks := buildHunks(numberLines(string(original), string(modified)))
	if len(hunks) == 0 {
		return nil
	}

	diff := &Diff{Path: path, Original: original, Modified: modified, Hunks: hunks}
	for _, hunk := range hunks {
		for _, line := range hunk.Lines {
			switch line.Kind {
			case DiffLineAdd:
				diff.Additions++
			case DiffLineRemove:
				diff.Deletions++
			case DiffLineContext:
			}
		}
	}
	return diff
}

// GitHeader returns the "diff --git" line of the diff.
func (d *Diff) GitHeader() string {
	if d == nil {
		return ""
	}
	path := strings.TrimPrefix(d.Path, "/")
	return fmt.Sprintf("diff --git a/%s b/%s", path, path)
}

// String renders the file headers and hunks without the git header.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n+++ b/%s\n", path, path)
	for _, hunk := range d.Hunks {
		fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n",
			hunk.OriginalStart, hunk.OriginalCount, hunk.ModifiedStart, hunk.ModifiedCount)
		for _, line := range hunk.Lines {
			b.WriteByte(line.Kind.prefix())
			b.WriteString(line.Content)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// FullString renders the diff with its git header.
func (d *Diff) FullString() string {
	if !d.HasChanges() {
		return ""
	}
	return d.GitHeader() + "\n" + d.String()
}

// HasChanges reports whether the diff holds at least one hunk.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// splitLines splits text at newlines. A final newline does not start
// another line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// numberLines runs a line-mode diff and numbers every resulting line.
// Removed lines come before the lines replacing them.
func numberLines(original, modified string) []numberedLine {
	dmp := diffmatchpatch.New()
	origChars, modChars, table := dmp.DiffLinesToChars(original, modified)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(origChars, modChars, false), table)

	for i := 1; i < len(diffs); i++ {
		if diffs[i].Type == diffmatchpatch.DiffDelete && diffs[i-1].Type == diffmatchpatch.DiffInsert {
			diffs[i-1], diffs[i] = diffs[i], diffs[i-1]
		}
	}

	var lines []numberedLine
	origLine, modLine := 1, 1
	for _, d := range diffs {
		kind := DiffLineContext
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			kind = DiffLineAdd
		case diffmatchpatch.DiffDelete:
			kind = DiffLineRemove
		case diffmatchpatch.DiffEqual:
		}

		for _, text := range splitLines(d.Text) {
			lines = append(lines, numberedLine{
				DiffLine: DiffLine{Kind: kind, Content: text},
				original: origLine,
				modified: modLine,
			})
			if kind != DiffLineAdd {
				origLine++
			}
			if kind != DiffLineRemove {
				modLine++
			}
		}
	}
	return lines
}

// buildHunks groups changed lines with their context. Changes separated by
// at most twice the context share a hunk.
func buildHunks(lines []numberedLine) []DiffHunk {
	var hunks []DiffHunk

	for i := 0; i < len(lines); {
		if lines[i].Kind == DiffLineContext {
			i++
			continue
		}

		lastChange := i
		for j := i + 1; j < len(lines) && j-lastChange <= 2*contextLines+1; j++ {
			if lines[j].Kind != DiffLineContext {
				lastChange = j
			}
		}

		start := max(i-contextLines, 0)
		end := min(lastChange+1+contextLines, len(lines))

		hunk := DiffHunk{
			OriginalStart: lines[start].original,
			ModifiedStart: lines[start].modified,
		}
		for _, line := range lines[start:end] {
			hunk.Lines = append(hunk.Lines, line.DiffLine)
			if line.Kind != DiffLineAdd {
				hunk.OriginalCount++
			}
			if line.Kind != DiffLineRemove {
				hunk.ModifiedCount++
			}
		}
		hunks = append(hunks, hunk)

		i = end
	}
	return hunks
}
