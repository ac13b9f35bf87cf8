package markup_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/aspxgen/pkg/markup"
)

func TestTracker_CreateSpan(t *testing.T) {
	t.Parallel()

	tr := markup.NewTracker("hello world")
	span := tr.CreateSpan(6, 5)

	assert.Equal(t, 6, span.Start())
	assert.Equal(t, 10, span.End())
	assert.Equal(t, 5, span.Len())
	assert.Equal(t, "world", span.Text())
}

func TestTracker_InsertShiftsLaterPositions(t *testing.T) {
	t.Parallel()

	tr := markup.NewTracker("abc def")
	before := tr.CreateSpan(0, 3)
	after := tr.CreateSpan(4, 3)

	inserted, ok := tr.Insert(4, "XY ")
	require.True(t, ok)

	assert.Equal(t, "abc XY def", tr.Text())
	assert.Equal(t, "abc", before.Text())
	assert.Equal(t, "def", after.Text())
	assert.Equal(t, "XY ", inserted.Text())
	assert.Equal(t, 7, after.Start())
}

func TestTracker_InsertAtSpanStartShiftsSpan(t *testing.T) {
	t.Parallel()

	tr := markup.NewTracker("xyz")
	span := tr.CreateSpan(0, 3)

	_, ok := tr.Insert(0, ">>")
	require.True(t, ok)

	assert.Equal(t, 2, span.Start())
	assert.Equal(t, "xyz", span.Text())
}

func TestTracker_InsertNoop(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		ins  string
	}{
		{"empty buffer", "", "abc"},
		{"empty text", "abc", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tr := markup.NewTracker(tt.text)
			span, ok := tr.Insert(0, tt.ins)

			assert.False(t, ok)
			assert.True(t, span.IsZero())
			assert.Equal(t, tt.text, tr.Text())
		})
	}
}

func TestTracker_InsertOutOfRange(t *testing.T) {
	t.Parallel()

	for _, pos := range []int{-1, 4, 100} {
		tr := markup.NewTracker("abc")
		span := tr.CreateSpan(1, 2)

		inserted, ok := tr.Insert(pos, "xyz")

		assert.False(t, ok, "pos %d", pos)
		assert.True(t, inserted.IsZero(), "pos %d", pos)
		assert.Equal(t, "abc", tr.Text())
		assert.Equal(t, "bc", span.Text())
	}

	tr := markup.NewTracker("abc")
	_, ok := tr.Insert(3, "d")
	require.True(t, ok)
	assert.Equal(t, "abcd", tr.Text())
}

func TestTracker_MultibyteOffsets(t *testing.T) {
	t.Parallel()

	tr := markup.NewTracker("héllo")
	span := tr.CreateSpan(1, 4)

	assert.Equal(t, "éllo", span.Text())

	start, end := span.ByteRange()
	assert.Equal(t, 1, start)
	assert.Equal(t, 6, end)
}

func TestTracker_Substring(t *testing.T) {
	t.Parallel()

	tr := markup.NewTracker("abcdef")

	assert.Equal(t, "bcd", tr.Substring(1, 3))
	assert.Equal(t, "", tr.Substring(3, 1))
	assert.Equal(t, "", tr.Substring(0, 10))
}
