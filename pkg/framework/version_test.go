package framework_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/aspxgen/pkg/framework"
)

func TestCanonical(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"4.5", "v4.5", true},
		{"v4.0", "v4.0", true},
		{" 4.7.2 ", "v4.7.2", true},
		{"3.5", "v3.5", true},
		{"", "", false},
		{"four", "", false},
		{"4.5-beta", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, ok := framework.Canonical(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAtLeast(t *testing.T) {
	t.Parallel()

	assert.True(t, framework.AtLeast("4.5", framework.V45))
	assert.True(t, framework.AtLeast("4.7.2", framework.V45))
	assert.False(t, framework.AtLeast("4.0", framework.V45))
	assert.False(t, framework.AtLeast("3.5", framework.V40))
	assert.True(t, framework.AtLeast("4.0", framework.V40))

	// Unrecognized versions fall back to the default.
	assert.True(t, framework.AtLeast("garbage", framework.V45))
}
