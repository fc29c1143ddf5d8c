package docbuild

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCargoVersion(t *testing.T) {
	cases := []struct {
		name   string
		output string
		want   string
	}{
		{"release", "cargo 1.80.1 (376290fb7 2024-07-16)\n", "1.80.1"},
		{"nightly", "cargo 1.82.0-nightly (eaee77dc1 2024-08-07)\n", "1.82.0"},
		{"bare", "1.75.0", "1.75.0"},
		{"garbage", "not a version at all", ""},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, parseCargoVersion(tc.output))
		})
	}
}

func TestDetectCargoVersionMissingBinary(t *testing.T) {
	// A binary that cannot exist on PATH must yield "" without error.
	got := DetectCargoVersion(context.Background(), "doclaunch-no-such-cargo-xyz")
	assert.Equal(t, "", got)
}
