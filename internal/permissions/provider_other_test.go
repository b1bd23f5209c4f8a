//go:build !darwin

package permissions

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Without the macOS capability concept every operation must succeed
// deterministically, with no device or process interaction.
func TestNoopProviderAlwaysGranted(t *testing.T) {
	m := NewManager(newPlatformProvider())

	for _, c := range []Capability{Microphone, SystemAudioCapture} {
		require.True(t, m.Check(c))
		require.NoError(t, m.Request(c))
		require.True(t, m.Ensure(c))
	}
}
