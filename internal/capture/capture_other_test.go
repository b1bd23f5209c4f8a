//go:build !darwin

package capture

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSystemAudioEngineUnsupported(t *testing.T) {
	_, err := NewSystemAudioEngine()
	require.ErrorIs(t, err, ErrNotSupported)
}

func TestOpenDefaultInputStreamNoop(t *testing.T) {
	require.NoError(t, OpenDefaultInputStream())
}
