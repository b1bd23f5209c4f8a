//go:build !darwin

package capture

// Stub for platforms without system audio taps.

func newSystemAudioEngine() (Engine, error) {
	return nil, ErrNotSupported
}

// OpenDefaultInputStream is a no-op where microphone access needs no consent.
func OpenDefaultInputStream() error {
	return nil
}
