package permissions

import "github.com/yunseo/TapNote/internal/logger"

// Ensure makes a best effort to end up with the capability granted,
// requesting the OS consent flow at most once. When the capability is
// already granted it returns immediately with no further side effects.
//
// The two capabilities finalize differently after a successful request:
// the microphone can be granted synchronously within the same call on some
// OS versions, so its fresh check result is returned; system audio capture
// requires the user to act in System Settings and restart the app, so this
// call always reports not-granted for it even when the request succeeded.
func (m *Manager) Ensure(c Capability) bool {
	if m.Check(c) {
		return true
	}

	logger.Info("permission not granted, requesting", "capability", string(c))
	if err := m.Request(c); err != nil {
		// Permission flows are best-effort; never fatal.
		logger.Error("permission request failed", "capability", string(c), "error", err)
		return false
	}

	switch c {
	case Microphone:
		granted := m.Check(c)
		if !granted {
			logger.Warn("microphone permission still not granted after request")
		}
		return granted
	default:
		return false
	}
}
