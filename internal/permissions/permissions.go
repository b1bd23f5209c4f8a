// Package permissions manages the OS capability permissions the recorder
// needs: microphone access and system-audio capture. Grant state is never
// cached; every check re-probes the OS, so consecutive checks may disagree
// if the user changes settings in between.
package permissions

// Capability identifies an OS permission the app may need.
type Capability string

const (
	Microphone         Capability = "microphone"
	SystemAudioCapture Capability = "system-audio-capture"
)

// Provider answers permission queries and raises consent requests for one
// platform. Check must not show any dialog; Request is the mutating call
// that surfaces the OS consent UI.
type Provider interface {
	Check(Capability) bool
	Request(Capability) error
}

// Manager composes a Provider into the check/request/ensure lifecycle.
type Manager struct {
	provider Provider
}

// NewManager returns a Manager backed by the given provider.
func NewManager(p Provider) *Manager {
	return &Manager{provider: p}
}

// Default is the process-wide manager backed by the platform provider.
var Default = NewManager(newPlatformProvider())

// Check reports whether the capability is currently granted.
func (m *Manager) Check(c Capability) bool {
	return m.provider.Check(c)
}

// Request asks the OS to surface its consent UI for the capability.
func (m *Manager) Request(c Capability) error {
	return m.provider.Request(c)
}

// Check reports whether the capability is granted, via the default manager.
func Check(c Capability) bool { return Default.Check(c) }

// Request raises the OS consent flow, via the default manager.
func Request(c Capability) error { return Default.Request(c) }

// Ensure checks and requests once if needed, via the default manager.
func Ensure(c Capability) bool { return Default.Ensure(c) }
