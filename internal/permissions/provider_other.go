//go:build !darwin

package permissions

// No capability concept outside macOS: everything reports granted and
// requests are no-ops with no device or process interaction.

type noopProvider struct{}

func newPlatformProvider() Provider { return noopProvider{} }

func (noopProvider) Check(Capability) bool { return true }

func (noopProvider) Request(Capability) error { return nil }
