//go:build !darwin

package macperm

// Privacy permissions only exist on macOS; elsewhere nothing is withheld.

func accessibilityTrusted() bool { return true }

func screenCaptureAllowed() bool { return true }

func fullDiskAllowed(probes []string) bool { return true }
