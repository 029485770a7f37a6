package macperm

func accessibilityTrusted() bool {
	loadNative()
	if axIsProcessTrusted == nil {
		return false
	}
	return axIsProcessTrusted()
}

// screenCaptureAllowed reports granted on releases without
// CGPreflightScreenCaptureAccess; those predate the permission.
func screenCaptureAllowed() bool {
	loadNative()
	if cgPreflightScreenCaptureAccess == nil {
		return true
	}
	return cgPreflightScreenCaptureAccess()
}

func fullDiskAllowed(probes []string) bool {
	return canOpenAny(probes)
}
