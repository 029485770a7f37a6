package macperm

import "github.com/tmc/macperm/sysprefs"

func openSettings(k Kind) error {
	requestAccess(k)
	return sysprefs.Open(k.SettingsPane())
}

// requestAccess makes the system list the process in the pane for k.
func requestAccess(k Kind) {
	loadNative()
	switch k {
	case Accessibility:
		// A synthetic event from an untrusted process adds it to the
		// Accessibility list, unchecked.
		postMouseUp()
	case ScreenCapture:
		if cgRequestScreenCaptureAccess != nil {
			cgRequestScreenCaptureAccess()
		}
	}
}

func postMouseUp() {
	if cgEventCreate == nil || cgEventGetLocation == nil || cgEventCreateMouseEvent == nil ||
		cgEventPost == nil || cfRelease == nil {
		return
	}
	current := cgEventCreate(0)
	if current == 0 {
		return
	}
	pos := cgEventGetLocation(current)
	cfRelease(current)

	up := cgEventCreateMouseEvent(0, cgEventLeftMouseUp, pos, cgMouseButtonLeft)
	if up == 0 {
		return
	}
	cgEventPost(cgHIDEventTap, up)
	cfRelease(up)
	debugLog("posted mouse-up", "x", pos.X, "y", pos.Y)
}
