package macperm

import (
	"sync"

	"github.com/ebitengine/purego"
)

const (
	applicationServicesPath = "/System/Library/Frameworks/ApplicationServices.framework/ApplicationServices"
	coreGraphicsPath        = "/System/Library/Frameworks/CoreGraphics.framework/CoreGraphics"
	coreFoundationPath      = "/System/Library/Frameworks/CoreFoundation.framework/CoreFoundation"
)

// CGEventType, CGEventTapLocation and CGMouseButton values.
const (
	cgEventLeftMouseUp = 2
	cgHIDEventTap      = 0
	cgMouseButtonLeft  = 0
)

type cgPoint struct {
	X, Y float64
}

var (
	loadNativeOnce sync.Once

	axIsProcessTrusted             func() bool
	cgPreflightScreenCaptureAccess func() bool
	cgRequestScreenCaptureAccess   func() bool
	cgEventCreate                  func(source uintptr) uintptr
	cgEventGetLocation             func(event uintptr) cgPoint
	cgEventCreateMouseEvent        func(source uintptr, mouseType uint32, pos cgPoint, button uint32) uintptr
	cgEventPost                    func(tap uint32, event uintptr)
	cfRelease                      func(ref uintptr)
)

// loadNative binds the framework functions used by the oracle and opener.
// Symbols missing from older releases stay nil.
func loadNative() {
	loadNativeOnce.Do(func() {
		if lib, err := purego.Dlopen(applicationServicesPath, purego.RTLD_LAZY|purego.RTLD_GLOBAL); err == nil {
			bind(lib, &axIsProcessTrusted, "AXIsProcessTrusted")
		} else {
			debugLog("dlopen ApplicationServices", "err", err)
		}

		if lib, err := purego.Dlopen(coreGraphicsPath, purego.RTLD_LAZY|purego.RTLD_GLOBAL); err == nil {
			bind(lib, &cgPreflightScreenCaptureAccess, "CGPreflightScreenCaptureAccess")
			bind(lib, &cgRequestScreenCaptureAccess, "CGRequestScreenCaptureAccess")
			bind(lib, &cgEventCreate, "CGEventCreate")
			bind(lib, &cgEventGetLocation, "CGEventGetLocation")
			bind(lib, &cgEventCreateMouseEvent, "CGEventCreateMouseEvent")
			bind(lib, &cgEventPost, "CGEventPost")
		} else {
			debugLog("dlopen CoreGraphics", "err", err)
		}

		if lib, err := purego.Dlopen(coreFoundationPath, purego.RTLD_LAZY|purego.RTLD_GLOBAL); err == nil {
			bind(lib, &cfRelease, "CFRelease")
		} else {
			debugLog("dlopen CoreFoundation", "err", err)
		}
	})
}

func bind(lib uintptr, fptr any, sym string) {
	if _, err := purego.Dlsym(lib, sym); err != nil {
		debugLog("symbol unavailable", "symbol", sym)
		return
	}
	purego.RegisterLibFunc(fptr, lib, sym)
}
