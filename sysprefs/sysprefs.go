// Package sysprefs opens Privacy & Security panes in macOS System Settings.
package sysprefs

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Pane is a Privacy & Security anchor understood by System Settings.
type Pane string

// Panes for the permissions macperm watches.
const (
	Accessibility   Pane = "Privacy_Accessibility"
	ScreenRecording Pane = "Privacy_ScreenCapture"
	FullDiskAccess  Pane = "Privacy_AllFiles"

	// Security opens the Privacy & Security main pane.
	Security Pane = ""
)

const baseURL = "x-apple.systempreferences:com.apple.preference.security"

// URL returns the x-apple.systempreferences URL for the pane.
func (p Pane) URL() string {
	if p == Security {
		return baseURL
	}
	return baseURL + "?" + string(p)
}

// runOpen is replaced in tests.
var runOpen = func(url string) error {
	return exec.Command("open", url).Run()
}

// Open opens the pane in System Settings. If the anchor is not recognized by
// this macOS release the general Privacy & Security pane is opened instead.
func Open(p Pane) error {
	if runtime.GOOS != "darwin" {
		return fmt.Errorf("system settings only available on macOS")
	}
	if err := runOpen(p.URL()); err != nil {
		if p == Security {
			return fmt.Errorf("open %s: %w", p.URL(), err)
		}
		if ferr := runOpen(Security.URL()); ferr != nil {
			return fmt.Errorf("open %s: %w", p.URL(), err)
		}
	}
	return nil
}
