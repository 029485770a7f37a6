package macperm

import (
	"errors"
	"os"
	"slices"
	"strings"
	"testing"

	"github.com/tmc/macperm/internal/system"
)

func TestEvaluate(t *testing.T) {
	o := OracleFunc(func(k Kind) bool { return k == ScreenCapture })
	statuses := Evaluate(o, allRequests())

	if len(statuses) != 3 {
		t.Fatalf("got %d statuses, want 3", len(statuses))
	}
	for i, s := range statuses {
		if s.Request != allRequests()[i] {
			t.Errorf("statuses[%d].Request = %+v, out of order", i, s.Request)
		}
	}
	if AllGranted(statuses) {
		t.Error("AllGranted() = true with two missing")
	}
	if got := Missing(statuses); !slices.Equal(got, []Kind{Accessibility, FullDisk}) {
		t.Errorf("Missing() = %v", got)
	}
}

func TestAllGrantedEmpty(t *testing.T) {
	if !AllGranted(nil) {
		t.Error("AllGranted(nil) = false")
	}
	if got := Missing(nil); got != nil {
		t.Errorf("Missing(nil) = %v", got)
	}
}

func TestFullDiskProbes(t *testing.T) {
	probes := FullDiskProbes("/Users/alice")
	want := []string{
		"/Users/alice/Library/Safari/CloudTabs.db",
		"/Users/alice/Library/Safari/Bookmarks.plist",
		"/Library/Application Support/com.apple.TCC/TCC.db",
		"/Library/Preferences/com.apple.TimeMachine.plist",
	}
	if !slices.Equal(probes, want) {
		t.Errorf("FullDiskProbes() = %v, want %v", probes, want)
	}

	// The shared list must not be aliased by callers.
	probes[2] = "changed"
	if got := FullDiskProbes("/x")[2]; got != want[2] {
		t.Errorf("shared probe changed to %q", got)
	}
}

func TestResolveHome(t *testing.T) {
	t.Setenv(system.EnvSandboxContainer, "")
	t.Setenv("HOME", "/tmp/fake-home")
	home, err := resolveHome()
	if err != nil {
		t.Fatal(err)
	}
	if home != "/tmp/fake-home" {
		t.Errorf("resolveHome() = %q, want $HOME outside the sandbox", home)
	}

	t.Setenv(system.EnvSandboxContainer, "com.example.sandboxed")
	home, err = resolveHome()
	if err != nil {
		t.Skipf("no password database entry for this user: %v", err)
	}
	if home == "/tmp/fake-home" {
		t.Error("sandboxed resolveHome() used $HOME")
	}
}

func TestNewSystemOracleHomeError(t *testing.T) {
	t.Setenv(system.EnvSandboxContainer, "")
	t.Setenv("HOME", "")
	if _, err := os.UserHomeDir(); err == nil {
		t.Skip("home directory still resolvable on this platform")
	}
	_, err := NewSystemOracle()
	var e *Error
	if !errors.As(err, &e) || e.Op != "resolve home directory" || e.Help == "" {
		t.Errorf("NewSystemOracle() error = %v, want *Error with help", err)
	}
	if !strings.Contains(err.Error(), "hint:") {
		t.Errorf("error %q missing hint", err)
	}
}
