package macperm

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/tmc/macperm/sysprefs"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"accessibility", Accessibility, false},
		{"AX", Accessibility, false},
		{"screen-capture", ScreenCapture, false},
		{"screen_recording", ScreenCapture, false},
		{" ScreenCapture ", ScreenCapture, false},
		{"full-disk", FullDisk, false},
		{"FDA", FullDisk, false},
		{"full_disk_access", FullDisk, false},
		{"camera", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownKind) {
					t.Errorf("ParseKind(%q) error = %v, want ErrUnknownKind", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseKind(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseKind(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestKindMetadata(t *testing.T) {
	tests := []struct {
		kind    Kind
		name    string
		service string
		reset   string
		pane    sysprefs.Pane
	}{
		{Accessibility, "accessibility", "kTCCServiceAccessibility", "Accessibility", sysprefs.Accessibility},
		{ScreenCapture, "screen-capture", "kTCCServiceScreenCapture", "ScreenCapture", sysprefs.ScreenRecording},
		{FullDisk, "full-disk", "kTCCServiceSystemPolicyAllFiles", "SystemPolicyAllFiles", sysprefs.FullDiskAccess},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
			if got := tt.kind.TCCService(); got != tt.service {
				t.Errorf("TCCService() = %q, want %q", got, tt.service)
			}
			if got := tt.kind.ResetName(); got != tt.reset {
				t.Errorf("ResetName() = %q, want %q", got, tt.reset)
			}
			if got := tt.kind.SettingsPane(); got != tt.pane {
				t.Errorf("SettingsPane() = %q, want %q", got, tt.pane)
			}
			if tt.kind.Title() == "" {
				t.Error("Title() is empty")
			}
			tip := tt.kind.Tip("Recorder")
			if strings.Count(tip, "Recorder") != 2 || strings.Contains(tip, "%!") {
				t.Errorf("Tip() = %q, want the app name twice", tip)
			}
		})
	}
}

func TestInvalidKind(t *testing.T) {
	var k Kind
	if k.Valid() {
		t.Error("zero Kind is valid")
	}
	if got := Kind(9).String(); got != "Kind(9)" {
		t.Errorf("String() = %q", got)
	}
	if got := Kind(9).Tip("x"); got != "" {
		t.Errorf("Tip() = %q, want empty", got)
	}
	if got := Kind(9).SettingsPane(); got != sysprefs.Security {
		t.Errorf("SettingsPane() = %q, want the main pane", got)
	}
	if _, err := Kind(9).MarshalText(); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("MarshalText() error = %v", err)
	}
}

func TestRequestJSON(t *testing.T) {
	in := []Request{NewRequest(ScreenCapture, "Show thumbnails.")}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	if want := `[{"kind":"screen-capture","description":"Show thumbnails."}]`; string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}

	var out []Request
	if err := json.Unmarshal([]byte(`[{"kind":"fda","description":"x"}]`), &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].Kind != FullDisk {
		t.Errorf("Unmarshal = %+v", out)
	}
	if err := json.Unmarshal([]byte(`[{"kind":"camera"}]`), &out); err == nil {
		t.Error("Unmarshal accepted an unknown kind")
	}
}
