package system

import (
	"reflect"
	"testing"
)

func TestGetBool(t *testing.T) {
	tests := []struct {
		name  string
		value string
		set   bool
		want  bool
	}{
		{name: "true value 1", value: "1", set: true, want: true},
		{name: "true value true", value: "true", set: true, want: true},
		{name: "true value yes", value: "yes", set: true, want: true},
		{name: "true value on", value: "on", set: true, want: true},
		{name: "true value uppercase", value: "TRUE", set: true, want: true},
		{name: "true value padded", value: "  1 ", set: true, want: true},
		{name: "false value 0", value: "0", set: true, want: false},
		{name: "false value false", value: "false", set: true, want: false},
		{name: "false value random", value: "random", set: true, want: false},
		{name: "unset variable", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const key = "MACPERM_TEST_BOOL"
			t.Setenv(key, "")
			if tt.set {
				t.Setenv(key, tt.value)
			}
			if got := GetBool(key); got != tt.want {
				t.Errorf("GetBool(%q) with value %q = %v, want %v", key, tt.value, got, tt.want)
			}
		})
	}
}

func TestGetString(t *testing.T) {
	tests := []struct {
		name         string
		value        string
		defaultValue string
		want         string
	}{
		{name: "set value", value: "MyApp", defaultValue: "default", want: "MyApp"},
		{name: "trimmed value", value: "  MyApp  ", defaultValue: "default", want: "MyApp"},
		{name: "empty uses default", value: "", defaultValue: "default", want: "default"},
		{name: "whitespace uses default", value: "   ", defaultValue: "default", want: "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("MACPERM_TEST_STRING", tt.value)
			if got := GetString("MACPERM_TEST_STRING", tt.defaultValue); got != tt.want {
				t.Errorf("GetString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetInt(t *testing.T) {
	tests := []struct {
		name         string
		value        string
		defaultValue int
		want         int
	}{
		{name: "valid int", value: "42", defaultValue: 0, want: 42},
		{name: "negative int", value: "-1", defaultValue: 5, want: -1},
		{name: "empty uses default", value: "", defaultValue: 3, want: 3},
		{name: "invalid uses default", value: "three", defaultValue: 3, want: 3},
		{name: "float uses default", value: "1.5", defaultValue: 7, want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("MACPERM_TEST_INT", tt.value)
			if got := GetInt("MACPERM_TEST_INT", tt.defaultValue); got != tt.want {
				t.Errorf("GetInt() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGetStringSlice(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{name: "single", value: "accessibility", want: []string{"accessibility"}},
		{name: "multiple", value: "accessibility,full-disk", want: []string{"accessibility", "full-disk"}},
		{name: "spaces and empties", value: " accessibility , ,full-disk,", want: []string{"accessibility", "full-disk"}},
		{name: "empty", value: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("MACPERM_TEST_SLICE", tt.value)
			got := GetStringSlice("MACPERM_TEST_SLICE")
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("GetStringSlice() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestIsDebugEnabled(t *testing.T) {
	t.Setenv(EnvDebug, "1")
	if !IsDebugEnabled() {
		t.Error("IsDebugEnabled() = false with MACPERM_DEBUG=1")
	}
	t.Setenv(EnvDebug, "")
	if IsDebugEnabled() {
		t.Error("IsDebugEnabled() = true with MACPERM_DEBUG unset")
	}
}

func TestIsSandboxed(t *testing.T) {
	t.Setenv(EnvSandboxContainer, "com.example.app")
	if !IsSandboxed() {
		t.Error("IsSandboxed() = false with container ID set")
	}
	t.Setenv(EnvSandboxContainer, "")
	if IsSandboxed() {
		t.Error("IsSandboxed() = true without container ID")
	}
}
