package macperm

import (
	"fmt"
	"strings"

	"github.com/tmc/macperm/sysprefs"
)

// Kind identifies one of the privacy permissions a Manager can watch.
type Kind int

// Permission kinds. The zero Kind is invalid.
const (
	Accessibility Kind = iota + 1 // System Settings > Privacy & Security > Accessibility
	ScreenCapture                 // System Settings > Privacy & Security > Screen Recording
	FullDisk                      // System Settings > Privacy & Security > Full Disk Access
)

// AllKinds returns every supported permission kind in display order.
func AllKinds() []Kind {
	return []Kind{Accessibility, ScreenCapture, FullDisk}
}

type kindInfo struct {
	name      string
	aliases   []string
	service   string // TCC.db service column
	resetName string // tccutil service argument
	pane      sysprefs.Pane
	title     string
	tip       string
}

var kinds = map[Kind]kindInfo{
	Accessibility: {
		name:      "accessibility",
		aliases:   []string{"ax"},
		service:   "kTCCServiceAccessibility",
		resetName: "Accessibility",
		pane:      sysprefs.Accessibility,
		title:     "Accessibility permission authorization",
		tip:       "%s needs Accessibility permission. Open System Settings > Privacy & Security > Accessibility and enable %[1]s.",
	},
	ScreenCapture: {
		name:      "screen-capture",
		aliases:   []string{"screencapture", "screen-recording", "screenrecording"},
		service:   "kTCCServiceScreenCapture",
		resetName: "ScreenCapture",
		pane:      sysprefs.ScreenRecording,
		title:     "Screen recording permission authorization",
		tip:       "%s needs Screen Recording permission. Open System Settings > Privacy & Security > Screen Recording and enable %[1]s.",
	},
	FullDisk: {
		name:      "full-disk",
		aliases:   []string{"fulldisk", "full-disk-access", "fda"},
		service:   "kTCCServiceSystemPolicyAllFiles",
		resetName: "SystemPolicyAllFiles",
		pane:      sysprefs.FullDiskAccess,
		title:     "Full disk access authorization",
		tip:       "%s needs Full Disk Access. Open System Settings > Privacy & Security > Full Disk Access and enable %[1]s.",
	},
}

func (k Kind) String() string {
	if info, ok := kinds[k]; ok {
		return info.name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	_, ok := kinds[k]
	return ok
}

// TCCService returns the service identifier used in the TCC database.
func (k Kind) TCCService() string { return kinds[k].service }

// ResetName returns the service name accepted by tccutil.
func (k Kind) ResetName() string { return kinds[k].resetName }

// SettingsPane returns the Privacy & Security pane for k. Unknown kinds map
// to the main Privacy & Security pane.
func (k Kind) SettingsPane() sysprefs.Pane { return kinds[k].pane }

// Title returns the panel row title for k.
func (k Kind) Title() string { return kinds[k].title }

// Tip returns the alert text for k, formatted with the application name.
func (k Kind) Tip(appName string) string {
	info, ok := kinds[k]
	if !ok {
		return ""
	}
	return fmt.Sprintf(info.tip, appName)
}

// ParseKind converts a name such as "accessibility", "screen-capture" or
// "full-disk" (and their aliases) to a Kind.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "_", "-")
	for k, info := range kinds {
		if s == info.name {
			return k, nil
		}
		for _, alias := range info.aliases {
			if s == alias {
				return k, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Request is a permission the host needs, with a sentence explaining why.
type Request struct {
	Kind        Kind   `json:"kind" yaml:"kind" toml:"kind"`
	Description string `json:"description" yaml:"description" toml:"description"`
}

// NewRequest returns a Request for kind with the given description.
func NewRequest(kind Kind, description string) Request {
	return Request{Kind: kind, Description: description}
}

// Status is the result of evaluating one Request.
type Status struct {
	Request Request `json:"request"`
	Granted bool    `json:"granted"`
}
