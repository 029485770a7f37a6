package macperm

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strconv"

	"github.com/tmc/macperm/internal/system"
)

// Oracle answers whether the current process holds a permission.
// Implementations must not cache; the Manager decides how often to ask.
type Oracle interface {
	Granted(k Kind) bool
}

// OracleFunc adapts a function to the Oracle interface.
type OracleFunc func(k Kind) bool

// Granted calls f(k).
func (f OracleFunc) Granted(k Kind) bool { return f(k) }

// Evaluate asks o about every request, in order.
func Evaluate(o Oracle, requests []Request) []Status {
	statuses := make([]Status, len(requests))
	for i, r := range requests {
		statuses[i] = Status{Request: r, Granted: o.Granted(r.Kind)}
	}
	return statuses
}

// AllGranted reports whether every status is granted.
// An empty list counts as granted.
func AllGranted(statuses []Status) bool {
	for _, s := range statuses {
		if !s.Granted {
			return false
		}
	}
	return true
}

// Missing returns the kinds that are not granted.
func Missing(statuses []Status) []Kind {
	var missing []Kind
	for _, s := range statuses {
		if !s.Granted {
			missing = append(missing, s.Request.Kind)
		}
	}
	return missing
}

// SystemOracle queries the operating system. On platforms other than macOS
// every permission reports granted.
type SystemOracle struct {
	probes []string
}

// NewSystemOracle returns an oracle for the current process. It fails only
// when the user's home directory cannot be determined, which leaves the Full
// Disk Access probe without its per-user files.
func NewSystemOracle() (*SystemOracle, error) {
	home, err := resolveHome()
	if err != nil {
		return nil, &Error{
			Op:   "resolve home directory",
			Err:  err,
			Help: "set HOME or run as a user with a password database entry",
		}
	}
	return &SystemOracle{probes: FullDiskProbes(home)}, nil
}

// Granted implements Oracle.
func (o *SystemOracle) Granted(k Kind) bool {
	switch k {
	case Accessibility:
		return accessibilityTrusted()
	case ScreenCapture:
		return screenCaptureAllowed()
	case FullDisk:
		return fullDiskAllowed(o.probes)
	}
	return false
}

// FullDiskProbes lists files that can only be opened with Full Disk Access.
// Opening any one of them read-only proves the permission.
func FullDiskProbes(home string) []string {
	return append([]string{
		filepath.Join(home, "Library", "Safari", "CloudTabs.db"),
		filepath.Join(home, "Library", "Safari", "Bookmarks.plist"),
	}, sharedFullDiskProbes...)
}

var sharedFullDiskProbes = []string{
	"/Library/Application Support/com.apple.TCC/TCC.db",
	"/Library/Preferences/com.apple.TimeMachine.plist",
}

// resolveHome returns the real home directory. Sandboxed processes see a
// container path in $HOME, so the password database is consulted instead.
func resolveHome() (string, error) {
	if system.IsSandboxed() {
		u, err := user.LookupId(strconv.Itoa(os.Getuid()))
		if err != nil {
			return "", fmt.Errorf("look up uid %d: %w", os.Getuid(), err)
		}
		if u.HomeDir == "" {
			return "", fmt.Errorf("uid %d has no home directory", os.Getuid())
		}
		return u.HomeDir, nil
	}
	return os.UserHomeDir()
}
