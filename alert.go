package macperm

import (
	"context"
	"fmt"

	"github.com/tmc/macperm/internal/system"
)

// Alert button titles.
const (
	alertAuthorize = "To Authorize"
	alertCancel    = "Cancel"
)

// prompter shows a two-button alert and reports whether the user chose
// to authorize.
type prompter func(ctx context.Context, title, message string) (bool, error)

type checker struct {
	oracle  Oracle
	prompt  prompter
	opener  Opener
	appName string
}

// Check reports whether k is granted. When it is not, the user is asked
// whether to open System Settings, and the pane is opened if they agree.
// The result reflects the state before any prompt.
func Check(ctx context.Context, k Kind) bool {
	o, err := NewSystemOracle()
	if err != nil {
		debugLog("system oracle unavailable, probing shared files only", "err", err)
		o = &SystemOracle{probes: sharedFullDiskProbes}
	}
	c := checker{
		oracle:  o,
		prompt:  showAlert,
		opener:  SystemOpener{},
		appName: system.AppName(),
	}
	return c.check(ctx, k)
}

func (c checker) check(ctx context.Context, k Kind) bool {
	if c.oracle.Granted(k) {
		return true
	}
	ok, err := c.prompt(ctx, "Permission required", k.Tip(c.appName))
	if err != nil {
		debugLog("permission alert failed", "permission", k, "err", err)
		return false
	}
	if ok {
		if err := c.opener.OpenSettings(k); err != nil {
			debugLog("open settings failed", "permission", k, "err", err)
		}
	}
	return false
}

// appleScriptString quotes s as an AppleScript string literal.
func appleScriptString(s string) string {
	b := make([]byte, 0, len(s)+2)
	b = append(b, '"')
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"', '\\':
			b = append(b, '\\', s[i])
		default:
			b = append(b, s[i])
		}
	}
	return string(append(b, '"'))
}

func alertScript(title, message string) string {
	return fmt.Sprintf(`display dialog %s with title %s buttons {%s, %s} default button %s cancel button %s with icon caution`,
		appleScriptString(message), appleScriptString(title),
		appleScriptString(alertCancel), appleScriptString(alertAuthorize),
		appleScriptString(alertAuthorize), appleScriptString(alertCancel))
}
