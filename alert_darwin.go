package macperm

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// showAlert runs a modal dialog through osascript. Cancel makes osascript
// exit with error -128, which is reported as a plain refusal.
func showAlert(ctx context.Context, title, message string) (bool, error) {
	out, err := exec.CommandContext(ctx, "osascript", "-e", alertScript(title, message)).CombinedOutput()
	if err != nil {
		if strings.Contains(string(out), "-128") {
			return false, nil
		}
		return false, fmt.Errorf("osascript: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return strings.Contains(string(out), "button returned:"+alertAuthorize), nil
}
