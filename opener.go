package macperm

import (
	"fmt"

	"github.com/pkg/browser"
)

// Opener takes the user to the place where a permission can be granted.
type Opener interface {
	// OpenSettings opens the System Settings pane for k, first asking the
	// system to list the process there when it can.
	OpenSettings(k Kind) error
	// OpenURL opens link in the default browser.
	OpenURL(link string) error
}

// SystemOpener opens System Settings and the default browser.
type SystemOpener struct{}

// OpenSettings implements Opener.
func (SystemOpener) OpenSettings(k Kind) error {
	if !k.Valid() {
		return fmt.Errorf("open settings: %w: %d", ErrUnknownKind, int(k))
	}
	if err := openSettings(k); err != nil {
		return &Error{
			Op:   "open settings for " + k.String(),
			Err:  err,
			Help: "open System Settings > Privacy & Security manually",
		}
	}
	return nil
}

// OpenURL implements Opener.
func (SystemOpener) OpenURL(link string) error {
	if err := browser.OpenURL(link); err != nil {
		return fmt.Errorf("open %s: %w", link, err)
	}
	return nil
}
