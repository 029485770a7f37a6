//go:build !darwin

package macperm

import "context"

func showAlert(ctx context.Context, title, message string) (bool, error) {
	return false, ErrUnsupported
}
