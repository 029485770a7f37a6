//go:build !darwin

package macperm

func openSettings(k Kind) error {
	return ErrUnsupported
}
