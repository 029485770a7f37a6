package macperm

import (
	"context"
	"runtime"

	"github.com/tmc/macperm/internal/system"
	"github.com/tmc/macperm/internal/tcc"
)

// Reset clears the recorded decisions for kinds, or for every kind when
// none are given, so macOS asks again. The client is the containing
// bundle's identifier, or the executable path outside a bundle.
func Reset(ctx context.Context, kinds ...Kind) error {
	if runtime.GOOS != "darwin" {
		return ErrUnsupported
	}
	client, err := system.ClientID()
	if err != nil {
		return &Error{Op: "resolve client", Err: err, Help: "set MACPERM_BUNDLE_ID"}
	}
	return resetFor(ctx, &tcc.Resetter{Logger: defaultLogger()}, client, kinds)
}

func resetFor(ctx context.Context, r *tcc.Resetter, client string, kinds []Kind) error {
	if len(kinds) == 0 {
		kinds = AllKinds()
	}
	services := make([]string, 0, len(kinds))
	for _, k := range kinds {
		if !k.Valid() {
			return &Error{Op: "reset", Err: ErrUnknownKind}
		}
		services = append(services, k.ResetName())
	}
	if err := r.Reset(ctx, client, services...); err != nil {
		return &Error{Op: "reset " + client, Err: err, Help: "run tccutil reset manually or remove the app in System Settings"}
	}
	return nil
}
