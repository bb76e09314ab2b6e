package guard

import (
	"errors"
	"fmt"
)

// Do acquires handle, runs fn against it, and guarantees the release
// function runs exactly once on every exit path: normal return, an error
// from fn, or a panic inside fn (the panic is re-raised after release).
// Errors from fn and from release are both reported, joined when both
// occur.
// Implements: prd003-guarded-resource R7.
func Do[H any](handle H, release func(H) error, fn func(H) error) (err error) {
	if fn == nil {
		return ErrInvalidArgument
	}
	res, err := Acquire(handle, release)
	if err != nil {
		return err
	}

	defer func() {
		relErr := res.Release()
		if relErr != nil {
			relErr = fmt.Errorf("release: %w", relErr)
		}
		err = errors.Join(err, relErr)
	}()

	return res.With(fn)
}
