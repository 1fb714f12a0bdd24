package errs

import (
	"context"
	"fmt"
)

// FromContext maps a done context to an ErrCancelled-wrapped error.
//
// The codec polls this at recursion boundaries and between decompression
// chunks. A nil return means the operation may continue.
func FromContext(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrCancelled, err)
	}

	return nil
}
