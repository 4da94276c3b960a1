package errs

import (
	"context"

	"github.com/slidekit-lab/slidekit/pkg/utils/errutil"
)

// Handle reports an unexpected error to Sentry and the structured logger.
// Client-caused errors should be mapped at the controller instead.
func Handle(ctx context.Context, err error) {
	errutil.Handle(ctx, err)
}
