package generate

import (
	"context"
	"fmt"

	"github.com/uvzlabs/launchpad/course"
)

// ContentGenerator produces course concepts and full curricula. Both
// operations are safe to re-invoke; no server-side dedup is assumed.
type ContentGenerator interface {
	GenerateConcepts(ctx context.Context, d course.Descriptor) ([]course.Concept, error)
	GenerateContent(ctx context.Context, concept course.Concept) (*course.Content, error)
}

// GenerationFailure reports a generation call that returned nothing,
// malformed data, or the wrong shape. Partial data is never forwarded.
type GenerationFailure struct {
	Op     string
	Reason string
	Err    error
}

func (f *GenerationFailure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s failed: %s: %v", f.Op, f.Reason, f.Err)
	}
	return fmt.Sprintf("%s failed: %s", f.Op, f.Reason)
}

func (f *GenerationFailure) Unwrap() error {
	return f.Err
}

func failf(op string, err error, format string, args ...interface{}) *GenerationFailure {
	return &GenerationFailure{Op: op, Reason: fmt.Sprintf(format, args...), Err: err}
}
