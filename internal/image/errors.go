package imagepkg

import (
	"fmt"
	"image"

	"github.com/youruser/teeapp/internal/layout"
)

// DecodeError reports malformed or unsupported source bytes.
type DecodeError struct {
	Format Format
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %v: %v", e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError reports an output format that cannot be written.
type EncodeError struct {
	Format Format
	Err    error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode %v: %v", e.Format, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// ExtractionError reports a part whose region resolves to no pixels or outside the
// source image.
type ExtractionError struct {
	Part   layout.PartID
	Rect   image.Rectangle
	Bounds image.Rectangle
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("part %v resolves to %v, not a non-empty rect within %v", e.Part, e.Rect, e.Bounds)
}

// CompositionError reports a layer set that cannot be composed.
type CompositionError struct {
	Placement string
	Reason    string
}

func (e *CompositionError) Error() string {
	if e.Placement == "" {
		return "compose: " + e.Reason
	}
	return fmt.Sprintf("compose %s: %s", e.Placement, e.Reason)
}

// FetchError reports a failure retrieving source bytes over the network.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.URL, e.Status, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
