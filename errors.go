package solo2coco

import (
	"errors"
	"fmt"

	"github.com/aloksharma1/go-solo2coco/segment"
)

// ErrUnsupportedFormat is returned when asked to produce an output format the
// converter does not implement
var ErrUnsupportedFormat = errors.New("unsupported output format")

// SchemaError reports input metadata that does not have the expected shape
type SchemaError struct {
	// Frame is the frame file name, empty for dataset level metadata
	Frame  string
	Reason string
	Err    error
}

func (e *SchemaError) Error() string {

	msg := "schema error"

	if e.Frame != "" {
		msg += " in frame " + e.Frame
	}

	msg += ": " + e.Reason

	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// ImageDecodeError reports an image that could not be read or has no pixels
type ImageDecodeError struct {
	Frame string
	Path  string
	Err   error
}

func (e *ImageDecodeError) Error() string {
	return fmt.Sprintf("image decode error in frame %s for %s: %v", e.Frame, e.Path, e.Err)
}

func (e *ImageDecodeError) Unwrap() error {
	return e.Err
}

// AmbiguousLabelError reports two different labels sharing one segmentation
// colour in the same frame
type AmbiguousLabelError struct {
	Frame  string
	Labels [2]string
	Pixel  segment.Pixel
}

func (e *AmbiguousLabelError) Error() string {
	return fmt.Sprintf("ambiguous labels in frame %s: %q and %q share pixel value %s",
		e.Frame, e.Labels[0], e.Labels[1], e.Pixel)
}

// schemaErrorf builds a SchemaError for the given frame
func schemaErrorf(frame string, format string, a ...interface{}) *SchemaError {
	return &SchemaError{
		Frame:  frame,
		Reason: fmt.Sprintf(format, a...),
	}
}
