package solo2coco

import (
	"fmt"
	"strings"
)

// Format selects the COCO variant the converter produces
type Format int

const (
	// FormatSegmentation produces boxes with instance segmentation polygons
	FormatSegmentation Format = iota
	// FormatBBox produces boxes only, the segmentation images are not read
	FormatBBox
	// FormatKeypoint is the COCO keypoint variant, which is not implemented
	FormatKeypoint
)

// Formats lists the names accepted by ParseFormat
var Formats = []string{"segmentation", "bbox", "keypoint"}

// String returns the format name
func (f Format) String() string {

	switch f {
	case FormatSegmentation:
		return "segmentation"
	case FormatBBox:
		return "bbox"
	case FormatKeypoint:
		return "keypoint"
	}

	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat returns the Format with the given name
func ParseFormat(s string) (Format, error) {

	switch strings.ToLower(strings.TrimSpace(s)) {
	case "segmentation", "seg":
		return FormatSegmentation, nil
	case "bbox", "box":
		return FormatBBox, nil
	case "keypoint", "keypoints":
		return FormatKeypoint, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// MarshalText implements encoding.TextMarshaler so a Format reads naturally in
// JSON config files
func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (f *Format) UnmarshalText(text []byte) error {

	v, err := ParseFormat(string(text))

	if err != nil {
		return err
	}

	*f = v

	return nil
}

// MergeStrategy selects how segmentation polygons are attached to boxes
type MergeStrategy int

const (
	// MergeBroadcast gives every box of a category all polygons traced for
	// that category in the frame
	MergeBroadcast MergeStrategy = iota
	// MergeContainment gives a box only the polygons of its category whose
	// bounds lie inside the box, grown by a tolerance
	MergeContainment
)

// MergeStrategies lists the names accepted by ParseMergeStrategy
var MergeStrategies = []string{"broadcast", "containment"}

// String returns the strategy name
func (m MergeStrategy) String() string {

	switch m {
	case MergeBroadcast:
		return "broadcast"
	case MergeContainment:
		return "containment"
	}

	return fmt.Sprintf("MergeStrategy(%d)", int(m))
}

// ParseMergeStrategy returns the MergeStrategy with the given name
func ParseMergeStrategy(s string) (MergeStrategy, error) {

	switch strings.ToLower(strings.TrimSpace(s)) {
	case "broadcast":
		return MergeBroadcast, nil
	case "containment":
		return MergeContainment, nil
	}

	return 0, fmt.Errorf("unknown merge strategy %q", s)
}

// MarshalText implements encoding.TextMarshaler
func (m MergeStrategy) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (m *MergeStrategy) UnmarshalText(text []byte) error {

	v, err := ParseMergeStrategy(string(text))

	if err != nil {
		return err
	}

	*m = v

	return nil
}
