/*
Package solo reads datasets exported in the Unity Perception SOLO format.

A SOLO dataset holds a global annotation_definitions.json describing the label
catalogue and one directory per capture sequence (sequence.0, sequence.1, ...)
containing a stepN.frame_data.json metadata file per frame next to the RGB
capture and semantic segmentation images it references.

The types here mirror the JSON closely.  Fields that must be present are
pointers or slices so a missing key can be told apart from an empty value.
*/
package solo

import (
	"encoding/json"
)

const (
	// DefinitionsFile is the name of the label catalogue in the dataset root
	DefinitionsFile = "annotation_definitions.json"
	// DefaultSequence is the directory of the first capture sequence
	DefaultSequence = "sequence.0"
)

// LabelSpec is a single label of an annotation definition
type LabelSpec struct {
	LabelID   *int64  `json:"label_id"`
	LabelName *string `json:"label_name"`
}

// AnnotationDefinition describes one annotator of the dataset
type AnnotationDefinition struct {
	Type        string      `json:"@type"`
	ID          string      `json:"id"`
	Description string      `json:"description"`
	Spec        []LabelSpec `json:"spec"`
}

// Definitions is the content of annotation_definitions.json
type Definitions struct {
	AnnotationDefinitions []AnnotationDefinition `json:"annotationDefinitions"`
}

// Frame is the content of a stepN.frame_data.json file
type Frame struct {
	Frame    int       `json:"frame"`
	Sequence int       `json:"sequence"`
	Step     int       `json:"step"`
	Captures []Capture `json:"captures"`
}

// Capture is the sensor output of one frame.  Annotations are kept raw as
// each annotator writes its own shape.
type Capture struct {
	ID          string            `json:"id"`
	Description string            `json:"description"`
	Filename    *string           `json:"filename"`
	ImageFormat string            `json:"imageFormat"`
	Dimension   []float64         `json:"dimension"`
	Annotations []json.RawMessage `json:"annotations"`
}

// BoundingBox is one instance of a 2D bounding box annotation
type BoundingBox struct {
	InstanceID *int64    `json:"instanceId"`
	LabelID    *int64    `json:"labelId"`
	LabelName  string    `json:"labelName"`
	Origin     []float64 `json:"origin"`
	Dimension  []float64 `json:"dimension"`
}

// BoundingBoxAnnotation is the first annotation of a capture
type BoundingBoxAnnotation struct {
	Type   string         `json:"@type"`
	ID     string         `json:"id"`
	Values *[]BoundingBox `json:"values"`
}

// SegmentationInstance maps a label to its colour in the segmentation image.
// PixelValue is [r, g, b] or [r, g, b, a].
type SegmentationInstance struct {
	LabelID    *int64  `json:"labelId"`
	LabelName  *string `json:"labelName"`
	PixelValue []int   `json:"pixelValue"`
}

// SegmentationAnnotation is the second annotation of a capture
type SegmentationAnnotation struct {
	Type        string                  `json:"@type"`
	ID          string                  `json:"id"`
	Filename    *string                 `json:"filename"`
	ImageFormat string                  `json:"imageFormat"`
	Dimension   []float64               `json:"dimension"`
	Instances   *[]SegmentationInstance `json:"instances"`
}
