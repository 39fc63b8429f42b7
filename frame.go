package solo2coco

import (
	"encoding/json"
	"fmt"

	"github.com/aloksharma1/go-solo2coco/coco"
	"github.com/aloksharma1/go-solo2coco/segment"
	"github.com/aloksharma1/go-solo2coco/solo"
)

const (
	// bboxAnnotation is the index of the bounding box annotation in a capture
	bboxAnnotation = 0
	// segAnnotation is the index of the semantic segmentation annotation
	segAnnotation = 1
)

// FrameAnnotations holds the records derived from one frame before ids are
// assigned
type FrameAnnotations struct {
	// Image is the frame image record, its ID is not yet set
	Image *coco.Image
	// Annotations has one record per bounding box, ids and image id not yet
	// set and an empty segmentation
	Annotations []*coco.Annotation
	// Segmentation is the segmentation image file name relative to the
	// sequence directory
	Segmentation string
	// Labels maps each label of the frame to its segmentation colour in
	// first appearance order
	Labels []segment.LabelPixel
	// Warnings are data quality notes that did not stop extraction
	Warnings []string
}

// ExtractFrame converts the metadata of a single frame into its image record,
// one annotation per bounding box and the label colour map of its
// segmentation image.  name identifies the frame in errors.
func ExtractFrame(name string, frame *solo.Frame, params ConvertParams) (*FrameAnnotations, error) {

	if frame == nil || len(frame.Captures) == 0 {
		return nil, schemaErrorf(name, "frame has no captures")
	}

	fa := &FrameAnnotations{}

	if len(frame.Captures) > 1 {
		fa.Warnings = append(fa.Warnings,
			fmt.Sprintf("frame has %d captures, only the first is converted", len(frame.Captures)))
	}

	capture := frame.Captures[0]

	if capture.Filename == nil || *capture.Filename == "" {
		return nil, schemaErrorf(name, "capture has no filename")
	}

	if len(capture.Dimension) != 2 {
		return nil, schemaErrorf(name, "capture dimension must have 2 values, got %d", len(capture.Dimension))
	}

	if len(capture.Annotations) < 2 {
		return nil, schemaErrorf(name, "capture needs a bounding box and a segmentation annotation, got %d annotations",
			len(capture.Annotations))
	}

	fa.Image = &coco.Image{
		FileName:     *capture.Filename,
		Width:        int(capture.Dimension[0]),
		Height:       int(capture.Dimension[1]),
		DateCaptured: params.DateCaptured,
		License:      params.ImageLicense,
	}

	var err error

	fa.Annotations, err = extractBoxes(name, capture.Annotations[bboxAnnotation])

	if err != nil {
		return nil, err
	}

	if err := fa.extractLabels(name, capture.Annotations[segAnnotation]); err != nil {
		return nil, err
	}

	return fa, nil
}

// extractBoxes decodes the bounding box annotation into COCO annotations
func extractBoxes(name string, raw json.RawMessage) ([]*coco.Annotation, error) {

	var ann solo.BoundingBoxAnnotation

	if err := json.Unmarshal(raw, &ann); err != nil {
		return nil, &SchemaError{Frame: name, Reason: "malformed bounding box annotation", Err: err}
	}

	if ann.Values == nil {
		return nil, schemaErrorf(name, "bounding box annotation has no values")
	}

	anns := make([]*coco.Annotation, 0, len(*ann.Values))

	for i, box := range *ann.Values {

		if box.LabelID == nil {
			return nil, schemaErrorf(name, "bounding box %d has no labelId", i)
		}

		if len(box.Origin) != 2 || len(box.Dimension) != 2 {
			return nil, schemaErrorf(name, "bounding box %d needs 2 value origin and dimension", i)
		}

		w, h := box.Dimension[0], box.Dimension[1]

		anns = append(anns, &coco.Annotation{
			CategoryID:   *box.LabelID,
			BBox:         [4]float64{box.Origin[0], box.Origin[1], w, h},
			Area:         w * h,
			Segmentation: []coco.Polygon{},
			IsCrowd:      0,
		})
	}

	return anns, nil
}

// extractLabels decodes the segmentation annotation into the segmentation
// image name and the label colour map.  A label listed more than once keeps
// its last colour, two labels sharing a colour is an error.
func (fa *FrameAnnotations) extractLabels(name string, raw json.RawMessage) error {

	var ann solo.SegmentationAnnotation

	if err := json.Unmarshal(raw, &ann); err != nil {
		return &SchemaError{Frame: name, Reason: "malformed segmentation annotation", Err: err}
	}

	if ann.Filename == nil || *ann.Filename == "" {
		return schemaErrorf(name, "segmentation annotation has no filename")
	}

	if ann.Instances == nil {
		return schemaErrorf(name, "segmentation annotation has no instances")
	}

	fa.Segmentation = *ann.Filename

	index := make(map[string]int)

	for i, inst := range *ann.Instances {

		if inst.LabelName == nil {
			return schemaErrorf(name, "segmentation instance %d has no labelName", i)
		}

		pixel, err := toPixel(inst.PixelValue)

		if err != nil {
			return &SchemaError{Frame: name, Reason: fmt.Sprintf("segmentation instance %d", i), Err: err}
		}

		label := *inst.LabelName

		if at, ok := index[label]; ok {
			if fa.Labels[at].Pixel != pixel {
				fa.Warnings = append(fa.Warnings, fmt.Sprintf("label %q listed with pixel values %s and %s, using %s",
					label, fa.Labels[at].Pixel, pixel, pixel))
			}

			fa.Labels[at].Pixel = pixel
			continue
		}

		index[label] = len(fa.Labels)
		fa.Labels = append(fa.Labels, segment.LabelPixel{Label: label, Pixel: pixel})
	}

	// colours must identify a single label
	owner := make(map[segment.Pixel]string)

	for _, lp := range fa.Labels {
		if other, ok := owner[lp.Pixel]; ok {
			return &AmbiguousLabelError{Frame: name, Labels: [2]string{other, lp.Label}, Pixel: lp.Pixel}
		}

		owner[lp.Pixel] = lp.Label
	}

	return nil
}

// toPixel converts a SOLO [r, g, b] or [r, g, b, a] value, alpha is ignored
func toPixel(v []int) (segment.Pixel, error) {

	if len(v) != 3 && len(v) != 4 {
		return segment.Pixel{}, fmt.Errorf("pixelValue must have 3 or 4 channels, got %d", len(v))
	}

	for _, c := range v[:3] {
		if c < 0 || c > 255 {
			return segment.Pixel{}, fmt.Errorf("pixelValue channel %d out of range", c)
		}
	}

	return segment.Pixel{R: uint8(v[0]), G: uint8(v[1]), B: uint8(v[2])}, nil
}
