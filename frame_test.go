package solo2coco

import (
	"testing"

	"github.com/aloksharma1/go-solo2coco/coco"
	"github.com/aloksharma1/go-solo2coco/segment"
	"github.com/aloksharma1/go-solo2coco/solo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFrame(t *testing.T) {

	frame := parseFrameDoc(t, frameDoc("rgb_2.png", "segmentation_2.png", 640.9, 480.2,
		[]testBox{
			{LabelID: 1, X: 10, Y: 20, W: 30, H: 40},
			{LabelID: 2, X: 5.5, Y: 6.5, W: 2.5, H: 3},
		},
		[]testInstance{
			{Label: "car", Pixel: []int{255, 0, 0, 255}},
			{Label: "person", Pixel: []int{0, 255, 0}},
		}))

	params := DefaultConvertParams()

	fa, err := ExtractFrame("step2.frame_data.json", frame, params)
	require.NoError(t, err)

	// dimensions are truncated
	assert.Equal(t, &coco.Image{
		FileName:     "rgb_2.png",
		Width:        640,
		Height:       480,
		DateCaptured: "2024-06-08",
		License:      1,
	}, fa.Image)

	require.Len(t, fa.Annotations, 2)

	assert.Equal(t, &coco.Annotation{
		CategoryID:   1,
		BBox:         [4]float64{10, 20, 30, 40},
		Area:         1200,
		Segmentation: []coco.Polygon{},
	}, fa.Annotations[0])

	assert.Equal(t, int64(2), fa.Annotations[1].CategoryID)
	assert.Equal(t, 7.5, fa.Annotations[1].Area)

	for _, ann := range fa.Annotations {
		assert.Equal(t, ann.BBox[2]*ann.BBox[3], ann.Area)
		assert.NotNil(t, ann.Segmentation)
	}

	assert.Equal(t, "segmentation_2.png", fa.Segmentation)
	assert.Equal(t, []segment.LabelPixel{
		{Label: "car", Pixel: carPixel},
		{Label: "person", Pixel: personPixel},
	}, fa.Labels)
	assert.Empty(t, fa.Warnings)
}

func TestExtractFrameNoBoxes(t *testing.T) {

	frame := parseFrameDoc(t, frameDoc("rgb.png", "seg.png", 10, 10, nil, nil))

	fa, err := ExtractFrame("empty", frame, DefaultConvertParams())
	require.NoError(t, err)

	assert.NotNil(t, fa.Annotations)
	assert.Empty(t, fa.Annotations)
	assert.Empty(t, fa.Labels)
}

func TestExtractFrameExtraCaptures(t *testing.T) {

	doc := frameDoc("rgb.png", "seg.png", 10, 10, nil, nil)
	captures := doc["captures"].([]interface{})
	doc["captures"] = append(captures, captures[0])

	fa, err := ExtractFrame("multi", parseFrameDoc(t, doc), DefaultConvertParams())
	require.NoError(t, err)

	require.Len(t, fa.Warnings, 1)
	assert.Contains(t, fa.Warnings[0], "2 captures")
}

func TestExtractFrameDuplicateLabel(t *testing.T) {

	frame := parseFrameDoc(t, frameDoc("rgb.png", "seg.png", 10, 10, nil,
		[]testInstance{
			{Label: "car", Pixel: []int{1, 2, 3}},
			{Label: "person", Pixel: []int{0, 255, 0}},
			{Label: "car", Pixel: []int{255, 0, 0}},
		}))

	fa, err := ExtractFrame("dup", frame, DefaultConvertParams())
	require.NoError(t, err)

	// the last colour wins, first appearance order is kept
	assert.Equal(t, []segment.LabelPixel{
		{Label: "car", Pixel: carPixel},
		{Label: "person", Pixel: personPixel},
	}, fa.Labels)
	require.Len(t, fa.Warnings, 1)
	assert.Contains(t, fa.Warnings[0], `"car"`)
}

func TestExtractFrameAmbiguousLabels(t *testing.T) {

	frame := parseFrameDoc(t, frameDoc("rgb.png", "seg.png", 10, 10, nil,
		[]testInstance{
			{Label: "car", Pixel: []int{255, 0, 0, 255}},
			{Label: "truck", Pixel: []int{255, 0, 0, 0}},
		}))

	_, err := ExtractFrame("step7.frame_data.json", frame, DefaultConvertParams())

	var ambErr *AmbiguousLabelError
	require.ErrorAs(t, err, &ambErr)
	assert.Equal(t, "step7.frame_data.json", ambErr.Frame)
	assert.Equal(t, [2]string{"car", "truck"}, ambErr.Labels)
	assert.Equal(t, carPixel, ambErr.Pixel)
	assert.Contains(t, err.Error(), "[255 0 0]")
}

func TestExtractFrameSchemaErrors(t *testing.T) {

	tests := []struct {
		name string
		doc  string
	}{
		{"no captures", `{"captures":[]}`},
		{"no filename", `{"captures":[{"dimension":[10,10],"annotations":[{},{}]}]}`},
		{"bad dimension", `{"captures":[{"filename":"a.png","dimension":[10],"annotations":[{},{}]}]}`},
		{"one annotation", `{"captures":[{"filename":"a.png","dimension":[10,10],
			"annotations":[{"values":[]}]}]}`},
		{"no values", `{"captures":[{"filename":"a.png","dimension":[10,10],
			"annotations":[{},{"filename":"s.png","instances":[]}]}]}`},
		{"box without label", `{"captures":[{"filename":"a.png","dimension":[10,10],
			"annotations":[{"values":[{"origin":[0,0],"dimension":[1,1]}]},{"filename":"s.png","instances":[]}]}]}`},
		{"box without origin", `{"captures":[{"filename":"a.png","dimension":[10,10],
			"annotations":[{"values":[{"labelId":1,"dimension":[1,1]}]},{"filename":"s.png","instances":[]}]}]}`},
		{"malformed boxes", `{"captures":[{"filename":"a.png","dimension":[10,10],
			"annotations":[{"values":"nope"},{"filename":"s.png","instances":[]}]}]}`},
		{"no segmentation filename", `{"captures":[{"filename":"a.png","dimension":[10,10],
			"annotations":[{"values":[]},{"instances":[]}]}]}`},
		{"no instances", `{"captures":[{"filename":"a.png","dimension":[10,10],
			"annotations":[{"values":[]},{"filename":"s.png"}]}]}`},
		{"instance without label", `{"captures":[{"filename":"a.png","dimension":[10,10],
			"annotations":[{"values":[]},{"filename":"s.png","instances":[{"pixelValue":[1,2,3]}]}]}]}`},
		{"short pixel", `{"captures":[{"filename":"a.png","dimension":[10,10],
			"annotations":[{"values":[]},{"filename":"s.png","instances":[{"labelName":"car","pixelValue":[1,2]}]}]}]}`},
		{"pixel out of range", `{"captures":[{"filename":"a.png","dimension":[10,10],
			"annotations":[{"values":[]},{"filename":"s.png","instances":[{"labelName":"car","pixelValue":[1,2,300]}]}]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame, err := solo.ParseFrame([]byte(tt.doc))
			require.NoError(t, err)

			_, err = ExtractFrame("bad.json", frame, DefaultConvertParams())

			var schemaErr *SchemaError
			require.ErrorAs(t, err, &schemaErr)
			assert.Equal(t, "bad.json", schemaErr.Frame)
			assert.Contains(t, err.Error(), "bad.json")
		})
	}
}

func TestExtractFrameNil(t *testing.T) {
	_, err := ExtractFrame("nil", nil, DefaultConvertParams())

	var schemaErr *SchemaError
	assert.ErrorAs(t, err, &schemaErr)
}

func TestToPixel(t *testing.T) {

	p, err := toPixel([]int{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, segment.Pixel{R: 1, G: 2, B: 3}, p)

	_, err = toPixel([]int{1, 2, 3, 4, 5})
	assert.Error(t, err)

	_, err = toPixel([]int{-1, 2, 3})
	assert.Error(t, err)

	// alpha is not range checked
	_, err = toPixel([]int{0, 0, 0, 999})
	assert.NoError(t, err)
}
