package solo2coco

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/aloksharma1/go-solo2coco/segment"
	"github.com/aloksharma1/go-solo2coco/solo"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

var (
	carPixel    = segment.Pixel{R: 255, G: 0, B: 0}
	personPixel = segment.Pixel{R: 0, G: 255, B: 0}
)

// testBox is a bounding box entry of a test frame
type testBox struct {
	LabelID int64
	X, Y    float64
	W, H    float64
}

// testInstance is a segmentation instance entry of a test frame
type testInstance struct {
	Label string
	Pixel []int
}

// frameDoc builds the JSON document of a single capture frame
func frameDoc(image, segImage string, width, height float64, boxes []testBox,
	instances []testInstance) map[string]interface{} {

	values := make([]map[string]interface{}, 0, len(boxes))

	for i, b := range boxes {
		values = append(values, map[string]interface{}{
			"instanceId": i + 1,
			"labelId":    b.LabelID,
			"labelName":  "",
			"origin":     []float64{b.X, b.Y},
			"dimension":  []float64{b.W, b.H},
		})
	}

	insts := make([]map[string]interface{}, 0, len(instances))

	for _, inst := range instances {
		insts = append(insts, map[string]interface{}{
			"labelName":  inst.Label,
			"pixelValue": inst.Pixel,
		})
	}

	return map[string]interface{}{
		"frame":    0,
		"sequence": 0,
		"step":     0,
		"captures": []interface{}{
			map[string]interface{}{
				"id":          "camera",
				"filename":    image,
				"imageFormat": "Png",
				"dimension":   []float64{width, height},
				"annotations": []interface{}{
					map[string]interface{}{
						"@type":  "type.unity.com/unity.solo.BoundingBox2DAnnotation",
						"id":     "bounding box",
						"values": values,
					},
					map[string]interface{}{
						"@type":     "type.unity.com/unity.solo.SemanticSegmentationAnnotation",
						"id":        "semantic segmentation",
						"filename":  segImage,
						"instances": insts,
					},
				},
			},
		},
	}
}

// parseFrameDoc round trips a frame document through the SOLO parser
func parseFrameDoc(t *testing.T, doc interface{}) *solo.Frame {

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	frame, err := solo.ParseFrame(data)
	require.NoError(t, err)

	return frame
}

// writeJSON marshals v into path
func writeJSON(t *testing.T, path string, v interface{}) {

	data, err := json.Marshal(v)
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

// writeDefinitions writes an annotation definitions file with the given
// label id to name specs
func writeDefinitions(t *testing.T, dir string, specs map[int64]string, order []int64) {

	spec := make([]map[string]interface{}, 0, len(order))

	for _, id := range order {
		spec = append(spec, map[string]interface{}{
			"label_id":   id,
			"label_name": specs[id],
		})
	}

	writeJSON(t, filepath.Join(dir, solo.DefinitionsFile), map[string]interface{}{
		"annotationDefinitions": []interface{}{
			map[string]interface{}{
				"@type": "type.unity.com/unity.solo.BoundingBox2DAnnotation",
				"id":    "bounding box",
				"spec":  spec,
			},
		},
	})
}

// rect is an inclusive pixel rectangle painted in a colour
type rect struct {
	X0, Y0, X1, Y1 int
	Pixel          segment.Pixel
}

// writeImage saves a black BGR image with the given rectangles painted on it
func writeImage(t *testing.T, path string, width, height int, rects ...rect) {

	img := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), height, width,
		gocv.MatTypeCV8UC3)
	defer img.Close()

	for _, r := range rects {
		for y := r.Y0; y <= r.Y1; y++ {
			for x := r.X0; x <= r.X1; x++ {
				img.SetUCharAt(y, x*3+0, r.Pixel.B)
				img.SetUCharAt(y, x*3+1, r.Pixel.G)
				img.SetUCharAt(y, x*3+2, r.Pixel.R)
			}
		}
	}

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.True(t, gocv.IMWrite(path, img), "failed to write %s", path)
}
