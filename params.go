package solo2coco

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aloksharma1/go-solo2coco/coco"
	"github.com/aloksharma1/go-solo2coco/solo"
)

// ConvertParams defines the settings of a conversion run
type ConvertParams struct {
	// Format is the COCO variant to produce
	Format Format `json:"format"`
	// Merge is how polygons are attached to boxes
	Merge MergeStrategy `json:"merge"`
	// MergeTolerance grows boxes by this many pixels when Merge is
	// MergeContainment
	MergeTolerance float64 `json:"merge_tolerance"`
	// MinPolygonArea drops traced polygons smaller than this area in pixels,
	// zero keeps all
	MinPolygonArea float64 `json:"min_polygon_area"`
	// Sequence is the directory of the capture sequence inside the dataset
	Sequence string `json:"sequence"`
	// VerifyImages probes every capture image and fails on unreadable ones
	VerifyImages bool `json:"verify_images"`
	// Info overrides the document header, the description is derived from
	// Format when left empty
	Info coco.Info `json:"info"`
	// Licenses is the document license list
	Licenses []coco.License `json:"licenses"`
	// ImageLicense is the license id set on every image record
	ImageLicense int64 `json:"image_license"`
	// DateCaptured is set on every image record
	DateCaptured string `json:"date_captured"`
	// Supercategory is set on every category
	Supercategory string `json:"supercategory"`
}

// DefaultConvertParams returns the default conversion settings
func DefaultConvertParams() ConvertParams {
	return ConvertParams{
		Format:         FormatSegmentation,
		Merge:          MergeBroadcast,
		MergeTolerance: 2,
		MinPolygonArea: 0,
		Sequence:       solo.DefaultSequence,
		VerifyImages:   false,
		Info: coco.Info{
			Version:     "1.0",
			Year:        2024,
			Contributor: "User",
			DateCreated: "2024-06-08",
		},
		Licenses: []coco.License{
			{
				ID:   1,
				Name: "Default License",
				URL:  "http://example.com",
			},
		},
		ImageLicense:  1,
		DateCaptured:  "2024-06-08",
		Supercategory: "none",
	}
}

// LoadConvertParams reads a JSON config file and overlays it on the default
// settings.  Keys missing from the file keep their default value.
func LoadConvertParams(path string) (ConvertParams, error) {

	params := DefaultConvertParams()

	data, err := os.ReadFile(path)

	if err != nil {
		return params, fmt.Errorf("error reading config: %w", err)
	}

	if err := json.Unmarshal(data, &params); err != nil {
		return params, fmt.Errorf("failed to parse config from %q: %w", path, err)
	}

	return params, nil
}

// info returns the document header for this run
func (p ConvertParams) info() coco.Info {

	info := p.Info

	if info.Description == "" {
		info.Description = fmt.Sprintf("Converted SOLO to COCO (%s)", p.Format)
	}

	return info
}

// OutputName returns the file name of the COCO document for this run
func (p ConvertParams) OutputName() string {
	return fmt.Sprintf("solo_to_coco_with_segmentation_%s.json", p.Format)
}
