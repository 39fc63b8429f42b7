package render

import (
	"fmt"

	"github.com/aloksharma1/go-solo2coco/coco"
	"gocv.io/x/gocv"
)

// CategoryNames maps category ids to display names
type CategoryNames map[int64]string

// NewCategoryNames returns the display names of the document categories
func NewCategoryNames(categories []coco.Category) CategoryNames {

	names := make(CategoryNames, len(categories))

	for _, cat := range categories {
		if _, ok := names[cat.ID]; !ok {
			names[cat.ID] = cat.Name
		}
	}

	return names
}

// Name returns the category name, or the id when it is not in the catalogue
func (n CategoryNames) Name(id int64) string {

	if name, ok := n[id]; ok {
		return name
	}

	return fmt.Sprintf("category %d", id)
}

// Options defines how annotations are drawn over an image
type Options struct {
	Font          Font
	LineThickness int
	// Alpha is the opacity of the polygon fill, 0 draws outlines only
	Alpha float64
	// Boxes also draws the annotation bounding boxes
	Boxes bool
}

// DefaultOptions returns default overlay settings
func DefaultOptions() Options {
	return Options{
		Font:          DefaultFont(),
		LineThickness: 1,
		Alpha:         0.4,
		Boxes:         false,
	}
}

// Annotations draws every annotation of the given image from the document and
// returns how many were drawn
func Annotations(img *gocv.Mat, doc *coco.Document, imageID int64, opts Options) (int, error) {

	anns := doc.AnnotationsForImage(imageID)
	names := NewCategoryNames(doc.Categories)

	if err := SegmentFill(img, anns, opts.Alpha); err != nil {
		return 0, err
	}

	if opts.Boxes {
		AnnotationBoxes(img, anns, names, opts.Font, opts.LineThickness)
	}

	SegmentOutline(img, anns, names, opts.Font, opts.LineThickness)

	return len(anns), nil
}
