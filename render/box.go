package render

import (
	"image"
	"math"

	"github.com/aloksharma1/go-solo2coco/coco"
	"gocv.io/x/gocv"
)

// BoxRect returns the pixel rectangle of a COCO [x, y, w, h] box
func BoxRect(bbox [4]float64) image.Rectangle {
	return image.Rect(
		int(math.Floor(bbox[0])),
		int(math.Floor(bbox[1])),
		int(math.Ceil(bbox[0]+bbox[2])),
		int(math.Ceil(bbox[1]+bbox[3])),
	)
}

// AnnotationBoxes renders the bounding box of each annotation in its category
// colour, labelled with the category name
func AnnotationBoxes(img *gocv.Mat, anns []*coco.Annotation, names CategoryNames,
	font Font, lineThickness int) {

	// keep a record of all box labels for later rendering
	labels := make([]textLabel, 0, len(anns))

	for _, ann := range anns {

		useClr := CategoryColor(ann.CategoryID)
		rect := BoxRect(ann.BBox)

		gocv.Rectangle(img, rect, useClr, lineThickness)

		labels = append(labels, font.newTextLabel(names.Name(ann.CategoryID), useClr,
			rect.Min.X, rect.Max.X, rect.Min.Y, lineThickness))
	}

	font.drawLabels(img, labels)
}
