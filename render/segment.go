package render

import (
	"fmt"
	"image"
	"math"

	"github.com/aloksharma1/go-solo2coco/coco"
	"gocv.io/x/gocv"
)

// polygonPoints converts COCO flat polygons into pixel point lists, polygons
// with fewer than 3 vertices are skipped
func polygonPoints(polys []coco.Polygon) [][]image.Point {

	res := make([][]image.Point, 0, len(polys))

	for _, poly := range polys {

		if poly.Points() < 3 {
			continue
		}

		pts := make([]image.Point, poly.Points())

		for i := range pts {
			x, y := poly.Vertex(i)
			pts[i] = image.Pt(int(math.Round(x)), int(math.Round(y)))
		}

		res = append(res, pts)
	}

	return res
}

// findTopPoint finds the highest point (Y axis) of the given polygons
func findTopPoint(polys [][]image.Point) image.Point {

	topPoint := polys[0][0]

	for _, pts := range polys {
		for _, pt := range pts {
			if pt.Y < topPoint.Y {
				topPoint = pt
			}
		}
	}

	return topPoint
}

// SegmentFill paints the segmentation polygons of the annotations as a
// transparent overlay in their category colours
func SegmentFill(img *gocv.Mat, anns []*coco.Annotation, alpha float64) error {

	if alpha <= 0 {
		return nil
	}

	if alpha > 1 {
		alpha = 1
	}

	width := img.Cols()
	height := img.Rows()

	overlay := img.Clone()
	defer overlay.Close()

	for _, ann := range anns {

		polys := polygonPoints(ann.Segmentation)

		if len(polys) == 0 {
			continue
		}

		ptsVec := gocv.NewPointsVectorFromPoints(polys)
		gocv.FillPoly(&overlay, ptsVec, CategoryColor(ann.CategoryID))
		ptsVec.Close()
	}

	blended := gocv.NewMatWithSize(height, width, img.Type())
	defer blended.Close()

	gocv.AddWeighted(overlay, alpha, *img, 1-alpha, 0, &blended)

	if blended.Empty() {
		return fmt.Errorf("error blending segment overlay")
	}

	blended.CopyTo(img)

	return nil
}

// SegmentOutline renders the segmentation polygons of the annotations as
// closed outlines, labelled with the category name above the top most vertex
func SegmentOutline(img *gocv.Mat, anns []*coco.Annotation, names CategoryNames,
	font Font, lineThickness int) {

	// keep a record of all labels for later rendering
	labels := make([]textLabel, 0, len(anns))

	for _, ann := range anns {

		polys := polygonPoints(ann.Segmentation)

		if len(polys) == 0 {
			continue
		}

		useClr := CategoryColor(ann.CategoryID)

		ptsVec := gocv.NewPointsVectorFromPoints(polys)
		gocv.Polylines(img, ptsVec, true, useClr, lineThickness)
		ptsVec.Close()

		topPoint := findTopPoint(polys)
		box := BoxRect(ann.BBox)

		labels = append(labels, font.newTextLabel(names.Name(ann.CategoryID), useClr,
			box.Min.X, box.Max.X, topPoint.Y, lineThickness))
	}

	// draw all labels last so they are the top most layer on the image and
	// don't get overlapped with outlines
	font.drawLabels(img, labels)
}

// PaintSegmentToFile draws the segmentation polygons of the annotations on a
// black image and writes it to filename
func PaintSegmentToFile(filename string, height, width int,
	anns []*coco.Annotation) error {

	img := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), height, width,
		gocv.MatTypeCV8UC3)
	defer img.Close()

	if err := SegmentFill(&img, anns, 1); err != nil {
		return err
	}

	if gocv.IMWrite(filename, img) {
		return nil
	}

	return fmt.Errorf("Failed to write to file")
}
