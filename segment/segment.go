// Package segment converts semantic segmentation images into per label
// polygon boundaries.
package segment

import (
	"errors"
	"fmt"
	"image"

	"github.com/aloksharma1/go-solo2coco/coco"
	"gocv.io/x/gocv"
)

// MinPolygonPoints is the vertex count below which a traced boundary is
// considered degenerate and dropped
const MinPolygonPoints = 3

var (
	// ErrEmptyImage is returned for an image with no pixels
	ErrEmptyImage = errors.New("segmentation image is empty")
	// ErrChannels is returned for an image that is not 3 channel BGR
	ErrChannels = errors.New("segmentation image must have 3 channels")
)

// Pixel is an exact RGB colour value in the segmentation image
type Pixel struct {
	R, G, B uint8
}

// String returns the pixel as [r g b]
func (p Pixel) String() string {
	return fmt.Sprintf("[%d %d %d]", p.R, p.G, p.B)
}

// scalar returns the pixel as a BGR ordered scalar matching the channel
// layout of Mats read by gocv
func (p Pixel) scalar() gocv.Scalar {
	return gocv.NewScalar(float64(p.B), float64(p.G), float64(p.R), 0)
}

// LabelPixel pairs a label name with its colour in the segmentation image
type LabelPixel struct {
	Label string
	Pixel Pixel
}

// Params are the polygon extraction settings
type Params struct {
	// MinArea drops polygons whose enclosed area in pixels is below this value.
	// Zero keeps every non degenerate polygon.
	MinArea float64
}

// DefaultParams returns the extraction settings keeping every polygon
func DefaultParams() Params {
	return Params{
		MinArea: 0,
	}
}

// Polygons maps a label name to the boundaries traced for it
type Polygons map[string][]coco.Polygon

// ReadImage loads the segmentation image at path as a 3 channel BGR Mat.  The
// caller must Close the returned Mat.
func ReadImage(path string) (gocv.Mat, error) {

	img := gocv.IMRead(path, gocv.IMReadColor)

	if img.Empty() {
		img.Close()
		return img, fmt.Errorf("error reading image from %s", path)
	}

	return img, nil
}

// Extract traces the boundaries of every label in the BGR image img.  Each
// label gets a binary mask of the pixels matching its colour exactly which is
// then traced with a hierarchical contour search, so holes come back as
// boundaries of their own.  Labels with no matching pixels get no entry,
// labels whose boundaries are all degenerate get an empty list.
func Extract(img gocv.Mat, labels []LabelPixel, params Params) (Polygons, error) {

	if img.Empty() || img.Cols() == 0 || img.Rows() == 0 {
		return nil, ErrEmptyImage
	}

	if img.Channels() != 3 {
		return nil, fmt.Errorf("%w, got %d", ErrChannels, img.Channels())
	}

	result := make(Polygons)

	mask := gocv.NewMat()
	defer mask.Close()

	for _, lp := range labels {

		// isolate pixels of this label colour on all channels
		gocv.InRangeWithScalar(img, lp.Pixel.scalar(), lp.Pixel.scalar(), &mask)

		if gocv.CountNonZero(mask) == 0 {
			continue
		}

		result[lp.Label] = tracePolygons(mask, params)
	}

	return result, nil
}

// tracePolygons finds all boundaries in a binary mask and flattens those with
// enough vertices into polygons
func tracePolygons(mask gocv.Mat, params Params) []coco.Polygon {

	contours := gocv.FindContours(mask, gocv.RetrievalTree, gocv.ChainApproxSimple)
	defer contours.Close()

	polygons := make([]coco.Polygon, 0, contours.Size())

	for i := 0; i < contours.Size(); i++ {
		contour := contours.At(i)

		if contour.Size() < MinPolygonPoints {
			continue
		}

		// filter out small contours picked up from aliasing/noise
		if params.MinArea > 0 && gocv.ContourArea(contour) < params.MinArea {
			continue
		}

		polygons = append(polygons, flatten(contour.ToPoints()))
	}

	return polygons
}

// flatten converts vertices into the [x1, y1, x2, y2, ...] polygon layout
func flatten(pts []image.Point) coco.Polygon {

	poly := make(coco.Polygon, 0, len(pts)*2)

	for _, pt := range pts {
		poly = append(poly, float64(pt.X), float64(pt.Y))
	}

	return poly
}

// Area returns the area enclosed by the polygon in pixels
func Area(poly coco.Polygon) float64 {

	if poly.Points() < MinPolygonPoints {
		return 0
	}

	pts := make([]image.Point, poly.Points())

	for i := range pts {
		x, y := poly.Vertex(i)
		pts[i] = image.Pt(int(x), int(y))
	}

	pv := gocv.NewPointVectorFromPoints(pts)
	defer pv.Close()

	return gocv.ContourArea(pv)
}

// Bounds returns the smallest rectangle containing all polygon vertices.  The
// rectangle Max is inclusive of the furthest vertex.
func Bounds(poly coco.Polygon) image.Rectangle {

	if poly.Points() == 0 {
		return image.Rectangle{}
	}

	x, y := poly.Vertex(0)
	r := image.Rect(int(x), int(y), int(x), int(y))

	for i := 1; i < poly.Points(); i++ {
		x, y := poly.Vertex(i)
		r.Min.X = min(r.Min.X, int(x))
		r.Min.Y = min(r.Min.Y, int(y))
		r.Max.X = max(r.Max.X, int(x))
		r.Max.Y = max(r.Max.Y, int(y))
	}

	return r
}
