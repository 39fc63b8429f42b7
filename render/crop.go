package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/aloksharma1/go-solo2coco/coco"
	"github.com/llgcode/draw2d/draw2dimg"
)

// ObjectMask rasterises the segmentation polygons of an annotation into a mask
// of the given bounds, the mask origin is bounds.Min.  An annotation without
// polygons masks its whole bounding box.
func ObjectMask(ann *coco.Annotation, bounds image.Rectangle) *image.RGBA {

	mask := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	if len(polygonPoints(ann.Segmentation)) == 0 {
		box := BoxRect(ann.BBox).Intersect(bounds).Sub(bounds.Min)
		draw.Draw(mask, box, image.NewUniform(Black), image.Point{}, draw.Src)
		return mask
	}

	gc := draw2dimg.NewGraphicContext(mask)
	gc.SetFillColor(color.RGBA{0, 0, 0, 255})

	ox, oy := float64(bounds.Min.X), float64(bounds.Min.Y)

	for _, poly := range ann.Segmentation {

		if poly.Points() < 3 {
			continue
		}

		x, y := poly.Vertex(0)
		gc.MoveTo(x-ox, y-oy)

		for i := 1; i < poly.Points(); i++ {
			x, y := poly.Vertex(i)
			gc.LineTo(x-ox, y-oy)
		}

		gc.Close()
	}

	gc.Fill()

	return mask
}

// CropObject cuts the annotated object out of img.  The result covers the
// bounding box and pixels outside the segmentation are transparent.
func CropObject(img image.Image, ann *coco.Annotation) (*image.RGBA, error) {

	bnd := BoxRect(ann.BBox).Intersect(img.Bounds())

	if bnd.Empty() {
		return nil, fmt.Errorf("annotation %d box is outside the image", ann.ID)
	}

	mask := ObjectMask(ann, bnd)

	patch := image.NewRGBA(image.Rect(0, 0, bnd.Dx(), bnd.Dy()))
	draw.DrawMask(patch, patch.Bounds(), img, bnd.Min, mask, image.Point{}, draw.Src)

	return patch, nil
}
