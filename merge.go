package solo2coco

import (
	"image"
	"math"
	"sort"

	"github.com/aloksharma1/go-solo2coco/coco"
	"github.com/aloksharma1/go-solo2coco/segment"
	clipper "github.com/ctessum/go.clipper"
)

// CategoryIndex looks up category ids by name.  Names are matched exactly, if
// the catalogue lists a name twice the first category wins.
type CategoryIndex map[string]int64

// NewCategoryIndex builds the name lookup for the given categories
func NewCategoryIndex(categories []coco.Category) CategoryIndex {

	idx := make(CategoryIndex, len(categories))

	for _, cat := range categories {
		if _, ok := idx[cat.Name]; !ok {
			idx[cat.Name] = cat.ID
		}
	}

	return idx
}

// Merger attaches traced segmentation polygons to the bounding box
// annotations of the same frame
type Merger struct {
	index     CategoryIndex
	strategy  MergeStrategy
	tolerance float64
}

// NewMerger returns a Merger matching labels against the given categories
func NewMerger(categories []coco.Category, strategy MergeStrategy, tolerance float64) *Merger {
	return &Merger{
		index:     NewCategoryIndex(categories),
		strategy:  strategy,
		tolerance: tolerance,
	}
}

// Merge sets the segmentation of the frame annotations from the per label
// polygons.  With MergeBroadcast every annotation whose category is named
// like the label receives all of the label polygons, overwriting any earlier
// value.  With MergeContainment it receives only those polygons lying inside
// its box.  Labels without a category are skipped and returned in sorted
// order.
func (m *Merger) Merge(anns []*coco.Annotation, polygons segment.Polygons) []string {

	labels := make([]string, 0, len(polygons))

	for label := range polygons {
		labels = append(labels, label)
	}

	sort.Strings(labels)

	var unmatched []string

	for _, label := range labels {

		catID, ok := m.index[label]

		if !ok {
			unmatched = append(unmatched, label)
			continue
		}

		polys := polygons[label]

		for _, ann := range anns {
			if ann.CategoryID != catID {
				continue
			}

			switch m.strategy {
			case MergeContainment:
				ann.Segmentation = m.contained(ann, polys)

			case MergeBroadcast:
				fallthrough
			default:
				ann.Segmentation = clonePolygons(polys)
			}
		}
	}

	return unmatched
}

// MergeSegmentation attaches polygons to annotations with the broadcast
// strategy and returns the labels that matched no category
func MergeSegmentation(anns []*coco.Annotation, polygons segment.Polygons,
	categories []coco.Category) []string {

	return NewMerger(categories, MergeBroadcast, 0).Merge(anns, polygons)
}

// contained returns the polygons whose bounds fit inside the annotation box
// grown by the merge tolerance
func (m *Merger) contained(ann *coco.Annotation, polys []coco.Polygon) []coco.Polygon {

	box := inflateBox(ann.BBox, m.tolerance)
	res := make([]coco.Polygon, 0, len(polys))

	for _, poly := range polys {
		b := segment.Bounds(poly)

		if b.Min.X >= box.Min.X && b.Min.Y >= box.Min.Y &&
			b.Max.X <= box.Max.X && b.Max.Y <= box.Max.Y {
			res = append(res, append(coco.Polygon(nil), poly...))
		}
	}

	return res
}

// clonePolygons copies the polygon list so annotations sharing a category do
// not share backing arrays
func clonePolygons(polys []coco.Polygon) []coco.Polygon {

	res := make([]coco.Polygon, len(polys))

	for i, poly := range polys {
		res[i] = append(coco.Polygon(nil), poly...)
	}

	return res
}

// inflateBox grows the [x, y, w, h] box outwards by delta pixels on every side
// keeping square corners.  The returned rectangle Max is inclusive.
func inflateBox(bbox [4]float64, delta float64) image.Rectangle {

	x0 := int(math.Floor(bbox[0]))
	y0 := int(math.Floor(bbox[1]))
	x1 := int(math.Ceil(bbox[0] + bbox[2]))
	y1 := int(math.Ceil(bbox[1] + bbox[3]))

	rect := image.Rect(x0, y0, x1, y1)

	if delta <= 0 {
		return rect
	}

	path := clipper.Path{
		&clipper.IntPoint{X: clipper.CInt(x0), Y: clipper.CInt(y0)},
		&clipper.IntPoint{X: clipper.CInt(x1), Y: clipper.CInt(y0)},
		&clipper.IntPoint{X: clipper.CInt(x1), Y: clipper.CInt(y1)},
		&clipper.IntPoint{X: clipper.CInt(x0), Y: clipper.CInt(y1)},
	}

	co := clipper.NewClipperOffset()
	co.AddPath(path, clipper.JtMiter, clipper.EtClosedPolygon)

	solution := co.Execute(delta)

	first := true

	for _, sol := range solution {
		for _, pt := range sol {
			x, y := int(pt.X), int(pt.Y)

			if first {
				rect = image.Rect(x, y, x, y)
				first = false
				continue
			}

			rect.Min.X = min(rect.Min.X, x)
			rect.Min.Y = min(rect.Min.Y, y)
			rect.Max.X = max(rect.Max.X, x)
			rect.Max.Y = max(rect.Max.Y, y)
		}
	}

	return rect
}
