// Package stats summarises a COCO document so a conversion run can be sanity
// checked at a glance.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/aloksharma1/go-solo2coco/coco"
	"github.com/aloksharma1/go-solo2coco/segment"
	"gonum.org/v1/gonum/stat"
)

// Category holds the figures of one category
type Category struct {
	ID          int64
	Name        string
	Annotations int
	// Segmented is the number of annotations with at least one polygon
	Segmented int
	Polygons  int
	// BoxArea is the mean and standard deviation of the bounding box areas
	BoxArea Moments
	// PolygonArea is the mean and standard deviation of the summed polygon
	// area of the segmented annotations
	PolygonArea Moments
}

// Moments is a mean and sample standard deviation, both zero for empty samples
// and the deviation zero for single values
type Moments struct {
	Mean   float64
	StdDev float64
}

// Summary describes the content of a COCO document
type Summary struct {
	Images      int
	Annotations int
	// Segmented is the number of annotations with at least one polygon
	Segmented int
	// PerImage is the distribution of annotation counts per image
	PerImage Moments
	// Categories in catalogue order, followed by any ids annotations use that
	// the catalogue lacks
	Categories []Category
}

// moments returns the mean and standard deviation of x
func moments(x []float64) Moments {

	switch len(x) {
	case 0:
		return Moments{}
	case 1:
		return Moments{Mean: x[0]}
	}

	mean, std := stat.MeanStdDev(x, nil)

	return Moments{Mean: mean, StdDev: std}
}

// Summarize computes the summary of doc
func Summarize(doc *coco.Document) Summary {

	s := Summary{
		Images:      len(doc.Images),
		Annotations: len(doc.Annotations),
	}

	perImage := make(map[int64]int, len(doc.Images))
	for _, img := range doc.Images {
		perImage[img.ID] = 0
	}

	type sample struct {
		boxAreas  []float64
		polyAreas []float64
		polygons  int
		count     int
	}

	samples := make(map[int64]*sample)

	for _, ann := range doc.Annotations {

		perImage[ann.ImageID]++

		smp, ok := samples[ann.CategoryID]
		if !ok {
			smp = &sample{}
			samples[ann.CategoryID] = smp
		}

		smp.count++
		smp.boxAreas = append(smp.boxAreas, ann.Area)

		if len(ann.Segmentation) == 0 {
			continue
		}

		s.Segmented++
		smp.polygons += len(ann.Segmentation)

		area := 0.0
		for _, poly := range ann.Segmentation {
			area += segment.Area(poly)
		}

		smp.polyAreas = append(smp.polyAreas, area)
	}

	counts := make([]float64, 0, len(perImage))
	for _, n := range perImage {
		counts = append(counts, float64(n))
	}

	// map order must not change the result
	sort.Float64s(counts)
	s.PerImage = moments(counts)

	seen := make(map[int64]bool, len(doc.Categories))
	ids := make([]int64, 0, len(samples))
	names := make(map[int64]string, len(doc.Categories))

	for _, cat := range doc.Categories {
		if seen[cat.ID] {
			continue
		}

		seen[cat.ID] = true
		ids = append(ids, cat.ID)
		names[cat.ID] = cat.Name
	}

	var unknown []int64
	for id := range samples {
		if !seen[id] {
			unknown = append(unknown, id)
		}
	}

	sort.Slice(unknown, func(i, j int) bool { return unknown[i] < unknown[j] })
	ids = append(ids, unknown...)

	for _, id := range ids {

		cat := Category{ID: id, Name: names[id]}

		if smp, ok := samples[id]; ok {
			cat.Annotations = smp.count
			cat.Segmented = len(smp.polyAreas)
			cat.Polygons = smp.polygons
			cat.BoxArea = moments(smp.boxAreas)
			cat.PolygonArea = moments(smp.polyAreas)
		}

		s.Categories = append(s.Categories, cat)
	}

	return s
}

// Coverage returns the fraction of annotations with a segmentation, 0 when
// there are none
func (s Summary) Coverage() float64 {

	if s.Annotations == 0 {
		return 0
	}

	return float64(s.Segmented) / float64(s.Annotations)
}

// Print writes a human readable table of the summary
func (s Summary) Print(w io.Writer) {

	fmt.Fprintf(w, "Images: %d, Annotations: %d, Segmented: %d (%.1f%%)\n",
		s.Images, s.Annotations, s.Segmented, s.Coverage()*100)
	fmt.Fprintf(w, "Annotations per image: %.2f ± %.2f\n", s.PerImage.Mean, s.PerImage.StdDev)

	for _, cat := range s.Categories {

		name := cat.Name
		if name == "" {
			name = "(not in catalogue)"
		}

		fmt.Fprintf(w, "  %4d %-20s annotations=%-6d polygons=%-6d box area=%.1f ± %.1f polygon area=%.1f ± %.1f\n",
			cat.ID, name, cat.Annotations, cat.Polygons,
			round1(cat.BoxArea.Mean), round1(cat.BoxArea.StdDev),
			round1(cat.PolygonArea.Mean), round1(cat.PolygonArea.StdDev))
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
