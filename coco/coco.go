// Package coco defines the COCO object detection / instance segmentation
// annotation document produced by the converter.
package coco

// Info is the descriptive header of a COCO document
type Info struct {
	Description string `json:"description"`
	Version     string `json:"version"`
	Year        int    `json:"year"`
	Contributor string `json:"contributor"`
	DateCreated string `json:"date_created"`
}

// License is an entry of the document license list that images refer to
type License struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Image is the record for one converted frame
type Image struct {
	ID           int64  `json:"id"`
	FileName     string `json:"file_name"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	DateCaptured string `json:"date_captured"`
	License      int64  `json:"license"`
	CocoURL      string `json:"coco_url"`
	FlickrURL    string `json:"flickr_url"`
}

// Polygon is a closed boundary stored as flat x, y pairs [x1, y1, x2, y2, ...]
type Polygon []float64

// Points returns the number of vertices in the polygon
func (p Polygon) Points() int {
	return len(p) / 2
}

// Vertex returns the i-th vertex of the polygon
func (p Polygon) Vertex(i int) (x, y float64) {
	return p[i*2], p[i*2+1]
}

// Annotation is one detected object instance.  BBox is [x, y, width, height]
// and Area is always the bounding box area.
type Annotation struct {
	ID           int64      `json:"id"`
	ImageID      int64      `json:"image_id"`
	CategoryID   int64      `json:"category_id"`
	BBox         [4]float64 `json:"bbox"`
	Area         float64    `json:"area"`
	Segmentation []Polygon  `json:"segmentation"`
	IsCrowd      int        `json:"iscrowd"`
}

// Category is an object class
type Category struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Supercategory string `json:"supercategory"`
}

// Document is the whole COCO annotation file
type Document struct {
	Info        Info          `json:"info"`
	Licenses    []License     `json:"licenses"`
	Images      []*Image      `json:"images"`
	Annotations []*Annotation `json:"annotations"`
	Categories  []Category    `json:"categories"`
}

// NewDocument returns an empty document with the given header, licenses and
// categories.  The image and annotation lists are empty, not nil, so they
// serialise as [].
func NewDocument(info Info, licenses []License, categories []Category) *Document {

	if licenses == nil {
		licenses = []License{}
	}

	if categories == nil {
		categories = []Category{}
	}

	return &Document{
		Info:        info,
		Licenses:    licenses,
		Images:      make([]*Image, 0),
		Annotations: make([]*Annotation, 0),
		Categories:  categories,
	}
}

// ImageByFileName returns the image record whose file name matches name
func (d *Document) ImageByFileName(name string) (*Image, bool) {

	for _, img := range d.Images {
		if img.FileName == name {
			return img, true
		}
	}

	return nil, false
}

// AnnotationsForImage returns all annotations attached to the given image id
// in document order
func (d *Document) AnnotationsForImage(imageID int64) []*Annotation {

	anns := make([]*Annotation, 0)

	for _, ann := range d.Annotations {
		if ann.ImageID == imageID {
			anns = append(anns, ann)
		}
	}

	return anns
}

// Category returns the category with the given id
func (d *Document) Category(id int64) (Category, bool) {

	for _, cat := range d.Categories {
		if cat.ID == id {
			return cat, true
		}
	}

	return Category{}, false
}
