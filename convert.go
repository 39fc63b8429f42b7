package solo2coco

import (
	"fmt"
	"path/filepath"

	"github.com/aloksharma1/go-solo2coco/coco"
	"github.com/aloksharma1/go-solo2coco/idgen"
	"github.com/aloksharma1/go-solo2coco/segment"
	"github.com/aloksharma1/go-solo2coco/solo"
	"github.com/cyclopcam/logs"
)

// ProgressFunc receives the percentage of frames converted so far, in the
// range [0, 100].  It is called on the goroutine running the conversion.
type ProgressFunc func(percent float64)

// FrameSource is one frame handed to the converter
type FrameSource struct {
	// Name identifies the frame in errors, usually its metadata file name
	Name string
	// Dir is the directory image file names of the frame are relative to
	Dir string
	// Frame is the parsed frame metadata
	Frame *solo.Frame
}

// ImageCopy is a capture image to place next to the COCO document
type ImageCopy struct {
	Src string
	Dst string
}

// Result is the outcome of a conversion run
type Result struct {
	Document *coco.Document
	// Copies lists the capture images to copy into the output directory, in
	// image order
	Copies []ImageCopy
}

// Assembler accumulates frames into a COCO document, numbering images and
// annotations from the counters it is given
type Assembler struct {
	doc           *coco.Document
	imageIDs      *idgen.Generator
	annotationIDs *idgen.Generator
}

// NewAssembler returns an Assembler appending to doc
func NewAssembler(doc *coco.Document, imageIDs, annotationIDs *idgen.Generator) *Assembler {
	return &Assembler{
		doc:           doc,
		imageIDs:      imageIDs,
		annotationIDs: annotationIDs,
	}
}

// Assign gives the frame image the next image id and its annotations the next
// annotation ids, linking them to the image
func (a *Assembler) Assign(fa *FrameAnnotations) {

	fa.Image.ID = a.imageIDs.GetNext()
	first := a.annotationIDs.Reserve(len(fa.Annotations))

	for i, ann := range fa.Annotations {
		ann.ID = first + int64(i)
		ann.ImageID = fa.Image.ID
	}
}

// Append adds the frame records to the document
func (a *Assembler) Append(fa *FrameAnnotations) {
	a.doc.Images = append(a.doc.Images, fa.Image)
	a.doc.Annotations = append(a.doc.Annotations, fa.Annotations...)
}

// Document returns the document being assembled
func (a *Assembler) Document() *coco.Document {
	return a.doc
}

// Converter turns SOLO frames into a COCO document
type Converter struct {
	log      logs.Log
	params   ConvertParams
	progress ProgressFunc
}

// NewConverter returns a Converter using the given settings
func NewConverter(log logs.Log, params ConvertParams) *Converter {
	return &Converter{
		log:    log,
		params: params,
	}
}

// SetProgress registers a function notified after every converted frame
func (c *Converter) SetProgress(fn ProgressFunc) {
	c.progress = fn
}

// Params returns the converter settings
func (c *Converter) Params() ConvertParams {
	return c.params
}

// Convert builds the COCO document for the frames in the given order.  Image
// and annotation ids both start at 0 and increase in frame order.  Any frame
// error aborts the run and no result is returned.
func (c *Converter) Convert(categories []coco.Category, frames []FrameSource,
	outputDir string) (*Result, error) {

	if c.params.Format == FormatKeypoint {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, c.params.Format)
	}

	licenses := append([]coco.License(nil), c.params.Licenses...)
	doc := coco.NewDocument(c.params.info(), licenses, append([]coco.Category(nil), categories...))

	asm := NewAssembler(doc, idgen.NewGenerator(0), idgen.NewGenerator(0))
	merger := NewMerger(categories, c.params.Merge, c.params.MergeTolerance)

	res := &Result{
		Document: doc,
		Copies:   make([]ImageCopy, 0, len(frames)),
	}

	for i, fs := range frames {

		fa, err := ExtractFrame(fs.Name, fs.Frame, c.params)

		if err != nil {
			return nil, err
		}

		for _, w := range fa.Warnings {
			c.log.Warnf("Frame %s: %s", fs.Name, w)
		}

		src := filepath.Join(fs.Dir, fa.Image.FileName)

		if c.params.VerifyImages {
			if err := c.verifyImage(fs.Name, src, fa.Image); err != nil {
				return nil, err
			}
		}

		asm.Assign(fa)

		if c.params.Format == FormatSegmentation {
			polygons, err := c.segmentFrame(fs, fa)

			if err != nil {
				return nil, err
			}

			for _, label := range merger.Merge(fa.Annotations, polygons) {
				c.log.Warnf("Frame %s: label %q matches no category, its polygons are dropped", fs.Name, label)
			}
		}

		asm.Append(fa)

		res.Copies = append(res.Copies, ImageCopy{
			Src: src,
			Dst: filepath.Join(outputDir, fa.Image.FileName),
		})

		c.log.Debugf("Frame %s: image %d with %d annotations", fs.Name, fa.Image.ID, len(fa.Annotations))

		if c.progress != nil {
			c.progress(float64(i+1) / float64(len(frames)) * 100)
		}
	}

	c.log.Infof("Converted %d frames into %d images, %d annotations and %d categories (%s)",
		len(frames), len(doc.Images), len(doc.Annotations), len(doc.Categories), c.params.Format)

	return res, nil
}

// segmentFrame traces the polygons of every label in the frame segmentation
// image
func (c *Converter) segmentFrame(fs FrameSource, fa *FrameAnnotations) (segment.Polygons, error) {

	path := filepath.Join(fs.Dir, fa.Segmentation)

	img, err := segment.ReadImage(path)

	if err != nil {
		return nil, &ImageDecodeError{Frame: fs.Name, Path: path, Err: err}
	}

	defer img.Close()

	polygons, err := segment.Extract(img, fa.Labels, segment.Params{MinArea: c.params.MinPolygonArea})

	if err != nil {
		return nil, &ImageDecodeError{Frame: fs.Name, Path: path, Err: err}
	}

	return polygons, nil
}

// verifyImage checks that the capture image can be decoded and has pixels
func (c *Converter) verifyImage(frame, path string, img *coco.Image) error {

	w, h, _, err := solo.ProbeImage(path)

	if err != nil {
		return &ImageDecodeError{Frame: frame, Path: path, Err: err}
	}

	if w == 0 || h == 0 {
		return &ImageDecodeError{Frame: frame, Path: path, Err: fmt.Errorf("image has size %dx%d", w, h)}
	}

	if w != img.Width || h != img.Height {
		c.log.Warnf("Frame %s: image %s is %dx%d but capture dimension is %dx%d",
			frame, img.FileName, w, h, img.Width, img.Height)
	}

	return nil
}
