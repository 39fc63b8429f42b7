package main

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/akamensky/argparse"
	"github.com/aloksharma1/go-solo2coco/coco"
	"github.com/aloksharma1/go-solo2coco/render"
	"github.com/cyclopcam/logs"
	"gocv.io/x/gocv"
)

func main() {
	logger, err := logs.NewLog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	err = run(logger)
	logger.Close()

	if err != nil {
		os.Exit(1)
	}
}

// run parses the command line and renders the annotated image, errors are
// logged before they are returned
func run(logger logs.Log) error {

	parser := argparse.NewParser("visualize", "Draw the COCO annotations of an image over it")
	annFile := parser.String("a", "annotations", &argparse.Options{Help: "COCO annotation document", Required: true})
	imgFile := parser.String("i", "image", &argparse.Options{Help: "Image to draw on, matched to the document by file name", Required: true})
	saveFile := parser.String("o", "output", &argparse.Options{Help: "The filename to save the annotated image to", Default: "../data/annotated.jpg"})
	alpha := parser.Float("p", "alpha", &argparse.Options{Help: "Opacity of the polygon fill, 0 for outlines only", Default: 0.4})
	thickness := parser.Int("t", "thickness", &argparse.Options{Help: "Line thickness in pixels", Default: 1})
	boxes := parser.Flag("b", "boxes", &argparse.Options{Help: "Also draw bounding boxes"})
	crops := parser.String("c", "crops", &argparse.Options{Help: "Directory to save a transparent cut out of each annotated object into"})

	if err := parser.Parse(os.Args); err != nil {
		logger.Errorf("%v", parser.Usage(err))
		return err
	}

	doc, err := coco.Load(*annFile)
	if err != nil {
		logger.Errorf("%v", err)
		return err
	}

	imgRec, ok := doc.ImageByFileName(filepath.Base(*imgFile))
	if !ok {
		err := fmt.Errorf("image %s is not in %s", filepath.Base(*imgFile), *annFile)
		logger.Errorf("%v", err)
		return err
	}

	img := gocv.IMRead(*imgFile, gocv.IMReadColor)
	defer img.Close()

	if img.Empty() {
		err := fmt.Errorf("error reading image from: %s", *imgFile)
		logger.Errorf("%v", err)
		return err
	}

	if *crops != "" {
		if err := saveCrops(img, doc.AnnotationsForImage(imgRec.ID), *crops); err != nil {
			logger.Errorf("Error saving object crops: %v", err)
			return err
		}

		logger.Infof("Saved object crops to %s", *crops)
	}

	opts := render.DefaultOptions()
	opts.Alpha = *alpha
	opts.LineThickness = *thickness
	opts.Boxes = *boxes

	n, err := render.Annotations(&img, doc, imgRec.ID, opts)
	if err != nil {
		logger.Errorf("Error drawing annotations: %v", err)
		return err
	}

	logger.Infof("Drew %d annotations of image %d", n, imgRec.ID)

	if !gocv.IMWrite(*saveFile, img) {
		err := fmt.Errorf("error saving annotated image to %s", *saveFile)
		logger.Errorf("%v", err)
		return err
	}

	logger.Infof("Saved annotated image to %s", *saveFile)

	return nil
}

// saveCrops writes each annotated object of img to dir as <annotation id>.png
func saveCrops(img gocv.Mat, anns []*coco.Annotation, dir string) error {

	src, err := img.ToImage()
	if err != nil {
		return fmt.Errorf("error converting image: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	for _, ann := range anns {

		patch, err := render.CropObject(src, ann)
		if err != nil {
			return err
		}

		fw, err := os.Create(filepath.Join(dir, fmt.Sprintf("%d.png", ann.ID)))
		if err != nil {
			return err
		}

		if err := png.Encode(fw, patch); err != nil {
			fw.Close()
			return err
		}

		if err := fw.Close(); err != nil {
			return err
		}
	}

	return nil
}
