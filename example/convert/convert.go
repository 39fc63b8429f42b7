package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/akamensky/argparse"
	solo2coco "github.com/aloksharma1/go-solo2coco"
	"github.com/aloksharma1/go-solo2coco/solo"
	"github.com/aloksharma1/go-solo2coco/stats"
	"github.com/cyclopcam/logs"
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

// run parses the command line and converts the dataset, errors are logged
// before they are returned
func run(logger logs.Log) error {

	parser := argparse.NewParser("convert", "Convert a SOLO synthetic dataset into a COCO annotation document")
	input := parser.String("i", "input", &argparse.Options{Help: "SOLO dataset directory or .zip archive", Required: true})
	output := parser.String("o", "output", &argparse.Options{Help: "Directory to write the COCO document and images into", Required: true})
	config := parser.String("c", "config", &argparse.Options{Help: "JSON file of conversion settings"})
	format := parser.Selector("f", "format", solo2coco.Formats, &argparse.Options{Help: "COCO output variant"})
	merge := parser.Selector("m", "merge", solo2coco.MergeStrategies, &argparse.Options{Help: "How polygons are attached to boxes"})
	minArea := parser.Float("a", "min-area", &argparse.Options{Help: "Drop polygons smaller than this many pixels", Default: -1.0})
	verify := parser.Flag("v", "verify", &argparse.Options{Help: "Check every capture image decodes"})
	noCopy := parser.Flag("n", "no-copy", &argparse.Options{Help: "Do not copy capture images into the output directory"})
	showStats := parser.Flag("s", "stats", &argparse.Options{Help: "Print a summary of the converted document"})

	if err := parser.Parse(os.Args); err != nil {
		logger.Errorf("%v", parser.Usage(err))
		return err
	}

	params := solo2coco.DefaultConvertParams()

	var err error

	if *config != "" {
		if params, err = solo2coco.LoadConvertParams(*config); err != nil {
			logger.Errorf("%v", err)
			return err
		}
	}

	if *format != "" {
		if params.Format, err = solo2coco.ParseFormat(*format); err != nil {
			logger.Errorf("%v", err)
			return err
		}
	}

	if *merge != "" {
		if params.Merge, err = solo2coco.ParseMergeStrategy(*merge); err != nil {
			logger.Errorf("%v", err)
			return err
		}
	}

	if *minArea >= 0 {
		params.MinPolygonArea = *minArea
	}

	if *verify {
		params.VerifyImages = true
	}

	root := *input

	// archives are unpacked into a temporary directory
	if strings.EqualFold(filepath.Ext(root), ".zip") {
		tmp, err := os.MkdirTemp("", "solo2coco-")
		if err != nil {
			logger.Errorf("Failed to create extraction directory: %v", err)
			return err
		}
		defer os.RemoveAll(tmp)

		logger.Infof("Extracting %s", root)

		if root, err = solo.ExtractZip(root, tmp); err != nil {
			logger.Errorf("Failed to extract archive: %v", err)
			return err
		}
	}

	datasetDir, err := solo.FindDataset(root)
	if err != nil {
		logger.Errorf("%v", err)
		return err
	}

	logger.Infof("Converting dataset %s to %s format", datasetDir, params.Format)

	outPath, res, err := convert(logger, params, datasetDir, *output)
	if err != nil {
		logger.Errorf("Conversion failed: %v", err)
		return err
	}

	if !*noCopy {
		logger.Infof("Copying %d images", len(res.Copies))

		if err := solo2coco.CopyImages(res.Copies); err != nil {
			logger.Errorf("%v", err)
			return err
		}
	}

	if *showStats {
		stats.Summarize(res.Document).Print(os.Stdout)
	}

	logger.Infof("Done, annotations saved to %s", outPath)

	return nil
}

// convert runs the conversion printing progress on the terminal
func convert(logger logs.Log, params solo2coco.ConvertParams, datasetDir,
	outputDir string) (string, *solo2coco.Result, error) {

	defs, err := solo.ReadDefinitions(filepath.Join(datasetDir, solo.DefinitionsFile))
	if err != nil {
		return "", nil, err
	}

	categories, err := solo2coco.LoadCategories(defs, params.Supercategory)
	if err != nil {
		return "", nil, err
	}

	frames, err := solo2coco.LoadFrames(filepath.Join(datasetDir, params.Sequence))
	if err != nil {
		return "", nil, err
	}

	conv := solo2coco.NewConverter(logger, params)
	conv.SetProgress(func(percent float64) {
		fmt.Printf("\rProgress: %5.1f%%", percent)
		if percent >= 100 {
			fmt.Println()
		}
	})

	return solo2coco.ConvertFrames(conv, categories, frames, outputDir)
}
