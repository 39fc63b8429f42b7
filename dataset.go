package solo2coco

import (
	"fmt"
	"path/filepath"

	"github.com/aloksharma1/go-solo2coco/coco"
	"github.com/aloksharma1/go-solo2coco/solo"
	"github.com/cyclopcam/logs"
)

// LoadFrames reads every frame metadata file of a sequence directory in file
// name order
func LoadFrames(sequenceDir string) ([]FrameSource, error) {

	names, err := solo.ListFrames(sequenceDir)

	if err != nil {
		return nil, err
	}

	frames := make([]FrameSource, 0, len(names))

	for _, name := range names {

		frame, err := solo.ReadFrame(filepath.Join(sequenceDir, name))

		if err != nil {
			return nil, &SchemaError{Frame: name, Reason: "unreadable frame metadata", Err: err}
		}

		frames = append(frames, FrameSource{
			Name:  name,
			Dir:   sequenceDir,
			Frame: frame,
		})
	}

	return frames, nil
}

// ConvertDataset converts the SOLO dataset rooted at datasetDir and writes the
// COCO document into outputDir, returning its path.  The document is written
// only when every frame converted, the capture images are not copied.
func ConvertDataset(log logs.Log, params ConvertParams, datasetDir, outputDir string) (string, *Result, error) {

	defs, err := solo.ReadDefinitions(filepath.Join(datasetDir, solo.DefinitionsFile))

	if err != nil {
		return "", nil, err
	}

	categories, err := LoadCategories(defs, params.Supercategory)

	if err != nil {
		return "", nil, err
	}

	log.Infof("Loaded %d categories from %s", len(categories), solo.DefinitionsFile)

	sequenceDir := filepath.Join(datasetDir, params.Sequence)

	frames, err := LoadFrames(sequenceDir)

	if err != nil {
		return "", nil, err
	}

	if len(frames) == 0 {
		log.Warnf("No frame metadata found in %s", sequenceDir)
	}

	conv := NewConverter(log, params)

	return ConvertFrames(conv, categories, frames, outputDir)
}

// ConvertFrames converts already loaded frames with the given converter and
// writes the COCO document into outputDir
func ConvertFrames(conv *Converter, categories []coco.Category, frames []FrameSource,
	outputDir string) (string, *Result, error) {

	res, err := conv.Convert(categories, frames, outputDir)

	if err != nil {
		return "", nil, err
	}

	outPath := filepath.Join(outputDir, conv.Params().OutputName())

	if err := coco.Write(outPath, res.Document); err != nil {
		return "", nil, fmt.Errorf("error writing COCO document: %w", err)
	}

	conv.log.Infof("Wrote %s", outPath)

	return outPath, res, nil
}
