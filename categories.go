package solo2coco

import (
	"github.com/aloksharma1/go-solo2coco/coco"
	"github.com/aloksharma1/go-solo2coco/solo"
)

// LoadCategories builds the COCO category list from the label specs of the
// first annotation definition, keeping their order.  Category ids are the
// SOLO label ids.
func LoadCategories(defs *solo.Definitions, supercategory string) ([]coco.Category, error) {

	if defs == nil || len(defs.AnnotationDefinitions) == 0 {
		return nil, schemaErrorf("", "no annotationDefinitions in %s", solo.DefinitionsFile)
	}

	def := defs.AnnotationDefinitions[0]

	if def.Spec == nil {
		return nil, schemaErrorf("", "annotation definition %q has no spec", def.ID)
	}

	categories := make([]coco.Category, 0, len(def.Spec))

	for i, spec := range def.Spec {

		if spec.LabelID == nil || spec.LabelName == nil {
			return nil, schemaErrorf("", "label spec %d of %q needs label_id and label_name", i, def.ID)
		}

		categories = append(categories, coco.Category{
			ID:            *spec.LabelID,
			Name:          *spec.LabelName,
			Supercategory: supercategory,
		})
	}

	return categories, nil
}
