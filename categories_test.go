package solo2coco

import (
	"testing"

	"github.com/aloksharma1/go-solo2coco/coco"
	"github.com/aloksharma1/go-solo2coco/solo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func TestLoadCategories(t *testing.T) {

	defs := &solo.Definitions{
		AnnotationDefinitions: []solo.AnnotationDefinition{
			{
				ID: "bounding box",
				Spec: []solo.LabelSpec{
					{LabelID: ptr(int64(2)), LabelName: ptr("person")},
					{LabelID: ptr(int64(1)), LabelName: ptr("car")},
				},
			},
			{
				ID: "ignored",
				Spec: []solo.LabelSpec{
					{LabelID: ptr(int64(9)), LabelName: ptr("other")},
				},
			},
		},
	}

	cats, err := LoadCategories(defs, "none")
	require.NoError(t, err)

	// source order is kept, only the first definition is used
	assert.Equal(t, []coco.Category{
		{ID: 2, Name: "person", Supercategory: "none"},
		{ID: 1, Name: "car", Supercategory: "none"},
	}, cats)
}

func TestLoadCategoriesEmptySpec(t *testing.T) {

	defs := &solo.Definitions{
		AnnotationDefinitions: []solo.AnnotationDefinition{
			{ID: "bounding box", Spec: []solo.LabelSpec{}},
		},
	}

	cats, err := LoadCategories(defs, "none")
	require.NoError(t, err)
	assert.NotNil(t, cats)
	assert.Empty(t, cats)
}

func TestLoadCategoriesSchemaErrors(t *testing.T) {

	tests := []struct {
		name string
		defs *solo.Definitions
	}{
		{"nil", nil},
		{"no definitions", &solo.Definitions{}},
		{"no spec", &solo.Definitions{
			AnnotationDefinitions: []solo.AnnotationDefinition{{ID: "bounding box"}},
		}},
		{"missing name", &solo.Definitions{
			AnnotationDefinitions: []solo.AnnotationDefinition{{
				ID:   "bounding box",
				Spec: []solo.LabelSpec{{LabelID: ptr(int64(1))}},
			}},
		}},
		{"missing id", &solo.Definitions{
			AnnotationDefinitions: []solo.AnnotationDefinition{{
				ID:   "bounding box",
				Spec: []solo.LabelSpec{{LabelName: ptr("car")}},
			}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCategories(tt.defs, "none")

			var schemaErr *SchemaError
			require.ErrorAs(t, err, &schemaErr)
			assert.Empty(t, schemaErr.Frame)
		})
	}
}
