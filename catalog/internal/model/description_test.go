package model

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptionFromMapping(t *testing.T) {
	t.Parallel()

	m := map[string]any{
		"title":               gofakeit.ProductName(),
		"scientific_name":     "Trametes versicolor",
		"generic_description": gofakeit.Sentence(8),
		"effects":             "immune support",
		"warnings":            "consult a doctor",
		"dosage_instructions": []any{
			map[string]any{"type": "capsule", "title": "Standard", "description": "2 caps daily"},
		},
		"unknown_key": true,
	}

	d, err := DescriptionFromMapping(m)
	require.NoError(t, err)
	assert.Equal(t, "Trametes versicolor", d.ScientificName)
	require.Len(t, d.DosageInstructions, 1)
	assert.Equal(t, "capsule", d.DosageInstructions[0].Type)

	back, err := DescriptionFromMapping(d.ToMapping())
	require.NoError(t, err)
	assert.True(t, d.Equal(back))
}

func TestDescriptionValidate(t *testing.T) {
	t.Parallel()

	err := Description{
		DosageInstructions: []DosageInstruction{{Description: "no type or title"}},
	}.Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	for _, field := range []string{"title", "scientific_name", "dosage_instructions[0].type", "dosage_instructions[0].title"} {
		assert.ErrorContains(t, err, field)
	}
}

func TestDescriptionFrom(t *testing.T) {
	t.Parallel()

	valid := Description{Title: "Maitake", ScientificName: "Grifola frondosa"}

	for name, in := range map[string]any{
		"value":   valid,
		"pointer": &valid,
		"mapping": valid.ToMapping(),
	} {
		d, err := DescriptionFrom(in)
		require.NoError(t, err, name)
		assert.True(t, valid.Equal(d), name)
	}

	_, err := DescriptionFrom("maitake")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = DescriptionFrom((*Description)(nil))
	assert.ErrorIs(t, err, ErrValidation)
}
