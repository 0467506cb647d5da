package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrganicComponent(t *testing.T) {
	t.Parallel()

	desc := &Description{Title: "Lion's mane", ScientificName: "Hericium erinaceus"}

	type testCase struct {
		name   string
		params ComponentParams
		assert func(t *testing.T, c *OrganicComponent, err error)
	}

	failsOn := func(field string) func(t *testing.T, c *OrganicComponent, err error) {
		return func(t *testing.T, c *OrganicComponent, err error) {
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
			assert.ErrorContains(t, err, field)
			assert.Nil(t, c)
		}
	}

	tests := []testCase{
		{
			name:   "percentage component",
			params: ComponentParams{BiounitID: "lions_mane_01", DescriptionCID: testCIDv0, Proportion: "60%"},
			assert: func(t *testing.T, c *OrganicComponent, err error) {
				require.NoError(t, err)
				assert.Equal(t, "lions_mane_01", c.BiounitID())
				assert.Equal(t, "60", c.ProportionValue().String())
				assert.Equal(t, "%", c.ProportionUnit())
				assert.True(t, c.IsPercentage())
				assert.False(t, c.IsWeightBased())
				assert.False(t, c.IsVolumeBased())
				assert.Nil(t, c.Description())
			},
		},
		{
			name:   "weight component with description",
			params: ComponentParams{BiounitID: "reishi", DescriptionCID: testCIDv1, Proportion: "50g", Description: desc},
			assert: func(t *testing.T, c *OrganicComponent, err error) {
				require.NoError(t, err)
				assert.True(t, c.IsWeightBased())
				assert.Equal(t, ProportionWeight, c.ProportionKind())
				assert.True(t, desc.Equal(c.Description()))
			},
		},
		{
			name: "volume component with description mapping",
			params: ComponentParams{
				BiounitID:      "chaga",
				DescriptionCID: testCIDv0,
				Proportion:     "30ml",
				Description:    map[string]any{"title": "Chaga", "scientific_name": "Inonotus obliquus"},
			},
			assert: func(t *testing.T, c *OrganicComponent, err error) {
				require.NoError(t, err)
				assert.True(t, c.IsVolumeBased())
				assert.Equal(t, "Chaga", c.Description().Title)
			},
		},
		{
			name:   "empty biounit id",
			params: ComponentParams{DescriptionCID: testCIDv0, Proportion: "60%"},
			assert: failsOn("biounit_id"),
		},
		{
			name:   "biounit id with dash",
			params: ComponentParams{BiounitID: "lions-mane", DescriptionCID: testCIDv0, Proportion: "60%"},
			assert: failsOn("biounit_id"),
		},
		{
			name:   "biounit id too long",
			params: ComponentParams{BiounitID: strings.Repeat("a", 51), DescriptionCID: testCIDv0, Proportion: "60%"},
			assert: failsOn("biounit_id"),
		},
		{
			name:   "bad cid",
			params: ComponentParams{BiounitID: "reishi", DescriptionCID: "QmShort", Proportion: "60%"},
			assert: failsOn("description_cid"),
		},
		{
			name:   "bad proportion",
			params: ComponentParams{BiounitID: "reishi", DescriptionCID: testCIDv0, Proportion: "120%"},
			assert: failsOn("proportion"),
		},
		{
			name:   "description of wrong type",
			params: ComponentParams{BiounitID: "reishi", DescriptionCID: testCIDv0, Proportion: "10g", Description: 42},
			assert: failsOn("description"),
		},
		{
			name:   "description missing scientific name",
			params: ComponentParams{BiounitID: "reishi", DescriptionCID: testCIDv0, Proportion: "10g", Description: map[string]any{"title": "Reishi"}},
			assert: failsOn("description.scientific_name"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, err := NewOrganicComponent(tt.params)
			tt.assert(t, c, err)
		})
	}
}

func TestComponentParamsValidateCollectsAllErrors(t *testing.T) {
	t.Parallel()

	err := ComponentParams{BiounitID: "", DescriptionCID: "", Proportion: "abc"}.Validate()
	require.Error(t, err)

	for _, field := range []string{"biounit_id", "description_cid", "proportion"} {
		assert.ErrorContains(t, err, field)
	}
}

func TestOrganicComponentMappingRoundTrip(t *testing.T) {
	t.Parallel()

	orig, err := NewOrganicComponent(ComponentParams{
		BiounitID:      "cordyceps",
		DescriptionCID: testCIDv1,
		Proportion:     "2.5kg",
		Description: &Description{
			Title:          "Cordyceps",
			ScientificName: "Cordyceps militaris",
			DosageInstructions: []DosageInstruction{
				{Type: "daily", Title: "Morning", Description: "1g with water"},
			},
		},
	})
	require.NoError(t, err)

	m := orig.ToMapping()
	assert.Equal(t, "cordyceps", m["biounit_id"])
	assert.Equal(t, testCIDv1, m["description_cid"])
	assert.Equal(t, "2.5kg", m["proportion"])
	assert.Contains(t, m, "description")

	back, err := OrganicComponentFromMapping(m)
	require.NoError(t, err)
	assert.True(t, orig.Equal(back))
}

func TestWithDescriptionDoesNotMutate(t *testing.T) {
	t.Parallel()

	c := mustComponent(t, "reishi", "40%")
	d := &Description{Title: "Reishi", ScientificName: "Ganoderma lucidum"}

	enriched := c.WithDescription(d)
	assert.Nil(t, c.Description())
	assert.True(t, d.Equal(enriched.Description()))
	assert.False(t, c.Equal(enriched))
}

func TestComponentDescriptionIsolatedFromCallers(t *testing.T) {
	t.Parallel()

	d := &Description{
		Title:              "Reishi",
		ScientificName:     "Ganoderma lucidum",
		DosageInstructions: []DosageInstruction{{Type: "tea", Title: "Daily"}},
	}
	enriched := mustComponent(t, "reishi", "40%").WithDescription(d)

	d.Title = "changed after attach"
	got := enriched.Description()
	got.DosageInstructions[0].Title = "changed by reader"

	again := enriched.Description()
	assert.Equal(t, "Reishi", again.Title)
	assert.Equal(t, "Daily", again.DosageInstructions[0].Title)
}
