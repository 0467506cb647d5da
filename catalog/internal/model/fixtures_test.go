package model

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"
)

const (
	testCIDv0 = "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG"
	testCIDv1 = "bafybeigdyrzt5sfp7udm7hu76uh7y26nf3efuylqabf3oclgtqy55fbzdi"
)

func mustComponent(t *testing.T, id, proportion string) *OrganicComponent {
	t.Helper()

	c, err := NewOrganicComponent(ComponentParams{
		BiounitID:      id,
		DescriptionCID: testCIDv0,
		Proportion:     proportion,
	})
	require.NoError(t, err)
	return c
}

func mustPrice(t *testing.T, p PriceParams) *PriceInfo {
	t.Helper()

	pi, err := NewPriceInfo(p)
	require.NoError(t, err)
	return pi
}

func mustProduct(t *testing.T, proportions ...string) *Product {
	t.Helper()

	components := make([]*OrganicComponent, 0, len(proportions))
	for i, pr := range proportions {
		components = append(components, mustComponent(t, "bio_"+string(rune('a'+i)), pr))
	}

	p, err := NewProduct(ProductParams{
		BusinessID:        gofakeit.UUID(),
		BlockchainID:      int64(gofakeit.Number(1, 1_000_000)),
		Status:            ProductStatusActive,
		CID:               testCIDv1,
		Title:             gofakeit.ProductName(),
		OrganicComponents: components,
		CoverImageCID:     testCIDv0,
		Categories:        []string{"mushrooms"},
		Forms:             []string{"capsules", "powder"},
		Species:           []string{"Hericium erinaceus"},
		Prices: []*PriceInfo{
			mustPrice(t, PriceParams{Price: "25.00", Currency: "EUR", Weight: 100, WeightUnit: "g", Form: "powder"}),
			mustPrice(t, PriceParams{Price: "0.00041", Currency: "BTC", Weight: "100", WeightUnit: "g"}),
			mustPrice(t, PriceParams{Price: "12.5", Currency: "EUR", Volume: 30, VolumeUnit: "ml"}),
		},
	})
	require.NoError(t, err)
	return p
}
