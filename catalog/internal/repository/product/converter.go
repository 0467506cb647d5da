package repository

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/you-humble/biomarket/catalog/internal/model"
)

// EntityToModel rebuilds the entity through the model constructors, so a
// document edited by hand into an invalid state is reported, not served.
func EntityToModel(e *ProductEntity) (*model.Product, error) {
	if e == nil {
		return nil, nil
	}

	components := make([]*model.OrganicComponent, 0, len(e.OrganicComponents))
	for _, ce := range e.OrganicComponents {
		c, err := model.NewOrganicComponent(model.ComponentParams{
			BiounitID:      ce.BiounitID,
			DescriptionCID: ce.DescriptionCID,
			Proportion:     ce.Proportion,
		})
		if err != nil {
			return nil, fmt.Errorf("product %s component %s: %w", e.BusinessID, ce.BiounitID, err)
		}
		components = append(components, c)
	}

	prices := make([]*model.PriceInfo, 0, len(e.Prices))
	for i, pe := range e.Prices {
		params := model.PriceParams{
			Price:      pe.Price.String(),
			Currency:   pe.Currency,
			WeightUnit: pe.WeightUnit,
			VolumeUnit: pe.VolumeUnit,
			Form:       pe.Form,
		}
		if pe.Weight != nil {
			params.Weight = pe.Weight.String()
		}
		if pe.Volume != nil {
			params.Volume = pe.Volume.String()
		}

		p, err := model.NewPriceInfo(params)
		if err != nil {
			return nil, fmt.Errorf("product %s price %d: %w", e.BusinessID, i, err)
		}
		prices = append(prices, p)
	}

	return model.NewProduct(model.ProductParams{
		BusinessID:        e.BusinessID,
		BlockchainID:      e.BlockchainID,
		Status:            model.ProductStatus(e.Status),
		CID:               e.CID,
		Title:             e.Title,
		OrganicComponents: components,
		CoverImageCID:     e.CoverImageCID,
		Categories:        e.Categories,
		Forms:             e.Forms,
		Species:           e.Species,
		Prices:            prices,
	})
}

func EntityFromModel(p *model.Product) (*ProductEntity, error) {
	if p == nil {
		return nil, nil
	}

	prices := make([]PriceEntity, 0, len(p.Prices()))
	for _, pi := range p.Prices() {
		price, err := toDecimal128(pi.Price())
		if err != nil {
			return nil, err
		}

		pe := PriceEntity{
			Price:    price,
			Currency: string(pi.Currency()),
			Form:     pi.Form(),
		}
		if w, ok := pi.Weight(); ok {
			d, err := toDecimal128(w)
			if err != nil {
				return nil, err
			}
			pe.Weight, pe.WeightUnit = &d, string(pi.WeightUnit())
		}
		if v, ok := pi.Volume(); ok {
			d, err := toDecimal128(v)
			if err != nil {
				return nil, err
			}
			pe.Volume, pe.VolumeUnit = &d, string(pi.VolumeUnit())
		}
		prices = append(prices, pe)
	}

	return &ProductEntity{
		BusinessID:   p.BusinessID(),
		BlockchainID: p.BlockchainID(),
		Status:       int(p.Status()),
		CID:          p.CID(),
		Title:        p.Title(),
		OrganicComponents: lo.Map(p.OrganicComponents(), func(c *model.OrganicComponent, _ int) ComponentEntity {
			return ComponentEntity{
				BiounitID:      c.BiounitID(),
				DescriptionCID: c.DescriptionCID(),
				Proportion:     c.Proportion(),
				ProportionKind: string(c.ProportionKind()),
			}
		}),
		CoverImageCID: p.CoverImageCID(),
		Categories:    p.Categories(),
		Forms:         p.Forms(),
		Species:       p.Species(),
		Prices:        prices,
	}, nil
}

func BuildMongoFilter(f model.ProductsFilter) bson.M {
	q := bson.M{}

	if ids := lo.Compact(f.BusinessIDs); len(ids) > 0 {
		q["_id"] = bson.M{"$in": ids}
	}
	if len(f.Categories) > 0 {
		q["categories"] = bson.M{"$in": f.Categories}
	}
	if len(f.Forms) > 0 {
		q["forms"] = bson.M{"$in": f.Forms}
	}
	if len(f.Species) > 0 {
		q["species"] = bson.M{"$in": f.Species}
	}
	if f.OnlyActive {
		q["status"] = int(model.ProductStatusActive)
	}

	return q
}

func toDecimal128(d decimal.Decimal) (bson.Decimal128, error) {
	out, err := bson.ParseDecimal128(d.String())
	if err != nil {
		return bson.Decimal128{}, fmt.Errorf("convert %s to decimal128: %w", d, err)
	}
	return out, nil
}
