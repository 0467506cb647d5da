package repository

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type ProductEntity struct {
	BusinessID        string            `bson:"_id,omitempty"`
	BlockchainID      int64             `bson:"blockchain_id"`
	Status            int               `bson:"status"`
	CID               string            `bson:"cid"`
	Title             string            `bson:"title"`
	OrganicComponents []ComponentEntity `bson:"organic_components"`
	CoverImageCID     string            `bson:"cover_image_cid"`
	Categories        []string          `bson:"categories"`
	Forms             []string          `bson:"forms"`
	Species           []string          `bson:"species"`
	Prices            []PriceEntity     `bson:"prices"`
	CreatedAt         *time.Time        `bson:"created_at,omitempty"`
	UpdatedAt         *time.Time        `bson:"updated_at,omitempty"`
}

type ComponentEntity struct {
	BiounitID      string `bson:"biounit_id"`
	DescriptionCID string `bson:"description_cid"`
	Proportion     string `bson:"proportion"`
	ProportionKind string `bson:"proportion_kind"`
}

type PriceEntity struct {
	Price      bson.Decimal128  `bson:"price"`
	Currency   string           `bson:"currency"`
	Weight     *bson.Decimal128 `bson:"weight,omitempty"`
	WeightUnit string           `bson:"weight_unit,omitempty"`
	Volume     *bson.Decimal128 `bson:"volume,omitempty"`
	VolumeUnit string           `bson:"volume_unit,omitempty"`
	Form       string           `bson:"form,omitempty"`
}
