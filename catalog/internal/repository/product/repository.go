package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/you-humble/biomarket/catalog/internal/model"
	"github.com/you-humble/biomarket/platform/logger"
)

type repository struct {
	coll *mongo.Collection
}

func NewProductRepository(collection *mongo.Collection) *repository {
	return &repository{coll: collection}
}

func (r *repository) ProductByBusinessID(ctx context.Context, businessID string) (*model.Product, error) {
	const op = "repository.ProductByBusinessID"

	var ent ProductEntity
	err := r.coll.FindOne(ctx, bson.M{"_id": businessID}).Decode(&ent)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrProductNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	p, err := EntityToModel(&ent)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (r *repository) List(ctx context.Context, filter model.ProductsFilter) ([]*model.Product, error) {
	const op = "repository.List"

	cur, err := r.coll.Find(ctx, BuildMongoFilter(filter), options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		if cerr := cur.Close(ctx); cerr != nil {
			logger.Error(ctx, "failed to close cursor", logger.String("op", op), logger.ErrorF(cerr))
		}
	}()

	out := make([]*model.Product, 0)
	for cur.Next(ctx) {
		var ent ProductEntity
		if err := cur.Decode(&ent); err != nil {
			return nil, fmt.Errorf("%s decode: %w", op, err)
		}

		p, err := EntityToModel(&ent)
		if err != nil {
			logger.Warn(ctx, "skip invalid product document",
				logger.String("business_id", ent.BusinessID),
				logger.ErrorF(err),
			)
			continue
		}
		out = append(out, p)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("%s cursor: %w", op, err)
	}

	return out, nil
}

// Upsert replaces the indexed fields of a product, keeping created_at.
func (r *repository) Upsert(ctx context.Context, p *model.Product) error {
	const op = "repository.Upsert"

	ent, err := EntityFromModel(p)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if ent == nil || ent.BusinessID == "" {
		return fmt.Errorf("%s: business id is empty", op)
	}

	now := time.Now().UTC()
	id := ent.BusinessID
	ent.BusinessID = ""
	ent.UpdatedAt = lo.ToPtr(now)

	_, err = r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{
			"$set":         ent,
			"$setOnInsert": bson.M{"created_at": now},
		},
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func EnsureIndexes(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "categories", Value: 1}}},
		{Keys: bson.D{{Key: "forms", Value: 1}}},
		{Keys: bson.D{{Key: "species", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "cid", Value: 1}}},
	}, options.CreateIndexes())

	return err
}
