package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"surfhouse/internal/domain/pricing"
)

const pricingConfigID = "pricing_config"

// PricingStore persists the single pricing configuration document.
type PricingStore struct {
	col *mongo.Collection
}

func NewPricingStore(db *mongo.Database) *PricingStore {
	return &PricingStore{col: db.Collection("pricing")}
}

type pricingDocument struct {
	ID             string                                `bson:"_id"`
	RoomCategories []pricing.RoomCategory                `bson:"room_categories"`
	Packages       []pricing.Package                     `bson:"packages"`
	Items          map[pricing.ItemKey]pricing.ItemPrice `bson:"items"`
	LessonTiers    []pricing.LessonTier                  `bson:"lesson_tiers"`
}

func (s *PricingStore) Load(ctx context.Context) (pricing.Config, error) {
	var doc pricingDocument
	if err := s.col.FindOne(ctx, bson.M{"_id": pricingConfigID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return pricing.Config{}, pricing.ErrConfigNotFound
		}
		return pricing.Config{}, err
	}
	return pricing.Config{
		RoomCategories: doc.RoomCategories,
		Packages:       doc.Packages,
		Items:          doc.Items,
		LessonTiers:    doc.LessonTiers,
	}, nil
}

func (s *PricingStore) Replace(ctx context.Context, cfg pricing.Config) error {
	doc := pricingDocument{
		ID:             pricingConfigID,
		RoomCategories: cfg.RoomCategories,
		Packages:       cfg.Packages,
		Items:          cfg.Items,
		LessonTiers:    cfg.LessonTiers,
	}
	opts := options.Replace().SetUpsert(true)
	_, err := s.col.ReplaceOne(ctx, bson.M{"_id": pricingConfigID}, doc, opts)
	return err
}

var _ pricing.Store = (*PricingStore)(nil)
