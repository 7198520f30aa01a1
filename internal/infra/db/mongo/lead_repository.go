package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainleads "surfhouse/internal/domain/leads"
	"surfhouse/internal/domain/shared/money"
)

var ErrConcurrentUpdate = errors.New("mongo: concurrent update detected")

type LeadRepository struct {
	col *mongo.Collection
}

func NewLeadRepository(db *mongo.Database) *LeadRepository {
	return &LeadRepository{col: db.Collection("leads")}
}

func (r *LeadRepository) ByID(ctx context.Context, id domainleads.LeadID) (*domainleads.Lead, error) {
	var doc leadDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainleads.ErrLeadNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *LeadRepository) Save(ctx context.Context, lead *domainleads.Lead) error {
	doc := newLeadDocument(lead)
	filter := bson.M{"_id": doc.ID, "version": lead.Version}
	doc.Version = lead.Version + 1
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)
	res, err := r.col.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConcurrentUpdate
		}
		return err
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return ErrConcurrentUpdate
	}
	lead.Version = doc.Version
	return nil
}

func (r *LeadRepository) Delete(ctx context.Context, id domainleads.LeadID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": string(id)})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domainleads.ErrLeadNotFound
	}
	return nil
}

func (r *LeadRepository) List(ctx context.Context) ([]*domainleads.Lead, error) {
	return r.find(ctx, bson.M{})
}

func (r *LeadRepository) ListByStage(ctx context.Context, stage domainleads.Stage) ([]*domainleads.Lead, error) {
	return r.find(ctx, bson.M{"stage": string(stage)})
}

func (r *LeadRepository) find(ctx context.Context, filter bson.M) ([]*domainleads.Lead, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var out []*domainleads.Lead
	for cursor.Next(ctx) {
		var doc leadDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toAggregate())
	}
	return out, cursor.Err()
}

type leadDocument struct {
	ID    string `bson:"_id"`
	Name  string `bson:"name"`
	Email string `bson:"email,omitempty"`
	Phone string `bson:"phone,omitempty"`
	Notes string `bson:"notes,omitempty"`
	Stage string `bson:"stage"`

	CheckIn      string `bson:"check_in,omitempty"`
	CheckOut     string `bson:"check_out,omitempty"`
	People       int    `bson:"people"`
	RoomCategory string `bson:"room_category,omitempty"`
	PackageID    string `bson:"package_id,omitempty"`

	Breakfast   bool `bson:"breakfast"`
	BoardRental bool `bson:"board_rental"`

	SurfLessons int `bson:"surf_lessons"`
	YogaLessons int `bson:"yoga_lessons"`
	SurfSkate   int `bson:"surf_skate"`
	Massage     int `bson:"massage"`
	SurfGuide   int `bson:"surf_guide"`

	VideoAnalysisExtra   int `bson:"video_analysis_extra"`
	VideoAnalysisPackage int `bson:"video_analysis_package"`

	Transfer        bool `bson:"transfer"`
	TransferExtra   bool `bson:"transfer_extra"`
	TransferPackage int  `bson:"transfer_package"`

	Hike              int `bson:"hike"`
	RioCityTour       int `bson:"rio_city_tour"`
	CariocaExperience int `bson:"carioca_experience"`

	AccommodationOverride *int64 `bson:"accommodation_override,omitempty"`
	ExtraFee              int64  `bson:"extra_fee"`

	Quote *domainleads.QuoteSnapshot `bson:"quote,omitempty"`

	CreatedAt int64 `bson:"created_at"`
	UpdatedAt int64 `bson:"updated_at"`
	Version   int64 `bson:"version"`
}

func newLeadDocument(l *domainleads.Lead) leadDocument {
	doc := leadDocument{
		ID:                   string(l.ID),
		Name:                 l.Name,
		Email:                l.Email,
		Phone:                l.Phone,
		Notes:                l.Notes,
		Stage:                string(l.Stage),
		CheckIn:              l.CheckIn,
		CheckOut:             l.CheckOut,
		People:               l.People,
		RoomCategory:         l.RoomCategory,
		PackageID:            l.PackageID,
		Breakfast:            l.Breakfast,
		BoardRental:          l.BoardRental,
		SurfLessons:          l.SurfLessons,
		YogaLessons:          l.YogaLessons,
		SurfSkate:            l.SurfSkate,
		Massage:              l.Massage,
		SurfGuide:            l.SurfGuide,
		VideoAnalysisExtra:   l.VideoAnalysisExtra,
		VideoAnalysisPackage: l.VideoAnalysisPackage,
		Transfer:             l.Transfer,
		TransferExtra:        l.TransferExtra,
		TransferPackage:      l.TransferPackage,
		Hike:                 l.Hike,
		RioCityTour:          l.RioCityTour,
		CariocaExperience:    l.CariocaExperience,
		ExtraFee:             l.ExtraFee.Amount,
		Quote:                l.Quote,
		CreatedAt:            l.CreatedAt.UnixMilli(),
		UpdatedAt:            l.UpdatedAt.UnixMilli(),
		Version:              l.Version,
	}
	if l.AccommodationOverride != nil {
		amount := l.AccommodationOverride.Amount
		doc.AccommodationOverride = &amount
	}
	return doc
}

func (d leadDocument) toAggregate() *domainleads.Lead {
	lead := &domainleads.Lead{
		ID:                   domainleads.LeadID(d.ID),
		Name:                 d.Name,
		Email:                d.Email,
		Phone:                d.Phone,
		Notes:                d.Notes,
		Stage:                domainleads.Stage(d.Stage),
		CheckIn:              d.CheckIn,
		CheckOut:             d.CheckOut,
		People:               d.People,
		RoomCategory:         d.RoomCategory,
		PackageID:            d.PackageID,
		Breakfast:            d.Breakfast,
		BoardRental:          d.BoardRental,
		SurfLessons:          d.SurfLessons,
		YogaLessons:          d.YogaLessons,
		SurfSkate:            d.SurfSkate,
		Massage:              d.Massage,
		SurfGuide:            d.SurfGuide,
		VideoAnalysisExtra:   d.VideoAnalysisExtra,
		VideoAnalysisPackage: d.VideoAnalysisPackage,
		Transfer:             d.Transfer,
		TransferExtra:        d.TransferExtra,
		TransferPackage:      d.TransferPackage,
		Hike:                 d.Hike,
		RioCityTour:          d.RioCityTour,
		CariocaExperience:    d.CariocaExperience,
		ExtraFee:             money.BRL(d.ExtraFee),
		Quote:                d.Quote,
		CreatedAt:            timestampToTime(d.CreatedAt),
		UpdatedAt:            timestampToTime(d.UpdatedAt),
		Version:              d.Version,
	}
	if d.AccommodationOverride != nil {
		override := money.BRL(*d.AccommodationOverride)
		lead.AccommodationOverride = &override
	}
	return lead
}

func timestampToTime(millis int64) time.Time {
	if millis == 0 {
		return time.Time{}
	}
	return time.UnixMilli(millis).UTC()
}

var _ domainleads.Repository = (*LeadRepository)(nil)
