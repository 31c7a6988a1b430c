package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kolecta/collection-system/internal/core/domain"
)

const kycCollection = "kyc_records"

type KycRepository struct {
	coll *mongo.Collection
}

func NewKycRepository(db *mongo.Database) *KycRepository {
	return &KycRepository{coll: db.Collection(kycCollection)}
}

func (r *KycRepository) FindByID(ctx context.Context, id string) (*domain.KycRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var rec domain.KycRecord
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrKycNotFound
		}
		return nil, fmt.Errorf("find kyc record: %w", err)
	}
	return &rec, nil
}

func (r *KycRepository) List(ctx context.Context) ([]domain.KycRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list kyc records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []domain.KycRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("list kyc records: %w", err)
	}
	return records, nil
}

func (r *KycRepository) Create(ctx context.Context, rec *domain.KycRecord) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("insert kyc record: %w", err)
	}
	return nil
}

// UpdateDecision writes an already-validated decision. The filter includes
// the PENDING state so a concurrent decision cannot overwrite a terminal one
// even if both passed the in-memory check.
func (r *KycRepository) UpdateDecision(ctx context.Context, rec *domain.KycRecord) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": rec.ID, "state": domain.KycPending}
	update := bson.M{"$set": bson.M{
		"state":                rec.State,
		"validation_timestamp": rec.ValidationTimestamp,
		"validation_comment":   rec.ValidationComment,
	}}

	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("update kyc decision: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrInvalidTransition
	}
	return nil
}
