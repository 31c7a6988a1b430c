package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kolecta/collection-system/internal/core/domain"
)

const commercantCollection = "commercants"

type CommercantRepository struct {
	coll *mongo.Collection
}

func NewCommercantRepository(db *mongo.Database) *CommercantRepository {
	return &CommercantRepository{coll: db.Collection(commercantCollection)}
}

func (r *CommercantRepository) FindByID(ctx context.Context, id string) (*domain.Commercant, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByUserID is the profile lookup used when the identity snapshot carries
// no commerçant id.
func (r *CommercantRepository) FindByUserID(ctx context.Context, userID string) (*domain.Commercant, error) {
	return r.findOne(ctx, bson.M{"user_id": userID})
}

func (r *CommercantRepository) findOne(ctx context.Context, filter bson.M) (*domain.Commercant, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Commercant
	if err := r.coll.FindOne(ctx, filter).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCommercantNotFound
		}
		return nil, fmt.Errorf("find commercant: %w", err)
	}
	return &c, nil
}
