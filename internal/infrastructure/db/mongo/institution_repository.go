package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kolecta/collection-system/internal/core/domain"
)

const institutionCollection = "institutions"

type InstitutionRepository struct {
	coll *mongo.Collection
}

func NewInstitutionRepository(db *mongo.Database) *InstitutionRepository {
	return &InstitutionRepository{coll: db.Collection(institutionCollection)}
}

func (r *InstitutionRepository) List(ctx context.Context) ([]domain.Institution, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list institutions: %w", err)
	}
	defer cursor.Close(ctx)

	var institutions []domain.Institution
	if err := cursor.All(ctx, &institutions); err != nil {
		return nil, fmt.Errorf("list institutions: %w", err)
	}
	return institutions, nil
}

func (r *InstitutionRepository) Create(ctx context.Context, i *domain.Institution) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, i); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrInstitutionExists
		}
		return fmt.Errorf("insert institution: %w", err)
	}
	return nil
}
