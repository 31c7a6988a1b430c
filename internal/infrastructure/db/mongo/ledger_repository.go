package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kolecta/collection-system/internal/core/domain"
)

const withdrawalCollection = "withdrawals"

// CollectionRepository persists the append-only deposit ledger. Documents are
// inserted and read, never updated.
type CollectionRepository struct {
	coll *mongo.Collection
}

func NewCollectionRepository(db *mongo.Database) *CollectionRepository {
	return &CollectionRepository{coll: db.Collection(collectionCollection)}
}

func (r *CollectionRepository) Create(ctx context.Context, c *domain.Collection) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("insert collection: %w", err)
	}
	return nil
}

func (r *CollectionRepository) ListByAccount(ctx context.Context, accountNumber string) ([]domain.Collection, error) {
	return r.list(ctx, bson.M{"account_number": accountNumber})
}

func (r *CollectionRepository) ListByAgentSince(ctx context.Context, agentID string, since time.Time) ([]domain.Collection, error) {
	return r.list(ctx, bson.M{
		"agent_id":  agentID,
		"timestamp": bson.M{"$gte": since},
	})
}

func (r *CollectionRepository) list(ctx context.Context, filter bson.M) ([]domain.Collection, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	defer cursor.Close(ctx)

	var out []domain.Collection
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("list collections: %w", err)
	}
	return out, nil
}

// EnsureIndexes creates the indexes the ledger queries rely on.
func (r *CollectionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "account_number", Value: 1}, {Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "agent_id", Value: 1}, {Key: "timestamp", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

// WithdrawalRepository persists the append-only withdrawal ledger.
type WithdrawalRepository struct {
	coll     *mongo.Collection
	accounts *mongo.Collection
}

func NewWithdrawalRepository(db *mongo.Database) *WithdrawalRepository {
	return &WithdrawalRepository{
		coll:     db.Collection(withdrawalCollection),
		accounts: db.Collection(accountCollection),
	}
}

func (r *WithdrawalRepository) Create(ctx context.Context, w *domain.Withdrawal) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, w); err != nil {
		return fmt.Errorf("insert withdrawal: %w", err)
	}
	return nil
}

func (r *WithdrawalRepository) ListByAccount(ctx context.Context, accountNumber string) ([]domain.Withdrawal, error) {
	return r.list(ctx, bson.M{"account_number": accountNumber})
}

// ListByOwner joins through the owner's accounts: withdrawals are stored per
// account, not per commerçant.
func (r *WithdrawalRepository) ListByOwner(ctx context.Context, commercantID string) ([]domain.Withdrawal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.accounts.Find(ctx, bson.M{"owner_commercant_id": commercantID})
	if err != nil {
		return nil, fmt.Errorf("list withdrawals: %w", err)
	}
	var accounts []domain.Account
	if err := cursor.All(ctx, &accounts); err != nil {
		return nil, fmt.Errorf("list withdrawals: %w", err)
	}

	numbers := make([]string, len(accounts))
	for i, a := range accounts {
		numbers[i] = a.AccountNumber
	}
	return r.list(ctx, bson.M{"account_number": bson.M{"$in": numbers}})
}

func (r *WithdrawalRepository) list(ctx context.Context, filter bson.M) ([]domain.Withdrawal, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list withdrawals: %w", err)
	}
	defer cursor.Close(ctx)

	var out []domain.Withdrawal
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("list withdrawals: %w", err)
	}
	return out, nil
}
