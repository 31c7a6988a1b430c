package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kolecta/collection-system/internal/core/domain"
)

const (
	agentCollection      = "agents"
	collectionCollection = "collections"
)

type AgentRepository struct {
	coll    *mongo.Collection
	ledgers *mongo.Collection
}

func NewAgentRepository(db *mongo.Database) *AgentRepository {
	return &AgentRepository{
		coll:    db.Collection(agentCollection),
		ledgers: db.Collection(collectionCollection),
	}
}

func (r *AgentRepository) FindByID(ctx context.Context, id string) (*domain.Agent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var a domain.Agent
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAgentNotFound
		}
		return nil, fmt.Errorf("find agent: %w", err)
	}
	return &a, nil
}

// Statistics runs the pre-aggregated statistics pipeline for one agent. The
// caller treats a failure here as non-fatal and recomputes from the raw
// ledger instead.
func (r *AgentRepository) Statistics(ctx context.Context, agentID string, monthStart time.Time) (*domain.AgentStatistics, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := []bson.M{
		{"$match": bson.M{"agent_id": agentID}},
		{"$group": bson.M{
			"_id":              "$agent_id",
			"collected_total":  bson.M{"$sum": "$amount"},
			"collection_count": bson.M{"$sum": 1},
			"accounts":         bson.M{"$addToSet": "$account_number"},
			"collected_month": bson.M{"$sum": bson.M{
				"$cond": bson.A{
					bson.M{"$gte": bson.A{"$timestamp", monthStart}},
					"$amount",
					0,
				},
			}},
		}},
	}

	cursor, err := r.ledgers.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("agent statistics: %w", err)
	}
	defer cursor.Close(ctx)

	var row struct {
		CollectedTotal  float64  `bson:"collected_total"`
		CollectedMonth  float64  `bson:"collected_month"`
		CollectionCount int64    `bson:"collection_count"`
		Accounts        []string `bson:"accounts"`
	}
	if !cursor.Next(ctx) {
		// No collections yet: valid, all-zero statistics.
		return &domain.AgentStatistics{AgentID: agentID}, cursor.Err()
	}
	if err := cursor.Decode(&row); err != nil {
		return nil, fmt.Errorf("agent statistics: %w", err)
	}

	return &domain.AgentStatistics{
		AgentID:          agentID,
		CollectedTotal:   row.CollectedTotal,
		CollectedMonth:   row.CollectedMonth,
		CollectionCount:  row.CollectionCount,
		CommercantsCount: int64(len(row.Accounts)),
	}, nil
}
