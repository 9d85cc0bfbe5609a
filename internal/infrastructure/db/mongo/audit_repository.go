package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Abdikarim-dev/inventory-MS/internal/core/domain"
	"github.com/Abdikarim-dev/inventory-MS/internal/core/ports"
)

const auditCollection = "account_events"

// AuditRepository implements ports.AuditRepository using MongoDB.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) ports.AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type mongoAccountEvent struct {
	AccountID string `bson:"account_id"`
	Action    string `bson:"action"`
	ActorID   string `bson:"actor_id"`
	Details   string `bson:"details,omitempty"`
	Timestamp int64  `bson:"timestamp"`
}

func (r *AuditRepository) InsertEvent(ctx context.Context, event *domain.AccountEvent) error {
	doc := mongoAccountEvent{
		AccountID: event.AccountID,
		Action:    string(event.Action),
		ActorID:   event.ActorID,
		Details:   event.Details,
		Timestamp: event.Timestamp.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert account event: %w", err)
	}
	return nil
}

func (r *AuditRepository) FindByAccount(ctx context.Context, accountID string) ([]*domain.AccountEvent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"account_id": accountID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find account events: %w", err)
	}
	defer cursor.Close(ctx)

	var events []*domain.AccountEvent
	for cursor.Next(ctx) {
		var me mongoAccountEvent
		if err := cursor.Decode(&me); err != nil {
			return nil, fmt.Errorf("decode account event: %w", err)
		}
		events = append(events, &domain.AccountEvent{
			AccountID: me.AccountID,
			Action:    domain.AuditAction(me.Action),
			ActorID:   me.ActorID,
			Details:   me.Details,
			Timestamp: unixToTime(me.Timestamp),
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("find account events: %w", err)
	}
	return events, nil
}
