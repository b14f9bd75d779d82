package repository

import (
	"context"
	"fmt"
	"time"

	"hamperhouse/pkg/logger"
	"hamperhouse/pkg/metrics"
	"hamperhouse/storefront-service/internal/app/storefront/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	auditCollection   = "admin_audit"
	defaultAuditLimit = 50
)

type auditRepository struct {
	collection *mongo.Collection
}

// NewAuditRepository создает журнал аудита и индекс по времени записи
func NewAuditRepository(db *mongo.Database) AuditRepository {
	collection := db.Collection(auditCollection)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "at", Value: -1}},
		Options: options.Index().SetName("at_idx"),
	}

	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		// Индекс может уже существовать
		logger.Warn().Err(err).Str("collection", auditCollection).Msg("Failed to create audit index")
	}

	return &auditRepository{collection: collection}
}

func (r *auditRepository) Record(ctx context.Context, entry *entity.AuditEntry) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpInsert, auditCollection)
	defer timer.ObserveDuration()

	if entry.At.IsZero() {
		entry.At = time.Now().UTC()
	}

	if _, err := r.collection.InsertOne(ctx, entry); err != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpInsert)
		return fmt.Errorf("failed to record audit entry: %w", err)
	}

	return nil
}

// List возвращает последние записи, новые первыми
func (r *auditRepository) List(ctx context.Context, limit int64) ([]entity.AuditEntry, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, auditCollection)
	defer timer.ObserveDuration()

	if limit <= 0 {
		limit = defaultAuditLimit
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpSelect)
		return nil, fmt.Errorf("failed to find audit entries: %w", err)
	}
	defer cursor.Close(ctx)

	entries := make([]entity.AuditEntry, 0)
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode audit entries: %w", err)
	}

	return entries, nil
}
