// internal/repository/mongo/state_repo.go
package mongo

import (
	"alcyxob/gym-tracker/internal/domain"
	"alcyxob/gym-tracker/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const stateCollectionName = "state"

// stateDocument stores one logical key: {_id: "exercises", value: [...]}.
type stateDocument[T any] struct {
	Key       string    `bson:"_id"`
	Value     T         `bson:"value"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// mongoStateRepository implements repository.StateRepository
type mongoStateRepository struct {
	client     *mongo.Client // owned when non-nil; disconnected on Close
	collection *mongo.Collection
}

// NewMongoStateRepository creates a state repository backed by MongoDB.
// The client is disconnected when the repository is closed.
func NewMongoStateRepository(client *mongo.Client, dbName string) repository.StateRepository {
	return &mongoStateRepository{
		client:     client,
		collection: client.Database(dbName).Collection(stateCollectionName),
	}
}

func load[T any](ctx context.Context, r *mongoStateRepository, key string) (T, error) {
	var doc stateDocument[T]
	raw, err := r.collection.FindOne(ctx, bson.M{"_id": key}).Raw()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return doc.Value, repository.ErrNotFound
		}
		return doc.Value, err
	}
	if err := bson.Unmarshal(raw, &doc); err != nil {
		var zero T
		return zero, repository.Malformed(key, err)
	}
	return doc.Value, nil
}

func save[T any](ctx context.Context, r *mongoStateRepository, key string, value T) error {
	doc := stateDocument[T]{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	return err
}

func (r *mongoStateRepository) LoadExercises(ctx context.Context) ([]domain.Exercise, error) {
	return load[[]domain.Exercise](ctx, r, repository.KeyExercises)
}

func (r *mongoStateRepository) SaveExercises(ctx context.Context, exercises []domain.Exercise) error {
	return save(ctx, r, repository.KeyExercises, exercises)
}

func (r *mongoStateRepository) LoadTemplates(ctx context.Context) ([]domain.WorkoutTemplate, error) {
	return load[[]domain.WorkoutTemplate](ctx, r, repository.KeyTemplates)
}

func (r *mongoStateRepository) SaveTemplates(ctx context.Context, templates []domain.WorkoutTemplate) error {
	return save(ctx, r, repository.KeyTemplates, templates)
}

func (r *mongoStateRepository) LoadActiveSession(ctx context.Context) (*domain.ActiveSession, error) {
	return load[*domain.ActiveSession](ctx, r, repository.KeyActiveSession)
}

func (r *mongoStateRepository) SaveActiveSession(ctx context.Context, session *domain.ActiveSession) error {
	return save(ctx, r, repository.KeyActiveSession, session)
}

func (r *mongoStateRepository) LoadHistory(ctx context.Context) ([]domain.CompletedSession, error) {
	return load[[]domain.CompletedSession](ctx, r, repository.KeyHistory)
}

func (r *mongoStateRepository) SaveHistory(ctx context.Context, history []domain.CompletedSession) error {
	return save(ctx, r, repository.KeyHistory, history)
}

func (r *mongoStateRepository) Close() error {
	return DisconnectDB(r.client)
}
