package mongodb

import (
	"context"
	"time"

	"hubsync/internal/sync/domain/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSyncRunRepository implements repository.SyncRunRepository using MongoDB
type MongoSyncRunRepository struct {
	db                 *mongo.Database
	syncRunsCollection *mongo.Collection
}

// NewMongoSyncRunRepository creates a new MongoDB sync run repository
func NewMongoSyncRunRepository(db *mongo.Database) (*MongoSyncRunRepository, error) {
	repo := &MongoSyncRunRepository{
		db:                 db,
		syncRunsCollection: db.Collection("sync_runs"),
	}

	ctx := context.Background()

	// Run ID index (unique)
	runIDIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "run_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	_, err := repo.syncRunsCollection.Indexes().CreateOne(ctx, runIDIndex)
	if err != nil {
		return nil, err
	}

	// Hub + start time index for history queries
	hubIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "hub_id", Value: 1}, {Key: "started_at", Value: -1}},
	}
	_, err = repo.syncRunsCollection.Indexes().CreateOne(ctx, hubIndex)
	if err != nil {
		return nil, err
	}

	return repo, nil
}

// Create inserts a new sync run in the running state
func (r *MongoSyncRunRepository) Create(ctx context.Context, run *model.SyncRun) error {
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	run.Status = model.RunStatusRunning
	_, err := r.syncRunsCollection.InsertOne(ctx, run)
	return err
}

// Complete finalizes a sync run with its outcome
func (r *MongoSyncRunRepository) Complete(ctx context.Context, runID string, result *model.SyncResult, runErr error) error {
	set := bson.M{
		"finished_at": time.Now(),
	}
	if runErr != nil {
		set["status"] = model.RunStatusFailed
		set["error"] = runErr.Error()
	} else {
		set["status"] = model.RunStatusSucceeded
	}
	if result != nil {
		set["pages_fetched"] = result.PagesFetched
		set["meetings_seen"] = result.MeetingsSeen
		set["actions_pushed"] = result.ActionsPushed
	}

	_, err := r.syncRunsCollection.UpdateOne(ctx,
		bson.M{"run_id": runID},
		bson.M{"$set": set},
	)
	return err
}
