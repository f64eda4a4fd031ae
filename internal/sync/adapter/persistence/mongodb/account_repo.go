package mongodb

import (
	"context"
	"time"

	apperrors "hubsync/internal/shared/errors"
	"hubsync/internal/sync/domain/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAccountRepository implements repository.AccountRepository using MongoDB
type MongoAccountRepository struct {
	db                 *mongo.Database
	accountsCollection *mongo.Collection
}

// NewMongoAccountRepository creates a new MongoDB account repository
func NewMongoAccountRepository(db *mongo.Database) (*MongoAccountRepository, error) {
	repo := &MongoAccountRepository{
		db:                 db,
		accountsCollection: db.Collection("accounts"),
	}

	// Create indexes
	ctx := context.Background()

	// Hub ID index for accounts (unique)
	hubIDIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "hub_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	_, err := repo.accountsCollection.Indexes().CreateOne(ctx, hubIDIndex)
	if err != nil {
		return nil, err
	}

	return repo, nil
}

// GetAccounts returns all registered CRM accounts
func (r *MongoAccountRepository) GetAccounts(ctx context.Context) ([]*model.Account, error) {
	cursor, err := r.accountsCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var accounts []*model.Account
	if err := cursor.All(ctx, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// GetAccountByHubID returns the account registered for the given hub
func (r *MongoAccountRepository) GetAccountByHubID(ctx context.Context, hubID string) (*model.Account, error) {
	var account model.Account
	err := r.accountsCollection.FindOne(ctx, bson.M{"hub_id": hubID}).Decode(&account)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

// UpdateLastPulledDate advances the named watermark for one account.
// Called only after a sync run has drained every page.
func (r *MongoAccountRepository) UpdateLastPulledDate(ctx context.Context, hubID, objectType string, watermark time.Time) error {
	res, err := r.accountsCollection.UpdateOne(ctx,
		bson.M{"hub_id": hubID},
		bson.M{"$set": bson.M{
			"last_pulled_dates." + objectType: watermark,
			"updated_at":                      time.Now(),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrAccountNotFound
	}
	return nil
}

// UpdateCredentials persists refreshed OAuth credentials
func (r *MongoAccountRepository) UpdateCredentials(ctx context.Context, hubID, accessToken string, expiresAt time.Time) error {
	res, err := r.accountsCollection.UpdateOne(ctx,
		bson.M{"hub_id": hubID},
		bson.M{"$set": bson.M{
			"access_token":     accessToken,
			"token_expires_at": expiresAt,
			"updated_at":       time.Now(),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrAccountNotFound
	}
	return nil
}
