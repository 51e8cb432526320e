package interactions

import (
	"context"
	"errors"
	"fmt"

	"github.com/xyz-asif/lostfound/internal/pkg/database"
	apperrors "github.com/xyz-asif/lostfound/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository is the MongoDB Store.
type Repository struct {
	collection *mongo.Collection
}

// NewRepository creates repository and ensures indexes
func NewRepository(ctx context.Context, db *mongo.Database) (*Repository, error) {
	collection := db.Collection(database.InteractionsCollection)

	err := database.EnsureIndexes(ctx, collection, []mongo.IndexModel{
		{
			// Unique compound index - one claim per finder per post
			Keys: bson.D{
				{Key: "postId", Value: 1},
				{Key: "finderEmail", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "finderEmail", Value: 1}, {Key: "timestamp", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "ownerEmail", Value: 1}, {Key: "timestamp", Value: -1}},
		},
	})
	if err != nil {
		return nil, err
	}

	return &Repository{collection: collection}, nil
}

func (r *Repository) Create(ctx context.Context, fi *FoundInteraction) error {
	if fi.ID.IsZero() {
		fi.ID = primitive.NewObjectID()
	}

	_, err := r.collection.InsertOne(ctx, fi)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.ErrConflict
		}
		return err
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, id string) (*FoundInteraction, error) {
	oid, err := database.ParseID(id)
	if err != nil {
		return nil, err
	}

	var fi FoundInteraction
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&fi)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &fi, nil
}

func (r *Repository) Transition(ctx context.Context, id string, from []Status, to Status) (*FoundInteraction, error) {
	oid, err := database.ParseID(id)
	if err != nil {
		return nil, err
	}

	filter := bson.M{"_id": oid, "status": bson.M{"$in": from}}
	update := bson.M{"$set": bson.M{"status": to}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var fi FoundInteraction
	err = r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&fi)
	if err == nil {
		return &fi, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	// Nothing matched: either the claim is missing or it is in the wrong state.
	current, getErr := r.Get(ctx, id)
	if getErr != nil {
		return nil, getErr
	}
	return nil, fmt.Errorf("claim is %s: %w", current.Status, apperrors.ErrConflict)
}

func (r *Repository) list(ctx context.Context, filter bson.M) ([]FoundInteraction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	out := []FoundInteraction{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) ListByFinder(ctx context.Context, email string) ([]FoundInteraction, error) {
	return r.list(ctx, bson.M{"finderEmail": email})
}

func (r *Repository) ListByOwner(ctx context.Context, email string) ([]FoundInteraction, error) {
	return r.list(ctx, bson.M{"ownerEmail": email})
}
