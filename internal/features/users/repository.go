package users

import (
	"context"
	"errors"
	"fmt"
	"time"

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
	now        func() time.Time
}

// NewRepository creates repository and ensures indexes
func NewRepository(ctx context.Context, db *mongo.Database) (*Repository, error) {
	collection := db.Collection(database.UsersCollection)

	err := database.EnsureIndexes(ctx, collection, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "createdAt", Value: -1}},
		},
	})
	if err != nil {
		return nil, err
	}

	return &Repository{collection: collection, now: time.Now}, nil
}

func (r *Repository) findOne(ctx context.Context, filter bson.M) (*User, error) {
	var user User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) Get(ctx context.Context, id string) (*User, error) {
	oid, err := database.ParseID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *Repository) UpsertByEmail(ctx context.Context, u *User) (*User, error) {
	now := r.now()

	set := bson.M{
		"name":         u.Name,
		"photoUrl":     u.PhotoURL,
		"phoneNumber":  u.PhoneNumber,
		"authProvider": u.AuthProvider,
		"updatedAt":    now,
	}
	onInsert := bson.M{
		"_id":       primitive.NewObjectID(),
		"roles":     u.Roles,
		"blocked":   false,
		"createdAt": now,
	}
	if u.PasswordHash != "" {
		onInsert["passwordHash"] = u.PasswordHash
	}

	update := bson.M{"$set": set, "$setOnInsert": onInsert}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var saved User
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"email": u.Email}, update, opts).Decode(&saved)
	if err != nil {
		return nil, fmt.Errorf("upsert user %s: %w", u.Email, err)
	}
	return &saved, nil
}

func (r *Repository) updateFields(ctx context.Context, id string, set bson.M) error {
	oid, err := database.ParseID(id)
	if err != nil {
		return err
	}
	set["updatedAt"] = r.now()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *Repository) SetPasswordHash(ctx context.Context, id, hash string) error {
	return r.updateFields(ctx, id, bson.M{"passwordHash": hash})
}

func (r *Repository) SetRoles(ctx context.Context, id string, roles []string) error {
	return r.updateFields(ctx, id, bson.M{"roles": roles})
}

// ToggleBlocked flips the flag in a single pipeline update.
func (r *Repository) ToggleBlocked(ctx context.Context, id string) (*User, error) {
	oid, err := database.ParseID(id)
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "blocked", Value: bson.D{{Key: "$not", Value: bson.A{"$blocked"}}}},
			{Key: "updatedAt", Value: r.now()},
		}}},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user User
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, pipeline, opts).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) List(ctx context.Context) ([]User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *Repository) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := database.ParseID(id)
	if err != nil {
		return false, nil
	}
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
