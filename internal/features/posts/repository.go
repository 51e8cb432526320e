package posts

import (
	"context"
	"errors"
	"time"

	"github.com/xyz-asif/lostfound/internal/pkg/database"
	apperrors "github.com/xyz-asif/lostfound/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

// caseInsensitive compares strings ignoring case. Identifier indexes are built
// with it and identifier queries must pass the same collation to use them.
var caseInsensitive = &options.Collation{Locale: "en", Strength: 2}

func identifierIndexes() []mongo.IndexModel {
	var models []mongo.IndexModel
	for _, field := range []Identifier{IdentifierIMEI, IdentifierSerial} {
		models = append(models, mongo.IndexModel{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: string(field), Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetCollation(caseInsensitive),
		})
	}
	return models
}

// identifierQuery is an equality match on a LOST post's identifier under the
// case-insensitive collation, newest first.
func identifierQuery(field Identifier, value string) (bson.M, *options.FindOptions) {
	filter := bson.M{"status": StatusLost, string(field): value}
	opts := options.Find().SetCollation(caseInsensitive).SetSort(newestFirst).SetLimit(1)
	return filter, opts
}

// Repository is the MongoDB Store.
type Repository struct {
	collection *mongo.Collection
	now        func() time.Time
}

// NewRepository creates repository and ensures indexes
func NewRepository(ctx context.Context, db *mongo.Database) (*Repository, error) {
	collection := db.Collection(database.PostsCollection)

	err := database.EnsureIndexes(ctx, collection, append([]mongo.IndexModel{
		{
			// Listing by status, newest first
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
		},
	}, identifierIndexes()...))
	if err != nil {
		return nil, err
	}

	return &Repository{collection: collection, now: time.Now}, nil
}

func (r *Repository) Insert(ctx context.Context, p *Post) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	_, err := r.collection.InsertOne(ctx, p)
	return err
}

func (r *Repository) Get(ctx context.Context, id string) (*Post, error) {
	oid, err := database.ParseID(id)
	if err != nil {
		return nil, err
	}

	var post Post
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *Repository) Replace(ctx context.Context, p *Post) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *Repository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]Post, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *Repository) List(ctx context.Context, f Filter) ([]Post, error) {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.UserID != "" {
		filter["userId"] = f.UserID
	}
	return r.find(ctx, filter, options.Find().SetSort(newestFirst))
}

func (r *Repository) FindLostByIdentifier(ctx context.Context, field Identifier, value string) (*Post, error) {
	filter, opts := identifierQuery(field, value)

	posts, err := r.find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &posts[0], nil
}

// SetStatus writes only the status field.
func (r *Repository) SetStatus(ctx context.Context, id string, status Status) error {
	oid, err := database.ParseID(id)
	if err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{"status": status, "updatedAt": r.now()}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *Repository) ToggleHidden(ctx context.Context, id string) (*Post, error) {
	oid, err := database.ParseID(id)
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "hidden", Value: bson.D{{Key: "$not", Value: bson.A{"$hidden"}}}},
			{Key: "updatedAt", Value: r.now()},
		}}},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post Post
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, pipeline, opts).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
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

func (r *Repository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"userId": userID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func (r *Repository) CountByStatus(ctx context.Context, status Status) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"status": status})
}
