package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anonto42/yatube/backend/internal/apperrors"
	"github.com/anonto42/yatube/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostFilter narrows the set of posts a feed reads. The zero value matches
// every post.
type PostFilter struct {
	GroupID *uint
	// AuthorIDs restricts posts to these authors when non-nil. An empty,
	// non-nil slice matches nothing.
	AuthorIDs       []uint
	ExcludeAuthorID uint
}

func (f PostFilter) matchesNothing() bool {
	return f.AuthorIDs != nil && len(f.AuthorIDs) == 0
}

// PostRepository defines the interface for post data operations. Every
// listing is ordered newest first with the id as tiebreak.
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	UpdatePost(ctx context.Context, post *models.Post) error
	CountPosts(ctx context.Context, filter PostFilter) (int, error)
	FindPosts(ctx context.Context, filter PostFilter, skip, limit int) ([]models.Post, error)
}

// preparePost fills the fields the store owns.
func preparePost(post *models.Post) {
	if post.ID == "" {
		post.ID = primitive.NewObjectID().Hex()
	}
	now := time.Now().UTC()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = now
	}
	post.UpdatedAt = now
}

// mongoPostSort is the feed order for the posts collection.
var mongoPostSort = bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

// EnsureIndexes creates the indexes the feed queries rely on
func (r *MongoPostRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: mongoPostSort},
		{Keys: bson.D{{Key: "author_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "group_id", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("create post indexes: %w", err)
	}
	return nil
}

// CreatePost creates a new post in MongoDB
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	preparePost(post)
	_, err := r.collection.InsertOne(ctx, post)
	return err
}

// GetPostByID retrieves a post by ID from MongoDB
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("post")
		}
		return nil, err
	}
	return &post, nil
}

// UpdatePost stores the mutable fields of an existing post
func (r *MongoPostRepository) UpdatePost(ctx context.Context, post *models.Post) error {
	post.UpdatedAt = time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"text":       post.Text,
			"group_id":   post.GroupID,
			"image":      post.Image,
			"updated_at": post.UpdatedAt,
		},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": post.ID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperrors.NotFound("post")
	}
	return nil
}

// CountPosts counts the posts matching filter
func (r *MongoPostRepository) CountPosts(ctx context.Context, filter PostFilter) (int, error) {
	if filter.matchesNothing() {
		return 0, nil
	}
	n, err := r.collection.CountDocuments(ctx, mongoPostFilter(filter))
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// FindPosts returns one slice of the ordered posts matching filter
func (r *MongoPostRepository) FindPosts(ctx context.Context, filter PostFilter, skip, limit int) ([]models.Post, error) {
	posts := []models.Post{}
	if filter.matchesNothing() || limit <= 0 {
		return posts, nil
	}

	findOptions := options.Find().SetSkip(int64(skip)).SetLimit(int64(limit)).SetSort(mongoPostSort)
	cursor, err := r.collection.Find(ctx, mongoPostFilter(filter), findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func mongoPostFilter(f PostFilter) bson.M {
	filter := bson.M{}
	if f.GroupID != nil {
		filter["group_id"] = *f.GroupID
	}

	author := bson.M{}
	if f.AuthorIDs != nil {
		author["$in"] = f.AuthorIDs
	}
	if f.ExcludeAuthorID != 0 {
		author["$ne"] = f.ExcludeAuthorID
	}
	if len(author) > 0 {
		filter["author_id"] = author
	}
	return filter
}
