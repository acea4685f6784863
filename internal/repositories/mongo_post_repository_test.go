package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/yatube/backend/internal/apperrors"
	"github.com/anonto42/yatube/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func postDoc(id string, authorID int32, createdAt time.Time) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "author_id", Value: authorID},
		{Key: "text", Value: "post " + id},
		{Key: "created_at", Value: createdAt},
		{Key: "updated_at", Value: createdAt},
	}
}

func TestMongoPostRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	mt.Run("find posts sends skip limit and feed order", func(mt *mtest.T) {
		repo := NewMongoPostRepository(mt.DB)
		ns := mt.DB.Name() + ".posts"
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch,
			postDoc("b", 2, created),
			postDoc("a", 1, created),
		))

		posts, err := repo.FindPosts(ctx, PostFilter{}, 10, 5)
		require.NoError(mt, err)
		require.Len(mt, posts, 2)
		assert.Equal(mt, "b", posts[0].ID)
		assert.Equal(mt, uint(2), posts[0].AuthorID)
		assert.Equal(mt, "post a", posts[1].Text)
		assert.True(mt, posts[1].CreatedAt.Equal(created))

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "find", started.CommandName)
		assert.Equal(mt, "posts", started.Command.Lookup("find").StringValue())
		assert.Equal(mt, int64(10), started.Command.Lookup("skip").AsInt64())
		assert.Equal(mt, int64(5), started.Command.Lookup("limit").AsInt64())

		sortKeys, err := started.Command.Lookup("sort").Document().Elements()
		require.NoError(mt, err)
		require.Len(mt, sortKeys, 2)
		assert.Equal(mt, "created_at", sortKeys[0].Key())
		assert.Equal(mt, int64(-1), sortKeys[0].Value().AsInt64())
		assert.Equal(mt, "_id", sortKeys[1].Key())
		assert.Equal(mt, int64(-1), sortKeys[1].Value().AsInt64())
	})

	mt.Run("find posts filters by group", func(mt *mtest.T) {
		repo := NewMongoPostRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".posts", mtest.FirstBatch))

		group := uint(7)
		posts, err := repo.FindPosts(ctx, PostFilter{GroupID: &group}, 0, 10)
		require.NoError(mt, err)
		assert.Empty(mt, posts)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, int64(7), started.Command.Lookup("filter", "group_id").AsInt64())
	})

	mt.Run("find posts for nobody skips the round trip", func(mt *mtest.T) {
		repo := NewMongoPostRepository(mt.DB)

		posts, err := repo.FindPosts(ctx, PostFilter{AuthorIDs: []uint{}}, 0, 10)
		require.NoError(mt, err)
		assert.NotNil(mt, posts)
		assert.Empty(mt, posts)

		posts, err = repo.FindPosts(ctx, PostFilter{}, 0, 0)
		require.NoError(mt, err)
		assert.Empty(mt, posts)
		assert.Nil(mt, mt.GetStartedEvent())
	})

	mt.Run("count posts", func(mt *mtest.T) {
		repo := NewMongoPostRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".posts", mtest.FirstBatch,
			bson.D{{Key: "n", Value: int32(42)}},
		))

		n, err := repo.CountPosts(ctx, PostFilter{AuthorIDs: []uint{1, 2}})
		require.NoError(mt, err)
		assert.Equal(mt, 42, n)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "aggregate", started.CommandName)
	})

	mt.Run("count posts with no matches", func(mt *mtest.T) {
		repo := NewMongoPostRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".posts", mtest.FirstBatch))

		n, err := repo.CountPosts(ctx, PostFilter{})
		require.NoError(mt, err)
		assert.Equal(mt, 0, n)

		n, err = repo.CountPosts(ctx, PostFilter{AuthorIDs: []uint{}})
		require.NoError(mt, err)
		assert.Equal(mt, 0, n)
	})

	mt.Run("get post by id", func(mt *mtest.T) {
		repo := NewMongoPostRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".posts", mtest.FirstBatch,
			postDoc("abc", 3, created),
		))

		post, err := repo.GetPostByID(ctx, "abc")
		require.NoError(mt, err)
		assert.Equal(mt, "abc", post.ID)
		assert.Equal(mt, uint(3), post.AuthorID)
	})

	mt.Run("get missing post", func(mt *mtest.T) {
		repo := NewMongoPostRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+".posts", mtest.FirstBatch))

		_, err := repo.GetPostByID(ctx, "missing")
		assert.True(mt, apperrors.Is(err, apperrors.KindNotFound))
	})

	mt.Run("create post fills store fields", func(mt *mtest.T) {
		repo := NewMongoPostRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		post := &models.Post{AuthorID: 1, Text: "hello"}
		require.NoError(mt, repo.CreatePost(ctx, post))
		assert.Len(mt, post.ID, 24)
		assert.False(mt, post.CreatedAt.IsZero())

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "insert", started.CommandName)
	})

	mt.Run("update missing post", func(mt *mtest.T) {
		repo := NewMongoPostRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: int32(0)},
			bson.E{Key: "nModified", Value: int32(0)},
		))

		err := repo.UpdatePost(ctx, &models.Post{ID: "missing", Text: "edit"})
		assert.True(mt, apperrors.Is(err, apperrors.KindNotFound))
	})
}
