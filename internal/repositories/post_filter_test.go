package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestMongoPostFilter(t *testing.T) {
	group := uint(4)

	tests := []struct {
		name     string
		filter   PostFilter
		expected bson.M
	}{
		{"everything", PostFilter{}, bson.M{}},
		{"group", PostFilter{GroupID: &group}, bson.M{"group_id": uint(4)}},
		{
			"followees without self",
			PostFilter{AuthorIDs: []uint{2, 3}, ExcludeAuthorID: 1},
			bson.M{"author_id": bson.M{"$in": []uint{2, 3}, "$ne": uint(1)}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, mongoPostFilter(tt.filter))
		})
	}
}

func TestPostFilterMatchesNothing(t *testing.T) {
	assert.False(t, PostFilter{}.matchesNothing())
	assert.True(t, PostFilter{AuthorIDs: []uint{}}.matchesNothing())
	assert.False(t, PostFilter{AuthorIDs: []uint{1}}.matchesNothing())
}

func TestMongoSortMatchesSQLOrder(t *testing.T) {
	assert.Equal(t, bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}, mongoPostSort)
	assert.Equal(t, "created_at DESC, id DESC", postOrder)
}
