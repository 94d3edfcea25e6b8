package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func stageKeys(pipeline []bson.D) []string {
	keys := make([]string, 0, len(pipeline))
	for _, stage := range pipeline {
		keys = append(keys, stage[0].Key)
	}
	return keys
}

func TestBuildListStagesWithoutRoleFilter(t *testing.T) {
	q := &ForumListQuery{SortField: "createdAt", SortOrder: -1}

	pipeline := buildListStages(q)

	assert.Equal(t, []string{"$match", "$lookup", "$unwind", "$sort"}, stageKeys(pipeline))
	match := pipeline[0][0].Value.(bson.M)
	assert.Empty(t, match)
}

func TestBuildListStagesRoleFilterComesAfterLookup(t *testing.T) {
	q := &ForumListQuery{UserType: "farmer", SortField: "views", SortOrder: -1}

	pipeline := buildListStages(q)

	require.Equal(t, []string{"$match", "$lookup", "$unwind", "$match", "$sort"}, stageKeys(pipeline))

	roleMatch := pipeline[3][0].Value.(bson.M)
	assert.Equal(t, "farmer", roleMatch["authorInfo.role"])

	sort := pipeline[4][0].Value.(bson.D)
	assert.Equal(t, "views", sort[0].Key)
	assert.Equal(t, -1, sort[0].Value)
}

func TestBuildListStagesFilters(t *testing.T) {
	author := primitive.NewObjectID()
	isQuestion := true
	q := &ForumListQuery{
		Category:   "crops",
		IsQuestion: &isQuestion,
		Author:     &author,
		Search:     "blight",
		SortField:  "createdAt",
		SortOrder:  -1,
	}

	pipeline := buildListStages(q)

	match := pipeline[0][0].Value.(bson.M)
	assert.Equal(t, "crops", match["category"])
	assert.Equal(t, true, match["isQuestion"])
	assert.Equal(t, author, match["author"])
	assert.Equal(t, bson.M{"$search": "blight"}, match["$text"])
}

func TestListProjectionShapesAuthor(t *testing.T) {
	stage := listProjection()

	require.Equal(t, "$project", stage[0].Key)
	fields := stage[0].Value.(bson.M)

	for _, field := range []string{"title", "content", "isQuestion", "category", "commentCount", "likes", "views"} {
		assert.Contains(t, fields, field)
	}
	// Full comment bodies stay out of the listing payload.
	assert.NotContains(t, fields, "comments")

	author := fields["author"].(bson.M)
	assert.Equal(t, "$authorInfo._id", author["_id"])
	assert.Equal(t, "$authorInfo.role", author["userType"])
}
