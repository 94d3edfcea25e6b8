package repository

import (
	"Sabzee/internal/model"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ForumListQuery describes one page of the filtered post listing.
type ForumListQuery struct {
	Category   string
	UserType   string
	IsQuestion *bool
	Author     *primitive.ObjectID
	Search     string
	SortField  string
	SortOrder  int
	Page       int
	Limit      int
}

type ForumRepo interface {
	Create(ctx context.Context, post *model.ForumPost) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.ForumPost, error)
	List(ctx context.Context, q *ForumListQuery) ([]*model.ForumPostView, int64, error)
	IncrementViews(ctx context.Context, id primitive.ObjectID) (*model.ForumPost, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, set bson.M) (*model.ForumPost, error)
	SaveComments(ctx context.Context, id primitive.ObjectID, comments []model.Comment) error
	SaveLikes(ctx context.Context, id primitive.ObjectID, likes []primitive.ObjectID) error
	SaveImages(ctx context.Context, id primitive.ObjectID, images []model.PostImage) (*model.ForumPost, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	AllImageStorageIDs(ctx context.Context) (map[string]struct{}, error)
}

type forumRepoImpl struct {
	col *mongo.Collection
}

func NewForumRepo(db *mongo.Database) ForumRepo {
	return &forumRepoImpl{
		col: db.Collection("forum_posts"),
	}
}

func (s *forumRepoImpl) Create(ctx context.Context, post *model.ForumPost) error {
	res, err := s.col.InsertOne(ctx, post)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		post.ID = oid
	}
	return nil
}

func (s *forumRepoImpl) GetByID(ctx context.Context, id primitive.ObjectID) (*model.ForumPost, error) {
	var post model.ForumPost
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// buildListStages assembles the shared head of the listing pipeline:
// match, author join and the optional role filter, then sort. Both the
// page query and the total count reuse these stages.
func buildListStages(q *ForumListQuery) mongo.Pipeline {
	match := bson.M{}
	if q.Category != "" {
		match["category"] = q.Category
	}
	if q.IsQuestion != nil {
		match["isQuestion"] = *q.IsQuestion
	}
	if q.Author != nil {
		match["author"] = *q.Author
	}
	if q.Search != "" {
		match["$text"] = bson.M{"$search": q.Search}
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "author",
			"foreignField": "_id",
			"as":           "authorInfo",
		}}},
		{{Key: "$unwind", Value: "$authorInfo"}},
	}

	// The author's role lives on the joined user document, so this
	// filter has to come after the lookup.
	if q.UserType != "" {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.M{"authorInfo.role": q.UserType}}})
	}

	pipeline = append(pipeline, bson.D{{Key: "$sort", Value: bson.D{{Key: q.SortField, Value: q.SortOrder}}}})
	return pipeline
}

func listProjection() bson.D {
	return bson.D{{Key: "$project", Value: bson.M{
		"_id":          1,
		"title":        1,
		"content":      1,
		"isQuestion":   1,
		"category":     1,
		"images":       1,
		"tags":         1,
		"createdAt":    1,
		"updatedAt":    1,
		"commentCount": 1,
		"likes":        1,
		"views":        1,
		"author": bson.M{
			"_id":          "$authorInfo._id",
			"name":         "$authorInfo.name",
			"profileImage": "$authorInfo.profileImage",
			"userType":     "$authorInfo.role",
		},
	}}}
}

func (s *forumRepoImpl) List(ctx context.Context, q *ForumListQuery) ([]*model.ForumPostView, int64, error) {
	stages := buildListStages(q)

	// Total is counted on the filtered-and-joined set, before pagination.
	countPipeline := append(append(mongo.Pipeline{}, stages...), bson.D{{Key: "$count", Value: "total"}})

	pagePipeline := append(append(mongo.Pipeline{}, stages...),
		bson.D{{Key: "$skip", Value: int64((q.Page - 1) * q.Limit)}},
		bson.D{{Key: "$limit", Value: int64(q.Limit)}},
		listProjection(),
	)

	cursor, err := s.col.Aggregate(ctx, pagePipeline)
	if err != nil {
		return nil, 0, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	posts := make([]*model.ForumPostView, 0)
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, 0, err
	}

	countCursor, err := s.col.Aggregate(ctx, countPipeline)
	if err != nil {
		return nil, 0, err
	}
	defer func() {
		_ = countCursor.Close(ctx)
	}()

	var counts []struct {
		Total int64 `bson:"total"`
	}
	if err = countCursor.All(ctx, &counts); err != nil {
		return nil, 0, err
	}

	var total int64
	if len(counts) > 0 {
		total = counts[0].Total
	}

	return posts, total, nil
}

// IncrementViews bumps the view counter atomically and returns the
// updated document.
func (s *forumRepoImpl) IncrementViews(ctx context.Context, id primitive.ObjectID) (*model.ForumPost, error) {
	var post model.ForumPost
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"views": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (s *forumRepoImpl) UpdateFields(ctx context.Context, id primitive.ObjectID, set bson.M) (*model.ForumPost, error) {
	set["updatedAt"] = time.Now()

	var post model.ForumPost
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// SaveComments writes the full comment sequence and recomputes
// commentCount from its length, keeping the two in lockstep.
func (s *forumRepoImpl) SaveComments(ctx context.Context, id primitive.ObjectID, comments []model.Comment) error {
	_, err := s.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"comments":     comments,
		"commentCount": len(comments),
		"updatedAt":    time.Now(),
	}})
	return err
}

func (s *forumRepoImpl) SaveLikes(ctx context.Context, id primitive.ObjectID, likes []primitive.ObjectID) error {
	_, err := s.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"likes":     likes,
		"updatedAt": time.Now(),
	}})
	return err
}

func (s *forumRepoImpl) SaveImages(ctx context.Context, id primitive.ObjectID, images []model.PostImage) (*model.ForumPost, error) {
	return s.UpdateFields(ctx, id, bson.M{"images": images})
}

func (s *forumRepoImpl) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// AllImageStorageIDs returns the storage keys referenced by any post,
// used by the cleanup job to spot orphans.
func (s *forumRepoImpl) AllImageStorageIDs(ctx context.Context) (map[string]struct{}, error) {
	cursor, err := s.col.Find(ctx, bson.M{},
		options.Find().SetProjection(bson.M{"images.storageId": 1}))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var docs []struct {
		Images []model.PostImage `bson:"images"`
	}
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	ids := make(map[string]struct{})
	for _, doc := range docs {
		for _, img := range doc.Images {
			ids[img.StorageID] = struct{}{}
		}
	}
	return ids, nil
}
