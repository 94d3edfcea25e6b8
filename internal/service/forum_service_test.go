package service

import (
	"Sabzee/internal/api/dto"
	"Sabzee/internal/model"
	"bytes"
	"context"
	"image"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newForumFixture() (*fakeForumRepo, *fakeUserRepo, *fakeImageStore, ForumService, *model.User) {
	author := &model.User{
		ID:   primitive.NewObjectID(),
		Name: "Asha",
		Role: model.RoleFarmer,
	}
	forumRepo := &fakeForumRepo{}
	userRepo := newFakeUserRepo(author)
	store := &fakeImageStore{}
	svc := NewForumService(forumRepo, userRepo, store)
	return forumRepo, userRepo, store, svc, author
}

func seedPost(repo *fakeForumRepo, author primitive.ObjectID) *model.ForumPost {
	now := time.Now()
	post := &model.ForumPost{
		ID:        primitive.NewObjectID(),
		Title:     "Best drip irrigation setup?",
		Content:   "Looking for advice",
		Author:    author,
		Category:  "equipment",
		Tags:      []string{"irrigation"},
		Images:    []model.PostImage{},
		Likes:     []primitive.ObjectID{},
		Comments:  []model.Comment{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	repo.post = post
	return post
}

func pngUpload(t *testing.T) *ImageUpload {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	data := buf.Bytes()
	return &ImageUpload{Filename: "photo.png", Size: int64(len(data)), Reader: bytes.NewReader(data)}
}

func TestGetPostViewAccounting(t *testing.T) {
	tests := []struct {
		name      string
		marker    func(now time.Time) string
		wantCount bool
	}{
		{"missing marker counts", func(time.Time) string { return "" }, true},
		{"malformed marker counts", func(time.Time) string { return "yesterday" }, true},
		{"recent marker suppresses", func(now time.Time) string { return now.Add(-5 * time.Minute).Format(time.RFC3339) }, false},
		{"stale marker counts", func(now time.Time) string { return now.Add(-45 * time.Minute).Format(time.RFC3339) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			forumRepo, _, _, svc, author := newForumFixture()
			post := seedPost(forumRepo, author.ID)

			before := time.Now()
			detail, err := svc.GetPost(context.Background(), post.ID, tt.marker(before))
			require.NoError(t, err)

			if tt.wantCount {
				assert.Equal(t, 1, forumRepo.incCalls)
				assert.Equal(t, int64(1), detail.Post.Views)
			} else {
				assert.Equal(t, 0, forumRepo.incCalls)
				assert.Equal(t, int64(0), detail.Post.Views)
			}
			assert.WithinDuration(t, time.Now(), detail.LastViewTime, 5*time.Second)
			assert.Equal(t, author.Name, detail.Post.Author.Name)
		})
	}
}

func TestGetPostNotFound(t *testing.T) {
	_, _, _, svc, _ := newForumFixture()
	_, err := svc.GetPost(context.Background(), primitive.NewObjectID(), "")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestCreatePostDerivesQuestionFlag(t *testing.T) {
	tests := []struct {
		name       string
		title      string
		explicit   *bool
		wantFlag   bool
		wantTitle  string
	}{
		{"question mark sets flag", "  How to treat rust? ", nil, true, "How to treat rust?"},
		{"plain title stays false", "Selling tomatoes", nil, false, "Selling tomatoes"},
		{"explicit flag wins", "Selling tomatoes", boolPtr(true), true, "Selling tomatoes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			forumRepo, _, _, svc, author := newForumFixture()

			post, err := svc.CreatePost(context.Background(), author.ID, &dto.CreatePostDTO{
				Title:      tt.title,
				Content:    "body",
				IsQuestion: tt.explicit,
			}, nil)
			require.NoError(t, err)

			assert.Equal(t, tt.wantFlag, post.IsQuestion)
			assert.Equal(t, tt.wantTitle, post.Title)
			assert.Equal(t, model.ForumCategoryDefault, post.Category)
			assert.NotNil(t, forumRepo.post)
			assert.Empty(t, forumRepo.post.Comments)
		})
	}
}

func TestCreatePostUploadsImages(t *testing.T) {
	_, _, store, svc, author := newForumFixture()

	post, err := svc.CreatePost(context.Background(), author.ID, &dto.CreatePostDTO{
		Title:   "Harvest photos",
		Content: "fresh",
	}, []*ImageUpload{pngUpload(t), pngUpload(t)})
	require.NoError(t, err)

	assert.Len(t, post.Images, 2)
	assert.Len(t, store.uploaded, 2)
	for _, img := range post.Images {
		assert.Contains(t, img.URL, img.StorageID)
	}
}

func TestCreatePostRejectsBadUploads(t *testing.T) {
	_, _, _, svc, author := newForumFixture()

	text := []byte("not an image at all, just plain text padding........")
	_, err := svc.CreatePost(context.Background(), author.ID, &dto.CreatePostDTO{
		Title:   "Photos",
		Content: "x",
	}, []*ImageUpload{{Filename: "a.txt", Size: int64(len(text)), Reader: bytes.NewReader(text)}})
	assert.ErrorIs(t, err, ErrFileNotSupported)

	uploads := make([]*ImageUpload, 0, 6)
	for i := 0; i < 6; i++ {
		uploads = append(uploads, pngUpload(t))
	}
	_, err = svc.CreatePost(context.Background(), author.ID, &dto.CreatePostDTO{
		Title:   "Photos",
		Content: "x",
	}, uploads)
	assert.ErrorIs(t, err, ErrTooManyImages)
}

func TestUpdatePostTitleForcesQuestionFlag(t *testing.T) {
	forumRepo, _, _, svc, author := newForumFixture()
	post := seedPost(forumRepo, author.ID)

	title := "Which mulch works in summer?"
	updated, err := svc.UpdatePost(context.Background(), author.ID, post.ID, &dto.UpdatePostDTO{Title: &title})
	require.NoError(t, err)

	assert.True(t, updated.IsQuestion)
	assert.Equal(t, true, forumRepo.updatedSet["isQuestion"])
}

func TestUpdatePostTitleNeverClearsQuestionFlag(t *testing.T) {
	forumRepo, _, _, svc, author := newForumFixture()
	post := seedPost(forumRepo, author.ID)
	post.IsQuestion = true

	title := "Irrigation tips"
	updated, err := svc.UpdatePost(context.Background(), author.ID, post.ID, &dto.UpdatePostDTO{Title: &title})
	require.NoError(t, err)

	assert.True(t, updated.IsQuestion)
	assert.NotContains(t, forumRepo.updatedSet, "isQuestion")
}

func TestUpdatePostRequiresAuthor(t *testing.T) {
	forumRepo, _, _, svc, author := newForumFixture()
	post := seedPost(forumRepo, author.ID)

	title := "hijack"
	_, err := svc.UpdatePost(context.Background(), primitive.NewObjectID(), post.ID, &dto.UpdatePostDTO{Title: &title})
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestDeletePostRemovesEveryImage(t *testing.T) {
	forumRepo, _, store, svc, author := newForumFixture()
	post := seedPost(forumRepo, author.ID)
	post.Images = []model.PostImage{
		{ID: primitive.NewObjectID(), StorageID: "forum_posts/a.jpg"},
		{ID: primitive.NewObjectID(), StorageID: "forum_posts/b.jpg"},
		{ID: primitive.NewObjectID(), StorageID: "forum_posts/c.jpg"},
	}

	require.NoError(t, svc.DeletePost(context.Background(), author.ID, post.ID))

	assert.True(t, forumRepo.deleted)
	assert.ElementsMatch(t, []string{"forum_posts/a.jpg", "forum_posts/b.jpg", "forum_posts/c.jpg"}, store.deleted)
}

func TestAddCommentPrependsAndRecounts(t *testing.T) {
	forumRepo, userRepo, _, svc, author := newForumFixture()
	post := seedPost(forumRepo, author.ID)

	commenter := &model.User{ID: primitive.NewObjectID(), Name: "Ravi", Role: model.RoleConsumer}
	userRepo.users[commenter.ID] = commenter

	first, err := svc.AddComment(context.Background(), author.ID, post.ID, &dto.CreateCommentDTO{Content: "older"})
	require.NoError(t, err)
	require.Equal(t, 1, first.CommentCount)

	second, err := svc.AddComment(context.Background(), commenter.ID, post.ID, &dto.CreateCommentDTO{Content: "newer"})
	require.NoError(t, err)

	require.Equal(t, 2, second.CommentCount)
	assert.Equal(t, "newer", second.Comments[0].Content)
	assert.Equal(t, "Ravi", second.Comments[0].Author.Name)
	assert.Equal(t, "older", second.Comments[1].Content)
	assert.Equal(t, len(forumRepo.post.Comments), forumRepo.post.CommentCount)
}

func TestDeleteComment(t *testing.T) {
	forumRepo, userRepo, _, svc, author := newForumFixture()
	post := seedPost(forumRepo, author.ID)

	commenter := &model.User{ID: primitive.NewObjectID(), Name: "Ravi", Role: model.RoleConsumer}
	userRepo.users[commenter.ID] = commenter

	shaped, err := svc.AddComment(context.Background(), commenter.ID, post.ID, &dto.CreateCommentDTO{Content: "hello"})
	require.NoError(t, err)
	commentID := shaped.Comments[0].ID

	err = svc.DeleteComment(context.Background(), primitive.NewObjectID(), post.ID, commentID)
	assert.ErrorIs(t, err, ErrNotOwner)

	// The post author gets no moderation shortcut.
	err = svc.DeleteComment(context.Background(), author.ID, post.ID, commentID)
	assert.ErrorIs(t, err, ErrNotOwner)

	err = svc.DeleteComment(context.Background(), commenter.ID, post.ID, commentID)
	require.NoError(t, err)
	assert.Equal(t, 0, forumRepo.post.CommentCount)

	err = svc.DeleteComment(context.Background(), commenter.ID, post.ID, commentID)
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestLikeUnlike(t *testing.T) {
	forumRepo, _, _, svc, author := newForumFixture()
	post := seedPost(forumRepo, author.ID)
	liker := primitive.NewObjectID()

	require.NoError(t, svc.LikePost(context.Background(), liker, post.ID))
	assert.Equal(t, []primitive.ObjectID{liker}, forumRepo.post.Likes)

	assert.ErrorIs(t, svc.LikePost(context.Background(), liker, post.ID), ErrAlreadyLiked)

	other := primitive.NewObjectID()
	require.NoError(t, svc.LikePost(context.Background(), other, post.ID))
	// Newest like goes first.
	assert.Equal(t, other, forumRepo.post.Likes[0])

	require.NoError(t, svc.UnlikePost(context.Background(), liker, post.ID))
	assert.Equal(t, []primitive.ObjectID{other}, forumRepo.post.Likes)

	assert.ErrorIs(t, svc.UnlikePost(context.Background(), liker, post.ID), ErrNotLiked)
}

func TestDeleteImage(t *testing.T) {
	forumRepo, _, store, svc, author := newForumFixture()
	post := seedPost(forumRepo, author.ID)
	keep := model.PostImage{ID: primitive.NewObjectID(), StorageID: "forum_posts/keep.jpg"}
	drop := model.PostImage{ID: primitive.NewObjectID(), StorageID: "forum_posts/drop.jpg"}
	post.Images = []model.PostImage{keep, drop}

	err := svc.DeleteImage(context.Background(), author.ID, post.ID, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrImageNotFound)

	require.NoError(t, svc.DeleteImage(context.Background(), author.ID, post.ID, drop.ID))
	assert.Equal(t, []model.PostImage{keep}, forumRepo.post.Images)
	assert.Equal(t, []string{"forum_posts/drop.jpg"}, store.deleted)
}

func TestListPostsPagination(t *testing.T) {
	forumRepo, _, _, svc, _ := newForumFixture()
	forumRepo.listTotal = 25

	page, err := svc.ListPosts(context.Background(), &dto.ForumListDTO{Page: 0, Limit: 10, Sort: "-views"})
	require.NoError(t, err)

	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 3, page.Pages)
	assert.Equal(t, int64(25), page.Total)
	assert.Equal(t, "views", forumRepo.listQuery.SortField)
	assert.Equal(t, -1, forumRepo.listQuery.SortOrder)
}

func TestListPostsRejectsBadAuthorID(t *testing.T) {
	_, _, _, svc, _ := newForumFixture()
	_, err := svc.ListPosts(context.Background(), &dto.ForumListDTO{Author: "not-a-hex-id"})
	assert.ErrorIs(t, err, ErrParamInvalid)
}

func boolPtr(b bool) *bool { return &b }
