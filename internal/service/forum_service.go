package service

import (
	"Sabzee/internal/api/dto"
	"Sabzee/internal/model"
	"Sabzee/internal/pkg/consts"
	"Sabzee/internal/pkg/util"
	"Sabzee/internal/repository"
	"context"
	log "log/slog"
	"strings"
	"time"

	"github.com/jinzhu/copier"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// viewCountWindow is how long a repeat read of the same post by the same
// client counts as a single view.
const viewCountWindow = 30 * time.Minute

type ForumService interface {
	ListPosts(ctx context.Context, listDTO *dto.ForumListDTO) (*dto.ForumPageDTO, error)
	GetPost(ctx context.Context, postID primitive.ObjectID, lastViewTime string) (*dto.PostDetailDTO, error)
	CreatePost(ctx context.Context, userID primitive.ObjectID, createDTO *dto.CreatePostDTO, uploads []*ImageUpload) (*dto.ForumPostDTO, error)
	UpdatePost(ctx context.Context, userID, postID primitive.ObjectID, updateDTO *dto.UpdatePostDTO) (*dto.ForumPostDTO, error)
	DeletePost(ctx context.Context, userID, postID primitive.ObjectID) error
	AddComment(ctx context.Context, userID, postID primitive.ObjectID, commentDTO *dto.CreateCommentDTO) (*dto.ForumPostDTO, error)
	DeleteComment(ctx context.Context, userID, postID, commentID primitive.ObjectID) error
	LikePost(ctx context.Context, userID, postID primitive.ObjectID) error
	UnlikePost(ctx context.Context, userID, postID primitive.ObjectID) error
	AddImages(ctx context.Context, userID, postID primitive.ObjectID, uploads []*ImageUpload) (*dto.ForumPostDTO, error)
	DeleteImage(ctx context.Context, userID, postID, imageID primitive.ObjectID) error
}

type forumServiceImpl struct {
	forumRepo repository.ForumRepo
	userRepo  repository.UserRepo
	store     ImageStore
}

func NewForumService(forumRepo repository.ForumRepo, userRepo repository.UserRepo, store ImageStore) ForumService {
	return &forumServiceImpl{
		forumRepo: forumRepo,
		userRepo:  userRepo,
		store:     store,
	}
}

func (s *forumServiceImpl) ListPosts(ctx context.Context, listDTO *dto.ForumListDTO) (*dto.ForumPageDTO, error) {
	page, limit := util.NormalizePagination(listDTO.Page, listDTO.Limit)
	sortField, sortOrder := util.ParseSort(listDTO.Sort)

	query := &repository.ForumListQuery{
		Category:   listDTO.Category,
		UserType:   listDTO.UserType,
		IsQuestion: listDTO.IsQuestion,
		Search:     listDTO.Search,
		SortField:  sortField,
		SortOrder:  sortOrder,
		Page:       page,
		Limit:      limit,
	}
	if listDTO.Author != "" {
		authorID, err := primitive.ObjectIDFromHex(listDTO.Author)
		if err != nil {
			return nil, ErrParamInvalid
		}
		query.Author = &authorID
	}

	posts, total, err := s.forumRepo.List(ctx, query)
	if err != nil {
		return nil, err
	}

	return &dto.ForumPageDTO{
		Posts: posts,
		Page:  page,
		Pages: util.TotalPages(total, limit),
		Total: total,
	}, nil
}

// GetPost fetches one post and decides whether this read counts as a new
// view. The client echoes the marker it got from the previous fetch; a
// missing, malformed or expired marker counts the view.
func (s *forumServiceImpl) GetPost(ctx context.Context, postID primitive.ObjectID, lastViewTime string) (*dto.PostDetailDTO, error) {
	now := time.Now()

	countView := true
	if lastViewTime != "" {
		if seen, err := time.Parse(time.RFC3339, lastViewTime); err == nil && now.Sub(seen) < viewCountWindow {
			countView = false
		}
	}

	var post *model.ForumPost
	var err error
	if countView {
		post, err = s.forumRepo.IncrementViews(ctx, postID)
	} else {
		post, err = s.forumRepo.GetByID(ctx, postID)
	}
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	shaped, err := s.shapePost(ctx, post)
	if err != nil {
		return nil, err
	}

	return &dto.PostDetailDTO{
		Post:         shaped,
		LastViewTime: now,
	}, nil
}

func (s *forumServiceImpl) CreatePost(ctx context.Context, userID primitive.ObjectID, createDTO *dto.CreatePostDTO, uploads []*ImageUpload) (*dto.ForumPostDTO, error) {
	title := strings.TrimSpace(createDTO.Title)

	category := createDTO.Category
	if category == "" {
		category = model.ForumCategoryDefault
	}

	isQuestion := util.IsQuestionTitle(title)
	if createDTO.IsQuestion != nil {
		isQuestion = *createDTO.IsQuestion
	}

	images := make([]model.PostImage, 0)
	if len(uploads) > 0 {
		uploaded, err := uploadImageBatch(ctx, s.store, consts.FolderForumPosts, uploads)
		if err != nil {
			return nil, err
		}
		images = uploaded
	}

	tags := createDTO.Tags
	if tags == nil {
		tags = []string{}
	}

	now := time.Now()
	post := &model.ForumPost{
		Title:      title,
		Content:    createDTO.Content,
		Author:     userID,
		IsQuestion: isQuestion,
		Category:   category,
		Tags:       tags,
		Images:     images,
		Likes:      []primitive.ObjectID{},
		Comments:   []model.Comment{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.forumRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.shapePost(ctx, post)
}

func (s *forumServiceImpl) UpdatePost(ctx context.Context, userID, postID primitive.ObjectID, updateDTO *dto.UpdatePostDTO) (*dto.ForumPostDTO, error) {
	post, err := s.getOwnedPost(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if updateDTO.Title != nil {
		title := strings.TrimSpace(*updateDTO.Title)
		set["title"] = title
		// A question-shaped title forces the flag on; it is never cleared
		// by a title change.
		if util.IsQuestionTitle(title) {
			set["isQuestion"] = true
		}
	}
	if updateDTO.Content != nil {
		set["content"] = *updateDTO.Content
	}
	if updateDTO.Category != nil {
		set["category"] = *updateDTO.Category
	}
	if updateDTO.Tags != nil {
		set["tags"] = *updateDTO.Tags
	}
	if len(set) == 0 {
		return s.shapePost(ctx, post)
	}

	updated, err := s.forumRepo.UpdateFields(ctx, postID, set)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrPostNotFound
	}
	return s.shapePost(ctx, updated)
}

func (s *forumServiceImpl) DeletePost(ctx context.Context, userID, postID primitive.ObjectID) error {
	post, err := s.getOwnedPost(ctx, userID, postID)
	if err != nil {
		return err
	}

	// Stored objects go first; a failed delete leaves an orphan that the
	// cleanup job reclaims later.
	deleteImageBatch(ctx, s.store, post.Images)

	return s.forumRepo.Delete(ctx, postID)
}

func (s *forumServiceImpl) AddComment(ctx context.Context, userID, postID primitive.ObjectID, commentDTO *dto.CreateCommentDTO) (*dto.ForumPostDTO, error) {
	post, err := s.forumRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	now := time.Now()
	comment := model.Comment{
		ID:        primitive.NewObjectID(),
		Author:    userID,
		Content:   commentDTO.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Newest comment first.
	comments := append([]model.Comment{comment}, post.Comments...)
	if err = s.forumRepo.SaveComments(ctx, post.ID, comments); err != nil {
		return nil, err
	}

	post.Comments = comments
	post.CommentCount = len(comments)
	return s.shapePost(ctx, post)
}

func (s *forumServiceImpl) DeleteComment(ctx context.Context, userID, postID, commentID primitive.ObjectID) error {
	post, err := s.forumRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}

	idx := -1
	for i, c := range post.Comments {
		if c.ID == commentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrCommentNotFound
	}
	// Only the comment author may remove it.
	if post.Comments[idx].Author != userID {
		return ErrNotOwner
	}

	comments := append(post.Comments[:idx:idx], post.Comments[idx+1:]...)
	return s.forumRepo.SaveComments(ctx, post.ID, comments)
}

func (s *forumServiceImpl) LikePost(ctx context.Context, userID, postID primitive.ObjectID) error {
	post, err := s.forumRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}

	for _, id := range post.Likes {
		if id == userID {
			return ErrAlreadyLiked
		}
	}

	likes := append([]primitive.ObjectID{userID}, post.Likes...)
	return s.forumRepo.SaveLikes(ctx, post.ID, likes)
}

func (s *forumServiceImpl) UnlikePost(ctx context.Context, userID, postID primitive.ObjectID) error {
	post, err := s.forumRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}

	idx := -1
	for i, id := range post.Likes {
		if id == userID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotLiked
	}

	likes := append(post.Likes[:idx:idx], post.Likes[idx+1:]...)
	return s.forumRepo.SaveLikes(ctx, post.ID, likes)
}

func (s *forumServiceImpl) AddImages(ctx context.Context, userID, postID primitive.ObjectID, uploads []*ImageUpload) (*dto.ForumPostDTO, error) {
	post, err := s.getOwnedPost(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	images, err := uploadImageBatch(ctx, s.store, consts.FolderForumPosts, uploads)
	if err != nil {
		return nil, err
	}

	updated, err := s.forumRepo.SaveImages(ctx, post.ID, append(post.Images, images...))
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrPostNotFound
	}
	return s.shapePost(ctx, updated)
}

func (s *forumServiceImpl) DeleteImage(ctx context.Context, userID, postID, imageID primitive.ObjectID) error {
	post, err := s.getOwnedPost(ctx, userID, postID)
	if err != nil {
		return err
	}

	idx := -1
	for i, img := range post.Images {
		if img.ID == imageID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrImageNotFound
	}

	if err = s.store.Delete(ctx, post.Images[idx].StorageID); err != nil {
		log.WarnContext(ctx, "failed to delete post image", "storageId", post.Images[idx].StorageID, "err", err)
	}

	images := append(post.Images[:idx:idx], post.Images[idx+1:]...)
	_, err = s.forumRepo.SaveImages(ctx, post.ID, images)
	return err
}

func (s *forumServiceImpl) getOwnedPost(ctx context.Context, userID, postID primitive.ObjectID) (*model.ForumPost, error) {
	post, err := s.forumRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if post.Author != userID {
		return nil, ErrNotOwner
	}
	return post, nil
}

// shapePost resolves the author summaries for the post and its comments
// in one batched lookup.
func (s *forumServiceImpl) shapePost(ctx context.Context, post *model.ForumPost) (*dto.ForumPostDTO, error) {
	idSet := map[primitive.ObjectID]struct{}{post.Author: {}}
	for _, c := range post.Comments {
		idSet[c.Author] = struct{}{}
	}
	ids := make([]primitive.ObjectID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	users, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	summaries := make(map[primitive.ObjectID]*model.AuthorSummary, len(users))
	for _, u := range users {
		summaries[u.ID] = u.Summary()
	}

	shaped := &dto.ForumPostDTO{}
	if err = copier.Copy(shaped, post); err != nil {
		return nil, err
	}
	shaped.Author = summaries[post.Author]

	comments := make([]*dto.CommentDTO, 0, len(post.Comments))
	for _, c := range post.Comments {
		comments = append(comments, &dto.CommentDTO{
			ID:        c.ID,
			Content:   c.Content,
			Author:    summaries[c.Author],
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		})
	}
	shaped.Comments = comments

	return shaped, nil
}
