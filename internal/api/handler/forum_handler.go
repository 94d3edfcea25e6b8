package handler

import (
	"Sabzee/internal/api/dto"
	"Sabzee/internal/pkg/response"
	"Sabzee/internal/service"
	"time"

	"github.com/gin-gonic/gin"
)

// lastViewHeader carries the client's view marker; the response echoes a
// fresh one for the client to store.
const lastViewHeader = "Last-View-Time"

type ForumHandler struct {
	forumSvc service.ForumService
}

func NewForumHandler(forumSvc service.ForumService) *ForumHandler {
	return &ForumHandler{
		forumSvc: forumSvc,
	}
}

func (s *ForumHandler) ListPosts(c *gin.Context) {
	var listDTO dto.ForumListDTO
	if err := c.ShouldBindQuery(&listDTO); err != nil {
		response.Error(c, err)
		return
	}
	page, err := s.forumSvc.ListPosts(c.Request.Context(), &listDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

func (s *ForumHandler) GetPost(c *gin.Context) {
	postID, err := parseIDParamOr(c, "id", service.ErrPostNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}

	detail, err := s.forumSvc.GetPost(c.Request.Context(), postID, c.GetHeader(lastViewHeader))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header(lastViewHeader, detail.LastViewTime.Format(time.RFC3339))
	response.Success(c, detail)
}

func (s *ForumHandler) CreatePost(c *gin.Context) {
	var createDTO dto.CreatePostDTO
	if err := c.ShouldBind(&createDTO); err != nil {
		response.Error(c, err)
		return
	}

	uploads, closeAll, err := openUploads(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeAll()

	post, err := s.forumSvc.CreatePost(c.Request.Context(), currentUserID(c), &createDTO, uploads)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *ForumHandler) UpdatePost(c *gin.Context) {
	postID, err := parseIDParamOr(c, "id", service.ErrPostNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}

	var updateDTO dto.UpdatePostDTO
	if err = c.ShouldBind(&updateDTO); err != nil {
		response.Error(c, err)
		return
	}

	post, err := s.forumSvc.UpdatePost(c.Request.Context(), currentUserID(c), postID, &updateDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *ForumHandler) DeletePost(c *gin.Context) {
	postID, err := parseIDParamOr(c, "id", service.ErrPostNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = s.forumSvc.DeletePost(c.Request.Context(), currentUserID(c), postID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *ForumHandler) AddComment(c *gin.Context) {
	postID, err := parseIDParamOr(c, "id", service.ErrPostNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}

	var commentDTO dto.CreateCommentDTO
	if err = c.ShouldBind(&commentDTO); err != nil {
		response.Error(c, err)
		return
	}

	post, err := s.forumSvc.AddComment(c.Request.Context(), currentUserID(c), postID, &commentDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *ForumHandler) DeleteComment(c *gin.Context) {
	postID, err := parseIDParamOr(c, "id", service.ErrPostNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}
	commentID, err := parseIDParamOr(c, "commentId", service.ErrCommentNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = s.forumSvc.DeleteComment(c.Request.Context(), currentUserID(c), postID, commentID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *ForumHandler) LikePost(c *gin.Context) {
	postID, err := parseIDParamOr(c, "id", service.ErrPostNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = s.forumSvc.LikePost(c.Request.Context(), currentUserID(c), postID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *ForumHandler) UnlikePost(c *gin.Context) {
	postID, err := parseIDParamOr(c, "id", service.ErrPostNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = s.forumSvc.UnlikePost(c.Request.Context(), currentUserID(c), postID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *ForumHandler) AddImages(c *gin.Context) {
	postID, err := parseIDParamOr(c, "id", service.ErrPostNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}

	uploads, closeAll, err := openUploads(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer closeAll()

	post, err := s.forumSvc.AddImages(c.Request.Context(), currentUserID(c), postID, uploads)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *ForumHandler) DeleteImage(c *gin.Context) {
	postID, err := parseIDParamOr(c, "id", service.ErrPostNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}
	imageID, err := parseIDParamOr(c, "imageId", service.ErrImageNotFound)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = s.forumSvc.DeleteImage(c.Request.Context(), currentUserID(c), postID, imageID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
