package http

import (
	"photo-share/internal/usecase"
	"photo-share/pkg/logger"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentUseCase usecase.CommentUseCase
	logger         *logger.Logger
}

func NewCommentHandler(commentUseCase usecase.CommentUseCase, logger *logger.Logger) *CommentHandler {
	return &CommentHandler{
		commentUseCase: commentUseCase,
		logger:         logger,
	}
}

// CreateComment godoc
// @Summary      Comment on a post
// @Description  The post is taken from the path; a post field in the form is ignored
// @Tags         comments
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Param        content formData string true "Comment text"
// @Success      303  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id}/comments [post]
func (h *CommentHandler) CreateComment(c *gin.Context) {
	comment, err := h.commentUseCase.CreateComment(c.Request.Context(), actorFrom(c), c.Param("id"), c.PostForm("content"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to create comment")
		return
	}

	seeOther(c, postLocation(comment.PostID), gin.H{"comment": comment})
}

// UpdateComment godoc
// @Summary      Update comment
// @Description  Owner or superuser only. Redirects to the parent post.
// @Tags         comments
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Comment ID"
// @Param        content formData string true "Comment text"
// @Success      303  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /comments/{id}/update [post]
func (h *CommentHandler) UpdateComment(c *gin.Context) {
	comment, err := h.commentUseCase.UpdateComment(c.Request.Context(), actorFrom(c), c.Param("id"), c.PostForm("content"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to update comment")
		return
	}

	seeOther(c, postLocation(comment.PostID), gin.H{"comment": comment})
}

// DeleteComment godoc
// @Summary      Delete comment
// @Description  Owner or superuser only. Redirects to the parent post.
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Comment ID"
// @Success      303  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /comments/{id}/delete [post]
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	postID, err := h.commentUseCase.DeleteComment(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to delete comment")
		return
	}

	seeOther(c, postLocation(postID), gin.H{"message": "Comment deleted"})
}
