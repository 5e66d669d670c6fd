package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"photo-share/internal/entity"
	"photo-share/internal/usecase"
	"photo-share/pkg/logger"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postUseCase usecase.PostUseCase
	logger      *logger.Logger
}

func NewPostHandler(postUseCase usecase.PostUseCase, logger *logger.Logger) *PostHandler {
	return &PostHandler{
		postUseCase: postUseCase,
		logger:      logger,
	}
}

// formImage returns the optional "image" upload. The caller closes it. A
// request without a file, or without a multipart body, carries no image.
func formImage(c *gin.Context) (*entity.Image, io.Closer, error) {
	header, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: unreadable image upload: %v", usecase.ErrValidation, err)
	}

	file, err := header.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: unreadable image upload: %v", usecase.ErrValidation, err)
	}

	return &entity.Image{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	}, file, nil
}

// CreatePost godoc
// @Summary      Create a new post
// @Description  Create a post owned by the authenticated user. Any user field in the form is ignored.
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        content formData string true "Caption"
// @Param        image formData file false "Image (jpg/png/gif), fitted into 1024x768"
// @Success      303  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	image, closer, err := formImage(c)
	if err != nil {
		respondError(c, h.logger, err, "Failed to create post")
		return
	}
	if closer != nil {
		defer closer.Close()
	}

	post, err := h.postUseCase.CreatePost(c.Request.Context(), actorFrom(c), c.PostForm("content"), image)
	if err != nil {
		respondError(c, h.logger, err, "Failed to create post")
		return
	}

	seeOther(c, postLocation(post.ID), gin.H{"post": post})
}

// GetPost godoc
// @Summary      Get post by ID
// @Description  Post with its author, like aggregates and comments (oldest first)
// @Tags         posts
// @Produce      json
// @Param        id path string true "Post ID"
// @Success      200  {object}  entity.PostDetail
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	detail, err := h.postUseCase.GetPost(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to get post")
		return
	}

	c.JSON(http.StatusOK, detail)
}

// UpdatePost godoc
// @Summary      Update post
// @Description  Update caption and optionally replace the image. Owner or superuser only.
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Param        content formData string true "Caption"
// @Param        image formData file false "Replacement image"
// @Success      303  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id}/update [post]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	image, closer, err := formImage(c)
	if err != nil {
		respondError(c, h.logger, err, "Failed to update post")
		return
	}
	if closer != nil {
		defer closer.Close()
	}

	post, err := h.postUseCase.UpdatePost(c.Request.Context(), actorFrom(c), c.Param("id"), c.PostForm("content"), image)
	if err != nil {
		respondError(c, h.logger, err, "Failed to update post")
		return
	}

	seeOther(c, postLocation(post.ID), gin.H{"post": post})
}

// DeletePost godoc
// @Summary      Delete post
// @Description  Delete a post with its comments and likes. Owner or superuser only. Redirects to the actor's profile.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      303  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id}/delete [post]
func (h *PostHandler) DeletePost(c *gin.Context) {
	actor := actorFrom(c)

	if err := h.postUseCase.DeletePost(c.Request.Context(), actor, c.Param("id")); err != nil {
		respondError(c, h.logger, err, "Failed to delete post")
		return
	}

	seeOther(c, userLocation(actor.UserID), gin.H{"message": "Post deleted"})
}

// LikePost godoc
// @Summary      Like a post
// @Description  Creates the like record (201) or reactivates the existing one (200)
// @Tags         likes
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      200  {object}  map[string]interface{}
// @Success      201  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id}/like [post]
func (h *PostHandler) LikePost(c *gin.Context) {
	postID := c.Param("id")

	created, err := h.postUseCase.LikePost(c.Request.Context(), actorFrom(c), postID)
	if err != nil {
		respondError(c, h.logger, err, "Failed to like post")
		return
	}

	if created {
		c.JSON(http.StatusCreated, gin.H{"message": "Post liked", "post_id": postID, "like": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Like updated", "post_id": postID, "like": true})
}

// DislikePost godoc
// @Summary      Dislike a post
// @Description  Clears the authenticated user's like on the post
// @Tags         likes
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id}/dislike [post]
func (h *PostHandler) DislikePost(c *gin.Context) {
	postID := c.Param("id")

	if err := h.postUseCase.DislikePost(c.Request.Context(), actorFrom(c), postID); err != nil {
		respondError(c, h.logger, err, "Failed to dislike post")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post disliked", "post_id": postID, "like": false})
}
