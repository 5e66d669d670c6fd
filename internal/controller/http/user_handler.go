package http

import (
	"net/http"

	"photo-share/internal/usecase"
	"photo-share/pkg/logger"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userUseCase usecase.UserUseCase
	logger      *logger.Logger
}

func NewUserHandler(userUseCase usecase.UserUseCase, logger *logger.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		logger:      logger,
	}
}

// GetProfile godoc
// @Summary      Get user profile
// @Description  Get a user together with every post they authored
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200  {object}  entity.Profile
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	profile, err := h.userUseCase.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to get profile")
		return
	}

	c.JSON(http.StatusOK, profile)
}

// Search godoc
// @Summary      Search users
// @Description  Case-insensitive substring match on email, first name and last name. A missing or empty phrase returns no users.
// @Tags         users
// @Produce      json
// @Param        q query string false "Search phrase"
// @Success      200  {object}  map[string]interface{}
// @Router       /search [get]
func (h *UserHandler) Search(c *gin.Context) {
	phrase := c.Query("q")

	users, err := h.userUseCase.Search(c.Request.Context(), phrase)
	if err != nil {
		respondError(c, h.logger, err, "Failed to search users")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query": phrase,
		"users": users,
		"count": len(users),
	})
}

// Follow godoc
// @Summary      Follow a user
// @Description  Add the user to the authenticated user's following set
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{id}/follow [post]
func (h *UserHandler) Follow(c *gin.Context) {
	targetID := c.Param("id")

	if err := h.userUseCase.Follow(c.Request.Context(), actorFrom(c), targetID); err != nil {
		respondError(c, h.logger, err, "Failed to follow user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user_id": targetID, "following": true})
}

// Unfollow godoc
// @Summary      Unfollow a user
// @Description  Remove the user from the authenticated user's following set
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "User ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{id}/unfollow [post]
func (h *UserHandler) Unfollow(c *gin.Context) {
	targetID := c.Param("id")

	if err := h.userUseCase.Unfollow(c.Request.Context(), actorFrom(c), targetID); err != nil {
		respondError(c, h.logger, err, "Failed to unfollow user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user_id": targetID, "following": false})
}
