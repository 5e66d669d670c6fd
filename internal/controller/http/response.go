package http

import (
	"errors"
	"net/http"

	"photo-share/internal/entity"
	"photo-share/internal/usecase"
	"photo-share/pkg/logger"
	"photo-share/pkg/middleware"

	"github.com/gin-gonic/gin"
)

const BasePath = "/api/v1"

func postLocation(postID string) string {
	return BasePath + "/posts/" + postID
}

func userLocation(userID string) string {
	return BasePath + "/users/" + userID
}

// actorFrom builds the acting identity from the claims the auth middleware
// stored on the context. Requests without claims are anonymous.
func actorFrom(c *gin.Context) entity.Actor {
	userID := c.GetString(middleware.ContextUserID)
	if userID == "" {
		return entity.Anonymous()
	}
	return entity.Actor{
		UserID:        userID,
		Authenticated: true,
		IsSuperuser:   c.GetString(middleware.ContextUserRole) == string(entity.RoleSuperuser),
	}
}

// seeOther answers a successful form submission with 303 and the location of
// the resource the client should load next.
func seeOther(c *gin.Context, location string, body gin.H) {
	if body == nil {
		body = gin.H{}
	}
	body["location"] = location
	c.Header("Location", location)
	c.JSON(http.StatusSeeOther, body)
}

func respondError(c *gin.Context, log *logger.Logger, err error, message string) {
	switch {
	case errors.Is(err, usecase.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrUnauthenticated), errors.Is(err, usecase.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Error("%s: %v", message, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": message})
	}
}
