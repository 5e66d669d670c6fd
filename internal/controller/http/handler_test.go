package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"photo-share/internal/entity"
	"photo-share/internal/usecase"
	"photo-share/pkg/logger"
	"photo-share/pkg/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// asUser stands in for the auth middleware.
func asUser(userID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
		c.Set(middleware.ContextUserRole, role)
		c.Next()
	}
}

func formRequest(method, target string, values url.Values) *http.Request {
	req, _ := http.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

var user123 = entity.Actor{UserID: "user-123", Authenticated: true}

func TestActorFrom(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, entity.Anonymous(), actorFrom(c))

	c.Set(middleware.ContextUserID, "admin")
	c.Set(middleware.ContextUserRole, "superuser")
	assert.Equal(t, entity.Actor{UserID: "admin", Authenticated: true, IsSuperuser: true}, actorFrom(c))

	c.Set(middleware.ContextUserRole, "user")
	assert.False(t, actorFrom(c).IsSuperuser)
}

func TestCreatePost_IgnoresForgedOwner(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/posts", asUser("user-123", "user"), handler.CreatePost)

	mockUseCase.On("CreatePost", mock.Anything, user123, "hello", (*entity.Image)(nil)).
		Return(&entity.Post{ID: "post-1", UserID: "user-123", Content: "hello"}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, formRequest("POST", "/posts", url.Values{
		"content": {"hello"},
		"user":    {"victim"},
		"user_id": {"victim"},
	}))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/api/v1/posts/post-1", w.Header().Get("Location"))
	response := decode(t, w)
	post := response["post"].(map[string]interface{})
	assert.Equal(t, "user-123", post["user_id"])
	mockUseCase.AssertExpectations(t)
}

func TestCreatePost_WithImage(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/posts", asUser("user-123", "user"), handler.CreatePost)

	mockUseCase.On("CreatePost", mock.Anything, user123, "beach", mock.MatchedBy(func(img *entity.Image) bool {
		return img != nil && img.Filename == "beach.png"
	})).Return(&entity.Post{ID: "post-2", UserID: "user-123"}, nil)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("content", "beach"))
	part, err := writer.CreateFormFile("image", "beach.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake-png-bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, _ := http.NewRequest("POST", "/posts", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestCreatePost_MultipartWithoutImage(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/posts", asUser("user-123", "user"), handler.CreatePost)

	mockUseCase.On("CreatePost", mock.Anything, user123, "caption only", (*entity.Image)(nil)).
		Return(&entity.Post{ID: "post-3", UserID: "user-123"}, nil)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("content", "caption only"))
	require.NoError(t, writer.Close())

	req, _ := http.NewRequest("POST", "/posts", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestCreatePost_BrokenUploadIsRejected(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/posts", asUser("user-123", "user"), handler.CreatePost)
	router.POST("/posts/:id/update", asUser("user-123", "user"), handler.UpdatePost)

	// the closing boundary never arrives
	truncated := "--xyz\r\n" +
		"Content-Disposition: form-data; name=\"image\"; filename=\"cat.png\"\r\n" +
		"Content-Type: image/png\r\n\r\n" +
		"partial-bytes"

	for _, target := range []string{"/posts", "/posts/post-1/update"} {
		req, _ := http.NewRequest("POST", target, strings.NewReader(truncated))
		req.Header.Set("Content-Type", "multipart/form-data; boundary=xyz")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, target)
		assert.Contains(t, decode(t, w)["error"], "unreadable image upload")
	}

	mockUseCase.AssertNotCalled(t, "CreatePost", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockUseCase.AssertNotCalled(t, "UpdatePost", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreatePost_EmptyContent(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/posts", asUser("user-123", "user"), handler.CreatePost)

	mockUseCase.On("CreatePost", mock.Anything, user123, "", (*entity.Image)(nil)).
		Return(nil, fmt.Errorf("%w: content is required", usecase.ErrValidation))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, formRequest("POST", "/posts", url.Values{}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetPost_NotFound(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/posts/:id", handler.GetPost)

	mockUseCase.On("GetPost", mock.Anything, entity.Anonymous(), "missing").
		Return(nil, fmt.Errorf("post %w", usecase.ErrNotFound))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts/missing", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "post not found", decode(t, w)["error"])
}

func TestGetPost_Success(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/posts/:id", asUser("user-123", "user"), handler.GetPost)

	mockUseCase.On("GetPost", mock.Anything, user123, "post-1").Return(&entity.PostDetail{
		Post:        &entity.Post{ID: "post-1"},
		LikeCount:   2,
		LikedByUser: 1,
		Comments:    []*entity.Comment{},
	}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts/post-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	response := decode(t, w)
	assert.Equal(t, float64(2), response["like_count"])
	assert.Equal(t, float64(1), response["liked_by_user"])
}

func TestUpdatePost_Forbidden(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/posts/:id/update", asUser("user-123", "user"), handler.UpdatePost)

	mockUseCase.On("UpdatePost", mock.Anything, user123, "post-1", "edited", (*entity.Image)(nil)).
		Return(nil, fmt.Errorf("%w: you can only edit your own posts", usecase.ErrForbidden))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, formRequest("POST", "/posts/post-1/update", url.Values{"content": {"edited"}}))

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestUpdatePost_RedirectsToPost(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/posts/:id/update", asUser("user-123", "user"), handler.UpdatePost)

	mockUseCase.On("UpdatePost", mock.Anything, user123, "post-1", "edited", (*entity.Image)(nil)).
		Return(&entity.Post{ID: "post-1", UserID: "user-123", Content: "edited"}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, formRequest("POST", "/posts/post-1/update", url.Values{"content": {"edited"}}))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/api/v1/posts/post-1", w.Header().Get("Location"))
}

func TestDeletePost_RedirectsToProfile(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/posts/:id/delete", asUser("user-123", "user"), handler.DeletePost)

	mockUseCase.On("DeletePost", mock.Anything, user123, "post-1").Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/post-1/delete", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/api/v1/users/user-123", w.Header().Get("Location"))
}

func TestLikePost_Created(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/posts/:id/like", asUser("user-123", "user"), handler.LikePost)

	mockUseCase.On("LikePost", mock.Anything, user123, "post-1").Return(true, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/post-1/like", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, true, decode(t, w)["like"])
}

func TestLikePost_Updated(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/posts/:id/like", asUser("user-123", "user"), handler.LikePost)

	mockUseCase.On("LikePost", mock.Anything, user123, "post-1").Return(false, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/post-1/like", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLikePost_PostNotFound(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/posts/:id/like", asUser("user-123", "user"), handler.LikePost)

	mockUseCase.On("LikePost", mock.Anything, user123, "missing").Return(false, fmt.Errorf("post %w", usecase.ErrNotFound))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/missing/like", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDislikePost(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/posts/:id/dislike", asUser("user-123", "user"), handler.DislikePost)

	mockUseCase.On("DislikePost", mock.Anything, user123, "post-1").Return(nil)
	mockUseCase.On("DislikePost", mock.Anything, user123, "post-2").Return(fmt.Errorf("like %w", usecase.ErrNotFound))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/post-1/dislike", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode(t, w)["like"])

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("POST", "/posts/post-2/dislike", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPostHandler_InternalError(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/posts/:id/like", asUser("user-123", "user"), handler.LikePost)

	mockUseCase.On("LikePost", mock.Anything, user123, "post-1").Return(false, assert.AnError)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/post-1/like", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to like post", decode(t, w)["error"])
}

func TestCreateComment_IgnoresForgedPost(t *testing.T) {
	mockUseCase := new(MockCommentUseCase)
	handler := NewCommentHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/posts/:id/comments", asUser("user-123", "user"), handler.CreateComment)

	mockUseCase.On("CreateComment", mock.Anything, user123, "post-1", "nice").
		Return(&entity.Comment{ID: "c1", PostID: "post-1", UserID: "user-123", Content: "nice"}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, formRequest("POST", "/posts/post-1/comments", url.Values{
		"content": {"nice"},
		"post":    {"post-2"},
		"post_id": {"post-2"},
	}))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/api/v1/posts/post-1", w.Header().Get("Location"))
	mockUseCase.AssertExpectations(t)
}

func TestCreateComment_PostNotFound(t *testing.T) {
	mockUseCase := new(MockCommentUseCase)
	handler := NewCommentHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/posts/:id/comments", asUser("user-123", "user"), handler.CreateComment)

	mockUseCase.On("CreateComment", mock.Anything, user123, "missing", "nice").
		Return(nil, fmt.Errorf("post %w", usecase.ErrNotFound))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, formRequest("POST", "/posts/missing/comments", url.Values{"content": {"nice"}}))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateComment(t *testing.T) {
	mockUseCase := new(MockCommentUseCase)
	handler := NewCommentHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/comments/:id/update", asUser("user-123", "user"), handler.UpdateComment)

	mockUseCase.On("UpdateComment", mock.Anything, user123, "c1", "edited").
		Return(&entity.Comment{ID: "c1", PostID: "post-1", Content: "edited"}, nil)
	mockUseCase.On("UpdateComment", mock.Anything, user123, "c2", "edited").
		Return(nil, fmt.Errorf("%w: you can only edit your own comments", usecase.ErrForbidden))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, formRequest("POST", "/comments/c1/update", url.Values{"content": {"edited"}}))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/api/v1/posts/post-1", w.Header().Get("Location"))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, formRequest("POST", "/comments/c2/update", url.Values{"content": {"edited"}}))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDeleteComment_RedirectsToPost(t *testing.T) {
	mockUseCase := new(MockCommentUseCase)
	handler := NewCommentHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/comments/:id/delete", asUser("user-123", "user"), handler.DeleteComment)

	mockUseCase.On("DeleteComment", mock.Anything, user123, "c1").Return("post-1", nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/comments/c1/delete", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/api/v1/posts/post-1", w.Header().Get("Location"))
}

func TestSearch_MissingQuery(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/search", handler.Search)

	mockUseCase.On("Search", mock.Anything, "").Return([]*entity.User{}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/search", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	response := decode(t, w)
	assert.Equal(t, float64(0), response["count"])
	assert.Equal(t, []interface{}{}, response["users"])
}

func TestSearch_WithQuery(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/search", handler.Search)

	mockUseCase.On("Search", mock.Anything, "ada").Return([]*entity.User{{ID: "user-1", Email: "ada@example.com"}}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/search?q=ada", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["count"])
}

func TestGetProfile(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/users/:id", handler.GetProfile)

	mockUseCase.On("GetProfile", mock.Anything, "user-1").Return(&entity.Profile{
		User:  &entity.User{ID: "user-1"},
		Posts: []*entity.Post{{ID: "p1"}},
	}, nil)
	mockUseCase.On("GetProfile", mock.Anything, "ghost").Return(nil, fmt.Errorf("user %w", usecase.ErrNotFound))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/users/user-1", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["posts"], 1)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/users/ghost", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFollow_Self(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewUserHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/users/:id/follow", asUser("user-123", "user"), handler.Follow)

	mockUseCase.On("Follow", mock.Anything, user123, "user-123").
		Return(fmt.Errorf("%w: you cannot follow yourself", usecase.ErrValidation))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/users/user-123/follow", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetFeed_Unauthenticated(t *testing.T) {
	mockUseCase := new(MockFeedUseCase)
	handler := NewFeedHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/feed", handler.GetFeed)

	mockUseCase.On("GetFeed", mock.Anything, entity.Anonymous(), 0, 0).Return(nil, usecase.ErrUnauthenticated)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/feed", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetFeed_Pagination(t *testing.T) {
	mockUseCase := new(MockFeedUseCase)
	handler := NewFeedHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/feed", asUser("user-123", "user"), handler.GetFeed)

	mockUseCase.On("GetFeed", mock.Anything, user123, 5, 10).Return([]*entity.Post{{ID: "p1"}}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/feed?limit=5&offset=10", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	response := decode(t, w)
	assert.Equal(t, float64(1), response["count"])
	assert.Equal(t, float64(5), response["limit"])
}

func TestGetFeed_LimitIsClamped(t *testing.T) {
	mockUseCase := new(MockFeedUseCase)
	handler := NewFeedHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/feed", asUser("user-123", "user"), handler.GetFeed)

	mockUseCase.On("GetFeed", mock.Anything, user123, usecase.MaxFeedLimit, 0).Return([]*entity.Post{}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/feed?limit=500", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(usecase.MaxFeedLimit), decode(t, w)["limit"])
	mockUseCase.AssertExpectations(t)
}

func TestRegister(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewAuthHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/register", handler.Register)

	input := usecase.RegisterInput{
		Email:     "ada@example.com",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Password1: "analytical",
		Password2: "analytical",
	}
	mockUseCase.On("Register", mock.Anything, input).Return(&entity.User{ID: "user-1", Email: "ada@example.com"}, "token-abc", nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, formRequest("POST", "/register", url.Values{
		"email":      {"ada@example.com"},
		"first_name": {"Ada"},
		"last_name":  {"Lovelace"},
		"password1":  {"analytical"},
		"password2":  {"analytical"},
	}))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "token-abc", decode(t, w)["token"])
}

func TestRegister_Conflict(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewAuthHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/register", handler.Register)

	mockUseCase.On("Register", mock.Anything, mock.Anything).Return(nil, "", fmt.Errorf("user with this email %w", usecase.ErrConflict))

	body, _ := json.Marshal(map[string]string{
		"email":     "ada@example.com",
		"password1": "analytical",
		"password2": "analytical",
	})
	req, _ := http.NewRequest("POST", "/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegister_MissingFields(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewAuthHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/register", handler.Register)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, formRequest("POST", "/register", url.Values{"email": {"ada@example.com"}}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewAuthHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/login", handler.Login)

	mockUseCase.On("Login", mock.Anything, "ada@example.com", "wrong").Return(nil, "", usecase.ErrInvalidCredentials)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, formRequest("POST", "/login", url.Values{
		"email":    {"ada@example.com"},
		"password": {"wrong"},
	}))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMe(t *testing.T) {
	mockUseCase := new(MockUserUseCase)
	handler := NewAuthHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/me", asUser("user-123", "user"), handler.Me)

	mockUseCase.On("GetUser", mock.Anything, "user-123").Return(&entity.User{ID: "user-123", Email: "me@example.com"}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/me", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	response := decode(t, w)
	assert.Equal(t, "me@example.com", response["email"])
	assert.NotContains(t, response, "password")
}
