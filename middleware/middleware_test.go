package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/engrsakib/qa-with-go/models"
	"github.com/engrsakib/qa-with-go/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(tokens *utils.Tokens, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append([]gin.HandlerFunc{AuthMiddleware(tokens)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"username": CurrentUser(c)})
	})
	r.GET("/me", handlers...)
	return r
}

func get(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	tokens := utils.NewTokens("secret", time.Hour, 2*time.Hour)
	access, refresh, err := tokens.GenerateTokens("alice", string(models.UserTypeUser))
	require.NoError(t, err)
	r := newRouter(tokens)

	w := get(r, "Bearer "+access)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"username":"alice"}`, w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, get(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, access).Code, "missing Bearer prefix")
	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer garbage").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer "+refresh).Code, "refresh tokens are not access tokens")
}

func TestOptionalAuth(t *testing.T) {
	tokens := utils.NewTokens("secret", time.Hour, 2*time.Hour)
	access, refresh, err := tokens.GenerateTokens("alice", string(models.UserTypeUser))
	require.NoError(t, err)
	r := gin.New()
	r.GET("/me", OptionalAuth(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"username": CurrentUser(c)})
	})

	cases := map[string]struct {
		header string
		want   string
	}{
		"access token":  {header: "Bearer " + access, want: "alice"},
		"no header":     {header: "", want: ""},
		"garbage":       {header: "Bearer garbage", want: ""},
		"refresh token": {header: "Bearer " + refresh, want: ""},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			w := get(r, tc.header)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.JSONEq(t, `{"username":"`+tc.want+`"}`, w.Body.String())
		})
	}
}

func TestRoleMiddleware(t *testing.T) {
	tokens := utils.NewTokens("secret", time.Hour, 2*time.Hour)
	r := newRouter(tokens, RoleMiddleware(models.UserTypeModerator, models.UserTypeOwner))

	user, _, err := tokens.GenerateTokens("bob", string(models.UserTypeUser))
	require.NoError(t, err)
	mod, _, err := tokens.GenerateTokens("mia", string(models.UserTypeModerator))
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, get(r, "Bearer "+user).Code)
	assert.Equal(t, http.StatusOK, get(r, "Bearer "+mod).Code)
}
