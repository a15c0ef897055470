// Package routes mounts the HTTP API and the push socket on a gin engine.
package routes

import (
	"net/http"

	"github.com/engrsakib/qa-with-go/controllers"
	"github.com/engrsakib/qa-with-go/middleware"
	"github.com/engrsakib/qa-with-go/utils"
	"github.com/gin-gonic/gin"
)

// Setup registers every route. socket serves GET /socket and may be nil.
func Setup(r *gin.Engine, h *controllers.Handler, tokens *utils.Tokens, socket http.Handler) {
	auth := middleware.AuthMiddleware(tokens)

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Q&A server is running"})
	})

	LoginRoutes(r, h)
	UserRoutes(r, h, auth, middleware.OptionalAuth(tokens))
	QuestionRoutes(r, h, auth)
	AnswerRoutes(r, h, auth)
	CommentRoutes(r, h, auth)
	ActionRoutes(r, h, auth)
	TagRoutes(r, h)
	DraftRoutes(r, h, auth)

	if socket != nil {
		r.GET("/socket", gin.WrapH(socket))
	}
}
