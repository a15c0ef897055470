package routes

import (
	"github.com/engrsakib/qa-with-go/controllers"
	"github.com/engrsakib/qa-with-go/middleware"
	"github.com/engrsakib/qa-with-go/models"
	"github.com/gin-gonic/gin"
)

// ActionRoutes checks the role claim up front. The service checks the
// stored role again, so a demoted user holding an old token is still refused.
func ActionRoutes(r *gin.Engine, h *controllers.Handler, auth gin.HandlerFunc) {
	actionGroup := r.Group("/action")
	actionGroup.Use(auth, middleware.RoleMiddleware(models.UserTypeModerator, models.UserTypeOwner))
	{
		actionGroup.POST("/takeAction", h.TakeAction)
	}
}

func DraftRoutes(r *gin.Engine, h *controllers.Handler, auth gin.HandlerFunc) {
	draftGroup := r.Group("/draft")
	draftGroup.Use(auth)
	{
		draftGroup.POST("/saveQuestionDraft", h.SaveQuestionDraft)
		draftGroup.POST("/postQuestionDraft", h.PostQuestionDraft)
		draftGroup.POST("/saveAnswerDraft", h.SaveAnswerDraft)
		draftGroup.POST("/postAnswerDraft", h.PostAnswerDraft)
		draftGroup.GET("/getDrafts/:username", h.GetDrafts)
	}
}
