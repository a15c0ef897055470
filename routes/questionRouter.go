package routes

import (
	"github.com/engrsakib/qa-with-go/controllers"
	"github.com/gin-gonic/gin"
)

func QuestionRoutes(r *gin.Engine, h *controllers.Handler, auth gin.HandlerFunc) {
	questionGroup := r.Group("/question")
	{
		questionGroup.GET("/getQuestion", h.GetQuestions)
		questionGroup.GET("/getQuestionById/:qid", h.GetQuestionByID)
	}

	authGroup := questionGroup.Group("/")
	authGroup.Use(auth)
	{
		authGroup.POST("/addQuestion", h.AddQuestion)
		authGroup.POST("/upvoteQuestion", h.Upvote)
		authGroup.POST("/downvoteQuestion", h.Downvote)
	}
}

func AnswerRoutes(r *gin.Engine, h *controllers.Handler, auth gin.HandlerFunc) {
	answerGroup := r.Group("/answer")
	answerGroup.Use(auth)
	{
		answerGroup.POST("/addAnswer", h.AddAnswer)
		answerGroup.POST("/markCorrect", h.MarkCorrect)
	}
}

func TagRoutes(r *gin.Engine, h *controllers.Handler) {
	tagGroup := r.Group("/tag")
	{
		tagGroup.GET("/getTagsWithQuestionNumber", h.GetTagsWithQuestionNumber)
		tagGroup.GET("/getTagByName/:name", h.GetTagByName)
	}
}
