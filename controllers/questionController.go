package controllers

import (
	"context"
	"net/http"

	"github.com/engrsakib/qa-with-go/models"
	"github.com/engrsakib/qa-with-go/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type tagInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// GetQuestions godoc
// @Summary      list questions
// @Description  order is one of newest, unanswered, active, mostViewed. search takes keywords and [tag] terms.
// @Tags         Questions
// @Produce      json
// @Param        order   query     string  false  "Sort order"
// @Param        search  query     string  false  "Search string"
// @Success      200     {object}  map[string]interface{}
// @Router       /question/getQuestion [get]
func (h *Handler) GetQuestions(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	questions, err := h.svc.GetQuestions(ctx, services.ParseOrder(c.Query("order")), c.Query("search"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Questions fetched successfully", questions)
}

// GetQuestionByID godoc
// @Summary      get one question
// @Description  When username is given the user is recorded as a viewer.
// @Tags         Questions
// @Produce      json
// @Param        qid       path      string  true   "Question ID"
// @Param        username  query     string  false  "Viewer"
// @Success      200       {object}  map[string]interface{}
// @Failure      404       {object}  map[string]interface{}
// @Router       /question/getQuestionById/{qid} [get]
func (h *Handler) GetQuestionByID(c *gin.Context) {
	qid, valid := parseID(c, c.Param("qid"), "Question ID")
	if !valid {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	question, err := h.svc.GetQuestionByID(ctx, qid, c.Query("username"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Question fetched successfully", question)
}

// AddQuestion godoc
// @Summary      ask a question
// @Tags         Questions
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        question  body      object  true  "title, text, tags, askedBy"
// @Success      201       {object}  map[string]interface{}
// @Failure      400       {object}  map[string]interface{}
// @Router       /question/addQuestion [post]
func (h *Handler) AddQuestion(c *gin.Context) {
	var input struct {
		Title   string     `json:"title" binding:"required"`
		Text    string     `json:"text" binding:"required"`
		Tags    []tagInput `json:"tags" binding:"required,dive"`
		AskedBy string     `json:"askedBy" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}
	if !sameUser(c, input.AskedBy) {
		return
	}

	tags := make([]services.NewTag, 0, len(input.Tags))
	for _, t := range input.Tags {
		tags = append(tags, services.NewTag{Name: t.Name, Description: t.Description})
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	question, err := h.svc.AddQuestion(ctx, services.NewQuestion{
		Title:   input.Title,
		Text:    input.Text,
		Tags:    tags,
		AskedBy: input.AskedBy,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, "Question added successfully", question)
}

type voteInput struct {
	QID      string `json:"qid" binding:"required"`
	Username string `json:"username" binding:"required"`
}

func (h *Handler) Upvote(c *gin.Context) {
	h.vote(c, h.svc.Upvote)
}

func (h *Handler) Downvote(c *gin.Context) {
	h.vote(c, h.svc.Downvote)
}

func (h *Handler) vote(c *gin.Context, apply func(ctx context.Context, qid primitive.ObjectID, username string) (models.VoteUpdate, error)) {
	var input voteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}
	if !sameUser(c, input.Username) {
		return
	}
	qid, valid := parseID(c, input.QID, "Question ID")
	if !valid {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	update, err := apply(ctx, qid, input.Username)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Vote recorded", update)
}
