package controllers

import (
	"net/http"

	"github.com/engrsakib/qa-with-go/services"
	"github.com/gin-gonic/gin"
)

// AddAnswer godoc
// @Summary      answer a question
// @Description  Fails with 409 when the question is locked.
// @Tags         Answers
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        answer  body      object  true  "qid, ans (text, ansBy)"
// @Success      201     {object}  map[string]interface{}
// @Failure      409     {object}  map[string]interface{}
// @Router       /answer/addAnswer [post]
func (h *Handler) AddAnswer(c *gin.Context) {
	var input struct {
		QID string `json:"qid" binding:"required"`
		Ans struct {
			Text  string `json:"text" binding:"required"`
			AnsBy string `json:"ansBy" binding:"required"`
		} `json:"ans"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}
	if !sameUser(c, input.Ans.AnsBy) {
		return
	}
	qid, valid := parseID(c, input.QID, "Question ID")
	if !valid {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	answer, err := h.svc.AddAnswer(ctx, qid, services.NewAnswer{Text: input.Ans.Text, AnsBy: input.Ans.AnsBy})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, "Answer added successfully", answer)
}

func (h *Handler) MarkCorrect(c *gin.Context) {
	var input struct {
		QID      string `json:"qid" binding:"required"`
		AID      string `json:"aid" binding:"required"`
		Username string `json:"username" binding:"required"`
	}
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
	aid, valid := parseID(c, input.AID, "Answer ID")
	if !valid {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	question, err := h.svc.MarkCorrect(ctx, qid, aid, input.Username)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Answer accepted", question)
}
