package controllers

import (
	"net/http"

	"github.com/engrsakib/qa-with-go/models"
	"github.com/engrsakib/qa-with-go/services"
	"github.com/gin-gonic/gin"
)

// SaveQuestionDraft godoc
// @Summary      save a question draft
// @Description  Saving again with the same draftId, or the same realId, updates one draft record.
// @Tags         Drafts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        draft  body      object  true  "username, draftId, realId, edit (title, text, tagNames)"
// @Success      200    {object}  map[string]interface{}
// @Router       /draft/saveQuestionDraft [post]
func (h *Handler) SaveQuestionDraft(c *gin.Context) {
	var input struct {
		Username string                 `json:"username" binding:"required"`
		DraftID  string                 `json:"draftId"`
		RealID   string                 `json:"realId"`
		Edit     models.QuestionContent `json:"edit"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}
	if !sameUser(c, input.Username) {
		return
	}
	draftID, valid := parseOptionalID(c, input.DraftID, "Draft ID")
	if !valid {
		return
	}
	realID, valid := parseOptionalID(c, input.RealID, "Question ID")
	if !valid {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	draft, err := h.svc.SaveQuestionDraft(ctx, services.QuestionDraftInput{
		Username: input.Username,
		DraftID:  draftID,
		RealID:   realID,
		Edit:     input.Edit,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Draft saved", draft)
}

type postDraftInput struct {
	Username string `json:"username" binding:"required"`
	DraftID  string `json:"draftId" binding:"required"`
}

func (h *Handler) PostQuestionDraft(c *gin.Context) {
	var input postDraftInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}
	if !sameUser(c, input.Username) {
		return
	}
	draftID, valid := parseID(c, input.DraftID, "Draft ID")
	if !valid {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	question, err := h.svc.PostQuestionDraft(ctx, input.Username, draftID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Draft posted", question)
}

func (h *Handler) SaveAnswerDraft(c *gin.Context) {
	var input struct {
		Username string               `json:"username" binding:"required"`
		DraftID  string               `json:"draftId"`
		QID      string               `json:"qid" binding:"required"`
		RealID   string               `json:"realId"`
		Edit     models.AnswerContent `json:"edit"`
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
	draftID, valid := parseOptionalID(c, input.DraftID, "Draft ID")
	if !valid {
		return
	}
	realID, valid := parseOptionalID(c, input.RealID, "Answer ID")
	if !valid {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	draft, err := h.svc.SaveAnswerDraft(ctx, services.AnswerDraftInput{
		Username:   input.Username,
		DraftID:    draftID,
		QuestionID: qid,
		RealID:     realID,
		Edit:       input.Edit,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Draft saved", draft)
}

func (h *Handler) PostAnswerDraft(c *gin.Context) {
	var input postDraftInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}
	if !sameUser(c, input.Username) {
		return
	}
	draftID, valid := parseID(c, input.DraftID, "Draft ID")
	if !valid {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	answer, err := h.svc.PostAnswerDraft(ctx, input.Username, draftID)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Draft posted", answer)
}

func (h *Handler) GetDrafts(c *gin.Context) {
	username := c.Param("username")
	if !sameUser(c, username) {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	drafts, err := h.svc.ListDrafts(ctx, username)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Drafts fetched successfully", drafts)
}
