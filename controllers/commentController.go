package controllers

import (
	"net/http"

	"github.com/engrsakib/qa-with-go/models"
	"github.com/engrsakib/qa-with-go/services"
	"github.com/gin-gonic/gin"
)

// AddComment godoc
// @Summary      comment on a question or an answer
// @Description  type is "question" or "answer" and id is that post's ID. Locked posts reject comments with 409.
// @Tags         Comments
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        comment  body      object  true  "id, type, comment (text, commentBy)"
// @Success      201      {object}  map[string]interface{}
// @Failure      400      {object}  map[string]interface{}
// @Router       /comment/addComment [post]
func (h *Handler) AddComment(c *gin.Context) {
	var input struct {
		ID      string          `json:"id" binding:"required"`
		Type    models.PostType `json:"type" binding:"required,oneof=question answer"`
		Comment struct {
			Text      string `json:"text" binding:"required"`
			CommentBy string `json:"commentBy" binding:"required"`
		} `json:"comment"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}
	if !sameUser(c, input.Comment.CommentBy) {
		return
	}
	parentID, valid := parseID(c, input.ID, "Post ID")
	if !valid {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	comment, err := h.svc.AddComment(ctx, parentID, input.Type, services.NewComment{
		Text:      input.Comment.Text,
		CommentBy: input.Comment.CommentBy,
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusCreated, "Comment added successfully", comment)
}
