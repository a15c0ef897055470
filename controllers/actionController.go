package controllers

import (
	"net/http"

	"github.com/engrsakib/qa-with-go/models"
	"github.com/gin-gonic/gin"
)

// TakeAction godoc
// @Summary      moderate a post
// @Description  actionType is pin, lock, remove or promote. Removing an answer needs parentID; removing a comment needs parentID and parentPostType.
// @Tags         Actions
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        action  body      object  true  "user, actionType, postType, postID, parentID, parentPostType"
// @Success      200     {object}  map[string]interface{}
// @Failure      403     {object}  map[string]interface{}
// @Failure      501     {object}  map[string]interface{}
// @Router       /action/takeAction [post]
func (h *Handler) TakeAction(c *gin.Context) {
	var input struct {
		User           string `json:"user" binding:"required"`
		ActionType     string `json:"actionType" binding:"required"`
		PostType       string `json:"postType" binding:"required"`
		PostID         string `json:"postID" binding:"required"`
		ParentID       string `json:"parentID"`
		ParentPostType string `json:"parentPostType"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}
	if !sameUser(c, input.User) {
		return
	}
	postID, valid := parseID(c, input.PostID, "Post ID")
	if !valid {
		return
	}
	parentID, valid := parseOptionalID(c, input.ParentID, "Parent ID")
	if !valid {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	result, err := h.svc.TakeAction(ctx, models.Action{
		User:       input.User,
		Type:       models.ActionType(input.ActionType),
		PostType:   models.PostType(input.PostType),
		PostID:     postID,
		ParentID:   parentID,
		ParentType: models.PostType(input.ParentPostType),
	})
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Action applied", result)
}
