package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetTagsWithQuestionNumber(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	tags, err := h.svc.TagsWithQuestionCount(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Tags fetched successfully", tags)
}

func (h *Handler) GetTagByName(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	tag, err := h.svc.GetTagByName(ctx, c.Param("name"))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Tag fetched successfully", tag)
}
