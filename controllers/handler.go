// Package controllers holds the gin handlers. Handlers bind and check the
// request, call services, and render either
//
//	{"status": true, "message": ..., "data": ...}
//
// or {"error": ...} with a status taken from the errorz kind.
package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/engrsakib/qa-with-go/errorz"
	"github.com/engrsakib/qa-with-go/middleware"
	"github.com/engrsakib/qa-with-go/services"
	"github.com/engrsakib/qa-with-go/utils"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const requestTimeout = 10 * time.Second

type Handler struct {
	svc    *services.Service
	tokens *utils.Tokens
}

func NewHandler(svc *services.Service, tokens *utils.Tokens) *Handler {
	return &Handler{svc: svc, tokens: tokens}
}

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

func ok(c *gin.Context, status int, message string, data any) {
	c.JSON(status, gin.H{
		"status":  true,
		"message": message,
		"data":    data,
	})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, errorz.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, errorz.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, errorz.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, errorz.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errorz.ErrConflict), errors.Is(err, errorz.ErrLocked):
		return http.StatusConflict
	case errors.Is(err, errorz.ErrNotImplemented):
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func fail(c *gin.Context, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		log.Printf("controllers: %s %s: %v", c.Request.Method, c.FullPath(), err)
	}
	c.JSON(status, gin.H{"error": errorz.Message(err)})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// sameUser fails the request with 403 unless username is the token's user.
func sameUser(c *gin.Context, username string) bool {
	if username != middleware.CurrentUser(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "username does not match the logged-in user"})
		return false
	}
	return true
}

func parseID(c *gin.Context, hex, what string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		badRequest(c, "Invalid "+what)
		return primitive.NilObjectID, false
	}
	return id, true
}

// parseOptionalID is parseID for fields that may be left empty.
func parseOptionalID(c *gin.Context, hex, what string) (*primitive.ObjectID, bool) {
	if hex == "" {
		return nil, true
	}
	id, valid := parseID(c, hex, what)
	if !valid {
		return nil, false
	}
	return &id, true
}
