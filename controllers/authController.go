package controllers

import (
	"errors"
	"net/http"

	"github.com/engrsakib/qa-with-go/errorz"
	"github.com/engrsakib/qa-with-go/middleware"
	"github.com/engrsakib/qa-with-go/models"
	"github.com/engrsakib/qa-with-go/services"
	"github.com/gin-gonic/gin"
)

type session struct {
	Token        string         `json:"token"`
	RefreshToken string         `json:"refreshToken"`
	User         models.Account `json:"user"`
}

func (h *Handler) session(c *gin.Context, status int, message string, a models.Account) {
	access, refresh, err := h.tokens.GenerateTokens(a.Username, string(a.UserType))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, status, message, session{Token: access, RefreshToken: refresh, User: a})
}

// CreateAccount godoc
// @Summary      register a new user
// @Description  Username and email must both be unused. Returns the account with a login token.
// @Tags         Login
// @Accept       json
// @Produce      json
// @Param        user  body      object  true  "username, email, password"
// @Success      201   {object}  map[string]interface{}
// @Failure      409   {object}  map[string]interface{}
// @Router       /login/createAccount [post]
func (h *Handler) CreateAccount(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	account, err := h.svc.CreateAccount(ctx, services.NewAccount{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		fail(c, err)
		return
	}
	h.session(c, http.StatusCreated, "Account created successfully", account)
}

// Login godoc
// @Summary      log in
// @Tags         Login
// @Accept       json
// @Produce      json
// @Param        credentials  body      object  true  "username, password"
// @Success      200          {object}  map[string]interface{}
// @Failure      401          {object}  map[string]interface{}
// @Router       /login/login [post]
func (h *Handler) Login(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	account, err := h.svc.Login(ctx, input.Username, input.Password)
	if err != nil {
		fail(c, err)
		return
	}
	h.session(c, http.StatusOK, "Login successful", account)
}

// RefreshToken godoc
// @Summary      exchange a refresh token for a new session
// @Tags         Login
// @Accept       json
// @Produce      json
// @Param        token  body      object  true  "refreshToken"
// @Success      200    {object}  map[string]interface{}
// @Failure      401    {object}  map[string]interface{}
// @Router       /login/refreshToken [post]
func (h *Handler) RefreshToken(c *gin.Context) {
	var input struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}
	username, err := h.tokens.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired refresh token"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	account, err := h.svc.GetAccount(ctx, username)
	if errors.Is(err, errorz.ErrNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired refresh token"})
		return
	}
	if err != nil {
		fail(c, err)
		return
	}
	h.session(c, http.StatusOK, "Token refreshed", account)
}

func (h *Handler) GetUser(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	account, err := h.svc.GetAccount(ctx, c.Param("username"))
	if err != nil {
		fail(c, err)
		return
	}
	if middleware.CurrentUser(c) != account.Username {
		ok(c, http.StatusOK, "User fetched successfully", account.Public())
		return
	}
	ok(c, http.StatusOK, "User fetched successfully", account)
}

func (h *Handler) UpdateSettings(c *gin.Context) {
	var input struct {
		Username string          `json:"username" binding:"required"`
		Settings models.Settings `json:"settings"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err.Error())
		return
	}
	if !sameUser(c, input.Username) {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	account, err := h.svc.UpdateSettings(ctx, input.Username, input.Settings)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c, http.StatusOK, "Settings updated successfully", account)
}
