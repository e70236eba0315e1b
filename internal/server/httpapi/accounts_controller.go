package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/qianzhu/lifeplanner/internal/common"
	"github.com/qianzhu/lifeplanner/internal/logging"
	"github.com/qianzhu/lifeplanner/internal/server/users"
)

type AccountsController struct {
	users  *users.Service
	logger logging.Logger
}

func NewAccountsController(userService *users.Service, logger logging.Logger) *AccountsController {
	return &AccountsController{users: userService, logger: logger}
}

func (c *AccountsController) RegisterRoutes(router *gin.Engine) {
	router.POST("/api/register", c.register)
	router.POST("/api/login", c.login)
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

func (c *AccountsController) register(ctx *gin.Context) {
	var req registerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, err := c.users.Register(ctx.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrUsernameTaken) {
			ctx.JSON(http.StatusConflict, gin.H{"error": "username already taken"})
			return
		}
		c.logger.Error(ctx.Request.Context(), "registration failed", "username", req.Username, "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"user_id": user.ID})
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (c *AccountsController) login(ctx *gin.Context) {
	var req loginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	token, userID, err := c.users.Login(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		c.logger.Error(ctx.Request.Context(), "login failed", "username", req.Username, "error", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"token": token, "user_id": userID})
}
