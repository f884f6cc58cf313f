package handlers

import (
	"net/http"

	"stayfinder/middleware"
	"stayfinder/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	svc    user.UserService
	logger *zap.Logger
}

func NewAuthHandler(svc user.UserService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, logger: loggerOrNop(logger)}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type fcmTokenRequest struct {
	Token string `json:"token"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var in user.RegisterInput
	if !bindJSON(c, h.logger, &in) {
		return
	}
	res, err := h.svc.Register(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusCreated, res)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}
	res, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, res)
}

func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.svc.GetUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, u)
}

func (h *AuthHandler) UpdateFCMToken(c *gin.Context) {
	var req fcmTokenRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}
	if err := h.svc.UpdateFCMToken(c.Request.Context(), middleware.UserID(c), req.Token); err != nil {
		respondError(c, h.logger, err)
		return
	}
	respondMessage(c, "Device token updated", gin.H{"registered": req.Token != ""})
}
