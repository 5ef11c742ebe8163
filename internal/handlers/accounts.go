package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wealthdesk/internal/service"
)

func (h *Handler) Signup(c *gin.Context) {
	var in service.SignupInput
	if !h.bind(c, &in) {
		return
	}
	u, err := h.accounts.Signup(c.Request.Context(), in)
	if err != nil {
		h.fail(c, "signup", err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

type forgotRequest struct {
	Email string `json:"email" binding:"required"`
}

// ForgotPassword answers 202 whether or not the address is known.
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req forgotRequest
	if !h.bind(c, &req) {
		return
	}
	if err := h.accounts.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		h.fail(c, "forgot password", err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "sent"})
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var in service.ResetInput
	if !h.bind(c, &in) {
		return
	}
	if err := h.accounts.ResetPassword(c.Request.Context(), in); err != nil {
		h.fail(c, "reset password", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}

func (h *Handler) Outbox(c *gin.Context) {
	out, err := h.mail.Outbox(c.Request.Context())
	if err != nil {
		h.fail(c, "outbox", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) SendEmail(c *gin.Context) {
	var msg service.Message
	if !h.bind(c, &msg) {
		return
	}
	e, err := h.mail.Send(c.Request.Context(), msg)
	if err != nil {
		h.fail(c, "send email", err)
		return
	}
	c.JSON(http.StatusCreated, e)
}
