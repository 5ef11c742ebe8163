package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wealthdesk/internal/service"
)

func (h *Handler) ListUsers(c *gin.Context) {
	q, ok := h.listQuery(c, "status")
	if !ok {
		return
	}
	users, err := h.users.List(c.Request.Context(), q)
	if err != nil {
		h.fail(c, "list users", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": users, "total": len(users)})
}

func (h *Handler) CreateUser(c *gin.Context) {
	var in service.UserInput
	if !h.bind(c, &in) {
		return
	}
	u, err := h.users.Create(c.Request.Context(), in)
	if err != nil {
		h.fail(c, "create user", err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (h *Handler) GetUser(c *gin.Context) {
	d, err := h.users.Detail(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "get user", err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handler) UpdateUser(c *gin.Context) {
	var p service.UserPatch
	if !h.bind(c, &p) {
		return
	}
	u, err := h.users.Update(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		h.fail(c, "update user", err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, "delete user", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

type kycRequest struct {
	DocumentName string `json:"document_name" binding:"required"`
}

func (h *Handler) SubmitKYC(c *gin.Context) {
	var req kycRequest
	if !h.bind(c, &req) {
		return
	}
	k, err := h.verify.SubmitKYC(c.Request.Context(), c.Param("id"), req.DocumentName)
	if err != nil {
		h.fail(c, "submit kyc", err)
		return
	}
	c.JSON(http.StatusOK, k)
}

func (h *Handler) ReviewKYC(c *gin.Context) {
	var req decisionRequest
	if !h.bind(c, &req) {
		return
	}
	k, err := h.verify.ReviewKYC(c.Request.Context(), c.Param("id"), req.Decision)
	if err != nil {
		h.fail(c, "review kyc", err)
		return
	}
	c.JSON(http.StatusOK, k)
}

func (h *Handler) UpdateBankAccount(c *gin.Context) {
	var in service.BankDetails
	if !h.bind(c, &in) {
		return
	}
	b, err := h.verify.UpdateBankAccount(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.fail(c, "update bank account", err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *Handler) ReviewBankAccount(c *gin.Context) {
	var req decisionRequest
	if !h.bind(c, &req) {
		return
	}
	b, err := h.verify.ReviewBankAccount(c.Request.Context(), c.Param("id"), req.Decision)
	if err != nil {
		h.fail(c, "review bank account", err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *Handler) ListNominees(c *gin.Context) {
	ns, err := h.nominees.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "list nominees", err)
		return
	}
	c.JSON(http.StatusOK, ns)
}

func (h *Handler) AddNominee(c *gin.Context) {
	var in service.NomineeInput
	if !h.bind(c, &in) {
		return
	}
	n, err := h.nominees.Add(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.fail(c, "add nominee", err)
		return
	}
	c.JSON(http.StatusCreated, n)
}

func (h *Handler) UpdateNominee(c *gin.Context) {
	var in service.NomineeInput
	if !h.bind(c, &in) {
		return
	}
	n, err := h.nominees.Update(c.Request.Context(), c.Param("id"), c.Param("nomineeId"), in)
	if err != nil {
		h.fail(c, "update nominee", err)
		return
	}
	c.JSON(http.StatusOK, n)
}

func (h *Handler) RemoveNominee(c *gin.Context) {
	if err := h.nominees.Remove(c.Request.Context(), c.Param("id"), c.Param("nomineeId")); err != nil {
		h.fail(c, "remove nominee", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *Handler) ListTransactions(c *gin.Context) {
	q, ok := h.listQuery(c, "type")
	if !ok {
		return
	}
	txs, err := h.activity.List(c.Request.Context(), c.Param("id"), q)
	if err != nil {
		h.fail(c, "list transactions", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": txs, "total": len(txs)})
}

func (h *Handler) RecordTransaction(c *gin.Context) {
	var in service.TransactionInput
	if !h.bind(c, &in) {
		return
	}
	tx, err := h.activity.Record(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.fail(c, "record transaction", err)
		return
	}
	c.JSON(http.StatusCreated, tx)
}

func (h *Handler) GetPortfolio(c *gin.Context) {
	q, ok := h.listQuery(c, "")
	if !ok {
		return
	}
	view, err := h.portfolio.View(c.Request.Context(), c.Param("id"), q)
	if err != nil {
		h.fail(c, "get portfolio", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) InviteUser(c *gin.Context) {
	e, err := h.mail.Invite(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "invite user", err)
		return
	}
	c.JSON(http.StatusCreated, e)
}
