package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"wealthdesk/internal/ledger"
	"wealthdesk/internal/listquery"
	"wealthdesk/internal/models"
	"wealthdesk/internal/service"
	"wealthdesk/internal/verification"
)

type Handler struct {
	users       *service.UserService
	verify      *service.VerificationService
	nominees    *service.NomineeService
	activity    *service.LedgerActivity
	portfolio   *service.PortfolioService
	quotes      *service.QuoteService
	investments *service.InvestmentService
	mail        *service.MailService
	accounts    *service.AccountService
	reports     *service.ReportService
	log         *logrus.Logger
}

func NewHandler(store service.Store, rates ledger.Rates, log *logrus.Logger) *Handler {
	users := service.NewUserService(store, log)
	mail := service.NewMailService(store, log)
	quotes := service.NewQuoteService(store, log)
	return &Handler{
		users:       users,
		verify:      service.NewVerificationService(store, log),
		nominees:    service.NewNomineeService(store, log),
		activity:    service.NewLedgerActivity(store, log),
		portfolio:   service.NewPortfolioService(store, quotes, log),
		quotes:      quotes,
		investments: service.NewInvestmentService(store, rates, log),
		mail:        mail,
		accounts:    service.NewAccountService(store, users, mail, log),
		reports:     service.NewReportService(store),
		log:         log,
	}
}

// Routes registers every endpoint except /health on r.
func (h *Handler) Routes(r gin.IRouter) {
	r.POST("/signup", h.Signup)
	r.POST("/password/forgot", h.ForgotPassword)
	r.POST("/password/reset", h.ResetPassword)

	r.GET("/users", h.ListUsers)
	r.POST("/users", h.CreateUser)
	r.GET("/users/:id", h.GetUser)
	r.PUT("/users/:id", h.UpdateUser)
	r.DELETE("/users/:id", h.DeleteUser)
	r.POST("/users/:id/kyc", h.SubmitKYC)
	r.POST("/users/:id/kyc/review", h.ReviewKYC)
	r.PUT("/users/:id/bank-account", h.UpdateBankAccount)
	r.POST("/users/:id/bank-account/review", h.ReviewBankAccount)
	r.GET("/users/:id/nominees", h.ListNominees)
	r.POST("/users/:id/nominees", h.AddNominee)
	r.PUT("/users/:id/nominees/:nomineeId", h.UpdateNominee)
	r.DELETE("/users/:id/nominees/:nomineeId", h.RemoveNominee)
	r.GET("/users/:id/transactions", h.ListTransactions)
	r.POST("/users/:id/transactions", h.RecordTransaction)
	r.GET("/users/:id/portfolio", h.GetPortfolio)
	r.POST("/users/:id/invite", h.InviteUser)

	r.GET("/investments", h.ListInvestments)
	r.POST("/investments", h.AddInvestment)
	r.GET("/investments/:id", h.GetInvestment)
	r.PUT("/investments/:id", h.EditInvestment)
	r.DELETE("/investments/:id", h.DeleteInvestment)

	r.POST("/quotes", h.PostQuote)
	r.GET("/quotes/:symbol", h.GetQuote)

	r.GET("/emails", h.Outbox)
	r.POST("/emails", h.SendEmail)

	r.GET("/reports/summary", h.Summary)
}

func (h *Handler) bind(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		h.log.Warnf("invalid request body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// listQuery reads q and sort, and takes the category from the named
// query parameter (status, type, segment).
func (h *Handler) listQuery(c *gin.Context, category string) (listquery.Query, bool) {
	var q listquery.Query
	if err := c.ShouldBindQuery(&q); err != nil {
		h.log.Warnf("invalid query: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return q, false
	}
	if category != "" {
		q.Category = c.Query(category)
	}
	return q, true
}

// fail writes the response for err. Input problems are logged as
// warnings, anything unexpected as an error with a generic body.
func (h *Handler) fail(c *gin.Context, op string, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		h.log.Warnf("%s: %v", op, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": verr.Fields})
	case errors.Is(err, models.ErrInvalidQuantity),
		errors.Is(err, models.ErrInvalidPrice),
		errors.Is(err, models.ErrConfiguration),
		errors.Is(err, verification.ErrIllegalTransition):
		h.log.Warnf("%s: %v", op, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrConfirmationRequired), errors.Is(err, models.ErrDuplicate):
		h.log.Warnf("%s: %v", op, err)
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.log.Errorf("%s failed: %v", op, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
	}
}

type decisionRequest struct {
	Decision string `json:"decision" binding:"required"`
}

func (h *Handler) Summary(c *gin.Context) {
	s, err := h.reports.Summary(c.Request.Context())
	if err != nil {
		h.fail(c, "summary", err)
		return
	}
	c.JSON(http.StatusOK, s)
}
