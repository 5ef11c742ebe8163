package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"wealthdesk/internal/ledger"
	"wealthdesk/internal/models"
	"wealthdesk/internal/service"
)

// investmentView is a record together with its ledger table rendering.
type investmentView struct {
	models.InvestmentRecord
	Display ledger.Display `json:"display"`
}

func present(rec models.InvestmentRecord) investmentView {
	return investmentView{InvestmentRecord: rec, Display: ledger.Present(rec)}
}

type tradeRequest struct {
	Script       string          `json:"script" binding:"required"`
	Qty          int64           `json:"qty"`
	PurchaseRate decimal.Decimal `json:"purchase_rate"`
	Segment      models.Segment  `json:"segment"`
	OpenSide     models.Side     `json:"open_side"`
}

func (h *Handler) ListInvestments(c *gin.Context) {
	q, ok := h.listQuery(c, "segment")
	if !ok {
		return
	}
	recs, err := h.investments.List(c.Request.Context(), q)
	if err != nil {
		h.fail(c, "list investments", err)
		return
	}
	items := make([]investmentView, 0, len(recs))
	for _, r := range recs {
		items = append(items, present(r))
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items), "summary": ledger.Summarize(recs)})
}

func (h *Handler) AddInvestment(c *gin.Context) {
	var req tradeRequest
	if !h.bind(c, &req) {
		return
	}
	rec, err := h.investments.Add(c.Request.Context(), service.NewTrade{
		Script:       req.Script,
		Qty:          req.Qty,
		PurchaseRate: req.PurchaseRate,
		Segment:      req.Segment,
		OpenSide:     req.OpenSide,
	})
	if err != nil {
		h.fail(c, "add investment", err)
		return
	}
	c.JSON(http.StatusCreated, present(*rec))
}

func (h *Handler) GetInvestment(c *gin.Context) {
	rec, err := h.investments.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "get investment", err)
		return
	}
	c.JSON(http.StatusOK, present(*rec))
}

func (h *Handler) EditInvestment(c *gin.Context) {
	var p service.InvestmentPatch
	if !h.bind(c, &p) {
		return
	}
	rec, err := h.investments.Edit(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		h.fail(c, "edit investment", err)
		return
	}
	c.JSON(http.StatusOK, present(*rec))
}

func (h *Handler) DeleteInvestment(c *gin.Context) {
	confirmed, _ := strconv.ParseBool(c.Query("confirm"))
	if err := h.investments.Delete(c.Request.Context(), c.Param("id"), confirmed); err != nil {
		h.fail(c, "delete investment", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

type quoteRequest struct {
	Symbol    string          `json:"symbol" binding:"required"`
	Price     decimal.Decimal `json:"price"`
	Change    decimal.Decimal `json:"change"`
	Timestamp time.Time       `json:"timestamp"`
}

func (h *Handler) PostQuote(c *gin.Context) {
	var req quoteRequest
	if !h.bind(c, &req) {
		return
	}
	q, err := h.quotes.Record(c.Request.Context(), req.Symbol, req.Price, req.Change, req.Timestamp)
	if err != nil {
		h.fail(c, "record quote", err)
		return
	}
	c.JSON(http.StatusCreated, q)
}

func (h *Handler) GetQuote(c *gin.Context) {
	q, err := h.quotes.GetPrice(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		h.fail(c, "get quote", err)
		return
	}
	c.JSON(http.StatusOK, q)
}
