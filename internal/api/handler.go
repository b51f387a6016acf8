// Package api exposes the posting and trial-balance operations over HTTP
// for collaborator services (review UIs, exporters).
package api

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/postbook-dev/postbook/internal/ledger"
	"github.com/postbook-dev/postbook/internal/model"
	"github.com/postbook-dev/postbook/internal/vat"
)

const dateFormat = "2006-01-02"

// Persister receives posted pairs for durable storage. It may be nil.
type Persister interface {
	AppendLines(lines []model.JournalLine) error
	Clear() error
}

// LedgerHandler serves the ledger endpoints. The mutex serializes each
// ledger append with its persist, so the pair written to the store is
// always the pair the request appended.
type LedgerHandler struct {
	mu     sync.Mutex
	ledger *ledger.Ledger
	store  Persister
	log    *zap.Logger
}

// NewLedgerHandler creates a handler. store may be nil for a purely
// in-memory session.
func NewLedgerHandler(l *ledger.Ledger, store Persister, log *zap.Logger) *LedgerHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &LedgerHandler{ledger: l, store: store, log: log}
}

// RegisterRoutes registers the ledger endpoints on a router group.
func (h *LedgerHandler) RegisterRoutes(r *gin.RouterGroup) {
	g := r.Group("/ledger")
	{
		g.POST("/postings", h.PostPosting)
		g.GET("/trial-balance", h.GetTrialBalance)
		g.GET("/journal", h.GetJournal)
		g.POST("/reset", h.Reset)
	}
}

// PostPosting posts one double-entry pair.
func (h *LedgerHandler) PostPosting(c *gin.Context) {
	var req PostPostingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}

	date, err := time.Parse(dateFormat, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date: " + req.Date})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid amount: " + req.Amount})
		return
	}

	var warning string
	vatCode := model.VATNone
	if req.VATCode != "" {
		var ok bool
		if vatCode, ok = model.ParseVATCode(req.VATCode); !ok {
			// Permissive per the VAT policy, but surfaced to the caller.
			warning = "unrecognized vat_code " + req.VATCode + " treated as NONE"
		}
	}

	createdBy := model.OriginHuman
	if req.CreatedBy == string(model.OriginAI) {
		createdBy = model.OriginAI
	}

	confidence := 1.0
	if req.Confidence != nil {
		confidence = *req.Confidence
	}

	vatAmount, _ := vat.Compute(amount.Abs(), vatCode)

	posted, err, persistErr := h.postAndPersist(ledger.PostParams{
		Date:          date,
		DebitAccount:  req.DebitAccount,
		CreditAccount: req.CreditAccount,
		Amount:        amount,
		Memo:          req.Memo,
		LinkRef:       req.LinkRef,
		CreatedBy:     createdBy,
		VATCode:       vatCode,
		VATAmount:     vatAmount,
		Confidence:    confidence,
		Reason:        req.Reason,
	})
	if err != nil {
		var unknownErr *ledger.UnknownAccountError
		if errors.As(err, &unknownErr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, ledger.ErrNegativeAmount) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if persistErr != nil {
		h.log.Error("persisting posted pair", zap.Error(persistErr))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "posted but not persisted: " + persistErr.Error()})
		return
	}

	c.JSON(http.StatusOK, PostPostingResp{
		Posted:     posted,
		LedgerSize: h.ledger.Len(),
		VATAmount:  vatAmount.StringFixed(2),
		Warning:    warning,
	})
}

// postAndPersist appends one pair and persists it under the handler
// mutex. Gin serves requests on concurrent goroutines, so without the
// lock "the last two lines" could belong to another request's pair.
func (h *LedgerHandler) postAndPersist(p ledger.PostParams) (posted bool, postErr, persistErr error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	before := h.ledger.Len()
	if err := h.ledger.PostDoubleEntry(p); err != nil {
		return false, err, nil
	}
	if h.ledger.Len() == before {
		return false, nil, nil
	}
	if h.store != nil {
		lines := h.ledger.Lines()
		if err := h.store.AppendLines(lines[len(lines)-2:]); err != nil {
			return true, nil, err
		}
	}
	return true, nil, nil
}

// GetTrialBalance returns the current trial balance.
func (h *LedgerHandler) GetTrialBalance(c *gin.Context) {
	rows := h.ledger.TrialBalance()

	resp := TrialBalanceResp{Rows: make([]TrialBalanceRowResp, len(rows))}
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for i, row := range rows {
		totalDebit = totalDebit.Add(row.TBDebit)
		totalCredit = totalCredit.Add(row.TBCredit)
		resp.Rows[i] = TrialBalanceRowResp{
			AccountCode: row.AccountCode,
			AccountName: row.AccountName,
			AccountType: string(row.AccountType),
			Debit:       row.Debit.StringFixed(2),
			Credit:      row.Credit.StringFixed(2),
			TBDebit:     row.TBDebit.StringFixed(2),
			TBCredit:    row.TBCredit.StringFixed(2),
		}
	}
	resp.TotalDebit = totalDebit.StringFixed(2)
	resp.TotalCredit = totalCredit.StringFixed(2)

	c.JSON(http.StatusOK, resp)
}

// GetJournal returns the full journal snapshot in audit order.
func (h *LedgerHandler) GetJournal(c *gin.Context) {
	lines := h.ledger.Lines()

	resp := make([]JournalLineResp, len(lines))
	for i, line := range lines {
		resp[i] = JournalLineResp{
			Date:        line.Date.Format(dateFormat),
			AccountCode: line.AccountCode,
			Debit:       line.Debit.StringFixed(2),
			Credit:      line.Credit.StringFixed(2),
			Memo:        line.Memo,
			VATCode:     string(line.VATCode),
			VATAmount:   line.VATAmount.StringFixed(2),
			LinkRef:     line.LinkRef,
			CreatedBy:   string(line.CreatedBy),
			Confidence:  line.Confidence,
			Reason:      line.Reason,
		}
	}
	c.JSON(http.StatusOK, gin.H{"lines": resp, "count": len(resp)})
}

// Reset clears the ledger (and the store, when present). The confirm
// query parameter is the human-confirmation boundary the core itself
// does not enforce.
func (h *LedgerHandler) Reset(c *gin.Context) {
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reset requires confirm=true"})
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.ledger.Reset()
	if h.store != nil {
		if err := h.store.Clear(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "ledger reset but store not cleared: " + err.Error()})
			return
		}
	}
	h.log.Info("ledger reset")
	c.JSON(http.StatusOK, gin.H{"ledger_size": 0})
}
