// Package review orchestrates posting: it resolves the sign-to-side
// convention, enriches postings with VAT amounts, applies confidence
// thresholds, and drives batch posting against the ledger core.
package review

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/postbook-dev/postbook/internal/ledger"
	"github.com/postbook-dev/postbook/internal/model"
	"github.com/postbook-dev/postbook/internal/vat"
)

// Thresholds control how confident a suggestion must be to post without
// a human in the loop.
type Thresholds struct {
	AutoConfirm float64 // >= this posts as AI
	ReviewFlag  float64 // < this is flagged prominently for review
}

// Status is the review decision for one candidate.
type Status string

const (
	StatusAutoConfirmed Status = "auto-confirmed"
	StatusPendingReview Status = "pending-review"
	StatusReviewFlagged Status = "review-flagged"
)

// Decide maps a suggestion confidence onto a review status.
func (t Thresholds) Decide(confidence float64) Status {
	switch {
	case confidence >= t.AutoConfirm:
		return StatusAutoConfirmed
	case confidence < t.ReviewFlag:
		return StatusReviewFlagged
	default:
		return StatusPendingReview
	}
}

// Candidate pairs a transaction with its classification. Counterparty
// overrides the cash-side account (e.g. Debtors or Creditors control);
// zero means the configured bank account.
type Candidate struct {
	Transaction  model.Transaction
	Suggestion   model.Suggestion
	Counterparty int
}

// Skipped describes one batch row that could not be posted.
type Skipped struct {
	Index     int
	Reference string
	Err       error
}

// BatchResult summarizes one batch posting run.
type BatchResult struct {
	BatchID     string
	Posted      int
	NeedsReview []Candidate
	SkippedRows []Skipped
}

// Poster posts reviewed candidates into a ledger.
type Poster struct {
	ledger      *ledger.Ledger
	cashAccount int
	thresholds  Thresholds
	log         *zap.Logger
}

// NewPoster creates a Poster. cashAccount is the default cash-side
// account (the bank). A nil logger disables logging.
func NewPoster(l *ledger.Ledger, cashAccount int, thresholds Thresholds, log *zap.Logger) *Poster {
	if log == nil {
		log = zap.NewNop()
	}
	return &Poster{ledger: l, cashAccount: cashAccount, thresholds: thresholds, log: log}
}

// Post posts one candidate as origin.
//
// The sign convention: a negative source amount is money leaving the
// cash side, so the target account is debited and the cash side
// credited; a positive amount debits the cash side and credits the
// target. The source sign itself is never modified, only read.
func (p *Poster) Post(c Candidate, origin model.Origin) error {
	amount := c.Transaction.Amount.Round(2).Abs()

	cashSide := p.cashAccount
	if c.Counterparty != 0 {
		cashSide = c.Counterparty
	}

	debitAccount := cashSide
	creditAccount := c.Suggestion.AccountCode
	if c.Transaction.Amount.IsNegative() {
		debitAccount = c.Suggestion.AccountCode
		creditAccount = cashSide
	}

	vatAmount, _ := vat.Compute(amount, c.Suggestion.VATCode)

	linkRef := c.Suggestion.LinkRef
	if linkRef == "" {
		linkRef = c.Transaction.Reference
	}
	if linkRef == "" {
		linkRef = uuid.NewString()
	}

	return p.ledger.PostDoubleEntry(ledger.PostParams{
		Date:          c.Transaction.Date,
		DebitAccount:  debitAccount,
		CreditAccount: creditAccount,
		Amount:        amount,
		Memo:          c.Transaction.Description,
		LinkRef:       linkRef,
		CreatedBy:     origin,
		VATCode:       c.Suggestion.VATCode,
		VATAmount:     vatAmount,
		Confidence:    c.Suggestion.Confidence,
		Reason:        c.Suggestion.Reason,
	})
}

// PostBatch posts a batch of classified candidates. Candidates at or
// above the auto-confirm threshold post as AI; the rest are returned in
// NeedsReview untouched. A row that fails to post is skipped and
// reported; one bad row never aborts the batch.
func (p *Poster) PostBatch(candidates []Candidate) BatchResult {
	result := BatchResult{BatchID: uuid.NewString()}

	for i, c := range candidates {
		if p.thresholds.Decide(c.Suggestion.Confidence) != StatusAutoConfirmed {
			result.NeedsReview = append(result.NeedsReview, c)
			continue
		}
		if err := p.Post(c, model.OriginAI); err != nil {
			result.SkippedRows = append(result.SkippedRows, Skipped{
				Index:     i,
				Reference: c.Transaction.Reference,
				Err:       fmt.Errorf("posting row %d: %w", i+1, err),
			})
			p.log.Warn("skipped batch row",
				zap.String("batch_id", result.BatchID),
				zap.Int("row", i+1),
				zap.String("reference", c.Transaction.Reference),
				zap.Error(err),
			)
			continue
		}
		result.Posted++
	}

	p.log.Info("batch posted",
		zap.String("batch_id", result.BatchID),
		zap.Int("posted", result.Posted),
		zap.Int("needs_review", len(result.NeedsReview)),
		zap.Int("skipped", len(result.SkippedRows)),
	)
	return result
}

// PostReviewed posts a batch that a human has already confirmed, so
// thresholds do not apply. Failed rows are skipped and reported.
func (p *Poster) PostReviewed(candidates []Candidate) BatchResult {
	result := BatchResult{BatchID: uuid.NewString()}
	for i, c := range candidates {
		if err := p.Post(c, model.OriginHuman); err != nil {
			result.SkippedRows = append(result.SkippedRows, Skipped{
				Index:     i,
				Reference: c.Transaction.Reference,
				Err:       fmt.Errorf("posting row %d: %w", i+1, err),
			})
			continue
		}
		result.Posted++
	}
	return result
}
