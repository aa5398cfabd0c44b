package quotation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"quotify/internal/core/apperror"
	appctx "quotify/internal/core/context"
	"quotify/internal/core/id"
	"quotify/internal/core/security"
	"quotify/internal/core/tx"
	"quotify/internal/domain"
	"quotify/internal/domain/activity"
	"quotify/pkg/sequence"
)

// Service implements quotation use cases.
type Service struct {
	repo      Repository
	txManager tx.Manager
	sequences *sequence.Service
	audit     *activity.Logger
	policy    security.VisibilityPolicy
}

func NewService(repo Repository, txManager tx.Manager, sequences *sequence.Service, audit *activity.Logger, policy security.VisibilityPolicy) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		sequences: sequences,
		audit:     audit,
		policy:    policy,
	}
}

// Create stores a new quotation. A missing number is generated from the
// quotation sequence; status defaults to draft and totals are derived
// from the lines.
func (s *Service) Create(ctx context.Context, q *Quotation) (*Quotation, error) {
	if q == nil {
		return nil, apperror.NewValidation("quotation is required")
	}
	if id.IsNil(q.ID) {
		q.ID = id.New()
	}
	now := time.Now().UTC()
	q.CreatedAt = now
	q.UpdatedAt = now
	if q.QuoteDate.IsZero() {
		q.QuoteDate = now
	}
	if q.Status == "" {
		q.Status = StatusDraft
	} else {
		q.Status = NormalizeStatus(q.Status)
	}
	if q.DiscountType == "" {
		q.DiscountType = DiscountFixed
	}
	if user := appctx.GetUser(ctx); user != nil {
		if uid, err := id.Parse(user.UserID); err == nil {
			q.CreatedByID = &uid
		}
		q.CreatedByEmail = user.NormalizedEmail()
	}
	q.SetLines(q.Lines)

	err := s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if strings.TrimSpace(q.Number) == "" {
			next, err := s.sequences.Next(txCtx, sequence.Quotations)
			if err != nil {
				return err
			}
			q.Number = sequence.Format(NumberPrefix, next)
		}
		if err := q.Validate(txCtx); err != nil {
			return err
		}
		if err := s.repo.Create(txCtx, q); err != nil {
			return err
		}
		return s.repo.ReplaceLines(txCtx, q.ID, q.Lines)
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, EntityName, q.ID.String(), activity.ActionCreate,
		fmt.Sprintf("Created quotation: %s", q.Number))
	return q, nil
}

// Get returns a quotation with its lines. Non-admin callers only see
// quotations they own or are assigned to.
func (s *Service) Get(ctx context.Context, qid id.ID) (*Quotation, error) {
	q, err := s.repo.GetByID(ctx, qid)
	if err != nil {
		return nil, err
	}
	if !s.visible(ctx, q) {
		return nil, apperror.NewNotFound("quotation", qid.String())
	}
	return q, nil
}

// List returns quotations matching the filter, scoped to the caller
// unless the visibility policy grants full access.
func (s *Service) List(ctx context.Context, filter Filter) (domain.ListResult[Quotation], error) {
	user := appctx.GetUser(ctx)
	if s.policy.Scoped(user) {
		if user == nil {
			return domain.ListResult[Quotation]{}, apperror.NewUnauthorized("authentication required")
		}
		if uid, err := id.Parse(user.UserID); err == nil {
			filter.ScopeUserID = &uid
		}
		filter.ScopeEmail = user.NormalizedEmail()
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	filter.Status = NormalizeStatus(filter.Status)
	if filter.Status == "all" {
		filter.Status = ""
	}
	return s.repo.List(ctx, filter)
}

// Update applies a partial update and recomputes totals.
func (s *Service) Update(ctx context.Context, qid id.ID, patch Patch) (*Quotation, error) {
	q, err := s.Get(ctx, qid)
	if err != nil {
		return nil, err
	}
	patch.Apply(q)
	if err := q.Validate(ctx); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := s.repo.Update(txCtx, q); err != nil {
			return err
		}
		if patch.Lines != nil {
			return s.repo.ReplaceLines(txCtx, q.ID, q.Lines)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, EntityName, q.ID.String(), activity.ActionUpdate,
		fmt.Sprintf("Updated quotation: %s", q.Number))
	return q, nil
}

// SetStatus transitions a quotation to a new lifecycle status.
func (s *Service) SetStatus(ctx context.Context, qid id.ID, status string) (*Quotation, error) {
	status = NormalizeStatus(status)
	if !ValidStatus(status) {
		return nil, apperror.NewValidation("invalid quotation status").
			WithDetail("value", status)
	}

	q, err := s.Get(ctx, qid)
	if err != nil {
		return nil, err
	}
	q.Status = status
	q.UpdatedAt = time.Now().UTC()

	err = s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		return s.repo.Update(txCtx, q)
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, EntityName, q.ID.String(), activity.ActionUpdate,
		fmt.Sprintf("Updated quotation status to: %s", status))
	return q, nil
}

// Delete removes a quotation and its lines.
func (s *Service) Delete(ctx context.Context, qid id.ID) error {
	q, err := s.Get(ctx, qid)
	if err != nil {
		return err
	}

	err = s.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, qid)
	})
	if err != nil {
		return err
	}

	s.audit.Record(ctx, EntityName, qid.String(), activity.ActionDelete,
		fmt.Sprintf("Deleted quotation: %s", q.Number))
	return nil
}

// NextNumber returns the number the next created quotation is likely to get.
func (s *Service) NextNumber(ctx context.Context) (string, error) {
	seq, err := s.sequences.Peek(ctx, sequence.Quotations)
	if err != nil {
		return "", err
	}
	return sequence.Format(NumberPrefix, seq), nil
}

// visible reports whether the current user may see the quotation.
func (s *Service) visible(ctx context.Context, q *Quotation) bool {
	user := appctx.GetUser(ctx)
	if !s.policy.Scoped(user) {
		return true
	}
	if user == nil {
		return false
	}
	if q.CreatedByID != nil && q.CreatedByID.String() == user.UserID {
		return true
	}
	email := user.NormalizedEmail()
	if email != "" && strings.ToLower(q.CreatedByEmail) == email {
		return true
	}
	if email != "" && strings.ToLower(q.AssignedUser) == email {
		return true
	}
	return false
}
