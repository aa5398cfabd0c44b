package client

import (
	"context"
	"fmt"
	"strings"

	"quotify/internal/core/apperror"
	appctx "quotify/internal/core/context"
	"quotify/internal/core/id"
	"quotify/internal/core/security"
	"quotify/internal/core/tx"
	"quotify/internal/domain"
	"quotify/internal/domain/activity"
	"quotify/pkg/sequence"
)

// Service provides client business logic.
type Service struct {
	repo      Repository
	txManager tx.Manager
	sequences *sequence.Service
	audit     *activity.Logger
	policy    security.VisibilityPolicy
}

// NewService creates a client service.
func NewService(repo Repository, txManager tx.Manager, sequences *sequence.Service, audit *activity.Logger, policy security.VisibilityPolicy) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		sequences: sequences,
		audit:     audit,
		policy:    policy,
	}
}

// Create validates and stores a new client with its contacts.
// The display code is claimed inside the same transaction as the insert.
func (s *Service) Create(ctx context.Context, c *Client) (*Client, error) {
	if err := c.Validate(ctx); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByEmail(ctx, c.Email)
	if err != nil {
		return nil, fmt.Errorf("check client email: %w", err)
	}
	if exists {
		return nil, apperror.NewDuplicate("client", "email", c.Email)
	}

	if user := appctx.GetUser(ctx); user != nil {
		if uid, err := id.Parse(user.UserID); err == nil {
			c.CreatedByID = &uid
		}
		c.CreatedByEmail = user.NormalizedEmail()
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		seq, err := s.sequences.Next(ctx, sequence.Clients)
		if err != nil {
			return err
		}
		c.Code = sequence.Format(CodePrefix, seq)

		if err := s.repo.Create(ctx, c); err != nil {
			return fmt.Errorf("create client: %w", err)
		}
		if len(c.Contacts) > 0 {
			for i := range c.Contacts {
				c.Contacts[i].ClientID = c.ID
				if id.IsNil(c.Contacts[i].ID) {
					c.Contacts[i].ID = id.New()
				}
			}
			if err := s.repo.ReplaceContacts(ctx, c.ID, c.Contacts); err != nil {
				return fmt.Errorf("create client contacts: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, EntityName, c.ID.String(), activity.ActionCreate,
		fmt.Sprintf("Created client: %s", c.Name))

	return c, nil
}

// Get returns a client with contacts.
func (s *Service) Get(ctx context.Context, clientID id.ID) (*Client, error) {
	return s.repo.GetByID(ctx, clientID)
}

// List returns clients matching the filter, scoped for non-admin users.
func (s *Service) List(ctx context.Context, filter Filter) (domain.ListResult[Client], error) {
	user := appctx.GetUser(ctx)
	if s.policy.Scoped(user) {
		if user == nil {
			return domain.ListResult[Client]{}, apperror.NewUnauthorized("authentication required")
		}
		filter.ScopeAssignedUser = user.NormalizedEmail()
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return s.repo.List(ctx, filter)
}

// Update applies a patch, replacing contacts when the patch carries them.
func (s *Service) Update(ctx context.Context, clientID id.ID, patch Patch) (*Client, error) {
	c, err := s.repo.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	patch.Apply(c)
	if err := c.Validate(ctx); err != nil {
		return nil, err
	}

	if patch.Email != nil && !strings.EqualFold(*patch.Email, c.Email) {
		// Email changed to a value that may collide with another client.
		exists, err := s.repo.ExistsByEmail(ctx, c.Email)
		if err != nil {
			return nil, fmt.Errorf("check client email: %w", err)
		}
		if exists {
			return nil, apperror.NewDuplicate("client", "email", c.Email)
		}
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, c); err != nil {
			return fmt.Errorf("update client: %w", err)
		}
		if patch.Contacts != nil {
			for i := range c.Contacts {
				c.Contacts[i].ClientID = c.ID
				if id.IsNil(c.Contacts[i].ID) {
					c.Contacts[i].ID = id.New()
				}
			}
			if err := s.repo.ReplaceContacts(ctx, c.ID, c.Contacts); err != nil {
				return fmt.Errorf("replace client contacts: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, EntityName, c.ID.String(), activity.ActionUpdate,
		fmt.Sprintf("Updated client: %s", c.Name))

	return c, nil
}

// Delete removes a client; contacts go with it via FK cascade.
func (s *Service) Delete(ctx context.Context, clientID id.ID) error {
	c, err := s.repo.GetByID(ctx, clientID)
	if err != nil {
		return err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, clientID)
	})
	if err != nil {
		return err
	}

	s.audit.Record(ctx, EntityName, clientID.String(), activity.ActionDelete,
		fmt.Sprintf("Deleted client: %s", c.Name))

	return nil
}

// NextCode returns the code the next created client is likely to get.
func (s *Service) NextCode(ctx context.Context) (string, error) {
	seq, err := s.sequences.Peek(ctx, sequence.Clients)
	if err != nil {
		return "", err
	}
	return sequence.Format(CodePrefix, seq), nil
}
