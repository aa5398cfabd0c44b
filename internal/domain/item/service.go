package item

import (
	"context"
	"fmt"

	"quotify/internal/core/id"
	"quotify/internal/core/tx"
	"quotify/internal/domain"
	"quotify/internal/domain/activity"
)

// Repository persists catalog items.
type Repository interface {
	Create(ctx context.Context, i *Item) error
	GetByID(ctx context.Context, itemID id.ID) (*Item, error)
	Update(ctx context.Context, i *Item) error
	Delete(ctx context.Context, itemID id.ID) error
	List(ctx context.Context, filter Filter) (domain.ListResult[Item], error)
}

// Service provides catalog item business logic.
type Service struct {
	repo      Repository
	txManager tx.Manager
	audit     *activity.Logger
}

// NewService creates an item service.
func NewService(repo Repository, txManager tx.Manager, audit *activity.Logger) *Service {
	return &Service{repo: repo, txManager: txManager, audit: audit}
}

// Create validates and stores a new item.
func (s *Service) Create(ctx context.Context, i *Item) (*Item, error) {
	if err := i.Validate(ctx); err != nil {
		return nil, err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, i)
	})
	if err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	s.audit.Record(ctx, EntityName, i.ID.String(), activity.ActionCreate,
		fmt.Sprintf("Created item: %s", i.Title))

	return i, nil
}

// Get returns an item by ID.
func (s *Service) Get(ctx context.Context, itemID id.ID) (*Item, error) {
	return s.repo.GetByID(ctx, itemID)
}

// List returns items matching the filter.
func (s *Service) List(ctx context.Context, filter Filter) (domain.ListResult[Item], error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return s.repo.List(ctx, filter)
}

// Update applies a patch to an existing item.
func (s *Service) Update(ctx context.Context, itemID id.ID, patch Patch) (*Item, error) {
	i, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	patch.Apply(i)
	if err := i.Validate(ctx); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, i)
	})
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}

	s.audit.Record(ctx, EntityName, i.ID.String(), activity.ActionUpdate,
		fmt.Sprintf("Updated item: %s", i.Title))

	return i, nil
}

// Delete removes an item.
func (s *Service) Delete(ctx context.Context, itemID id.ID) error {
	i, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, itemID)
	})
	if err != nil {
		return err
	}

	s.audit.Record(ctx, EntityName, itemID.String(), activity.ActionDelete,
		fmt.Sprintf("Deleted item: %s", i.Title))

	return nil
}
