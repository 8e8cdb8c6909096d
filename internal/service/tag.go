package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/pkordes/catering-api/internal/domain"
	"github.com/pkordes/catering-api/internal/patch"
	"github.com/pkordes/catering-api/internal/repo"
)

// TagService implements the standalone tag endpoints. Name rules live in
// TagReconciler; this type adds paging and create semantics.
type TagService struct {
	store repo.Store
}

// NewTagService constructs a TagService backed by store.
func NewTagService(store repo.Store) *TagService {
	return &TagService{store: store}
}

func (s *TagService) List(ctx context.Context, p domain.PageParams) (domain.Page[domain.Tag], error) {
	page, err := s.store.Repos().Tags.List(ctx, p)
	if err != nil {
		return domain.Page[domain.Tag]{}, fmt.Errorf("service.TagService.List: %w", err)
	}
	return page, nil
}

func (s *TagService) GetByID(ctx context.Context, id int64) (domain.Tag, error) {
	t, err := s.store.Repos().Tags.GetByID(ctx, id)
	if err != nil {
		return domain.Tag{}, fmt.Errorf("service.TagService.GetByID: %w", err)
	}
	return t, nil
}

// Create inserts a new tag. Unlike Resolve, an existing name (in any case)
// is domain.ErrConflict rather than a silent reuse.
func (s *TagService) Create(ctx context.Context, raw map[string]any) (domain.Tag, error) {
	tr := patch.New(raw, patch.Create, patch.TagRules...)
	if err := tr.Err(); err != nil {
		return domain.Tag{}, fmt.Errorf("service.TagService.Create: %w", err)
	}
	name := tr.Value(patch.FieldName)

	tags := s.store.Repos().Tags
	if _, err := tags.FindByName(ctx, name); err == nil {
		return domain.Tag{}, fmt.Errorf("service.TagService.Create: %w", domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return domain.Tag{}, fmt.Errorf("service.TagService.Create: %w", err)
	}

	tag, inserted, err := tags.Insert(ctx, name)
	if err != nil {
		return domain.Tag{}, fmt.Errorf("service.TagService.Create: %w", err)
	}
	if !inserted {
		return domain.Tag{}, fmt.Errorf("service.TagService.Create: %w", domain.ErrConflict)
	}
	return tag, nil
}

// Update renames a tag. updated is false when the name was already identical.
func (s *TagService) Update(ctx context.Context, id int64, raw map[string]any) (bool, error) {
	tr := patch.New(raw, patch.Update, patch.TagRules...)
	if err := tr.Err(); err != nil {
		return false, fmt.Errorf("service.TagService.Update: %w", err)
	}
	updated, err := NewTagReconciler(s.store.Repos().Tags).Rename(ctx, id, tr.Value(patch.FieldName))
	if err != nil {
		return false, fmt.Errorf("service.TagService.Update: %w", err)
	}
	return updated, nil
}

// Delete returns domain.ErrBlocked while any facility carries the tag.
func (s *TagService) Delete(ctx context.Context, id int64) error {
	err := s.store.InTx(ctx, func(tx repo.Repos) error {
		return NewTagReconciler(tx.Tags).Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("service.TagService.Delete: %w", err)
	}
	return nil
}
