// Package service holds the business rules of the catering API: input
// validation, reference checks, and the transactional facility writes.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/pkordes/catering-api/internal/domain"
	"github.com/pkordes/catering-api/internal/metrics"
	"github.com/pkordes/catering-api/internal/patch"
	"github.com/pkordes/catering-api/internal/repo"
)

// TagReconciler keeps tag names unique case-insensitively and manages the
// facility/tag association. Build one per unit of work over a pool- or
// transaction-bound TagRepo.
type TagReconciler struct {
	tags repo.TagRepo
}

// NewTagReconciler constructs a TagReconciler over tags.
func NewTagReconciler(tags repo.TagRepo) *TagReconciler {
	return &TagReconciler{tags: tags}
}

// Resolve returns the tag whose name matches name case-insensitively,
// creating it when absent. created reports whether this call wrote the row.
// When a concurrent writer wins the insert, the winner's row is returned.
func (r *TagReconciler) Resolve(ctx context.Context, name string) (domain.Tag, bool, error) {
	name, ok := patch.TagName(name)
	if !ok {
		return domain.Tag{}, false, domain.NewValidationError(map[string]string{
			patch.FieldName: domain.CodeCannotBeEmpty,
		})
	}

	tag, err := r.tags.FindByName(ctx, name)
	if err == nil {
		metrics.RecordTagResolved(false)
		return tag, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.Tag{}, false, fmt.Errorf("service.TagReconciler.Resolve: %w", err)
	}

	tag, inserted, err := r.tags.Insert(ctx, name)
	if err != nil {
		return domain.Tag{}, false, fmt.Errorf("service.TagReconciler.Resolve: %w", err)
	}
	if inserted {
		metrics.RecordTagResolved(true)
		return tag, true, nil
	}

	// Lost the race: someone inserted the same name between our read and write.
	tag, err = r.tags.FindByName(ctx, name)
	if err != nil {
		return domain.Tag{}, false, fmt.Errorf("service.TagReconciler.Resolve: re-read: %w", err)
	}
	metrics.RecordTagResolved(false)
	return tag, false, nil
}

// Attach links tagID to facilityID. An existing link is not an error;
// added is false in that case.
func (r *TagReconciler) Attach(ctx context.Context, facilityID, tagID int64) (bool, error) {
	added, err := r.tags.Attach(ctx, facilityID, tagID)
	if err != nil {
		return false, fmt.Errorf("service.TagReconciler.Attach: %w", err)
	}
	return added, nil
}

// Detach unlinks tagID from facilityID and returns the rows removed.
func (r *TagReconciler) Detach(ctx context.Context, facilityID, tagID int64) (int64, error) {
	n, err := r.tags.Detach(ctx, facilityID, tagID)
	if err != nil {
		return 0, fmt.Errorf("service.TagReconciler.Detach: %w", err)
	}
	return n, nil
}

// Rename changes a tag's name. updated is false, with no write, when
// newName equals the current name byte for byte. A case-only change of the
// same tag is a real update; a case-insensitive match on a different tag is
// domain.ErrConflict.
func (r *TagReconciler) Rename(ctx context.Context, tagID int64, newName string) (bool, error) {
	name, ok := patch.TagName(newName)
	if !ok {
		return false, domain.NewValidationError(map[string]string{
			patch.FieldName: domain.CodeCannotBeEmpty,
		})
	}

	current, err := r.tags.GetByID(ctx, tagID)
	if err != nil {
		return false, fmt.Errorf("service.TagReconciler.Rename: %w", err)
	}
	if current.Name == name {
		return false, nil
	}

	existing, err := r.tags.FindByName(ctx, name)
	switch {
	case err == nil && existing.ID != tagID:
		return false, fmt.Errorf("service.TagReconciler.Rename: %w", domain.ErrConflict)
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		return false, fmt.Errorf("service.TagReconciler.Rename: %w", err)
	}

	if err := r.tags.Rename(ctx, tagID, name); err != nil {
		return false, fmt.Errorf("service.TagReconciler.Rename: %w", err)
	}
	return true, nil
}

// Delete removes a tag that no facility references.
// Returns domain.ErrBlocked while it is still attached somewhere. The tag
// row stays locked until the caller's transaction ends, so no Attach can
// land between the reference check and the delete.
func (r *TagReconciler) Delete(ctx context.Context, tagID int64) error {
	if _, err := r.tags.GetByIDForUpdate(ctx, tagID); err != nil {
		return fmt.Errorf("service.TagReconciler.Delete: %w", err)
	}
	used, err := r.tags.IsReferenced(ctx, tagID)
	if err != nil {
		return fmt.Errorf("service.TagReconciler.Delete: %w", err)
	}
	if used {
		return fmt.Errorf("service.TagReconciler.Delete: %w", domain.ErrBlocked)
	}
	if err := r.tags.Delete(ctx, tagID); err != nil {
		return fmt.Errorf("service.TagReconciler.Delete: %w", err)
	}
	return nil
}
