package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pkordes/catering-api/internal/domain"
	"github.com/pkordes/catering-api/internal/metrics"
)

// writeStage is how far a facility write got before it committed or rolled back.
type writeStage string

const (
	stageStart           writeStage = "start"
	stageLocationWritten writeStage = "location_written"
	stageFacilityWritten writeStage = "facility_written"
	stageTagsReconciled  writeStage = "tags_reconciled"
	stageCommitted       writeStage = "committed"
	stageRolledBack      writeStage = "rolled_back"
)

// facilityWrite follows one coordinator transaction from start to its
// terminal stage, then logs and counts the outcome.
type facilityWrite struct {
	op    string
	id    int64
	stage writeStage
	log   *slog.Logger
}

func newFacilityWrite(log *slog.Logger, op string, id int64) *facilityWrite {
	return &facilityWrite{op: op, id: id, stage: stageStart, log: log}
}

func (w *facilityWrite) reached(s writeStage) { w.stage = s }

// finish records the terminal stage. Domain errors raised inside the
// transaction pass through unchanged; anything else becomes
// domain.ErrWriteFailed wrapping the cause.
func (w *facilityWrite) finish(ctx context.Context, err error) error {
	if err == nil {
		w.stage = stageCommitted
		metrics.RecordFacilityWrite(w.op, string(stageCommitted))
		w.log.DebugContext(ctx, "facility write committed", "op", w.op, "facility_id", w.id)
		return nil
	}

	failedAt := w.stage
	w.stage = stageRolledBack
	metrics.RecordFacilityWrite(w.op, string(stageRolledBack))
	w.log.WarnContext(ctx, "facility write rolled back",
		"op", w.op,
		"facility_id", w.id,
		"failed_after", string(failedAt),
		"error", err,
	)

	if isDomainError(err) {
		return fmt.Errorf("service.FacilityService.%s: %w", w.op, err)
	}
	return fmt.Errorf("service.FacilityService.%s: %w: %w", w.op, domain.ErrWriteFailed, err)
}

func isDomainError(err error) bool {
	return errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrConflict) ||
		errors.Is(err, domain.ErrBlocked)
}
