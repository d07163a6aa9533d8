package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/tempora/internal/scheduling/domain"
)

// CommitmentSource provides external calendar events as commitments.
type CommitmentSource interface {
	FetchCommitments(ctx context.Context, start, end time.Time) ([]*domain.Commitment, error)
}

// ImportCommitmentsCommand imports calendar events in an inclusive date
// range as commitments.
type ImportCommitmentsCommand struct {
	RangeStart time.Time
	RangeEnd   time.Time
}

// ImportCommitmentsResult reports the import outcome.
type ImportCommitmentsResult struct {
	Imported int
	Failed   int
}

// ImportCommitmentsHandler pulls events from a calendar source and
// persists them. Re-imports of the same events update existing rows.
type ImportCommitmentsHandler struct {
	source      CommitmentSource
	commitments domain.CommitmentRepository
	logger      *slog.Logger
}

// NewImportCommitmentsHandler creates a new ImportCommitmentsHandler.
func NewImportCommitmentsHandler(
	source CommitmentSource,
	commitments domain.CommitmentRepository,
	logger *slog.Logger,
) *ImportCommitmentsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ImportCommitmentsHandler{
		source:      source,
		commitments: commitments,
		logger:      logger,
	}
}

// Handle executes the ImportCommitmentsCommand.
func (h *ImportCommitmentsHandler) Handle(ctx context.Context, cmd ImportCommitmentsCommand) (*ImportCommitmentsResult, error) {
	if cmd.RangeEnd.Before(cmd.RangeStart) {
		return nil, domain.ErrInvalidInterval
	}

	fetched, err := h.source.FetchCommitments(ctx, cmd.RangeStart, cmd.RangeEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch calendar events: %w", err)
	}

	result := &ImportCommitmentsResult{}
	for _, c := range fetched {
		if err := h.commitments.Save(ctx, c); err != nil {
			h.logger.Warn("failed to save imported commitment",
				"commitment_id", c.ID,
				"error", err,
			)
			result.Failed++
			continue
		}
		result.Imported++
	}

	h.logger.Info("commitments imported",
		"fetched", len(fetched),
		"imported", result.Imported,
		"failed", result.Failed,
	)

	return result, nil
}
