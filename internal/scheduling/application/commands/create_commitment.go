package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/tempora/internal/scheduling/domain"
	"github.com/google/uuid"
)

// CreateCommitmentCommand contains the data needed to create a
// commitment. Nil time offsets fall back to the domain defaults.
type CreateCommitmentCommand struct {
	Title     string
	Date      time.Time
	StartTime *time.Duration
	EndTime   *time.Duration
	Flexible  bool
	Priority  int
}

// CreateCommitmentResult contains the result of creating a commitment.
type CreateCommitmentResult struct {
	CommitmentID uuid.UUID
}

// CreateCommitmentHandler handles the CreateCommitmentCommand.
type CreateCommitmentHandler struct {
	commitments domain.CommitmentRepository
	logger      *slog.Logger
}

// NewCreateCommitmentHandler creates a new CreateCommitmentHandler.
func NewCreateCommitmentHandler(commitments domain.CommitmentRepository, logger *slog.Logger) *CreateCommitmentHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CreateCommitmentHandler{commitments: commitments, logger: logger}
}

// Handle executes the CreateCommitmentCommand.
func (h *CreateCommitmentHandler) Handle(ctx context.Context, cmd CreateCommitmentCommand) (*CreateCommitmentResult, error) {
	if cmd.Title == "" {
		return nil, fmt.Errorf("commitment title is required")
	}
	if cmd.Date.IsZero() {
		return nil, fmt.Errorf("commitment date is required")
	}

	commitment := domain.NewCommitment(cmd.Title, cmd.Date)
	commitment.StartTime = cmd.StartTime
	commitment.EndTime = cmd.EndTime
	commitment.Fixed = !cmd.Flexible
	if cmd.Priority > 0 {
		commitment.Priority = cmd.Priority
	}

	if !commitment.EndAt().After(commitment.StartAt()) {
		return nil, domain.ErrInvalidInterval
	}

	if err := h.commitments.Save(ctx, commitment); err != nil {
		return nil, fmt.Errorf("failed to save commitment: %w", err)
	}

	h.logger.Info("commitment created",
		"commitment_id", commitment.ID,
		"date", commitment.Date.Format("2006-01-02"),
	)

	return &CreateCommitmentResult{CommitmentID: commitment.ID}, nil
}
