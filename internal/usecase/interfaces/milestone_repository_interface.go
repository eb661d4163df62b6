package interfaces

import (
	"context"

	"freework/internal/domain/entities"
)

// IMilestoneRepository abstracts DynamoDB persistence for Milestone.
//
// Every status mutation is a conditional update: the write succeeds only when
// the stored status is one of the expected `from` values, so two concurrent
// callers can not both apply the same transition. A failed condition returns a
// zero Milestone and a nil error; callers map that to an invalid-state error.

type IMilestoneRepository interface {
	Create(ctx context.Context, m entities.Milestone) (entities.Milestone, error)
	GetByID(ctx context.Context, id string) (entities.Milestone, error)
	ListByProjectID(ctx context.Context, projectID string) ([]entities.Milestone, error)

	// TransitionStatus applies from -> to as a single compare-and-swap.
	TransitionStatus(ctx context.Context, id string, from []entities.MilestoneStatus, to entities.MilestoneStatus) (entities.Milestone, error)

	// SubmitWork records the proof-of-work reference while transitioning to
	// submitted.
	SubmitWork(ctx context.Context, id string, from []entities.MilestoneStatus, submission string) (entities.Milestone, error)

	// MarkFunded applies approved -> funded and sets the escrow flag.
	MarkFunded(ctx context.Context, id string) (entities.Milestone, error)

	// AssignLinkRef persists ref as the payment-link id unless one is already
	// stored, and returns the stored value. Retried deposits reuse it.
	AssignLinkRef(ctx context.Context, id, ref string) (string, error)

	// AssignTransferRef persists ref as the payout transfer id unless one is
	// already stored, and returns the stored value. Retried withdrawals reuse it.
	AssignTransferRef(ctx context.Context, id, ref string) (string, error)

	// RecordWithdrawal applies funded -> withdrawn and stores the gateway
	// transfer id.
	RecordWithdrawal(ctx context.Context, id, transferID string) (entities.Milestone, error)
}
