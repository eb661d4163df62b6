package entities

import "time"

// MilestoneStatus represents the lifecycle of a milestone.
//
// Canonical transitions (each one performed as a conditional update so a
// concurrent duplicate fails instead of repeating a side effect):
//
//	pending   --employer approves-->   approved
//	submitted --employer approves-->   approved
//	pending   --freelancer submits-->  submitted
//	rejected  --freelancer submits-->  submitted
//	submitted --employer rejects-->    rejected
//	approved  --employer funds-->      funded
//	funded    --freelancer withdraws-> withdrawn (terminal)

type MilestoneStatus string

const (
	MilestoneStatusPending   MilestoneStatus = "pending"
	MilestoneStatusSubmitted MilestoneStatus = "submitted"
	MilestoneStatusApproved  MilestoneStatus = "approved"
	MilestoneStatusRejected  MilestoneStatus = "rejected"
	MilestoneStatusFunded    MilestoneStatus = "funded"
	MilestoneStatusWithdrawn MilestoneStatus = "withdrawn"
)

// Milestone is a billable unit of project work persisted in DynamoDB.
//
// Storage model:
//   - PK: id
//   - GSI1 (project_id-index): project_id
//
// ProjectID and EmployerID are soft references; existence is validated by the
// usecases at each operation, not by the store.
//
// Amount is fixed at creation and never mutated. LinkRef and TransferRef are
// idempotency references persisted before the corresponding gateway call so a
// retried deposit/withdraw reuses the same external reference instead of
// minting a duplicate payment artifact.
type Milestone struct {
	ID           string          `json:"id"`
	ProjectID    string          `json:"projectId"`
	EmployerID   string          `json:"employerId"`
	Title        string          `json:"title"`
	Amount       float64         `json:"amount"`
	Status       MilestoneStatus `json:"status"`
	Submission   string          `json:"submission,omitempty"`
	EscrowFunded bool            `json:"escrowFunded"`
	LinkRef      string          `json:"linkRef,omitempty"`
	TransferRef  string          `json:"transferRef,omitempty"`
	TransferID   string          `json:"transferId,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}
