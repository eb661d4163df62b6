package response

import (
	"time"

	"freework/internal/domain/entities"
)

type MilestoneResponse struct {
	ID           string    `json:"id"`
	ProjectID    string    `json:"projectId"`
	EmployerID   string    `json:"employerId"`
	Title        string    `json:"title"`
	Amount       float64   `json:"amount"`
	Status       string    `json:"status"`
	Submission   string    `json:"submission,omitempty"`
	EscrowFunded bool      `json:"escrowFunded"`
	TransferID   string    `json:"transferId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func FromMilestone(m entities.Milestone) MilestoneResponse {
	return MilestoneResponse{
		ID:           m.ID,
		ProjectID:    m.ProjectID,
		EmployerID:   m.EmployerID,
		Title:        m.Title,
		Amount:       m.Amount,
		Status:       string(m.Status),
		Submission:   m.Submission,
		EscrowFunded: m.EscrowFunded,
		TransferID:   m.TransferID,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func FromMilestones(ms []entities.Milestone) []MilestoneResponse {
	out := make([]MilestoneResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromMilestone(m))
	}
	return out
}
