package request

import (
	"time"

	"freework/internal/domain/entities"
	"freework/internal/usecase"
)

// ProjectCreateRequest creates a job posting. Deadline is optional; the
// usecase defaults it to 24h from creation.
type ProjectCreateRequest struct {
	ProjectName          string    `json:"projectname" binding:"required"`
	Description          string    `json:"description" binding:"required"`
	Amount               float64   `json:"amount"`
	Deadline             time.Time `json:"deadline"`
	Tags                 []string  `json:"tags"`
	Difficulty           string    `json:"difficulty" binding:"required"`
	Proposals            int       `json:"proposals"`
	CompleteStatus       bool      `json:"completeStatus"`
	AssignedFreelancerID string    `json:"assignedfreelancerid"`
}

func (r ProjectCreateRequest) ToInput() usecase.NewProjectInput {
	return usecase.NewProjectInput{
		ProjectName:          r.ProjectName,
		Description:          r.Description,
		Amount:               r.Amount,
		Deadline:             r.Deadline,
		Tags:                 r.Tags,
		Difficulty:           entities.ProjectDifficulty(r.Difficulty),
		Proposals:            r.Proposals,
		CompleteStatus:       r.CompleteStatus,
		AssignedFreelancerID: r.AssignedFreelancerID,
	}
}
