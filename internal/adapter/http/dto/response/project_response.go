package response

import (
	"time"

	"freework/internal/domain/entities"
)

type ProjectResponse struct {
	ID                   string    `json:"id"`
	ProjectName          string    `json:"projectname"`
	Description          string    `json:"description"`
	Amount               float64   `json:"amount"`
	Deadline             time.Time `json:"deadline"`
	Tags                 []string  `json:"tags"`
	Difficulty           string    `json:"difficulty"`
	Proposals            int       `json:"proposals"`
	CompleteStatus       bool      `json:"completeStatus"`
	AssignedFreelancerID string    `json:"assignedfreelancerid,omitempty"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

func FromProject(p entities.Project) ProjectResponse {
	return ProjectResponse{
		ID:                   p.ID,
		ProjectName:          p.ProjectName,
		Description:          p.Description,
		Amount:               p.Amount,
		Deadline:             p.Deadline,
		Tags:                 p.Tags,
		Difficulty:           string(p.Difficulty),
		Proposals:            p.Proposals,
		CompleteStatus:       p.CompleteStatus,
		AssignedFreelancerID: p.AssignedFreelancerID,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}

func FromProjects(ps []entities.Project) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, FromProject(p))
	}
	return out
}
