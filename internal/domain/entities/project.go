package entities

import "time"

// ProjectDifficulty classifies how experienced a freelancer should be.

type ProjectDifficulty string

const (
	DifficultyBeginner     ProjectDifficulty = "beginner"
	DifficultyIntermediate ProjectDifficulty = "intermediate"
	DifficultyProfessional ProjectDifficulty = "professional"
)

// Project is a unit of work posted by an employer.
//
// Storage model (DynamoDB):
//   - PK: id
//
// Milestones live in their own table and reference the project by id; the
// relationship is not enforced referentially. Deadline defaults to 24h from
// creation when the caller leaves it unset.
type Project struct {
	ID                   string            `json:"id"`
	ProjectName          string            `json:"projectname"`
	Description          string            `json:"description"`
	Amount               float64           `json:"amount"`
	Deadline             time.Time         `json:"deadline"`
	Tags                 []string          `json:"tags"`
	Difficulty           ProjectDifficulty `json:"difficulty"`
	Proposals            int               `json:"proposals"`
	CompleteStatus       bool              `json:"completeStatus"`
	AssignedFreelancerID string            `json:"assignedfreelancerid,omitempty"`
	CreatedAt            time.Time         `json:"createdAt"`
	UpdatedAt            time.Time         `json:"updatedAt"`
}
