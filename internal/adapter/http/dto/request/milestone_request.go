package request

// MilestoneCreateRequest creates a milestone under a project. Status is always
// forced to pending server-side.
type MilestoneCreateRequest struct {
	ProjectID  string  `json:"projectId" binding:"required"`
	EmployerID string  `json:"employerId" binding:"required"`
	Title      string  `json:"title"`
	Amount     float64 `json:"amount" binding:"gte=0"`
}

// MilestoneSubmitRequest records proof of work.
type MilestoneSubmitRequest struct {
	FreelancerID string `json:"freelancerId" binding:"required"`
	MilestoneID  string `json:"milestoneId" binding:"required"`
	Submission   string `json:"submission" binding:"required"`
}
