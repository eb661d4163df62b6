package request

// EmployerMilestoneRequest is shared by the deposit, approve, reject and fund
// endpoints. The milestone amount is never part of the payload; it is read
// from storage.
type EmployerMilestoneRequest struct {
	EmployerID  string `json:"employerId" binding:"required"`
	MilestoneID string `json:"milestoneId" binding:"required"`
}

// WithdrawRequest asks for a payout of a funded milestone.
type WithdrawRequest struct {
	FreelancerID string `json:"freelancerId" binding:"required"`
	MilestoneID  string `json:"milestoneId" binding:"required"`
}
