package entities

import "time"

// UserRole gates who may perform milestone and payment actions.

type UserRole string

const (
	RoleFreelancer UserRole = "freelancer"
	RoleEmployer   UserRole = "employer"
	RoleAdmin      UserRole = "admin"
)

// User is an account record.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (mail-index): mail
//
// Password holds the bcrypt hash, never the plaintext. CashfreeBeneID is the
// payout beneficiary reference registered with the gateway, unique when set.
type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Password       string    `json:"-"`
	Mail           string    `json:"mail"`
	Role           UserRole  `json:"role"`
	CashfreeBeneID string    `json:"cashfreeBeneId,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
