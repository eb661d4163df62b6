package response

import "freework/internal/domain/entities"

// UserResponse never includes the password hash.
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Mail     string `json:"mail"`
	Role     string `json:"role"`
}

func FromUser(u entities.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Mail:     u.Mail,
		Role:     string(u.Role),
	}
}
