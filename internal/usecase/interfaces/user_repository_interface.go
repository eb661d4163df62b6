package interfaces

import (
	"context"

	"freework/internal/domain/entities"
)

// IUserRepository abstracts DynamoDB persistence for User.
//
// GetByMail resolves through the mail GSI; a missing user returns a zero User
// and a nil error.

type IUserRepository interface {
	Create(ctx context.Context, u entities.User) (entities.User, error)
	GetByID(ctx context.Context, id string) (entities.User, error)
	GetByMail(ctx context.Context, mail string) (entities.User, error)
}
