package interfaces

import (
	"context"

	"freework/internal/domain/entities"
)

// IProjectRepository abstracts DynamoDB persistence for Project.

type IProjectRepository interface {
	Create(ctx context.Context, p entities.Project) (entities.Project, error)
	GetByID(ctx context.Context, id string) (entities.Project, error)
	List(ctx context.Context) ([]entities.Project, error)
}
