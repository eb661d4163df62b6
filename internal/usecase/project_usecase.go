package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"freework/internal/domain/entities"
	"freework/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrProjectValidation = errors.New("projectname and description are required")
	ErrInvalidDifficulty = errors.New("difficulty must be beginner, intermediate or professional")
	ErrProjectNotFound   = errors.New("project not found")
)

// Deadline applied when the caller leaves it unset.
const defaultDeadlineOffset = 24 * time.Hour

// NewProjectInput is the usecase-level shape for creating a project.
type NewProjectInput struct {
	ProjectName          string
	Description          string
	Amount               float64
	Deadline             time.Time
	Tags                 []string
	Difficulty           entities.ProjectDifficulty
	Proposals            int
	CompleteStatus       bool
	AssignedFreelancerID string
}

type IProjectUseCase interface {
	Create(ctx context.Context, in NewProjectInput) (entities.Project, error)
	List(ctx context.Context) ([]entities.Project, error)
	GetByID(ctx context.Context, id string) (entities.Project, error)
}

type ProjectUseCase struct {
	repo interfaces.IProjectRepository
}

var _ IProjectUseCase = (*ProjectUseCase)(nil)

func NewProjectUseCase(repo interfaces.IProjectRepository) *ProjectUseCase {
	return &ProjectUseCase{repo: repo}
}

func (u *ProjectUseCase) Create(ctx context.Context, in NewProjectInput) (entities.Project, error) {
	in.ProjectName = strings.TrimSpace(in.ProjectName)
	in.Description = strings.TrimSpace(in.Description)
	if in.ProjectName == "" || in.Description == "" {
		return entities.Project{}, ErrProjectValidation
	}
	switch in.Difficulty {
	case entities.DifficultyBeginner, entities.DifficultyIntermediate, entities.DifficultyProfessional:
	default:
		return entities.Project{}, ErrInvalidDifficulty
	}

	now := time.Now().UTC()
	deadline := in.Deadline
	if deadline.IsZero() {
		deadline = now.Add(defaultDeadlineOffset)
	}

	p := entities.Project{
		ID:                   uuid.NewString(),
		ProjectName:          in.ProjectName,
		Description:          in.Description,
		Amount:               in.Amount,
		Deadline:             deadline,
		Tags:                 in.Tags,
		Difficulty:           in.Difficulty,
		Proposals:            in.Proposals,
		CompleteStatus:       in.CompleteStatus,
		AssignedFreelancerID: in.AssignedFreelancerID,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	created, err := u.repo.Create(ctx, p)
	if err != nil {
		logrus.Errorf("[project][usecase] create failed name=%s err=%v", in.ProjectName, err)
		return entities.Project{}, err
	}
	logrus.Infof("[project][usecase] created project_id=%s name=%s", created.ID, created.ProjectName)
	return created, nil
}

func (u *ProjectUseCase) List(ctx context.Context) ([]entities.Project, error) {
	return u.repo.List(ctx)
}

func (u *ProjectUseCase) GetByID(ctx context.Context, id string) (entities.Project, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Project{}, ErrProjectValidation
	}
	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Project{}, err
	}
	if p.ID == "" {
		return entities.Project{}, ErrProjectNotFound
	}
	return p, nil
}
