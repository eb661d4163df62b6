package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"freework/internal/domain/entities"
	mock_interfaces "freework/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestProjectUseCase_Create(t *testing.T) {
	t.Run("missing name", func(t *testing.T) {
		uc := NewProjectUseCase(nil)
		_, err := uc.Create(context.Background(), NewProjectInput{Description: "d", Difficulty: entities.DifficultyBeginner})
		if !errors.Is(err, ErrProjectValidation) {
			t.Fatalf("expected ErrProjectValidation, got %v", err)
		}
	})

	t.Run("missing description", func(t *testing.T) {
		uc := NewProjectUseCase(nil)
		_, err := uc.Create(context.Background(), NewProjectInput{ProjectName: "site", Difficulty: entities.DifficultyBeginner})
		if !errors.Is(err, ErrProjectValidation) {
			t.Fatalf("expected ErrProjectValidation, got %v", err)
		}
	})

	t.Run("unknown difficulty", func(t *testing.T) {
		uc := NewProjectUseCase(nil)
		_, err := uc.Create(context.Background(), NewProjectInput{
			ProjectName: "site",
			Description: "landing page",
			Difficulty:  entities.ProjectDifficulty("expert"),
		})
		if !errors.Is(err, ErrInvalidDifficulty) {
			t.Fatalf("expected ErrInvalidDifficulty, got %v", err)
		}
	})

	t.Run("deadline defaults when unset", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProjectRepository(ctrl)
		uc := NewProjectUseCase(repo)

		before := time.Now().UTC()
		repo.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Project{})).DoAndReturn(
			func(_ context.Context, p entities.Project) (entities.Project, error) {
				if p.ID == "" {
					t.Fatalf("id must be generated")
				}
				if p.Deadline.Before(before.Add(23 * time.Hour)) {
					t.Fatalf("expected default deadline about a day out, got %v", p.Deadline)
				}
				return p, nil
			},
		)

		res, err := uc.Create(context.Background(), NewProjectInput{
			ProjectName: " site ",
			Description: " landing page ",
			Amount:      1500,
			Difficulty:  entities.DifficultyIntermediate,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.ProjectName != "site" || res.Description != "landing page" {
			t.Fatalf("unexpected project: %+v", res)
		}
	})

	t.Run("explicit deadline kept", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProjectRepository(ctrl)
		uc := NewProjectUseCase(repo)

		deadline := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entities.Project) (entities.Project, error) {
				if !p.Deadline.Equal(deadline) {
					t.Fatalf("expected caller deadline, got %v", p.Deadline)
				}
				return p, nil
			},
		)

		_, err := uc.Create(context.Background(), NewProjectInput{
			ProjectName: "site",
			Description: "landing page",
			Deadline:    deadline,
			Difficulty:  entities.DifficultyProfessional,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestProjectUseCase_GetByID(t *testing.T) {
	t.Run("missing id", func(t *testing.T) {
		uc := NewProjectUseCase(nil)
		_, err := uc.GetByID(context.Background(), " ")
		if !errors.Is(err, ErrProjectValidation) {
			t.Fatalf("expected ErrProjectValidation, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProjectRepository(ctrl)
		uc := NewProjectUseCase(repo)
		repo.EXPECT().GetByID(gomock.Any(), "p-x").Return(entities.Project{}, nil)

		_, err := uc.GetByID(context.Background(), "p-x")
		if !errors.Is(err, ErrProjectNotFound) {
			t.Fatalf("expected ErrProjectNotFound, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIProjectRepository(ctrl)
		uc := NewProjectUseCase(repo)
		repo.EXPECT().GetByID(gomock.Any(), "p-1").Return(entities.Project{ID: "p-1"}, nil)

		res, err := uc.GetByID(context.Background(), " p-1 ")
		if err != nil || res.ID != "p-1" {
			t.Fatalf("unexpected result err=%v res=%+v", err, res)
		}
	})
}

func TestProjectUseCase_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIProjectRepository(ctrl)
	uc := NewProjectUseCase(repo)
	repo.EXPECT().List(gomock.Any()).Return([]entities.Project{{ID: "p-1"}, {ID: "p-2"}}, nil)

	res, err := uc.List(context.Background())
	if err != nil || len(res) != 2 {
		t.Fatalf("unexpected result err=%v res=%+v", err, res)
	}
}
