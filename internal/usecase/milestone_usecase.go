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
	ErrMilestoneValidation = errors.New("projectId and employerId are required")
	ErrInvalidAmount       = errors.New("amount must be non-negative")
	ErrSubmissionRequired  = errors.New("submission reference is required")
	ErrMilestoneNotFound   = errors.New("milestone not found")
	ErrEmployerNotFound    = errors.New("employer not found")
	ErrFreelancerNotFound  = errors.New("freelancer not found")
	ErrNotAnEmployer       = errors.New("caller is not an employer")
	ErrInvalidTransition   = errors.New("transition not allowed from current status")
)

// IMilestoneUseCase is the milestone lifecycle controller: it owns every
// status transition and validates role/ownership preconditions before each.

type IMilestoneUseCase interface {
	Create(ctx context.Context, projectID, employerID, title string, amount float64) (entities.Milestone, error)
	ListByProject(ctx context.Context, projectID string) ([]entities.Milestone, error)
	Approve(ctx context.Context, employerID, milestoneID string) (entities.Milestone, error)
	Reject(ctx context.Context, employerID, milestoneID string) (entities.Milestone, error)
	SubmitWork(ctx context.Context, freelancerID, milestoneID, submission string) (entities.Milestone, error)
	ConfirmFunding(ctx context.Context, employerID, milestoneID string) (entities.Milestone, error)
}

type MilestoneUseCase struct {
	repo     interfaces.IMilestoneRepository
	userRepo interfaces.IUserRepository
}

var _ IMilestoneUseCase = (*MilestoneUseCase)(nil)

func NewMilestoneUseCase(repo interfaces.IMilestoneRepository, userRepo interfaces.IUserRepository) *MilestoneUseCase {
	return &MilestoneUseCase{repo: repo, userRepo: userRepo}
}

func (u *MilestoneUseCase) Create(ctx context.Context, projectID, employerID, title string, amount float64) (entities.Milestone, error) {
	projectID = strings.TrimSpace(projectID)
	employerID = strings.TrimSpace(employerID)
	if projectID == "" || employerID == "" {
		return entities.Milestone{}, ErrMilestoneValidation
	}
	if amount < 0 {
		return entities.Milestone{}, ErrInvalidAmount
	}

	now := time.Now().UTC()
	m := entities.Milestone{
		ID:         uuid.NewString(),
		ProjectID:  projectID,
		EmployerID: employerID,
		Title:      strings.TrimSpace(title),
		Amount:     amount,
		Status:     entities.MilestoneStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	created, err := u.repo.Create(ctx, m)
	if err != nil {
		logrus.Errorf("[milestone][usecase] create failed project_id=%s err=%v", projectID, err)
		return entities.Milestone{}, err
	}
	logrus.Infof("[milestone][usecase] created milestone_id=%s project_id=%s amount=%.2f", created.ID, projectID, amount)
	return created, nil
}

func (u *MilestoneUseCase) ListByProject(ctx context.Context, projectID string) ([]entities.Milestone, error) {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return nil, ErrMilestoneValidation
	}
	return u.repo.ListByProjectID(ctx, projectID)
}

// Approve moves a pending or submitted milestone to approved.
func (u *MilestoneUseCase) Approve(ctx context.Context, employerID, milestoneID string) (entities.Milestone, error) {
	from := []entities.MilestoneStatus{entities.MilestoneStatusPending, entities.MilestoneStatusSubmitted}
	return u.employerTransition(ctx, "approve", employerID, milestoneID, from, entities.MilestoneStatusApproved)
}

// Reject moves a submitted milestone back to rejected so the freelancer can
// resubmit.
func (u *MilestoneUseCase) Reject(ctx context.Context, employerID, milestoneID string) (entities.Milestone, error) {
	from := []entities.MilestoneStatus{entities.MilestoneStatusSubmitted}
	return u.employerTransition(ctx, "reject", employerID, milestoneID, from, entities.MilestoneStatusRejected)
}

// ConfirmFunding marks an approved milestone as escrow-funded. The deposit
// endpoint only creates the payment link; this is the separate confirmation
// step.
func (u *MilestoneUseCase) ConfirmFunding(ctx context.Context, employerID, milestoneID string) (entities.Milestone, error) {
	m, err := u.loadMilestone(ctx, milestoneID)
	if err != nil {
		return entities.Milestone{}, err
	}
	if err := u.requireEmployer(ctx, employerID); err != nil {
		return entities.Milestone{}, err
	}
	if m.Status != entities.MilestoneStatusApproved {
		return entities.Milestone{}, ErrInvalidTransition
	}

	updated, err := u.repo.MarkFunded(ctx, m.ID)
	if err != nil {
		return entities.Milestone{}, err
	}
	if updated.ID == "" {
		// Lost the race; someone else moved it first.
		return entities.Milestone{}, ErrInvalidTransition
	}
	logrus.Infof("[milestone][usecase] funded milestone_id=%s", updated.ID)
	return updated, nil
}

// SubmitWork records proof of work and moves the milestone to submitted.
func (u *MilestoneUseCase) SubmitWork(ctx context.Context, freelancerID, milestoneID, submission string) (entities.Milestone, error) {
	submission = strings.TrimSpace(submission)
	if submission == "" {
		return entities.Milestone{}, ErrSubmissionRequired
	}

	m, err := u.loadMilestone(ctx, milestoneID)
	if err != nil {
		return entities.Milestone{}, err
	}

	freelancer, err := u.userRepo.GetByID(ctx, strings.TrimSpace(freelancerID))
	if err != nil {
		return entities.Milestone{}, err
	}
	if freelancer.ID == "" {
		return entities.Milestone{}, ErrFreelancerNotFound
	}

	from := []entities.MilestoneStatus{entities.MilestoneStatusPending, entities.MilestoneStatusRejected}
	if !statusIn(m.Status, from) {
		return entities.Milestone{}, ErrInvalidTransition
	}

	updated, err := u.repo.SubmitWork(ctx, m.ID, from, submission)
	if err != nil {
		return entities.Milestone{}, err
	}
	if updated.ID == "" {
		return entities.Milestone{}, ErrInvalidTransition
	}
	logrus.Infof("[milestone][usecase] work submitted milestone_id=%s freelancer_id=%s", updated.ID, freelancer.ID)
	return updated, nil
}

func (u *MilestoneUseCase) employerTransition(ctx context.Context, op, employerID, milestoneID string, from []entities.MilestoneStatus, to entities.MilestoneStatus) (entities.Milestone, error) {
	m, err := u.loadMilestone(ctx, milestoneID)
	if err != nil {
		return entities.Milestone{}, err
	}
	if err := u.requireEmployer(ctx, employerID); err != nil {
		return entities.Milestone{}, err
	}
	if !statusIn(m.Status, from) {
		logrus.Warnf("[milestone][usecase] %s rejected milestone_id=%s status=%s", op, m.ID, m.Status)
		return entities.Milestone{}, ErrInvalidTransition
	}

	updated, err := u.repo.TransitionStatus(ctx, m.ID, from, to)
	if err != nil {
		logrus.Errorf("[milestone][usecase] %s failed milestone_id=%s err=%v", op, m.ID, err)
		return entities.Milestone{}, err
	}
	if updated.ID == "" {
		// The conditional update lost a race; the observed status is stale.
		logrus.Warnf("[milestone][usecase] %s conflicted milestone_id=%s", op, m.ID)
		return entities.Milestone{}, ErrInvalidTransition
	}
	logrus.Infof("[milestone][usecase] %s success milestone_id=%s status=%s", op, updated.ID, updated.Status)
	return updated, nil
}

func (u *MilestoneUseCase) loadMilestone(ctx context.Context, milestoneID string) (entities.Milestone, error) {
	milestoneID = strings.TrimSpace(milestoneID)
	if milestoneID == "" {
		return entities.Milestone{}, ErrMilestoneValidation
	}
	m, err := u.repo.GetByID(ctx, milestoneID)
	if err != nil {
		return entities.Milestone{}, err
	}
	if m.ID == "" {
		return entities.Milestone{}, ErrMilestoneNotFound
	}
	return m, nil
}

func (u *MilestoneUseCase) requireEmployer(ctx context.Context, employerID string) error {
	employer, err := u.userRepo.GetByID(ctx, strings.TrimSpace(employerID))
	if err != nil {
		return err
	}
	if employer.ID == "" {
		return ErrEmployerNotFound
	}
	if employer.Role != entities.RoleEmployer {
		return ErrNotAnEmployer
	}
	return nil
}

func statusIn(s entities.MilestoneStatus, set []entities.MilestoneStatus) bool {
	for _, v := range set {
		if s == v {
			return true
		}
	}
	return false
}
