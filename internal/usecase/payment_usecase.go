package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"freework/internal/domain/entities"
	"freework/internal/usecase/interfaces"

	"github.com/sirupsen/logrus"
)

var (
	ErrMilestoneNotFunded = errors.New("milestone is not yet approved/funded")
	ErrGatewayUnavailable = errors.New("payment gateway not configured")
)

// Cashfree requires a customer phone on payment links; employers have no
// stored phone, so links carry a fixed sandbox contact.
const defaultCustomerPhone = "9936012303"

// IPaymentUseCase orchestrates the gateway calls of the milestone lifecycle:
// hosted payment links for escrow funding and payout transfers for
// withdrawal.

type IPaymentUseCase interface {
	CreatePaymentLink(ctx context.Context, employerID, milestoneID string) (string, error)
	Withdraw(ctx context.Context, freelancerID, milestoneID string) (string, error)
}

type PaymentUseCase struct {
	milestoneRepo interfaces.IMilestoneRepository
	userRepo      interfaces.IUserRepository
	gateway       interfaces.IPaymentGateway
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(milestoneRepo interfaces.IMilestoneRepository, userRepo interfaces.IUserRepository, gateway interfaces.IPaymentGateway) *PaymentUseCase {
	return &PaymentUseCase{milestoneRepo: milestoneRepo, userRepo: userRepo, gateway: gateway}
}

// CreatePaymentLink creates a hosted payment link for the milestone amount.
// The amount always comes from the stored milestone; the link reference is
// persisted before the gateway call so a retried deposit reuses it. Status is
// not changed here; funding confirmation is a separate operation.
func (u *PaymentUseCase) CreatePaymentLink(ctx context.Context, employerID, milestoneID string) (string, error) {
	employerID = strings.TrimSpace(employerID)
	milestoneID = strings.TrimSpace(milestoneID)
	if employerID == "" || milestoneID == "" {
		return "", ErrMilestoneValidation
	}
	if u.gateway == nil {
		return "", ErrGatewayUnavailable
	}

	employer, err := u.userRepo.GetByID(ctx, employerID)
	if err != nil {
		return "", err
	}
	if employer.ID == "" {
		return "", ErrEmployerNotFound
	}
	if employer.Role != entities.RoleEmployer {
		return "", ErrNotAnEmployer
	}

	m, err := u.milestoneRepo.GetByID(ctx, milestoneID)
	if err != nil {
		return "", err
	}
	if m.ID == "" {
		return "", ErrMilestoneNotFound
	}

	ref, err := u.milestoneRepo.AssignLinkRef(ctx, m.ID, uniqueRef("MS", m.ID))
	if err != nil {
		return "", err
	}
	if ref == "" {
		return "", ErrMilestoneNotFound
	}

	logrus.Infof("[payment][usecase] creating link milestone_id=%s link_id=%s amount=%.2f", m.ID, ref, m.Amount)
	linkURL, err := u.gateway.CreateLink(ctx, interfaces.CreateLinkInput{
		CustomerID:    employer.ID,
		CustomerName:  employer.Username,
		CustomerEmail: employer.Mail,
		CustomerPhone: defaultCustomerPhone,
		Amount:        m.Amount,
		Purpose:       fmt.Sprintf("Milestone Payment for %s", m.Title),
		UniqueRef:     ref,
	})
	if err != nil {
		logrus.Errorf("[payment][usecase] link creation failed milestone_id=%s err=%v", m.ID, err)
		return "", err
	}
	logrus.Infof("[payment][usecase] link created milestone_id=%s", m.ID)
	return linkURL, nil
}

// Withdraw pays the funded amount out to the freelancer and marks the
// milestone withdrawn. On gateway failure the milestone is left unchanged so
// the caller can retry; the persisted transfer reference keeps a retry from
// producing a second payout.
func (u *PaymentUseCase) Withdraw(ctx context.Context, freelancerID, milestoneID string) (string, error) {
	freelancerID = strings.TrimSpace(freelancerID)
	milestoneID = strings.TrimSpace(milestoneID)
	if freelancerID == "" || milestoneID == "" {
		return "", ErrMilestoneValidation
	}
	if u.gateway == nil {
		return "", ErrGatewayUnavailable
	}

	m, err := u.milestoneRepo.GetByID(ctx, milestoneID)
	if err != nil {
		return "", err
	}
	if m.ID == "" {
		return "", ErrMilestoneNotFound
	}
	if m.Status != entities.MilestoneStatusFunded {
		logrus.Warnf("[payment][usecase] withdraw rejected milestone_id=%s status=%s", m.ID, m.Status)
		return "", ErrMilestoneNotFunded
	}

	freelancer, err := u.userRepo.GetByID(ctx, freelancerID)
	if err != nil {
		return "", err
	}
	if freelancer.ID == "" {
		return "", ErrFreelancerNotFound
	}

	beneRef := freelancer.CashfreeBeneID
	if beneRef == "" {
		beneRef = freelancer.ID
	}

	ref, err := u.milestoneRepo.AssignTransferRef(ctx, m.ID, uniqueRef("TR", m.ID))
	if err != nil {
		return "", err
	}
	if ref == "" {
		return "", ErrMilestoneNotFound
	}

	logrus.Infof("[payment][usecase] payout start milestone_id=%s transfer_ref=%s amount=%.2f", m.ID, ref, m.Amount)
	transferID, err := u.gateway.RequestPayout(ctx, interfaces.PayoutInput{
		BeneficiaryRef: beneRef,
		Amount:         m.Amount,
		UniqueRef:      ref,
	})
	if err != nil {
		logrus.Errorf("[payment][usecase] payout failed milestone_id=%s err=%v", m.ID, err)
		return "", err
	}

	updated, err := u.milestoneRepo.RecordWithdrawal(ctx, m.ID, transferID)
	if err != nil {
		return "", err
	}
	if updated.ID == "" {
		// A concurrent withdrawal already moved it; the payout itself was
		// deduplicated by the shared transfer reference.
		return "", ErrInvalidTransition
	}
	logrus.Infof("[payment][usecase] withdrawal success milestone_id=%s transfer_id=%s", updated.ID, transferID)
	return transferID, nil
}

func uniqueRef(prefix, milestoneID string) string {
	return fmt.Sprintf("%s_%s_%d", prefix, milestoneID, time.Now().UnixMilli())
}
