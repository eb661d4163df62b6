package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"freework/internal/domain/entities"
	"freework/internal/usecase/interfaces"
	mock_interfaces "freework/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestPaymentUseCase_CreatePaymentLink(t *testing.T) {
	t.Run("missing ids", func(t *testing.T) {
		uc := NewPaymentUseCase(nil, nil, nil)
		if _, err := uc.CreatePaymentLink(context.Background(), " ", "ms-1"); !errors.Is(err, ErrMilestoneValidation) {
			t.Fatalf("expected ErrMilestoneValidation, got %v", err)
		}
		if _, err := uc.CreatePaymentLink(context.Background(), "emp-1", ""); !errors.Is(err, ErrMilestoneValidation) {
			t.Fatalf("expected ErrMilestoneValidation, got %v", err)
		}
	})

	t.Run("gateway not configured", func(t *testing.T) {
		uc := NewPaymentUseCase(nil, nil, nil)
		_, err := uc.CreatePaymentLink(context.Background(), "emp-1", "ms-1")
		if !errors.Is(err, ErrGatewayUnavailable) {
			t.Fatalf("expected ErrGatewayUnavailable, got %v", err)
		}
	})

	t.Run("freelancer cannot deposit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		msRepo := mock_interfaces.NewMockIMilestoneRepository(ctrl)
		userRepo := mock_interfaces.NewMockIUserRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewPaymentUseCase(msRepo, userRepo, gateway)

		userRepo.EXPECT().GetByID(gomock.Any(), "dev-1").Return(freelancerUser("dev-1"), nil)

		_, err := uc.CreatePaymentLink(context.Background(), "dev-1", "ms-1")
		if !errors.Is(err, ErrNotAnEmployer) {
			t.Fatalf("expected ErrNotAnEmployer, got %v", err)
		}
	})

	t.Run("milestone not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		msRepo := mock_interfaces.NewMockIMilestoneRepository(ctrl)
		userRepo := mock_interfaces.NewMockIUserRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewPaymentUseCase(msRepo, userRepo, gateway)

		userRepo.EXPECT().GetByID(gomock.Any(), "emp-1").Return(employerUser("emp-1"), nil)
		msRepo.EXPECT().GetByID(gomock.Any(), "ms-x").Return(entities.Milestone{}, nil)

		_, err := uc.CreatePaymentLink(context.Background(), "emp-1", "ms-x")
		if !errors.Is(err, ErrMilestoneNotFound) {
			t.Fatalf("expected ErrMilestoneNotFound, got %v", err)
		}
	})

	t.Run("amount always comes from the stored milestone", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		msRepo := mock_interfaces.NewMockIMilestoneRepository(ctrl)
		userRepo := mock_interfaces.NewMockIUserRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewPaymentUseCase(msRepo, userRepo, gateway)

		userRepo.EXPECT().GetByID(gomock.Any(), "emp-1").Return(employerUser("emp-1"), nil)
		msRepo.EXPECT().GetByID(gomock.Any(), "ms-1").
			Return(entities.Milestone{ID: "ms-1", Title: "api work", Amount: 4200.50, Status: entities.MilestoneStatusApproved}, nil)
		msRepo.EXPECT().AssignLinkRef(gomock.Any(), "ms-1", gomock.Any()).DoAndReturn(
			func(_ context.Context, id, ref string) (string, error) {
				if !strings.HasPrefix(ref, "MS_ms-1_") {
					t.Fatalf("unexpected link ref %q", ref)
				}
				return ref, nil
			},
		)
		gateway.EXPECT().CreateLink(gomock.Any(), gomock.AssignableToTypeOf(interfaces.CreateLinkInput{})).DoAndReturn(
			func(_ context.Context, in interfaces.CreateLinkInput) (string, error) {
				if in.Amount != 4200.50 {
					t.Fatalf("amount must come from the stored milestone, got %.2f", in.Amount)
				}
				if !strings.Contains(in.UniqueRef, "ms-1") {
					t.Fatalf("link ref must carry the milestone id, got %q", in.UniqueRef)
				}
				if in.CustomerID != "emp-1" || in.CustomerEmail != "boss@test.com" {
					t.Fatalf("unexpected customer: %+v", in)
				}
				if in.CustomerPhone == "" {
					t.Fatalf("customer phone must be set")
				}
				return "https://pay.test/link-1", nil
			},
		)

		link, err := uc.CreatePaymentLink(context.Background(), "emp-1", "ms-1")
		if err != nil || link != "https://pay.test/link-1" {
			t.Fatalf("unexpected result err=%v link=%q", err, link)
		}
	})

	t.Run("retry reuses the persisted link ref", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		msRepo := mock_interfaces.NewMockIMilestoneRepository(ctrl)
		userRepo := mock_interfaces.NewMockIUserRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewPaymentUseCase(msRepo, userRepo, gateway)

		userRepo.EXPECT().GetByID(gomock.Any(), "emp-1").Return(employerUser("emp-1"), nil)
		msRepo.EXPECT().GetByID(gomock.Any(), "ms-1").
			Return(entities.Milestone{ID: "ms-1", Amount: 100, Status: entities.MilestoneStatusApproved}, nil)
		// The store keeps the ref assigned on the first attempt.
		msRepo.EXPECT().AssignLinkRef(gomock.Any(), "ms-1", gomock.Any()).Return("MS_ms-1_111", nil)
		gateway.EXPECT().CreateLink(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, in interfaces.CreateLinkInput) (string, error) {
				if in.UniqueRef != "MS_ms-1_111" {
					t.Fatalf("expected stored ref, got %q", in.UniqueRef)
				}
				return "https://pay.test/link-1", nil
			},
		)

		if _, err := uc.CreatePaymentLink(context.Background(), "emp-1", "ms-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("gateway failure bubbles up", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		msRepo := mock_interfaces.NewMockIMilestoneRepository(ctrl)
		userRepo := mock_interfaces.NewMockIUserRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewPaymentUseCase(msRepo, userRepo, gateway)

		userRepo.EXPECT().GetByID(gomock.Any(), "emp-1").Return(employerUser("emp-1"), nil)
		msRepo.EXPECT().GetByID(gomock.Any(), "ms-1").
			Return(entities.Milestone{ID: "ms-1", Amount: 100, Status: entities.MilestoneStatusApproved}, nil)
		msRepo.EXPECT().AssignLinkRef(gomock.Any(), "ms-1", gomock.Any()).Return("MS_ms-1_111", nil)
		gateway.EXPECT().CreateLink(gomock.Any(), gomock.Any()).Return("", errors.New("cashfree down"))

		_, err := uc.CreatePaymentLink(context.Background(), "emp-1", "ms-1")
		if err == nil || err.Error() != "cashfree down" {
			t.Fatalf("expected gateway error, got %v", err)
		}
	})
}

func TestPaymentUseCase_Withdraw(t *testing.T) {
	notFunded := []entities.MilestoneStatus{
		entities.MilestoneStatusPending,
		entities.MilestoneStatusSubmitted,
		entities.MilestoneStatusApproved,
		entities.MilestoneStatusRejected,
		entities.MilestoneStatusWithdrawn,
	}
	for _, status := range notFunded {
		t.Run("blocked from "+string(status), func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			msRepo := mock_interfaces.NewMockIMilestoneRepository(ctrl)
			userRepo := mock_interfaces.NewMockIUserRepository(ctrl)
			gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
			uc := NewPaymentUseCase(msRepo, userRepo, gateway)

			msRepo.EXPECT().GetByID(gomock.Any(), "ms-1").Return(entities.Milestone{ID: "ms-1", Status: status}, nil)

			_, err := uc.Withdraw(context.Background(), "dev-1", "ms-1")
			if !errors.Is(err, ErrMilestoneNotFunded) {
				t.Fatalf("expected ErrMilestoneNotFunded, got %v", err)
			}
		})
	}

	t.Run("funded milestone pays out", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		msRepo := mock_interfaces.NewMockIMilestoneRepository(ctrl)
		userRepo := mock_interfaces.NewMockIUserRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewPaymentUseCase(msRepo, userRepo, gateway)

		dev := freelancerUser("dev-1")
		dev.CashfreeBeneID = "bene-77"

		msRepo.EXPECT().GetByID(gomock.Any(), "ms-1").
			Return(entities.Milestone{ID: "ms-1", Amount: 500, Status: entities.MilestoneStatusFunded}, nil)
		userRepo.EXPECT().GetByID(gomock.Any(), "dev-1").Return(dev, nil)
		msRepo.EXPECT().AssignTransferRef(gomock.Any(), "ms-1", gomock.Any()).DoAndReturn(
			func(_ context.Context, id, ref string) (string, error) {
				if !strings.HasPrefix(ref, "TR_ms-1_") {
					t.Fatalf("unexpected transfer ref %q", ref)
				}
				return ref, nil
			},
		)
		gateway.EXPECT().RequestPayout(gomock.Any(), gomock.AssignableToTypeOf(interfaces.PayoutInput{})).DoAndReturn(
			func(_ context.Context, in interfaces.PayoutInput) (string, error) {
				if in.BeneficiaryRef != "bene-77" {
					t.Fatalf("expected registered beneficiary, got %q", in.BeneficiaryRef)
				}
				if in.Amount != 500 {
					t.Fatalf("amount must come from the stored milestone, got %.2f", in.Amount)
				}
				return "transfer-9", nil
			},
		)
		msRepo.EXPECT().RecordWithdrawal(gomock.Any(), "ms-1", "transfer-9").
			Return(entities.Milestone{ID: "ms-1", Status: entities.MilestoneStatusWithdrawn, TransferID: "transfer-9"}, nil)

		transferID, err := uc.Withdraw(context.Background(), "dev-1", "ms-1")
		if err != nil || transferID != "transfer-9" {
			t.Fatalf("unexpected result err=%v transferID=%q", err, transferID)
		}
	})

	t.Run("beneficiary falls back to user id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		msRepo := mock_interfaces.NewMockIMilestoneRepository(ctrl)
		userRepo := mock_interfaces.NewMockIUserRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewPaymentUseCase(msRepo, userRepo, gateway)

		msRepo.EXPECT().GetByID(gomock.Any(), "ms-1").
			Return(entities.Milestone{ID: "ms-1", Amount: 500, Status: entities.MilestoneStatusFunded}, nil)
		userRepo.EXPECT().GetByID(gomock.Any(), "dev-1").Return(freelancerUser("dev-1"), nil)
		msRepo.EXPECT().AssignTransferRef(gomock.Any(), "ms-1", gomock.Any()).Return("TR_ms-1_1", nil)
		gateway.EXPECT().RequestPayout(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, in interfaces.PayoutInput) (string, error) {
				if in.BeneficiaryRef != "dev-1" {
					t.Fatalf("expected user id fallback, got %q", in.BeneficiaryRef)
				}
				return "transfer-1", nil
			},
		)
		msRepo.EXPECT().RecordWithdrawal(gomock.Any(), "ms-1", "transfer-1").
			Return(entities.Milestone{ID: "ms-1", Status: entities.MilestoneStatusWithdrawn}, nil)

		if _, err := uc.Withdraw(context.Background(), "dev-1", "ms-1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("gateway failure leaves the milestone unchanged", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		msRepo := mock_interfaces.NewMockIMilestoneRepository(ctrl)
		userRepo := mock_interfaces.NewMockIUserRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewPaymentUseCase(msRepo, userRepo, gateway)

		msRepo.EXPECT().GetByID(gomock.Any(), "ms-1").
			Return(entities.Milestone{ID: "ms-1", Amount: 500, Status: entities.MilestoneStatusFunded}, nil)
		userRepo.EXPECT().GetByID(gomock.Any(), "dev-1").Return(freelancerUser("dev-1"), nil)
		msRepo.EXPECT().AssignTransferRef(gomock.Any(), "ms-1", gomock.Any()).Return("TR_ms-1_1", nil)
		gateway.EXPECT().RequestPayout(gomock.Any(), gomock.Any()).Return("", errors.New("payout down"))
		// No RecordWithdrawal call: the status stays funded so the caller can
		// retry with the same transfer ref.

		_, err := uc.Withdraw(context.Background(), "dev-1", "ms-1")
		if err == nil || err.Error() != "payout down" {
			t.Fatalf("expected payout down, got %v", err)
		}
	})

	t.Run("concurrent withdrawal already recorded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		msRepo := mock_interfaces.NewMockIMilestoneRepository(ctrl)
		userRepo := mock_interfaces.NewMockIUserRepository(ctrl)
		gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
		uc := NewPaymentUseCase(msRepo, userRepo, gateway)

		msRepo.EXPECT().GetByID(gomock.Any(), "ms-1").
			Return(entities.Milestone{ID: "ms-1", Amount: 500, Status: entities.MilestoneStatusFunded}, nil)
		userRepo.EXPECT().GetByID(gomock.Any(), "dev-1").Return(freelancerUser("dev-1"), nil)
		msRepo.EXPECT().AssignTransferRef(gomock.Any(), "ms-1", gomock.Any()).Return("TR_ms-1_1", nil)
		gateway.EXPECT().RequestPayout(gomock.Any(), gomock.Any()).Return("transfer-1", nil)
		msRepo.EXPECT().RecordWithdrawal(gomock.Any(), "ms-1", "transfer-1").Return(entities.Milestone{}, nil)

		_, err := uc.Withdraw(context.Background(), "dev-1", "ms-1")
		if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("expected ErrInvalidTransition, got %v", err)
		}
	})
}
