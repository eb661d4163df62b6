package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"freework/internal/adapter/http/handlers/mocks"
	"freework/internal/domain/entities"
	"freework/internal/infrastructure/payments"
	"freework/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestPaymentHandler_Deposit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		pu := mocks.NewMockIPaymentUseCase(ctrl)
		mu := mocks.NewMockIMilestoneUseCase(ctrl)
		h := NewPaymentHandler(pu, mu)

		r := gin.New()
		r.POST("/freework/payment/deposit", h.Deposit)

		req := httptest.NewRequest(http.MethodPost, "/freework/payment/deposit", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("missing milestone id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		pu := mocks.NewMockIPaymentUseCase(ctrl)
		mu := mocks.NewMockIMilestoneUseCase(ctrl)
		h := NewPaymentHandler(pu, mu)

		r := gin.New()
		r.POST("/freework/payment/deposit", h.Deposit)

		req := httptest.NewRequest(http.MethodPost, "/freework/payment/deposit", bytes.NewBufferString(`{"employerId":"emp-1"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("freelancer caller is forbidden", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		pu := mocks.NewMockIPaymentUseCase(ctrl)
		mu := mocks.NewMockIMilestoneUseCase(ctrl)
		h := NewPaymentHandler(pu, mu)

		r := gin.New()
		r.POST("/freework/payment/deposit", h.Deposit)

		pu.EXPECT().CreatePaymentLink(gomock.Any(), "dev-1", "ms-1").Return("", usecase.ErrNotAnEmployer)

		req := httptest.NewRequest(http.MethodPost, "/freework/payment/deposit", bytes.NewBufferString(`{"employerId":"dev-1","milestoneId":"ms-1"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})

	t.Run("gateway error maps to 502", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		pu := mocks.NewMockIPaymentUseCase(ctrl)
		mu := mocks.NewMockIMilestoneUseCase(ctrl)
		h := NewPaymentHandler(pu, mu)

		r := gin.New()
		r.POST("/freework/payment/deposit", h.Deposit)

		pu.EXPECT().CreatePaymentLink(gomock.Any(), "emp-1", "ms-1").
			Return("", &payments.GatewayError{StatusCode: 422, Body: "bad link"})

		req := httptest.NewRequest(http.MethodPost, "/freework/payment/deposit", bytes.NewBufferString(`{"employerId":"emp-1","milestoneId":"ms-1"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", w.Code)
		}
	})

	t.Run("gateway timeout maps to 504", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		pu := mocks.NewMockIPaymentUseCase(ctrl)
		mu := mocks.NewMockIMilestoneUseCase(ctrl)
		h := NewPaymentHandler(pu, mu)

		r := gin.New()
		r.POST("/freework/payment/deposit", h.Deposit)

		pu.EXPECT().CreatePaymentLink(gomock.Any(), "emp-1", "ms-1").
			Return("", &payments.GatewayTimeoutError{Op: "create link", Err: errors.New("deadline exceeded")})

		req := httptest.NewRequest(http.MethodPost, "/freework/payment/deposit", bytes.NewBufferString(`{"employerId":"emp-1","milestoneId":"ms-1"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusGatewayTimeout {
			t.Fatalf("expected 504, got %d", w.Code)
		}
	})

	t.Run("success returns the link", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		pu := mocks.NewMockIPaymentUseCase(ctrl)
		mu := mocks.NewMockIMilestoneUseCase(ctrl)
		h := NewPaymentHandler(pu, mu)

		r := gin.New()
		r.POST("/freework/payment/deposit", h.Deposit)

		pu.EXPECT().CreatePaymentLink(gomock.Any(), "emp-1", "ms-1").Return("https://pay.test/link-1", nil)

		req := httptest.NewRequest(http.MethodPost, "/freework/payment/deposit", bytes.NewBufferString(`{"employerId":"emp-1","milestoneId":"ms-1"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if body["paymentLink"] != "https://pay.test/link-1" {
			t.Fatalf("unexpected body: %v", body)
		}
	})
}

func TestPaymentHandler_ApproveMilestone(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid transition maps to 409", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		pu := mocks.NewMockIPaymentUseCase(ctrl)
		mu := mocks.NewMockIMilestoneUseCase(ctrl)
		h := NewPaymentHandler(pu, mu)

		r := gin.New()
		r.POST("/freework/payment/milestone/approve", h.ApproveMilestone)

		mu.EXPECT().Approve(gomock.Any(), "emp-1", "ms-1").Return(entities.Milestone{}, usecase.ErrInvalidTransition)

		req := httptest.NewRequest(http.MethodPost, "/freework/payment/milestone/approve", bytes.NewBufferString(`{"employerId":"emp-1","milestoneId":"ms-1"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("unknown milestone maps to 404", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		pu := mocks.NewMockIPaymentUseCase(ctrl)
		mu := mocks.NewMockIMilestoneUseCase(ctrl)
		h := NewPaymentHandler(pu, mu)

		r := gin.New()
		r.POST("/freework/payment/milestone/approve", h.ApproveMilestone)

		mu.EXPECT().Approve(gomock.Any(), "emp-1", "ms-x").Return(entities.Milestone{}, usecase.ErrMilestoneNotFound)

		req := httptest.NewRequest(http.MethodPost, "/freework/payment/milestone/approve", bytes.NewBufferString(`{"employerId":"emp-1","milestoneId":"ms-x"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("success returns the updated milestone", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		pu := mocks.NewMockIPaymentUseCase(ctrl)
		mu := mocks.NewMockIMilestoneUseCase(ctrl)
		h := NewPaymentHandler(pu, mu)

		r := gin.New()
		r.POST("/freework/payment/milestone/approve", h.ApproveMilestone)

		mu.EXPECT().Approve(gomock.Any(), "emp-1", "ms-1").
			Return(entities.Milestone{ID: "ms-1", Status: entities.MilestoneStatusApproved}, nil)

		req := httptest.NewRequest(http.MethodPost, "/freework/payment/milestone/approve", bytes.NewBufferString(`{"employerId":"emp-1","milestoneId":"ms-1"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		ms := body["milestone"].(map[string]any)
		if ms["status"] != "approved" {
			t.Fatalf("unexpected milestone: %v", ms)
		}
	})
}

func TestPaymentHandler_FundMilestone(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	pu := mocks.NewMockIPaymentUseCase(ctrl)
	mu := mocks.NewMockIMilestoneUseCase(ctrl)
	h := NewPaymentHandler(pu, mu)

	r := gin.New()
	r.POST("/freework/payment/milestone/fund", h.FundMilestone)

	mu.EXPECT().ConfirmFunding(gomock.Any(), "emp-1", "ms-1").
		Return(entities.Milestone{ID: "ms-1", Status: entities.MilestoneStatusFunded, EscrowFunded: true}, nil)

	req := httptest.NewRequest(http.MethodPost, "/freework/payment/milestone/fund", bytes.NewBufferString(`{"employerId":"emp-1","milestoneId":"ms-1"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestPaymentHandler_Withdraw(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("not funded maps to 409", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		pu := mocks.NewMockIPaymentUseCase(ctrl)
		mu := mocks.NewMockIMilestoneUseCase(ctrl)
		h := NewPaymentHandler(pu, mu)

		r := gin.New()
		r.POST("/freework/payment/withdraw", h.Withdraw)

		pu.EXPECT().Withdraw(gomock.Any(), "dev-1", "ms-1").Return("", usecase.ErrMilestoneNotFunded)

		req := httptest.NewRequest(http.MethodPost, "/freework/payment/withdraw", bytes.NewBufferString(`{"freelancerId":"dev-1","milestoneId":"ms-1"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("payout failure maps to 502", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		pu := mocks.NewMockIPaymentUseCase(ctrl)
		mu := mocks.NewMockIMilestoneUseCase(ctrl)
		h := NewPaymentHandler(pu, mu)

		r := gin.New()
		r.POST("/freework/payment/withdraw", h.Withdraw)

		pu.EXPECT().Withdraw(gomock.Any(), "dev-1", "ms-1").
			Return("", &payments.GatewayError{StatusCode: 500, Body: "transfer failed"})

		req := httptest.NewRequest(http.MethodPost, "/freework/payment/withdraw", bytes.NewBufferString(`{"freelancerId":"dev-1","milestoneId":"ms-1"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", w.Code)
		}
	})

	t.Run("success returns the transfer id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		pu := mocks.NewMockIPaymentUseCase(ctrl)
		mu := mocks.NewMockIMilestoneUseCase(ctrl)
		h := NewPaymentHandler(pu, mu)

		r := gin.New()
		r.POST("/freework/payment/withdraw", h.Withdraw)

		pu.EXPECT().Withdraw(gomock.Any(), "dev-1", "ms-1").Return("transfer-9", nil)

		req := httptest.NewRequest(http.MethodPost, "/freework/payment/withdraw", bytes.NewBufferString(`{"freelancerId":"dev-1","milestoneId":"ms-1"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if body["transactionId"] != "transfer-9" {
			t.Fatalf("unexpected body: %v", body)
		}
	})
}
