package handlers

import (
	"context"
	"errors"
	"net/http"

	request "freework/internal/adapter/http/dto/request"
	response "freework/internal/adapter/http/dto/response"
	"freework/internal/domain/entities"
	"freework/internal/infrastructure/payments"
	"freework/internal/usecase"
	"freework/pkg"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// PaymentHandler handles the gateway-backed milestone operations: deposit
// (payment link), approve, reject, fund confirmation and withdrawal.

type PaymentHandler struct {
	payments   usecase.IPaymentUseCase
	milestones usecase.IMilestoneUseCase
}

func NewPaymentHandler(pu usecase.IPaymentUseCase, mu usecase.IMilestoneUseCase) *PaymentHandler {
	return &PaymentHandler{payments: pu, milestones: mu}
}

// Deposit creates a hosted payment link for a milestone. Status does not
// change here; funding is confirmed separately.
func (h *PaymentHandler) Deposit(c *gin.Context) {
	var payload request.EmployerMilestoneRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidMilestonePayload.HTTPStatus, errInvalidMilestonePayload.ToHTTPError())
		return
	}

	linkURL, err := h.payments.CreatePaymentLink(c.Request.Context(), payload.EmployerID, payload.MilestoneID)
	if err != nil {
		logrus.Warnf("[payment][handler] deposit failed milestone_id=%s err=%v", payload.MilestoneID, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Payment link created",
		"paymentLink": linkURL,
	})
}

func (h *PaymentHandler) ApproveMilestone(c *gin.Context) {
	h.employerTransition(c, "approve", h.milestones.Approve, "Milestone approved successfully")
}

func (h *PaymentHandler) RejectMilestone(c *gin.Context) {
	h.employerTransition(c, "reject", h.milestones.Reject, "Milestone rejected")
}

// FundMilestone confirms escrow funding after the employer paid the link.
func (h *PaymentHandler) FundMilestone(c *gin.Context) {
	h.employerTransition(c, "fund", h.milestones.ConfirmFunding, "Milestone escrow funded")
}

// Withdraw pays a funded milestone out to the freelancer.
func (h *PaymentHandler) Withdraw(c *gin.Context) {
	var payload request.WithdrawRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidMilestonePayload.HTTPStatus, errInvalidMilestonePayload.ToHTTPError())
		return
	}

	transferID, err := h.payments.Withdraw(c.Request.Context(), payload.FreelancerID, payload.MilestoneID)
	if err != nil {
		logrus.Warnf("[payment][handler] withdraw failed milestone_id=%s err=%v", payload.MilestoneID, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       "Withdrawal successful",
		"transactionId": transferID,
	})
}

func (h *PaymentHandler) employerTransition(
	c *gin.Context,
	op string,
	transition func(ctx context.Context, employerID, milestoneID string) (entities.Milestone, error),
	message string,
) {
	var payload request.EmployerMilestoneRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidMilestonePayload.HTTPStatus, errInvalidMilestonePayload.ToHTTPError())
		return
	}

	m, err := transition(c.Request.Context(), payload.EmployerID, payload.MilestoneID)
	if err != nil {
		logrus.Warnf("[payment][handler] %s failed milestone_id=%s err=%v", op, payload.MilestoneID, err)
		appErr := mapPaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   message,
		"milestone": response.FromMilestone(m),
	})
}

func mapPaymentError(err error) *pkg.AppError {
	var gwErr *payments.GatewayError
	var gwTimeout *payments.GatewayTimeoutError
	switch {
	case errors.Is(err, usecase.ErrMilestoneNotFunded):
		return pkg.NewDomainErrorSimple("MILESTONE_NOT_FUNDED", "Milestone is not yet approved/funded", http.StatusConflict)
	case errors.Is(err, usecase.ErrGatewayUnavailable):
		return pkg.NewDomainErrorSimple("GATEWAY_UNAVAILABLE", "Payment gateway not configured", http.StatusBadGateway)
	case errors.As(err, &gwTimeout):
		return pkg.NewDomainError("GATEWAY_TIMEOUT", "Payment provider timed out", err, http.StatusGatewayTimeout)
	case errors.As(err, &gwErr):
		return pkg.NewDomainError("GATEWAY_ERROR", "Payment provider request failed", err, http.StatusBadGateway)
	default:
		return mapMilestoneError(err)
	}
}
