package handlers

import (
	"errors"
	"net/http"

	request "freework/internal/adapter/http/dto/request"
	response "freework/internal/adapter/http/dto/response"
	"freework/internal/usecase"
	"freework/pkg"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var errInvalidMilestonePayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "All fields are required.", http.StatusBadRequest)

// MilestoneHandler handles milestone creation, listing and work submission.
// The payment-driven transitions (approve/reject/fund) live on the payment
// routes but share the same lifecycle usecase.

type MilestoneHandler struct {
	usecase usecase.IMilestoneUseCase
}

func NewMilestoneHandler(uc usecase.IMilestoneUseCase) *MilestoneHandler {
	return &MilestoneHandler{usecase: uc}
}

func (h *MilestoneHandler) CreateMilestone(c *gin.Context) {
	var payload request.MilestoneCreateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidMilestonePayload.HTTPStatus, errInvalidMilestonePayload.ToHTTPError())
		return
	}

	m, err := h.usecase.Create(c.Request.Context(), payload.ProjectID, payload.EmployerID, payload.Title, payload.Amount)
	if err != nil {
		logrus.Warnf("[milestone][handler] create failed project_id=%s err=%v", payload.ProjectID, err)
		appErr := mapMilestoneError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Milestone created successfully",
		"milestone": response.FromMilestone(m),
	})
}

// ListByProject returns all milestones for a project; a project with none
// yields an empty list, not an error.
func (h *MilestoneHandler) ListByProject(c *gin.Context) {
	projectID := c.Param("projectId")

	milestones, err := h.usecase.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		appErr := mapMilestoneError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, gin.H{"milestones": response.FromMilestones(milestones)})
}

func (h *MilestoneHandler) SubmitWork(c *gin.Context) {
	var payload request.MilestoneSubmitRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidMilestonePayload.HTTPStatus, errInvalidMilestonePayload.ToHTTPError())
		return
	}

	m, err := h.usecase.SubmitWork(c.Request.Context(), payload.FreelancerID, payload.MilestoneID, payload.Submission)
	if err != nil {
		logrus.Warnf("[milestone][handler] submit failed milestone_id=%s err=%v", payload.MilestoneID, err)
		appErr := mapMilestoneError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Work submitted successfully",
		"milestone": response.FromMilestone(m),
	})
}

func mapMilestoneError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrMilestoneValidation), errors.Is(err, usecase.ErrInvalidAmount), errors.Is(err, usecase.ErrSubmissionRequired):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "All fields are required.", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrMilestoneNotFound):
		return pkg.NewDomainErrorSimple("MILESTONE_NOT_FOUND", "Milestone not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrEmployerNotFound):
		return pkg.NewDomainErrorSimple("EMPLOYER_NOT_FOUND", "Invalid Employer", http.StatusNotFound)
	case errors.Is(err, usecase.ErrFreelancerNotFound):
		return pkg.NewDomainErrorSimple("FREELANCER_NOT_FOUND", "Freelancer not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrNotAnEmployer):
		return pkg.NewDomainErrorSimple("NOT_AN_EMPLOYER", "Invalid Employer", http.StatusForbidden)
	case errors.Is(err, usecase.ErrInvalidTransition):
		return pkg.NewDomainErrorSimple("INVALID_STATE", "Transition not allowed from current status", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
