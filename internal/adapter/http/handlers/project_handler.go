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

var errInvalidProjectPayload = pkg.NewDomainErrorSimple("INVALID_PROJECT_INPUT", "Project name, description, and difficulty are required.", http.StatusBadRequest)

// ProjectHandler handles job postings.

type ProjectHandler struct {
	usecase usecase.IProjectUseCase
}

func NewProjectHandler(uc usecase.IProjectUseCase) *ProjectHandler {
	return &ProjectHandler{usecase: uc}
}

func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var payload request.ProjectCreateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidProjectPayload.HTTPStatus, errInvalidProjectPayload.ToHTTPError())
		return
	}

	project, err := h.usecase.Create(c.Request.Context(), payload.ToInput())
	if err != nil {
		logrus.Warnf("[project][handler] create failed name=%s err=%v", payload.ProjectName, err)
		appErr := mapProjectError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Project created successfully!",
		"project": response.FromProject(project),
	})
}

func (h *ProjectHandler) GetJobs(c *gin.Context) {
	jobs, err := h.usecase.List(c.Request.Context())
	if err != nil {
		appErr := mapProjectError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	if len(jobs) == 0 {
		appErr := pkg.NewDomainErrorSimple("NO_JOBS", "No jobs found.", http.StatusNotFound)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "allJobs": response.FromProjects(jobs)})
}

func (h *ProjectHandler) GetJob(c *gin.Context) {
	id := c.Param("id")

	job, err := h.usecase.GetByID(c.Request.Context(), id)
	if err != nil {
		appErr := mapProjectError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "job": response.FromProject(job)})
}

func mapProjectError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrProjectValidation), errors.Is(err, usecase.ErrInvalidDifficulty):
		return pkg.NewDomainErrorSimple("INVALID_PROJECT_INPUT", "Invalid project payload", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrProjectNotFound):
		return pkg.NewDomainErrorSimple("PROJECT_NOT_FOUND", "No jobs found.", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
