package handlers

import (
	"errors"
	"net/http"

	request "freework/internal/adapter/http/dto/request"
	response "freework/internal/adapter/http/dto/response"
	"freework/internal/domain/entities"
	"freework/internal/infrastructure/auth"
	"freework/internal/usecase"
	"freework/pkg"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const sessionCookieName = "token"

var errInvalidUserPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)

// UserHandler handles registration and the two-step sign-in.

type UserHandler struct {
	usecase   usecase.IUserUseCase
	jwtSecret string
	secure    bool
}

func NewUserHandler(uc usecase.IUserUseCase, jwtSecret string, secure bool) *UserHandler {
	return &UserHandler{usecase: uc, jwtSecret: jwtSecret, secure: secure}
}

// Register creates a user and issues a session cookie.
func (h *UserHandler) Register(c *gin.Context) {
	var payload request.RegisterRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidUserPayload.HTTPStatus, errInvalidUserPayload.ToHTTPError())
		return
	}

	user, err := h.usecase.Register(c.Request.Context(), payload.Username, payload.Password, payload.Mail, entities.UserRole(payload.Role))
	if err != nil {
		logrus.Warnf("[user][handler] register failed mail=%s err=%v", payload.Mail, err)
		appErr := mapUserError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	if err := h.setSessionCookie(c, user); err != nil {
		appErr := pkg.NewDomainError("TOKEN_ERROR", "Failed to generate token", err, http.StatusInternalServerError)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully!",
		"user":    response.FromUser(user),
	})
}

// Login verifies the password and sends a one-time code to the user's mail.
func (h *UserHandler) Login(c *gin.Context) {
	var payload request.LoginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidUserPayload.HTTPStatus, errInvalidUserPayload.ToHTTPError())
		return
	}

	if err := h.usecase.SignIn(c.Request.Context(), payload.Mail, payload.Password); err != nil {
		logrus.Warnf("[user][handler] sign-in failed mail=%s err=%v", payload.Mail, err)
		appErr := mapUserError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OTP sent to email. Please verify to continue."})
}

// VerifyOTP redeems the mailed code and issues the session cookie.
func (h *UserHandler) VerifyOTP(c *gin.Context) {
	var payload request.VerifyOTPRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidUserPayload.HTTPStatus, errInvalidUserPayload.ToHTTPError())
		return
	}

	user, err := h.usecase.VerifyOTP(c.Request.Context(), payload.Mail, payload.OTP)
	if err != nil {
		logrus.Warnf("[user][handler] otp verification failed mail=%s err=%v", payload.Mail, err)
		appErr := mapUserError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	if err := h.setSessionCookie(c, user); err != nil {
		appErr := pkg.NewDomainError("TOKEN_ERROR", "Failed to generate token", err, http.StatusInternalServerError)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    response.FromUser(user),
	})
}

// Profile returns the authenticated user; the JWT middleware put the user id
// in the context.
func (h *UserHandler) Profile(c *gin.Context) {
	userID := c.GetString("userID")

	user, err := h.usecase.GetByID(c.Request.Context(), userID)
	if err != nil {
		appErr := mapUserError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": response.FromUser(user)})
}

func (h *UserHandler) setSessionCookie(c *gin.Context, user entities.User) error {
	token, err := auth.GenerateJWT(user, h.jwtSecret)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(sessionCookieName, token, int(auth.TokenTTL.Seconds()), "/", "", h.secure, true)
	return nil
}

func mapUserError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrUserValidation), errors.Is(err, usecase.ErrInvalidRole):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrUserAlreadyExists):
		return pkg.NewDomainErrorSimple("USER_EXISTS", "User already exists.", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrUserNotFound):
		return pkg.NewDomainErrorSimple("USER_NOT_FOUND", "User does not exist.", http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return pkg.NewDomainErrorSimple("INVALID_CREDENTIALS", "Invalid credentials.", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrInvalidOTP):
		return pkg.NewDomainErrorSimple("INVALID_OTP", "Invalid or expired OTP.", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrOTPDelivery):
		return pkg.NewDomainErrorSimple("OTP_DELIVERY_FAILED", "Failed to send OTP email", http.StatusBadGateway)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
