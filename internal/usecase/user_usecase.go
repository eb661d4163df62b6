package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"freework/internal/domain/entities"
	"freework/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserValidation     = errors.New("username, password, mail and role are required")
	ErrInvalidRole        = errors.New("role must be freelancer, employer or admin")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user does not exist")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidOTP         = errors.New("invalid or expired otp")
	ErrOTPDelivery        = errors.New("failed to deliver otp")
)

// IUserUseCase covers registration and the two-step sign-in (password check,
// then one-time code redeemed for a session).

type IUserUseCase interface {
	Register(ctx context.Context, username, password, mail string, role entities.UserRole) (entities.User, error)
	SignIn(ctx context.Context, mail, password string) error
	VerifyOTP(ctx context.Context, mail, code string) (entities.User, error)
	GetByID(ctx context.Context, id string) (entities.User, error)
}

type UserUseCase struct {
	repo     interfaces.IUserRepository
	otpStore interfaces.IOTPStore
	mailer   interfaces.IMailSender
}

var _ IUserUseCase = (*UserUseCase)(nil)

func NewUserUseCase(repo interfaces.IUserRepository, otpStore interfaces.IOTPStore, mailer interfaces.IMailSender) *UserUseCase {
	return &UserUseCase{repo: repo, otpStore: otpStore, mailer: mailer}
}

func (u *UserUseCase) Register(ctx context.Context, username, password, mail string, role entities.UserRole) (entities.User, error) {
	username = strings.TrimSpace(username)
	mail = strings.ToLower(strings.TrimSpace(mail))
	if username == "" || password == "" || mail == "" || role == "" {
		return entities.User{}, ErrUserValidation
	}
	switch role {
	case entities.RoleFreelancer, entities.RoleEmployer, entities.RoleAdmin:
	default:
		return entities.User{}, ErrInvalidRole
	}

	existing, err := u.repo.GetByMail(ctx, mail)
	if err != nil {
		return entities.User{}, err
	}
	if existing.ID != "" {
		return entities.User{}, ErrUserAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return entities.User{}, err
	}

	now := time.Now().UTC()
	user := entities.User{
		ID:        uuid.NewString(),
		Username:  username,
		Password:  string(hash),
		Mail:      mail,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	created, err := u.repo.Create(ctx, user)
	if err != nil {
		logrus.Errorf("[user][usecase] register failed mail=%s err=%v", mail, err)
		return entities.User{}, err
	}
	logrus.Infof("[user][usecase] registered user_id=%s role=%s", created.ID, created.Role)
	return created, nil
}

// SignIn verifies the password and sends a one-time code to the user's mail.
// A mail-delivery failure surfaces as ErrOTPDelivery, distinct from
// ErrInvalidCredentials.
func (u *UserUseCase) SignIn(ctx context.Context, mail, password string) error {
	mail = strings.ToLower(strings.TrimSpace(mail))
	if mail == "" || password == "" {
		return ErrUserValidation
	}

	user, err := u.repo.GetByMail(ctx, mail)
	if err != nil {
		return err
	}
	if user.ID == "" {
		return ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}

	code, err := generateOTP()
	if err != nil {
		return err
	}
	if err := u.otpStore.Put(ctx, mail, code); err != nil {
		return err
	}
	if err := u.mailer.SendOTP(ctx, mail, code); err != nil {
		logrus.Errorf("[user][usecase] otp delivery failed mail=%s err=%v", mail, err)
		return fmt.Errorf("%w: %v", ErrOTPDelivery, err)
	}
	logrus.Infof("[user][usecase] otp sent mail=%s", mail)
	return nil
}

// VerifyOTP redeems a one-time code. Codes are single use: the stored entry is
// deleted on success.
func (u *UserUseCase) VerifyOTP(ctx context.Context, mail, code string) (entities.User, error) {
	mail = strings.ToLower(strings.TrimSpace(mail))
	code = strings.TrimSpace(code)
	if mail == "" || code == "" {
		return entities.User{}, ErrUserValidation
	}

	stored, found, err := u.otpStore.Get(ctx, mail)
	if err != nil {
		return entities.User{}, err
	}
	if !found || stored != code {
		return entities.User{}, ErrInvalidOTP
	}
	if err := u.otpStore.Delete(ctx, mail); err != nil {
		return entities.User{}, err
	}

	user, err := u.repo.GetByMail(ctx, mail)
	if err != nil {
		return entities.User{}, err
	}
	if user.ID == "" {
		return entities.User{}, ErrUserNotFound
	}
	logrus.Infof("[user][usecase] otp verified user_id=%s", user.ID)
	return user, nil
}

func (u *UserUseCase) GetByID(ctx context.Context, id string) (entities.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.User{}, ErrUserValidation
	}
	user, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.User{}, err
	}
	if user.ID == "" {
		return entities.User{}, ErrUserNotFound
	}
	return user, nil
}

// generateOTP returns a 6-digit numeric code.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
