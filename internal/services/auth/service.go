package auth

import (
	"context"
	"errors"
	"log"

	"takapay/internal/models"
	"takapay/internal/repositories"
	"takapay/internal/services/agent"
	"takapay/internal/services/wallet"
	"takapay/internal/utils"
	"takapay/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// WelcomeBonus is credited to new consumer wallets from the platform account.
const WelcomeBonus = 25.0

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountUnavailable = errors.New("account is not active")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrPhoneTaken         = errors.New("phone number is already registered")
)

// RegisterInput holds a consumer registration request.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Password  string
}

// AgentRegisterInput extends registration with the business details of an
// agent application.
type AgentRegisterInput struct {
	RegisterInput
	BusinessName    string
	BusinessAddress string
}

type Service interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	RegisterAgent(ctx context.Context, input AgentRegisterInput) (*models.User, *models.Agent, error)
	Login(email, phone, password string) (*models.User, string, string, error)
	RefreshTokens(refreshToken string) (string, string, error)
	Logout(userID uint) error
	ChangePassword(userID uint, oldPassword, newPassword string) error
}

type service struct {
	users          repositories.UserRepository
	agents         agent.Service
	wallets        WalletProvisioner
	platformUserID uint
}

// WalletProvisioner is the slice of the wallet service this package needs.
type WalletProvisioner interface {
	CreateWallet(ctx context.Context, userID uint, currency string) (*models.Wallet, error)
	Transfer(ctx context.Context, req wallet.TransferRequest) (*models.Transaction, error)
}

// NewService creates a new auth service
func NewService(users repositories.UserRepository, agents agent.Service, wallets WalletProvisioner, platformUserID uint) Service {
	if users == nil {
		panic("users is required")
	}

	return &service{
		users:          users,
		agents:         agents,
		wallets:        wallets,
		platformUserID: platformUserID,
	}
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	user, err := s.createUser(ctx, input, models.RoleUser)
	if err != nil {
		return nil, err
	}

	// A small welcome credit seeds the new wallet from the platform
	// account. Registration succeeds even when the bonus cannot be paid.
	if s.platformUserID != 0 && WelcomeBonus > 0 {
		_, err := s.wallets.Transfer(ctx, wallet.TransferRequest{
			FromUserID:  s.platformUserID,
			ToUserID:    user.ID,
			Amount:      WelcomeBonus,
			Type:        models.TransactionTypeOnboardingBonus,
			Description: "Welcome bonus",
		})
		if err != nil {
			log.Printf("welcome bonus for user %d not paid: %v", user.ID, err)
		}
	}

	return user, nil
}

func (s *service) RegisterAgent(ctx context.Context, input AgentRegisterInput) (*models.User, *models.Agent, error) {
	user, err := s.createUser(ctx, input.RegisterInput, models.RoleAgent)
	if err != nil {
		return nil, nil, err
	}

	ag, err := s.agents.Register(ctx, user.ID, agent.RegisterInput{
		BusinessName:    input.BusinessName,
		BusinessAddress: input.BusinessAddress,
	})
	if err != nil {
		return nil, nil, err
	}

	return user, ag, nil
}

func (s *service) createUser(ctx context.Context, input RegisterInput, role string) (*models.User, error) {
	v := validation.New()
	v.Required("firstName", input.FirstName)
	v.Required("lastName", input.LastName)
	v.Email("email", input.Email)
	v.Phone("phone", input.Phone)
	v.MinLength("password", input.Password, 8)
	v.Check(validation.HasSpecialChar(input.Password), "password", "must contain a special character")
	if !v.Valid() {
		return nil, errors.New(v.First())
	}

	if _, err := s.users.GetByEmail(input.Email); err == nil {
		return nil, ErrEmailTaken
	}
	if _, err := s.users.GetByPhone(input.Phone); err == nil {
		return nil, ErrPhoneTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	// New consumers start PENDING and cannot receive money until an admin
	// activates them. Agent accounts stay usable while the application is
	// reviewed; the agent-side features unlock on approval.
	status := models.UserStatusPending
	if role == models.RoleAgent {
		status = models.UserStatusActive
	}

	user := &models.User{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
		Password:  string(hashed),
		Role:      role,
		Status:    status,
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}

	wallet, err := s.wallets.CreateWallet(ctx, user.ID, "")
	if err != nil {
		log.Printf("failed to provision wallet for user %d: %v", user.ID, err)
		return nil, errors.New("failed to provision wallet")
	}
	user.WalletID = &wallet.ID
	user.Wallet = wallet
	if err := s.users.Update(user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *service) Login(email, phone, password string) (*models.User, string, string, error) {
	user, err := s.getUserByIdentifier(email, phone)
	if err != nil {
		log.Printf("login failed: no user for identifier %s", email+phone)
		return nil, "", "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		log.Printf("login failed: wrong password for user %d", user.ID)
		return nil, "", "", ErrInvalidCredentials
	}

	if user.Status == models.UserStatusSuspended || user.Status == models.UserStatusRejected {
		return nil, "", "", ErrAccountUnavailable
	}

	accessToken, refreshToken, err := utils.GenerateTokens(&models.UserClaims{
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
		Permissions:  models.GetDefaultPermissions(user.Role),
	})
	if err != nil {
		log.Println("error generating tokens:", err)
		return nil, "", "", errors.New("error generating tokens")
	}

	return user, accessToken, refreshToken, nil
}

func (s *service) RefreshTokens(refreshToken string) (string, string, error) {
	_, claims, err := utils.ParseToken(refreshToken)
	if err != nil {
		return "", "", errors.New("invalid refresh token")
	}

	user, err := s.users.GetByID(claims.UserID)
	if err != nil {
		return "", "", errors.New("user not found")
	}

	if user.TokenVersion != claims.TokenVersion {
		return "", "", errors.New("token version mismatch")
	}

	return utils.GenerateTokens(&models.UserClaims{
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
		Permissions:  models.GetDefaultPermissions(user.Role),
	})
}

func (s *service) Logout(userID uint) error {
	return s.users.IncrementTokenVersion(userID)
}

func (s *service) ChangePassword(userID uint, oldPassword, newPassword string) error {
	user, err := s.users.GetByID(userID)
	if err != nil {
		return errors.New("failed to get user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return errors.New("invalid old password")
	}

	if len(newPassword) < 8 || !validation.HasSpecialChar(newPassword) {
		return errors.New("password must be at least 8 characters and contain special characters")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.New("failed to hash password")
	}

	user.Password = string(hashedPassword)
	user.TokenVersion++ // invalidate existing tokens

	if err := s.users.Update(user); err != nil {
		return errors.New("failed to update password")
	}

	return nil
}

func (s *service) getUserByIdentifier(email, phone string) (*models.User, error) {
	if email != "" {
		return s.users.GetByEmail(email)
	}
	return s.users.GetByPhone(phone)
}
