package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"flatmates_backend/internal/auth"
	"flatmates_backend/internal/config"
	"flatmates_backend/internal/logger"
	"flatmates_backend/internal/models"
	"flatmates_backend/internal/repositories"
	"flatmates_backend/internal/services/dto"
	"flatmates_backend/internal/utils"
	"flatmates_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const (
	refreshTokenTTL = 30 * 24 * time.Hour
	resetTokenTTL   = time.Hour
)

type AuthService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	RefreshToken(db *gorm.DB, refreshToken string) (*dto.AuthResponse, error)
	Logout(db *gorm.DB, refreshToken string) error
	VerifyEmail(db *gorm.DB, token string) error
	RequestPasswordReset(db *gorm.DB, email string) error
	ResetPassword(db *gorm.DB, token, newPassword string) error
	ChangePassword(db *gorm.DB, userID, currentPassword, newPassword string) error
}

type AuthServiceImpl struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
	creditSvc   CreditService
	referralSvc ReferralService
	emailSender utils.EmailSender
	cfg         *config.Config
}

func NewAuthService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	creditSvc CreditService,
	referralSvc ReferralService,
	emailSender utils.EmailSender,
	cfg *config.Config,
) AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		creditSvc:   creditSvc,
		referralSvc: referralSvc,
		emailSender: emailSender,
		cfg:         cfg,
	}
}

// Register creates the user, their profile and starting balance, and
// completes a referral when a valid code accompanies the signup. An
// invalid code fails the signup so the caller can correct it.
func (s *AuthServiceImpl) Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	verificationToken := generateRandomToken()

	user := &models.User{
		Email:             req.Email,
		PasswordHash:      hash,
		Status:            models.UserStatusActive,
		VerificationToken: verificationToken,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.Create(tx, user); err != nil {
			if errors.Is(err, repositories.ErrUserAlreadyExists) {
				return apperrors.ErrEmailAlreadyExists
			}
			return apperrors.DatabaseError(err)
		}

		profile := &models.Profile{
			UserID:      user.ID,
			FullName:    req.FullName,
			City:        req.City,
			PhoneNumber: req.PhoneNumber,
		}
		if err := s.profileRepo.Create(tx, profile); err != nil {
			return apperrors.DatabaseError(err)
		}

		// Seed the starting balance so the first thing a new user sees
		// is their signup bonus.
		if _, err := s.creditSvc.GetBalance(tx, user.ID); err != nil {
			return err
		}

		if req.ReferralCode != "" {
			if err := s.referralSvc.CompleteReferral(tx, req.ReferralCode, user.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.emailSender.Send(user.Email, "Verify your email",
		"Your verification token: "+verificationToken); err != nil {
		logger.WithError(err).Warn("failed to send verification email", "email", user.Email)
	}

	return s.issueTokens(db, user)
}

func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.DatabaseError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if user.Status == models.UserStatusSuspended || user.Status == models.UserStatusBanned {
		return nil, apperrors.NewForbiddenError("account is not allowed to sign in")
	}

	return s.issueTokens(db, user)
}

func (s *AuthServiceImpl) RefreshToken(db *gorm.DB, refreshToken string) (*dto.AuthResponse, error) {
	stored, err := s.userRepo.FindRefreshToken(db, refreshToken)
	if err != nil {
		if errors.Is(err, repositories.ErrTokenNotFound) {
			return nil, apperrors.ErrInvalidRefreshToken
		}
		return nil, apperrors.DatabaseError(err)
	}

	if time.Now().After(stored.ExpiresAt) {
		_ = s.userRepo.DeleteRefreshToken(db, refreshToken)
		return nil, apperrors.ErrInvalidRefreshToken
	}

	user, err := s.userRepo.FindByID(db, stored.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	// Rotate: the presented token is consumed by the refresh.
	if err := s.userRepo.DeleteRefreshToken(db, refreshToken); err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	return s.issueTokens(db, user)
}

func (s *AuthServiceImpl) Logout(db *gorm.DB, refreshToken string) error {
	if err := s.userRepo.DeleteRefreshToken(db, refreshToken); err != nil {
		return apperrors.DatabaseError(err)
	}
	return nil
}

func (s *AuthServiceImpl) VerifyEmail(db *gorm.DB, token string) error {
	user, err := s.userRepo.FindByVerificationToken(db, token)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.NewBadRequestError("invalid verification token")
		}
		return apperrors.DatabaseError(err)
	}

	if err := s.userRepo.VerifyUser(db, user.ID); err != nil {
		return apperrors.DatabaseError(err)
	}
	return nil
}

// RequestPasswordReset always reports success so the endpoint cannot be
// used to probe which emails are registered.
func (s *AuthServiceImpl) RequestPasswordReset(db *gorm.DB, email string) error {
	user, err := s.userRepo.FindByEmail(db, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil
		}
		return apperrors.DatabaseError(err)
	}

	resetToken := generateRandomToken()
	exp := time.Now().Add(resetTokenTTL)
	user.ResetToken = resetToken
	user.ResetTokenExp = &exp
	if err := s.userRepo.Update(db, user); err != nil {
		return apperrors.DatabaseError(err)
	}

	if err := s.emailSender.Send(user.Email, "Password reset",
		"Your password reset token: "+resetToken); err != nil {
		logger.WithError(err).Warn("failed to send reset email", "email", user.Email)
	}
	return nil
}

func (s *AuthServiceImpl) ResetPassword(db *gorm.DB, token, newPassword string) error {
	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.ErrWeakPassword
	}

	user, err := s.userRepo.FindByResetToken(db, token)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.NewBadRequestError("invalid reset token")
		}
		return apperrors.DatabaseError(err)
	}

	if user.ResetTokenExp == nil || time.Now().After(*user.ResetTokenExp) {
		return apperrors.NewBadRequestError("reset token has expired")
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	user.PasswordHash = hash
	user.ResetToken = ""
	user.ResetTokenExp = nil
	if err := s.userRepo.Update(db, user); err != nil {
		return apperrors.DatabaseError(err)
	}

	// A reset invalidates every open session.
	return s.revokeSessions(db, user.ID)
}

func (s *AuthServiceImpl) ChangePassword(db *gorm.DB, userID, currentPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.DatabaseError(err)
	}

	if !auth.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperrors.ErrInvalidCredentials
	}
	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	user.PasswordHash = hash
	if err := s.userRepo.Update(db, user); err != nil {
		return apperrors.DatabaseError(err)
	}
	return s.revokeSessions(db, userID)
}

func (s *AuthServiceImpl) issueTokens(db *gorm.DB, user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := auth.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refreshToken := generateRandomToken()
	if err := s.userRepo.CreateRefreshToken(db, &models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}); err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         dto.NewUserDTO(user),
	}, nil
}

func (s *AuthServiceImpl) revokeSessions(db *gorm.DB, userID string) error {
	if err := s.userRepo.DeleteUserRefreshTokens(db, userID); err != nil {
		return apperrors.DatabaseError(err)
	}
	return nil
}

func generateRandomToken() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return hex.EncodeToString(buf)
}
