package services

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/januaraliosada/super-delivery/entity"
	"github.com/januaraliosada/super-delivery/pkg/apperr"
	"github.com/januaraliosada/super-delivery/pkg/logging"
	"github.com/januaraliosada/super-delivery/repository"
	"github.com/januaraliosada/super-delivery/utils"
)

type AuthService struct {
	userRepo  *repository.UserRepository
	log       logging.Logger
	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthService(repo *repository.UserRepository, log logging.Logger, secret string, ttl time.Duration) *AuthService {
	return &AuthService{userRepo: repo, log: log, jwtSecret: secret, jwtTTL: ttl}
}

type RegisterIn struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone"`
	UserType  string `json:"user_type" binding:"required"`

	DefaultAddress string `json:"default_address"`
	DriverLicense  string `json:"driver_license"`
	VehicleType    string `json:"vehicle_type"`
	VehiclePlate   string `json:"vehicle_plate"`
}

// Register creates an account. Email and username must be unique across
// every role.
func (s *AuthService) Register(in *RegisterIn) (*entity.User, string, error) {
	userType, err := entity.ParseUserType(in.UserType)
	if err != nil {
		return nil, "", apperr.Validation("invalid user type: %s", in.UserType)
	}
	if len(in.Password) < 6 {
		return nil, "", apperr.Validation("password must be at least 6 characters long")
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	username := strings.TrimSpace(in.Username)

	if count, err := s.userRepo.CountByEmail(email); err != nil {
		return nil, "", err
	} else if count > 0 {
		return nil, "", apperr.Conflict("user with this email already exists")
	}
	if count, err := s.userRepo.CountByUsername(username); err != nil {
		return nil, "", err
	} else if count > 0 {
		return nil, "", apperr.Conflict("username already taken")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", apperr.Internal("hash password failed", err)
	}

	user := &entity.User{
		Username:       username,
		Email:          email,
		Password:       string(hashed),
		FirstName:      strings.TrimSpace(in.FirstName),
		LastName:       strings.TrimSpace(in.LastName),
		Phone:          strings.TrimSpace(in.Phone),
		UserType:       userType,
		IsActive:       true,
		DefaultAddress: in.DefaultAddress,
		DriverLicense:  in.DriverLicense,
		VehicleType:    in.VehicleType,
		VehiclePlate:   in.VehiclePlate,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, "", err
	}

	token, err := utils.GenerateToken(user.ID, user.UserType, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, "", apperr.Internal("cannot generate token", err)
	}

	s.log.Info("user registered", map[string]any{"user_id": user.ID, "user_type": user.UserType})
	return user, token, nil
}

// Login checks credentials and stamps last_login.
func (s *AuthService) Login(email, password string) (*entity.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperr.Auth("invalid email or password")
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", apperr.Auth("invalid email or password")
	}

	now := time.Now().UTC()
	if err := s.userRepo.TouchLastLogin(user.ID, now); err != nil {
		return nil, "", err
	}
	user.LastLogin = &now

	token, err := utils.GenerateToken(user.ID, user.UserType, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, "", apperr.Internal("cannot generate token", err)
	}

	s.log.Info("user logged in", map[string]any{"user_id": user.ID})
	return user, token, nil
}

func (s *AuthService) GetProfile(userID uint) (*entity.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) UpdateProfile(userID uint, patch *repository.ProfilePatch) (*entity.User, error) {
	if err := s.userRepo.UpdateProfile(userID, patch); err != nil {
		return nil, err
	}
	return s.GetProfile(userID)
}

func (s *AuthService) ChangePassword(userID uint, current, next string) error {
	if len(next) < 6 {
		return apperr.Validation("new password must be at least 6 characters long")
	}
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("user not found")
		}
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)); err != nil {
		return apperr.Auth("current password is incorrect")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Internal("hash password failed", err)
	}
	return s.userRepo.UpdatePassword(userID, string(hashed))
}

// RefreshToken re-issues a token from still-valid claims.
func (s *AuthService) RefreshToken(claims *utils.Claims) (string, error) {
	token, err := utils.GenerateToken(claims.UserID, entity.UserType(claims.UserType), s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", apperr.Internal("cannot generate token", err)
	}
	return token, nil
}
