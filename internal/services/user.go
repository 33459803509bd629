package service

import (
	"context"
	"time"

	"github.com/promptmandu/prompt-marketplace/internal/errors"
	models "github.com/promptmandu/prompt-marketplace/internal/models"
	repository "github.com/promptmandu/prompt-marketplace/internal/repositories"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	repo     repository.UserRepository
	rateRepo repository.RateLimitRepository
	jwtKey   []byte
}

func NewUserService(repo repository.UserRepository, rateRepo repository.RateLimitRepository, jwtKey []byte) *UserService {
	return &UserService{
		repo:     repo,
		rateRepo: rateRepo,
		jwtKey:   jwtKey,
	}
}

func (s *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {

	existingUser, _ := s.repo.GetUserByEmail(ctx, req.Email)
	if existingUser != nil {
		return nil, errors.DuplicateEntryError("Email already registered")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.InternalError("Failed to secure password").WithError(err)
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: string(hashedPassword),
	}

	err = s.repo.CreateUser(ctx, user)
	if err != nil {
		return nil, errors.DatabaseError("Failed to create user").WithError(err)
	}

	return user, err

}

func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {

	allowed, remaining, retryAfter, err := s.rateRepo.CheckLoginRateLimit(ctx, req.Email)
	if err != nil {
		return nil, errors.ThirdPartyError("Rate limit check failed").WithError(err)
	}

	if !allowed {
		return &models.LoginResponse{
			Success:    false,
			Message:    "Too many login attempts. Please try again later.",
			RetryAfter: retryAfter,
		}, nil
	}

	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return &models.LoginResponse{
			Success:        false,
			Message:        "Invalid email or password",
			RemainingTries: remaining,
		}, nil
	}

	claims := &models.Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtKey)
	if err != nil {
		return nil, errors.InternalError("Failed to generate authentication token").WithError(err)
	}

	return &models.LoginResponse{
		Success:   true,
		Token:     tokenString,
		ExpiresIn: int(time.Until(claims.ExpiresAt.Time).Seconds()),
	}, nil

}

func (s *UserService) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {

	user, err := s.repo.GetUserById(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("User not found").WithError(err)
	}

	return user, nil

}

func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, name, phone string) (*models.User, error) {

	user, err := s.repo.GetUserById(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("User not found").WithError(err)
	}

	if name != "" {
		user.Name = name
	}

	if phone != "" {
		user.Phone = phone
	}

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, errors.DatabaseError("Failed to update profile").WithError(err)
	}

	return user, nil

}
