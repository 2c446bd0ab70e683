package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"pixelgram/internal/model"
	"pixelgram/internal/repository"
)

// UserService handles registration, login and profile reads/updates.
type UserService struct {
	userRepo repository.UserRepository
	auth     *AuthService
	validate *validator.Validate
}

func NewUserService(userRepo repository.UserRepository, auth *AuthService) *UserService {
	return &UserService{
		userRepo: userRepo,
		auth:     auth,
		validate: validator.New(),
	}
}

// Register creates an account and returns a signed session token. The
// username/email uniqueness check lives in the database; a violated
// constraint surfaces as model.ErrUserExists.
func (s *UserService) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", model.ErrValidation, validationMessage(err))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hash),
		FullName: req.FullName,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.auth.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &model.AuthResponse{Token: token, User: user}, nil
}

// Login authenticates by username or email. A missing user and a wrong
// password both return model.ErrInvalidCredentials so the response never
// reveals which identifier exists.
func (s *UserService) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", model.ErrValidation, validationMessage(err))
	}

	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		return nil, model.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	token, err := s.auth.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &model.AuthResponse{Token: token, User: user}, nil
}

// GetByID returns the full user row for the authenticated identity.
func (s *UserService) GetByID(ctx context.Context, userID int64) (*model.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// GetProfile returns a profile with all counts recomputed. viewerID 0
// means anonymous. Viewing your own profile always reports
// isFollowing=false regardless of stray self-edges.
func (s *UserService) GetProfile(ctx context.Context, username string, viewerID int64) (*model.Profile, error) {
	profile, err := s.userRepo.GetProfile(ctx, username, viewerID)
	if err != nil {
		return nil, err
	}

	profile.IsOwnProfile = viewerID != 0 && profile.ID == viewerID
	if profile.IsOwnProfile {
		profile.IsFollowing = false
	}
	return profile, nil
}

// CheckUsername reports whether a username is still available.
func (s *UserService) CheckUsername(ctx context.Context, username string) (bool, error) {
	exists, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

// UpdateProfile applies a partial profile update.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, update *model.ProfileUpdate) (*model.User, error) {
	if update.IsEmpty() {
		return nil, model.ErrNoFieldsToUpdate
	}

	if err := s.userRepo.Update(ctx, userID, update); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, userID)
}

// Search matches users by username or full name substring.
func (s *UserService) Search(ctx context.Context, query string, viewerID int64, limit int) ([]model.UserSummary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []model.UserSummary{}, nil
	}

	users, err := s.userRepo.Search(ctx, query, viewerID, limit)
	if err != nil {
		return nil, err
	}

	for i := range users {
		if viewerID != 0 && users[i].ID == viewerID {
			users[i].IsOwnProfile = true
			users[i].IsFollowing = false
		}
	}
	return users, nil
}

// validationMessage flattens the first validator error into a short
// human-readable message.
func validationMessage(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return "invalid input"
	}

	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return "invalid email address"
	case "min":
		return field + " must be at least " + fe.Param() + " characters"
	case "max":
		return field + " must be at most " + fe.Param() + " characters"
	default:
		return "invalid " + field
	}
}
