package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/emberdate/emberdate/internal/apperr"
	"github.com/emberdate/emberdate/internal/domain/entity"
	repo "github.com/emberdate/emberdate/internal/domain/repository"
	"github.com/emberdate/emberdate/pkg/helpers"
)

// UserService owns registration, login, profile editing, profile images and
// account deletion.
type UserService struct {
	Users  repo.UserRepository
	Images repo.ImageRepository
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewUserService(users repo.UserRepository, images repo.ImageRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *UserService {
	return &UserService{Users: users, Images: images, JWT: jwt, Logger: logger}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Register creates a new user. Password strength is enforced at the binding
// layer; here only email uniqueness matters.
func (s *UserService) Register(ctx context.Context, in RegisterInput) error {
	if existing, err := s.Users.GetByEmail(ctx, in.Email); err == nil && existing != nil {
		return apperr.ErrEmailInUse
	}
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return err
	}
	u := &entity.User{
		Email:        in.Email,
		Password:     hash,
		Username:     in.Username,
		RegisteredAt: time.Now().UnixMilli(),
	}
	if err := s.Users.Create(ctx, u); err != nil {
		s.Logger.WithError(err).Error("create user failed")
		return err
	}
	s.Logger.WithField("user_id", u.ID).Info("user registered")
	return nil
}

// Login validates credentials and issues the bearer token carrying the email
// claim. Unknown emails and wrong passwords are indistinguishable to the
// caller.
func (s *UserService) Login(ctx context.Context, email, password string) (token, userID string, err error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return "", "", apperr.ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return "", "", apperr.ErrInvalidCredentials
	}
	token, _, err = s.JWT.GenerateToken(u.Email)
	if err != nil {
		return "", "", err
	}
	return token, u.ID, nil
}

func (s *UserService) Profile(ctx context.Context, id string) (*entity.User, error) {
	return s.Users.GetByID(ctx, id)
}

func (s *UserService) ResolveUser(ctx context.Context, id string) (*entity.PublicProfile, error) {
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	pub := u.Public()
	return &pub, nil
}

type UpdateProfileInput struct {
	Username string
	Age      int
	Bio      string
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) error {
	return s.Users.UpdateProfile(ctx, userID, in.Username, in.Age, in.Bio)
}

// UploadImage stores the profile picture, replacing any previous one.
func (s *UserService) UploadImage(ctx context.Context, userID string, img *entity.Image) (string, error) {
	id, err := s.Images.Save(ctx, userID, img)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Error("save image failed")
		return "", err
	}
	return id, nil
}

func (s *UserService) GetImage(ctx context.Context, id string) (*entity.Image, error) {
	return s.Images.GetByID(ctx, id)
}

// Delete removes the account and cascades over every back-reference. Users
// may only delete themselves.
func (s *UserService) Delete(ctx context.Context, actor *entity.User, targetID string) error {
	if actor == nil {
		return apperr.ErrUnauthorized
	}
	if actor.ID != targetID {
		return apperr.ErrUnauthorized
	}
	if err := s.Users.Delete(ctx, targetID); err != nil {
		s.Logger.WithError(err).WithField("user_id", targetID).Error("delete user failed")
		return err
	}
	s.Logger.WithField("user_id", targetID).Info("user deleted")
	return nil
}
