package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"moviereviews/proj/internal/domain/filters"
	"moviereviews/proj/internal/domain/models"
	"moviereviews/proj/internal/storage"

	"golang.org/x/crypto/bcrypt"
)

type UsersStorage interface {
	Insert(ctx context.Context, user *models.User) (*models.User, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Count(ctx context.Context) (int, error)
	List(ctx context.Context, f filters.Filters) ([]models.User, error)
}

type TokensStorage interface {
	GetOrCreate(ctx context.Context, userID int64, key string) (*models.Token, error)
	GetUser(ctx context.Context, key string) (*models.User, error)
}

type AuthService struct {
	log        *slog.Logger
	users      UsersStorage
	tokens     TokensStorage
	bcryptCost int
}

func New(log *slog.Logger, users UsersStorage, tokens TokensStorage, bcryptCost int) *AuthService {
	return &AuthService{
		log:        log,
		users:      users,
		tokens:     tokens,
		bcryptCost: bcryptCost,
	}
}

type SignupParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Signup registers a critic. Critics are staff but never superusers.
func (a *AuthService) Signup(ctx context.Context, params SignupParams) (*models.User, error) {
	return a.createUser(ctx, "auth.AuthService.Signup", params, false)
}

func (a *AuthService) CreateSuperuser(ctx context.Context, params SignupParams) (*models.User, error) {
	return a.createUser(ctx, "auth.AuthService.CreateSuperuser", params, true)
}

func (a *AuthService) createUser(ctx context.Context, op string, params SignupParams, superuser bool) (*models.User, error) {
	log := a.log.With("op", op, "email", params.Email)
	_, err := a.users.GetByEmail(ctx, params.Email)
	switch {
	case err == nil:
		log.Info("email already taken")
		return nil, ErrEmailAlreadyExists
	case !errors.Is(err, storage.ErrNotFound):
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), a.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user, err := a.users.Insert(ctx, &models.User{
		Email:        params.Email,
		PasswordHash: hash,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		IsStaff:      true,
		IsSuperuser:  superuser,
	})
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			log.Info("email taken by a concurrent registration")
			return nil, ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	log.Info("user created", "id", user.ID, "superuser", superuser)
	return user, nil
}

// Login checks the credentials and returns the token key of the user,
// issuing one on the first login.
func (a *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	const op = "auth.AuthService.Login"
	log := a.log.With("op", op, "email", email)
	user, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("unknown email")
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		log.Info("wrong password")
		return "", ErrInvalidCredentials
	}
	key, err := generateKey()
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	token, err := a.tokens.GetOrCreate(ctx, user.ID, key)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token.Key, nil
}

// Authenticate resolves a token key to its user.
func (a *AuthService) Authenticate(ctx context.Context, key string) (*models.User, error) {
	const op = "auth.AuthService.Authenticate"
	user, err := a.tokens.GetUser(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

func (a *AuthService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	const op = "auth.AuthService.GetUser"
	user, err := a.users.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			a.log.Info("user not found", "op", op, "id", id)
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

func (a *AuthService) CountUsers(ctx context.Context) (int, error) {
	count, err := a.users.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("auth.AuthService.CountUsers: %w", err)
	}
	return count, nil
}

func (a *AuthService) ListUsers(ctx context.Context, f filters.Filters) ([]models.User, error) {
	users, err := a.users.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("auth.AuthService.ListUsers: %w", err)
	}
	return users, nil
}

// generateKey returns a random 40 character hex token key.
func generateKey() (string, error) {
	b := make([]byte, 20)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
