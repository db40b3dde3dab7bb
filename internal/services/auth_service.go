package services

import (
	"github.com/dinepoll/server/internal/models"
	"github.com/dinepoll/server/internal/repositories"
	"github.com/dinepoll/server/internal/security"
	"github.com/dinepoll/server/pkg/errors"
)

type AuthService struct {
	accounts    *repositories.AccountRepository
	friends     *repositories.FriendRepository
	restaurants *repositories.RestaurantRepository
	jwtSecret   string
	hashParams  security.Argon2Params
}

func NewAuthService(
	accounts *repositories.AccountRepository,
	friends *repositories.FriendRepository,
	restaurants *repositories.RestaurantRepository,
	jwtSecret string,
	hashParams security.Argon2Params,
) *AuthService {
	return &AuthService{
		accounts:    accounts,
		friends:     friends,
		restaurants: restaurants,
		jwtSecret:   jwtSecret,
		hashParams:  hashParams,
	}
}

// Register creates an account in the scope-appropriate table. Email
// uniqueness is scoped to the table: a user and a manager may share one.
func (s *AuthService) Register(email, password, name string, scope models.Scope) (*models.Account, error) {
	exists, err := s.accounts.ExistsByEmail(scope, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.New(errors.ErrCodeContentDuplicate, "email")
	}

	hash, err := security.HashPassword(password, s.hashParams)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeServerError, "hash")
	}

	return s.accounts.Create(scope, email, hash, security.SanitizeText(name))
}

// Login verifies credentials and issues a signed token.
func (s *AuthService) Login(email, password string, scope models.Scope) (string, error) {
	account, storedHash, err := s.accounts.FindByEmail(scope, email)
	if err != nil {
		if errors.Code(err) == errors.ErrCodeNotFound {
			return "", errors.New(errors.ErrCodeInvalidCredentials, "form")
		}
		return "", err
	}

	ok, err := security.VerifyPassword(password, storedHash)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeServerError, "hash")
	}
	if !ok {
		return "", errors.New(errors.ErrCodeInvalidCredentials, "form")
	}

	token, err := security.GenerateJWT(*account, s.jwtSecret)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeServerError, "jwt")
	}

	return token, nil
}

// AccountView is the account projection returned by GET /auth/account.
type AccountView struct {
	models.Account
	FriendCount int64 `json:"friendCount"`
	LikedCount  int64 `json:"likedCount"`
}

// Account re-fetches the live row for the token's email and scope instead of
// trusting stale claims, and attaches derived counts for users.
func (s *AuthService) Account(claims *security.Claims) (*AccountView, error) {
	account, _, err := s.accounts.FindByEmail(claims.Scope, claims.Email)
	if err != nil {
		return nil, err
	}

	view := &AccountView{Account: *account}

	if account.Scope == models.ScopeUser {
		if view.FriendCount, err = s.friends.CountFriends(account.ID); err != nil {
			return nil, err
		}
		if view.LikedCount, err = s.restaurants.CountLiked(account.ID); err != nil {
			return nil, err
		}
	}

	return view, nil
}
