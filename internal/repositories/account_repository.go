package repositories

import (
	"github.com/dinepoll/server/internal/models"
	"github.com/dinepoll/server/pkg/errors"
	"gorm.io/gorm"
)

// AccountRepository dispatches on the account scope so the two physical
// tables stay behind one tagged domain surface.
type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create inserts a new account in the scope-appropriate table.
func (r *AccountRepository) Create(scope models.Scope, email, passwordHash, name string) (*models.Account, error) {
	switch scope {
	case models.ScopeUser:
		user := &models.User{Email: email, PasswordHash: passwordHash, Name: name}
		if err := r.db.Create(user).Error; err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeServerError, "user")
		}
		account := user.Account()
		return &account, nil
	case models.ScopeManager:
		manager := &models.Manager{Email: email, PasswordHash: passwordHash, Name: name}
		if err := r.db.Create(manager).Error; err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeServerError, "manager")
		}
		account := manager.Account()
		return &account, nil
	default:
		return nil, errors.New(errors.ErrCodeContentInvalid, "scope")
	}
}

// FindByEmail returns the account and its stored password hash. Email is
// unique per table, not across tables.
func (r *AccountRepository) FindByEmail(scope models.Scope, email string) (*models.Account, string, error) {
	switch scope {
	case models.ScopeUser:
		var user models.User
		result := r.db.Where("email = ?", email).First(&user)
		if result.Error == gorm.ErrRecordNotFound {
			return nil, "", errors.New(errors.ErrCodeNotFound, "email")
		}
		if result.Error != nil {
			return nil, "", errors.Wrap(result.Error, errors.ErrCodeServerError, "user")
		}
		account := user.Account()
		return &account, user.PasswordHash, nil
	case models.ScopeManager:
		var manager models.Manager
		result := r.db.Where("email = ?", email).First(&manager)
		if result.Error == gorm.ErrRecordNotFound {
			return nil, "", errors.New(errors.ErrCodeNotFound, "email")
		}
		if result.Error != nil {
			return nil, "", errors.Wrap(result.Error, errors.ErrCodeServerError, "manager")
		}
		account := manager.Account()
		return &account, manager.PasswordHash, nil
	default:
		return nil, "", errors.New(errors.ErrCodeContentInvalid, "scope")
	}
}

// FindByID looks up an account by id within its scope.
func (r *AccountRepository) FindByID(scope models.Scope, id uint) (*models.Account, error) {
	switch scope {
	case models.ScopeUser:
		var user models.User
		result := r.db.First(&user, id)
		if result.Error == gorm.ErrRecordNotFound {
			return nil, errors.New(errors.ErrCodeNotFound, "user")
		}
		if result.Error != nil {
			return nil, errors.Wrap(result.Error, errors.ErrCodeServerError, "user")
		}
		account := user.Account()
		return &account, nil
	case models.ScopeManager:
		var manager models.Manager
		result := r.db.First(&manager, id)
		if result.Error == gorm.ErrRecordNotFound {
			return nil, errors.New(errors.ErrCodeNotFound, "manager")
		}
		if result.Error != nil {
			return nil, errors.Wrap(result.Error, errors.ErrCodeServerError, "manager")
		}
		account := manager.Account()
		return &account, nil
	default:
		return nil, errors.New(errors.ErrCodeContentInvalid, "scope")
	}
}

// ExistsByEmail reports whether the email is taken within the given scope.
func (r *AccountRepository) ExistsByEmail(scope models.Scope, email string) (bool, error) {
	var count int64
	var result *gorm.DB
	switch scope {
	case models.ScopeUser:
		result = r.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	case models.ScopeManager:
		result = r.db.Model(&models.Manager{}).Where("email = ?", email).Count(&count)
	default:
		return false, errors.New(errors.ErrCodeContentInvalid, "scope")
	}

	if result.Error != nil {
		return false, errors.Wrap(result.Error, errors.ErrCodeServerError, "account")
	}
	return count > 0, nil
}
