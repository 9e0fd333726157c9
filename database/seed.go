package database

import (
	"context"
	stderrors "errors"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"blogaulas/models"
)

type SeedAccount struct {
	Username string
	Password string
	Role     models.Role
}

var DefaultAccounts = []SeedAccount{
	{Username: "prof1", Password: "senha123", Role: models.RoleTeacher},
	{Username: "aluno1", Password: "senha123", Role: models.RoleStudent},
}

type seedStore interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

// Seed creates the accounts that do not exist yet. Running it again is a no-op.
func Seed(ctx context.Context, users seedStore, accounts []SeedAccount, log *zap.Logger) error {
	for _, acc := range accounts {
		_, err := users.FindByUsername(ctx, acc.Username)
		if err == nil {
			continue
		}
		if !stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.Wrapf(err, "seed lookup %s", acc.Username)
		}

		user := &models.User{Username: acc.Username, Role: acc.Role}
		if err := user.SetPassword(acc.Password); err != nil {
			return errors.Wrapf(err, "seed hash %s", acc.Username)
		}
		if err := users.Create(ctx, user); err != nil {
			if stderrors.Is(err, gorm.ErrDuplicatedKey) {
				continue
			}
			return errors.Wrapf(err, "seed create %s", acc.Username)
		}
		log.Info("seeded account", zap.String("username", acc.Username), zap.String("role", string(acc.Role)))
	}
	return nil
}
