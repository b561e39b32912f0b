package pg

import (
	"context"
	"fmt"

	"signal_copier/internal/models"
	"signal_copier/internal/modules/telegram_bot/service/pg/user_settings"
	"signal_copier/pkg/db"

	"github.com/jackc/pgx/v5"
)

type User struct {
	db   *db.PgTxManager
	user *user_settings.UserSettings
}

// NewUser instance
func NewUser(db *db.PgTxManager) *User {
	return &User{
		db:   db,
		user: user_settings.New(),
	}
}

// Create in db
func (u *User) Create(
	ctx context.Context,
	user *models.UserSettings,
) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("pg.CreateUserSettings: %w", err)
		}
	}()
	return u.db.RunMaster(ctx,
		func(ctxTx context.Context, tx pgx.Tx) error {
			return u.user.Insert(ctxTx, tx, user)
		})
}

// Update in db
func (u *User) Update(
	ctx context.Context,
	user *models.UserSettings,
) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("pg.UpdateUserSettings: %w", err)
		}
	}()
	return u.db.RunMaster(ctx,
		func(ctxTx context.Context, tx pgx.Tx) error {
			return u.user.Update(ctxTx, tx, user)
		})
}

// Get in db
func (u *User) Get(
	ctx context.Context,
	userID int64,
) (user *models.UserSettings, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("pg.GetUserSettings: %w", err)
		}
	}()

	err = u.db.RunMaster(ctx,
		func(ctxTx context.Context, tx pgx.Tx) error {
			user, err = u.user.GetById(ctxTx, tx, userID)
			if err != nil {
				return err
			}
			return nil
		})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Delete in db
func (u *User) Delete(
	ctx context.Context,
	user *models.UserSettings,
) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("pg.DeleteUserSettings: %w", err)
		}
	}()
	return u.db.RunMaster(ctx,
		func(ctxTx context.Context, tx pgx.Tx) error {
			return u.user.Delete(ctxTx, tx, user)
		})
}
