package user_settings

import (
	"context"
	"fmt"

	"signal_copier/internal/models"
	"signal_copier/internal/modules/telegram_bot/service/pg/user_settings/sql"

	"github.com/bytedance/sonic"
	"github.com/jackc/pgx/v5"
)

// UserSettings implement db store
type UserSettings struct {
	sql *sql.Queries
}

// New instance
func New() *UserSettings {
	return &UserSettings{
		sql: sql.New(),
	}
}

func (u *UserSettings) Insert(ctx context.Context, tx pgx.Tx, user *models.UserSettings) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("UserSettings.Insert: %w", err)
		}
	}()

	var data []byte
	data, err = sonic.Marshal(user.Risk)
	if err != nil {
		return err
	}
	user.ID, err = u.sql.Insert(ctx, tx, &sql.InsertParams{
		Chatid:   user.UserID,
		Name:     user.Name,
		Settings: data,
		Step:     user.Step,
	})
	if err != nil {
		return err
	}
	return
}

func (u *UserSettings) Update(ctx context.Context, tx pgx.Tx, user *models.UserSettings) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("UserSettings.Update: %w", err)
		}
	}()
	var data []byte
	data, err = sonic.Marshal(user.Risk)
	if err != nil {
		return err
	}
	return u.sql.Update(ctx, tx, &sql.UpdateParams{
		Chatid:   user.UserID,
		Name:     user.Name,
		Settings: data,
		Step:     user.Step,
	})
}

func (u *UserSettings) Delete(ctx context.Context, tx pgx.Tx, user *models.UserSettings) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("UserSettings.Delete: %w", err)
		}
	}()
	return u.sql.Delete(ctx, tx, &sql.DeleteParams{
		Chatid: user.UserID,
		ID:     user.ID,
	})
}

func (u *UserSettings) GetById(ctx context.Context, tx pgx.Tx, chatID int64) (user *models.UserSettings, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("UserSettings.GetById: %w", err)
		}
	}()
	resp, err := u.sql.GetById(ctx, tx, chatID)
	if err != nil {
		return nil, err
	}

	var r models.RiskConfig
	err = sonic.Unmarshal(resp.Settings, &r)
	if err != nil {
		return nil, err
	}
	return &models.UserSettings{
		ID:     resp.ID,
		UserID: chatID,
		Name:   resp.Name,
		Risk:   r,
		Step:   resp.Step,
	}, nil
}
