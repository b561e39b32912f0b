package service

import (
	"context"
	"errors"
	"fmt"

	"signal_copier/internal/models"

	"github.com/jackc/pgx/v5"
)

func (t *Telegram) getUser(ctx context.Context, chatID int64) (*models.UserSettings, error) {
	user, err := t.repo.Get(ctx, chatID)
	if err != nil {
		// not found в PG
		if errors.Is(err, pgx.ErrNoRows) {
			user = t.defaultUser(chatID)
			if err := t.repo.Create(ctx, user); err != nil {
				return nil, fmt.Errorf("create user settings: %w", err)
			}
			return user, nil
		}

		// любая другая ошибка — пробрасываем
		return nil, fmt.Errorf("get user settings: %w", err)
	}

	return user, nil
}

// defaultUser — настройки риска первого входа берём из конфига сервиса.
func (t *Telegram) defaultUser(chatID int64) *models.UserSettings {
	return &models.UserSettings{
		UserID: chatID,
		Risk:   t.cfg.Risk,
	}
}
