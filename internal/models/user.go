package models

// UserSettings хранит данные пользователя бота.
type UserSettings struct {
	ID int64 `json:"id"`

	UserID int64 `json:"user_id"` // Telegram chat/user ID

	Name string `json:"name"`
	Step string `json:"step"`

	// Персональные настройки риска; при первом /start копируются из конфига.
	Risk RiskConfig `json:"risk"`
}
