package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"signal_copier/internal/models"
	"signal_copier/pkg/logger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func policyLabel(p models.RiskPolicy) string {
	if p == models.PolicyRewardWeighted {
		return "reward weighted"
	}
	return "fixed fraction"
}

func trailingLabel(on bool) string {
	if on {
		return "включён"
	}
	return "выключен"
}

func formatRiskText(user *models.UserSettings) string {
	r := user.Risk
	return fmt.Sprintf(
		"⚙️ Текущие настройки риска:\n\n"+
			"Политика: %s\n"+
			"Риск на сделку: %.2f%%\n"+
			"Трейлинг-стоп: %s",
		policyLabel(r.Policy),
		r.Fraction()*100,
		trailingLabel(r.TrailingStop),
	)
}

func buildRiskKeyboard(user *models.UserSettings) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔁 Политика", "risk:policy"),
			tgbotapi.NewInlineKeyboardButtonData("📉 Риск %", "risk:factor"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🧲 Трейлинг-стоп", "risk:trailing"),
			tgbotapi.NewInlineKeyboardButtonData("✅ Готово", "risk:done"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("♻️ Сбросить к дефолту", "risk:reset"),
		),
	)
}

func (t *Telegram) handleSettingsMenu(ctx context.Context, chatID int64) {
	user, err := t.getUser(ctx, chatID)
	if err != nil {
		t.Send(ctx, chatID, "Настройки не найдены, попробуй /start")
		return
	}

	msg := tgbotapi.NewMessage(chatID, formatRiskText(user))
	msg.ReplyMarkup = buildRiskKeyboard(user)
	_, _ = t.SendMessage(ctx, msg)
}

func (t *Telegram) handleRiskCallback(ctx context.Context, chatID int64, msg *tgbotapi.Message, data string) {
	user, err := t.getUser(ctx, chatID)
	if err != nil {
		t.Send(ctx, chatID, "Настройки не найдены, попробуй /start")
		return
	}

	parts := strings.Split(data, ":")
	if len(parts) != 2 {
		return
	}

	switch parts[1] {
	case "policy":
		if user.Risk.Policy == models.PolicyRewardWeighted {
			user.Risk.Policy = models.PolicyFixedFraction
		} else {
			user.Risk.Policy = models.PolicyRewardWeighted
		}

	case "trailing":
		user.Risk.TrailingStop = !user.Risk.TrailingStop

	case "factor":
		t.setAwait(chatID, awaitRiskFactor)
		t.Send(ctx, chatID, "Введи риск в процентах, например: 1.0 (это 1% на сделку).")
		return

	case "reset":
		// сносим персональную запись; следующий getUser
		// пересоздаст её из дефолтов конфига
		if err := t.repo.Delete(ctx, user); err != nil {
			logger.Error("reset risk settings %d: %v", chatID, err)
			t.Send(ctx, chatID, "⚠️ Не удалось сбросить настройки: "+err.Error())
			return
		}
		fresh, err := t.getUser(ctx, chatID)
		if err != nil {
			t.Send(ctx, chatID, "Настройки не найдены, попробуй /start")
			return
		}
		t.redrawRiskMenu(chatID, msg, fresh)
		return

	case "done":
		if msg != nil {
			_ = t.editReplyMarkupRemove(chatID, msg.MessageID)
		}
		return

	default:
		return
	}

	if err := t.repo.Update(ctx, user); err != nil {
		logger.Error("update risk settings %d: %v", chatID, err)
		t.Send(ctx, chatID, "⚠️ Не удалось сохранить настройки: "+err.Error())
		return
	}

	t.redrawRiskMenu(chatID, msg, user)
}

// redrawRiskMenu перерисовывает то же сообщение меню.
func (t *Telegram) redrawRiskMenu(chatID int64, msg *tgbotapi.Message, user *models.UserSettings) {
	if msg == nil {
		return
	}
	edit := tgbotapi.NewEditMessageTextAndMarkup(
		chatID,
		msg.MessageID,
		formatRiskText(user),
		buildRiskKeyboard(user),
	)
	if _, err := t.bot.Send(edit); err != nil {
		logger.Warn("risk menu edit error: %v", err)
	}
}

// handleRiskFactorInput — ответ на risk:factor. Процент применяется
// к активной политике, доля всегда в (0, 1).
func (t *Telegram) handleRiskFactorInput(ctx context.Context, chatID int64, user *models.UserSettings, text string) {
	text = strings.ReplaceAll(strings.TrimSpace(text), ",", ".")
	pct, err := strconv.ParseFloat(text, 64)
	if err != nil || pct <= 0 || pct >= 100 {
		t.Send(ctx, chatID, "Нужно число процентов в (0, 100), например 1.0. Попробуй /settings ещё раз.")
		return
	}

	frac := pct / 100
	if user.Risk.Policy == models.PolicyRewardWeighted {
		user.Risk.RiskPerTrade = frac
	} else {
		user.Risk.RiskFactor = frac
	}

	if err := t.repo.Update(ctx, user); err != nil {
		logger.Error("update risk factor %d: %v", chatID, err)
		t.Send(ctx, chatID, "⚠️ Не удалось сохранить настройки: "+err.Error())
		return
	}

	t.SendF(ctx, chatID, "✅ Риск на сделку: %.2f%% (%s)", pct, policyLabel(user.Risk.Policy))
}
