package service

import (
	"context"
	"strings"

	"signal_copier/pkg/logger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (t *Telegram) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	// 1) Посты из каналов — нефильтрованный поток, решает классификатор
	if post := update.ChannelPost; post != nil {
		t.handleChannelPost(ctx, post)
		return
	}

	// 2) Обычные сообщения
	if msg := update.Message; msg != nil {
		chatID := msg.Chat.ID

		if !t.allowed(chatID) {
			return
		}

		if msg.IsCommand() {
			t.handleCommand(ctx, chatID, msg)
			return
		}

		t.handleTextMessage(ctx, msg)
		return
	}

	// 3) Inline-кнопки (CallbackQuery)
	if cb := update.CallbackQuery; cb != nil {
		// у callback всегда свой message
		if cb.Message == nil || cb.Message.Chat == nil {
			return
		}
		chatID := cb.Message.Chat.ID
		if !t.allowed(chatID) {
			return
		}
		t.handleCallback(ctx, chatID, cb)
		return
	}
}

// allowed — белый список чатов; пустой список значит «пускаем всех».
func (t *Telegram) allowed(chatID int64) bool {
	if len(t.cfg.Telegram.AllowedUsers) == 0 {
		return true
	}
	for _, id := range t.cfg.Telegram.AllowedUsers {
		if id == chatID {
			return true
		}
	}
	return false
}

// handleChannelPost — сигналы из привязанного канала входят без команд,
// классификатор сам отличает сигнал от болтовни.
func (t *Telegram) handleChannelPost(ctx context.Context, post *tgbotapi.Message) {
	chatID := post.Chat.ID
	if !t.allowed(chatID) {
		return
	}

	user, err := t.getUser(ctx, chatID)
	if err != nil {
		logger.Error("channel post getUser %d: %v", chatID, err)
		return
	}

	go t.manager.HandleChannelMessage(context.Background(), chatID, post.Text, user.Risk, t)
}

func (t *Telegram) handleCommand(ctx context.Context, chatID int64, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		if err := t.handleStart(ctx, chatID); err != nil {
			logger.Error("handleStart error: %v", err)
		}
	case "help":
		t.Send(ctx, chatID,
			"Команды:\n"+
				"/trade — разобрать сигнал и войти в сделку\n"+
				"/calculate — только расчёт, без заявок\n"+
				"/settings — настройки риска\n"+
				"/cancel — сбросить ожидание ввода")
	case "trade":
		// текст может идти сразу после команды или следующим сообщением
		if args := strings.TrimSpace(msg.CommandArguments()); args != "" {
			t.runTrade(ctx, chatID, args)
			return
		}
		t.setAwait(chatID, awaitTrade)
		t.Send(ctx, chatID, "Пришли текст сигнала следующим сообщением.")
	case "calculate":
		if args := strings.TrimSpace(msg.CommandArguments()); args != "" {
			t.runCalculate(ctx, chatID, args)
			return
		}
		t.setAwait(chatID, awaitCalculate)
		t.Send(ctx, chatID, "Пришли текст сигнала, посчитаю без входа.")
	case "settings":
		t.handleSettingsMenu(ctx, chatID)
	case "cancel":
		t.clearAwait(chatID)
		t.Send(ctx, chatID, "Ок, ожидание сброшено.")
	default:
	}
}

func (t *Telegram) handleStart(ctx context.Context, chatID int64) error {
	_, err := t.getUser(ctx, chatID)
	if err != nil {
		t.Send(ctx, chatID, "Настройки не найдены, попробуй ещё раз /start")
		return err
	}

	// Главное меню
	replyKb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("📈 Сделка"),
			tgbotapi.NewKeyboardButton("🧮 Расчёт"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("⚙️ Настройки"),
		),
	)

	msgText := "Привет! Я копирую торговые сигналы на счёт MetaApi.\n\n" +
		"1️⃣ Перешли мне текст сигнала или привяжи меня к каналу.\n" +
		"2️⃣ Я разберу его, посчитаю объём и спрошу подтверждение.\n\n" +
		"Команды: /trade /calculate /settings"

	msg := tgbotapi.NewMessage(chatID, msgText)
	msg.ReplyMarkup = replyKb

	_, err = t.SendMessage(ctx, msg)
	return err
}

func (t *Telegram) handleTextMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)

	user, err := t.getUser(ctx, chatID)
	if err != nil {
		t.Send(ctx, chatID, "Настройки не найдены, попробуй /start")
		return
	}

	// 1) Если ждали ввод — он в приоритете
	switch t.popAwait(chatID) {
	case awaitTrade:
		t.runTrade(ctx, chatID, text)
		return
	case awaitCalculate:
		t.runCalculate(ctx, chatID, text)
		return
	case awaitRiskFactor:
		t.handleRiskFactorInput(ctx, chatID, user, text)
		return
	}

	// 2) Кнопки главного меню
	switch text {
	case "📈 Сделка":
		t.setAwait(chatID, awaitTrade)
		t.Send(ctx, chatID, "Пришли текст сигнала следующим сообщением.")
		return
	case "🧮 Расчёт":
		t.setAwait(chatID, awaitCalculate)
		t.Send(ctx, chatID, "Пришли текст сигнала, посчитаю без входа.")
		return
	case "⚙️ Настройки":
		t.handleSettingsMenu(ctx, chatID)
		return
	}

	// 3) Прочий текст: пересланный сигнал без команды.
	// Классификатор внутри отфильтрует болтовню.
	go t.manager.HandleChannelMessage(context.Background(), chatID, text, user.Risk, t)
}

func (t *Telegram) runTrade(ctx context.Context, chatID int64, text string) {
	user, err := t.getUser(ctx, chatID)
	if err != nil {
		t.Send(ctx, chatID, "Настройки не найдены, попробуй /start")
		return
	}
	// блокирующий цикл с подтверждением, поэтому отдельная горутина на чат
	go t.manager.RunTrade(context.Background(), chatID, text, user.Risk, t)
}

func (t *Telegram) runCalculate(ctx context.Context, chatID int64, text string) {
	user, err := t.getUser(ctx, chatID)
	if err != nil {
		t.Send(ctx, chatID, "Настройки не найдены, попробуй /start")
		return
	}
	go t.manager.RunCalculate(context.Background(), chatID, text, user.Risk, t)
}

func (t *Telegram) handleCallback(ctx context.Context, chatID int64, cb *tgbotapi.CallbackQuery) {
	// отвечаем ТГ, чтобы убрать "часики" на кнопке
	_, _ = t.bot.Request(tgbotapi.NewCallback(cb.ID, ""))

	data := cb.Data

	// 1) Кнопки настроек риска: risk:policy / risk:factor / risk:trailing / risk:back
	if strings.HasPrefix(data, "risk:") {
		t.handleRiskCallback(ctx, chatID, cb.Message, data)
		return
	}

	// 2) Подтверждения входа/пропуска: CONF::token / REJ::token
	if strings.Contains(data, "::") {
		t.handleConfirmCallback(chatID, data)
		return
	}
}

// handleConfirmCallback обрабатывает callback-и вида CONF::token / REJ::token.
func (t *Telegram) handleConfirmCallback(chatID int64, data string) {
	verb, token := parseConfirmData(data)
	if verb == "" || token == "" {
		return
	}

	t.mu.Lock()
	p, ok := t.pendings[token]
	t.mu.Unlock()
	if !ok {
		return
	}

	accepted := verb == "CONF"
	p.ch <- accepted
	close(p.ch)

	status := "Отклонено"
	emoji := "❌"
	if accepted {
		status = "Подтверждено"
		emoji = "✅"
	}

	_ = t.editReplyMarkupRemove(chatID, p.msgID)
	_ = t.editText(chatID, p.msgID, p.prompt+"\n\n"+emoji+" "+status)

	t.mu.Lock()
	delete(t.pendings, token)
	t.mu.Unlock()
}

func parseConfirmData(data string) (verb, token string) {
	for i := 0; i < len(data); i++ {
		if i+1 < len(data) && data[i] == ':' && data[i+1] == ':' {
			return data[:i], data[i+2:]
		}
	}
	return "", ""
}
