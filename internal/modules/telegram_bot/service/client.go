package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"signal_copier/internal/copier"
	"signal_copier/internal/modules/config"
	"signal_copier/internal/modules/telegram_bot/service/pg"
	"signal_copier/pkg/logger"

	tgbot "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type pending struct {
	ch     chan bool
	msgID  int
	prompt string
}

// Telegram
type Telegram struct {
	bot      *tgbot.BotAPI
	cfg      *config.Config
	mu       sync.Mutex
	pendings map[string]*pending
	await    *awaitStore
	repo     *pg.User
	manager  *copier.Manager
}

func NewTelegram(cfg *config.Config, repo *pg.User, manager *copier.Manager) (*Telegram, error) {
	b, err := tgbot.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, err
	}

	return &Telegram{
		bot:      b,
		cfg:      cfg,
		pendings: make(map[string]*pending),
		await:    newAwaitStore(),
		repo:     repo,
		manager:  manager,
	}, nil
}

func (t *Telegram) Send(ctx context.Context, chatID int64, msg string) {
	if _, err := t.bot.Send(tgbot.NewMessage(chatID, msg)); err != nil {
		logger.Warn("tg send to %d: %v", chatID, err)
	}
}

func (t *Telegram) SendF(ctx context.Context, chatID int64, format string, args ...any) {
	t.Send(ctx, chatID, fmt.Sprintf(format, args...))
}

// SendPre — моноширинный блок (отчёт по сделке). HTML, чтобы <pre> не ломался
// на спецсимволах markdown в тексте сигнала.
func (t *Telegram) SendPre(ctx context.Context, chatID int64, text string) {
	msg := tgbot.NewMessage(chatID, "<pre>"+text+"</pre>")
	msg.ParseMode = tgbot.ModeHTML
	if _, err := t.bot.Send(msg); err != nil {
		logger.Warn("tg sendPre to %d: %v", chatID, err)
	}
}

func (t *Telegram) SendMessage(_ context.Context, message tgbot.MessageConfig) (tgbot.Message, error) {
	return t.bot.Send(message)
}

func (t *Telegram) editReplyMarkupRemove(chatID int64, msgID int) error {
	rm := tgbot.InlineKeyboardMarkup{InlineKeyboard: [][]tgbot.InlineKeyboardButton{}}
	edit := tgbot.NewEditMessageReplyMarkup(chatID, msgID, rm)
	_, err := t.bot.Request(edit)
	return err
}

func (t *Telegram) editText(chatID int64, msgID int, text string) error {
	edit := tgbot.NewEditMessageText(chatID, msgID, text)
	_, err := t.bot.Request(edit)
	return err
}

// Confirm — сообщение с кнопками и ожиданием callback.
func (t *Telegram) Confirm(ctx context.Context, chatID int64, prompt string, timeout time.Duration) bool {

	token := fmt.Sprintf("%d", time.Now().UnixNano())
	p := &pending{
		ch:     make(chan bool, 1),
		prompt: prompt,
	}

	t.mu.Lock()
	t.pendings[token] = p
	t.mu.Unlock()

	btnYes := tgbot.NewInlineKeyboardButtonData("✅ Войти", "CONF::"+token)
	btnNo := tgbot.NewInlineKeyboardButtonData("❌ Пропустить", "REJ::"+token)
	kb := tgbot.NewInlineKeyboardMarkup(tgbot.NewInlineKeyboardRow(btnYes, btnNo))

	msg := tgbot.NewMessage(chatID, prompt)
	msg.ReplyMarkup = kb

	sent, _ := t.bot.Send(msg)
	p.msgID = sent.MessageID

	tmr := time.NewTimer(timeout)
	defer tmr.Stop()

	select {
	case ok := <-p.ch:
		return ok
	case <-tmr.C:
		_ = t.editReplyMarkupRemove(chatID, p.msgID)
		_ = t.editText(chatID, p.msgID, fmt.Sprintf("%s\n\n⏳ Таймаут", prompt))
		t.mu.Lock()
		delete(t.pendings, token)
		t.mu.Unlock()
		return false
	case <-ctx.Done():
		_ = t.editReplyMarkupRemove(chatID, p.msgID)
		_ = t.editText(chatID, p.msgID, fmt.Sprintf("%s\n\n⛔️ Отменено", prompt))
		t.mu.Lock()
		delete(t.pendings, token)
		t.mu.Unlock()
		return false
	}
}

// Start ...
func (t *Telegram) Start(ctx context.Context) error {
	u := tgbot.NewUpdate(0)
	u.Timeout = 30
	updates := t.bot.GetUpdatesChan(u)
	for update := range updates {
		t.handleUpdate(ctx, update)
	}
	return nil
}

func (t *Telegram) Stop() {
	t.bot.StopReceivingUpdates()
}
