package copier

import (
	"context"
	"sync"
	"time"

	"signal_copier/internal/models"
	"signal_copier/internal/modules/config"
	"signal_copier/internal/report"
	"signal_copier/internal/signal"
	"signal_copier/pkg/logger"

	"github.com/opentracing/opentracing-go"
)

// Notifier — то, что менеджеру нужно от Telegram.
// Передаётся аргументом, чтобы не замыкать цикл зависимостей.
type Notifier interface {
	Send(ctx context.Context, chatID int64, msg string)
	SendPre(ctx context.Context, chatID int64, text string)
	Confirm(ctx context.Context, chatID int64, prompt string, timeout time.Duration) bool
}

// Manager гоняет пайплайн по чатам: один активный прогон на чат,
// состояние сделки живёт только внутри прогона.
type Manager struct {
	mu     sync.Mutex
	active map[int64]struct{}

	pipeline       *Pipeline
	confirmTimeout time.Duration
}

func NewManager(p *Pipeline, cfg *config.Config) *Manager {
	timeout := cfg.ConfirmTimeout
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &Manager{
		active:         make(map[int64]struct{}),
		pipeline:       p,
		confirmTimeout: timeout,
	}
}

// HandleChannelMessage — вход для нефильтрованного потока канала:
// классификатор решает, сигнал это или болтовня. Болтовню молча пропускаем.
func (m *Manager) HandleChannelMessage(ctx context.Context, chatID int64, text string, riskCfg models.RiskConfig, n Notifier) {
	if !signal.LooksLikeSignal(text) {
		return
	}
	m.RunTrade(ctx, chatID, text, riskCfg, n)
}

// RunTrade — полный цикл: разбор → отчёт → подтверждение → заявки.
// Блокирующий; зовём из горутины на чат.
func (m *Manager) RunTrade(ctx context.Context, chatID int64, text string, riskCfg models.RiskConfig, n Notifier) {
	if !m.begin(chatID) {
		n.Send(ctx, chatID, "⏳ Предыдущая сделка ещё обрабатывается.")
		return
	}
	defer m.end(chatID)

	span := opentracing.StartSpan("copier.run_trade")
	span.SetTag("chat_id", chatID)
	ctx = opentracing.ContextWithSpan(ctx, span)
	defer span.Finish()

	trade, rows, ok := m.prepare(ctx, chatID, text, riskCfg, n)
	if !ok {
		return
	}

	n.SendPre(ctx, chatID, report.Render(rows))

	if !n.Confirm(ctx, chatID, "Войти в сделку "+trade.Symbol+"?", m.confirmTimeout) {
		n.Send(ctx, chatID, "🚫 Сделка пропущена.")
		return
	}

	if err := m.pipeline.Execute(ctx, trade); err != nil {
		logger.Error("execute %s: %v", trade.Symbol, err)
		n.Send(ctx, chatID, "❌ Не удалось выставить заявки: "+err.Error())
		return
	}

	logger.Info("trade placed: %s %s, tps=%d", trade.OrderType, trade.Symbol, len(trade.TakeProfits))
	n.Send(ctx, chatID, "✅ Заявки выставлены: "+trade.Symbol)
}

// RunCalculate — режим калькулятора: только разбор и отчёт, без заявок.
func (m *Manager) RunCalculate(ctx context.Context, chatID int64, text string, riskCfg models.RiskConfig, n Notifier) {
	if !m.begin(chatID) {
		n.Send(ctx, chatID, "⏳ Предыдущая сделка ещё обрабатывается.")
		return
	}
	defer m.end(chatID)

	span := opentracing.StartSpan("copier.run_calculate")
	span.SetTag("chat_id", chatID)
	ctx = opentracing.ContextWithSpan(ctx, span)
	defer span.Finish()

	_, rows, ok := m.prepare(ctx, chatID, text, riskCfg, n)
	if !ok {
		return
	}

	n.SendPre(ctx, chatID, report.Render(rows))
}

// prepare — общая часть: разбор и расчёт с отчётом об ошибках в чат.
// Причина отказа парсера уходит автору сообщения дословно.
func (m *Manager) prepare(ctx context.Context, chatID int64, text string, riskCfg models.RiskConfig, n Notifier) (*models.TradeSignal, []report.Row, bool) {
	trade, err := m.pipeline.ParseMessage(text, riskCfg)
	if err != nil {
		logger.Warn("parse failed for chat %d: %v", chatID, err)
		n.Send(ctx, chatID, "❌ Не удалось разобрать сигнал: "+err.Error())
		return nil, nil, false
	}

	rows, err := m.pipeline.Evaluate(ctx, trade)
	if err != nil {
		logger.Error("evaluate %s: %v", trade.Symbol, err)
		n.Send(ctx, chatID, "❌ Ошибка расчёта риска: "+err.Error())
		return nil, nil, false
	}

	return trade, rows, true
}

func (m *Manager) begin(chatID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, busy := m.active[chatID]; busy {
		return false
	}
	m.active[chatID] = struct{}{}
	return true
}

func (m *Manager) end(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.active, chatID)
}
