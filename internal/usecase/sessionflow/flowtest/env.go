package flowtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/m04kA/SMC-StudioBookingService/internal/domain"
	"github.com/m04kA/SMC-StudioBookingService/internal/integrations/events"
)

// TxManager выполняет функцию без настоящей транзакции
type TxManager struct {
	mu    sync.Mutex
	Calls int
}

func (m *TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	m.Calls++
	m.mu.Unlock()
	return fn(ctx)
}

func (m *TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.DoSerializable(ctx, fn)
}

// Policies фиксированная политика
type Policies struct {
	mu     sync.Mutex
	Policy domain.Policy
	Err    error
}

func (p *Policies) Current(context.Context) (domain.Policy, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Policy, p.Err
}

// Set меняет политику между операциями
func (p *Policies) Set(policy domain.Policy) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Policy = policy
}

// Publisher запоминает отправленные сигналы
type Publisher struct {
	mu         sync.Mutex
	Refunds    []events.CreditRefund
	Promotions []events.WaitlistPromotion
	Err        error
}

func (p *Publisher) PublishCreditRefund(_ context.Context, e events.CreditRefund) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.Refunds = append(p.Refunds, e)
	return nil
}

func (p *Publisher) PublishPromotion(_ context.Context, e events.WaitlistPromotion) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.Promotions = append(p.Promotions, e)
	return nil
}

// RefundedReservations ID броней, по которым ушёл возврат
func (p *Publisher) RefundedReservations() []int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	ids := make([]int64, 0, len(p.Refunds))
	for _, e := range p.Refunds {
		ids = append(ids, e.ReservationID)
	}
	return ids
}

// Metrics считает вызовы по ключу "операция/исход/причина"
type Metrics struct {
	mu         sync.Mutex
	Outcomes   map[string]int
	Signals    map[string]int
	Violations map[string]int
}

func NewMetrics() *Metrics {
	return &Metrics{
		Outcomes:   make(map[string]int),
		Signals:    make(map[string]int),
		Violations: make(map[string]int),
	}
}

func (m *Metrics) IncBookingOutcome(operation, outcome, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Outcomes[fmt.Sprintf("%s/%s/%s", operation, outcome, reason)]++
}

func (m *Metrics) IncSignal(kind, result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Signals[kind+"/"+result]++
}

func (m *Metrics) IncInvariantViolation(operation string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Violations[operation]++
}

// Outcome значение счётчика исходов
func (m *Metrics) Outcome(operation, outcome, reason string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Outcomes[fmt.Sprintf("%s/%s/%s", operation, outcome, reason)]
}

// Clock управляемые часы
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set переводит часы
func (c *Clock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// Logger собирает строки лога
type Logger struct {
	mu    sync.Mutex
	Lines []string
}

func (l *Logger) add(level, format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Lines = append(l.Lines, level+" "+fmt.Sprintf(format, v...))
}

func (l *Logger) Info(format string, v ...interface{})  { l.add("INFO", format, v...) }
func (l *Logger) Warn(format string, v ...interface{})  { l.add("WARN", format, v...) }
func (l *Logger) Error(format string, v ...interface{}) { l.add("ERROR", format, v...) }

// Contains ищет подстроку в собранных строках
func (l *Logger) Contains(substr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range l.Lines {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}
