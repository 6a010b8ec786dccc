package events

import (
	"context"
	"encoding/json"
)

// LogPublisher пишет сигналы в лог, когда брокер отключен в конфигурации
type LogPublisher struct {
	log Logger
}

// NewLogPublisher создает публикатор, который только логирует сигналы
func NewLogPublisher(log Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

// PublishCreditRefund логирует сигнал возврата кредита
func (p *LogPublisher) PublishCreditRefund(_ context.Context, event CreditRefund) error {
	return p.write("credit.refund", event)
}

// PublishPromotion логирует уведомление о продвижении
func (p *LogPublisher) PublishPromotion(_ context.Context, event WaitlistPromotion) error {
	return p.write("waitlist.promoted", event)
}

func (p *LogPublisher) write(kind string, event interface{}) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	p.log.Info("Events: %s %s", kind, body)
	return nil
}
