package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher публикует сигналы в RabbitMQ
// Соединение открывается лениво и переоткрывается после обрыва.
type Publisher struct {
	url            string
	refundQueue    string
	promotionQueue string
	timeout        time.Duration
	log            Logger

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewPublisher создает публикатор сигналов
func NewPublisher(url, refundQueue, promotionQueue string, timeout time.Duration, log Logger) *Publisher {
	return &Publisher{
		url:            url,
		refundQueue:    refundQueue,
		promotionQueue: promotionQueue,
		timeout:        timeout,
		log:            log,
	}
}

// PublishCreditRefund отправляет сигнал возврата кредита
func (p *Publisher) PublishCreditRefund(ctx context.Context, event CreditRefund) error {
	return p.publish(ctx, p.refundQueue, event)
}

// PublishPromotion отправляет уведомление о продвижении из очереди
func (p *Publisher) PublishPromotion(ctx context.Context, event WaitlistPromotion) error {
	return p.publish(ctx, p.promotionQueue, event)
}

// Close закрывает канал и соединение
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		err := p.conn.Close()
		p.conn = nil
		return err
	}
	return nil
}

func (p *Publisher) publish(ctx context.Context, queue string, event interface{}) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMarshal, err)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		return err
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	// default exchange, routing key = имя очереди
	if err := ch.PublishWithContext(ctx, "", queue, false, false, msg); err != nil {
		p.reset()
		return fmt.Errorf("%w: queue=%s: %v", ErrPublish, queue, err)
	}

	return nil
}

// channel возвращает открытый канал, при необходимости переподключаясь
// Вызывается под p.mu.
func (p *Publisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	p.reset()

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, fmt.Errorf("%w: dial: %v", ErrConnect, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: channel open: %v", ErrConnect, err)
	}

	for _, queue := range []string{p.refundQueue, p.promotionQueue} {
		// durable, чтобы сигналы переживали рестарт брокера
		if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return nil, fmt.Errorf("%w: queue declare %s: %v", ErrConnect, queue, err)
		}
	}

	p.conn = conn
	p.ch = ch
	p.log.Info("Events: connected to broker, queues=%s,%s", p.refundQueue, p.promotionQueue)

	return ch, nil
}

func (p *Publisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}
