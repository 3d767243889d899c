package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Publisher публикует события жизненного цикла броней в RabbitMQ
// Ошибки публикации логируются и возвращаются вызывающему, но не должны
// прерывать основной поток обработки запроса - доставка уведомлений
// не входит в гарантии сервиса бронирования
type Publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	log      Logger
}

// NewPublisher подключается к брокеру и объявляет durable topic exchange
func NewPublisher(url, exchange string, log Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%w: dial: %v", ErrConnect, err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close() //nolint:errcheck // соединение уже в ошибочном состоянии
		return nil, fmt.Errorf("%w: open channel: %v", ErrConnect, err)
	}

	if err := channel.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // autoDelete
		false, // internal
		false, // noWait
		nil,
	); err != nil {
		channel.Close() //nolint:errcheck
		conn.Close()    //nolint:errcheck
		return nil, fmt.Errorf("%w: declare exchange: %v", ErrConnect, err)
	}

	return &Publisher{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
		log:      log,
	}, nil
}

// Publish публикует событие с указанным routing key
func (p *Publisher) Publish(ctx context.Context, routingKey string, event ReservationEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal event: %v", ErrPublish, err)
	}

	err = p.channel.PublishWithContext(ctx,
		p.exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
	if err != nil {
		p.log.Error("events: publish %s failed: %v", routingKey, err)
		return fmt.Errorf("%w: %s: %v", ErrPublish, routingKey, err)
	}

	p.log.Info("events: published %s for reservation=%s", routingKey, event.ReservationUID)
	return nil
}

// Close закрывает канал и соединение с брокером
func (p *Publisher) Close() error {
	if err := p.channel.Close(); err != nil {
		p.conn.Close() //nolint:errcheck
		return err
	}
	return p.conn.Close()
}

// NoopPublisher заглушка, используется когда брокер событий выключен в конфигурации
type NoopPublisher struct{}

// Publish ничего не делает
func (NoopPublisher) Publish(_ context.Context, _ string, _ ReservationEvent) error {
	return nil
}
