package worker

import (
	"context"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/zvv24/shareit/services/notification-service/internal/events"
	"github.com/zvv24/shareit/services/notification-service/internal/notifier"
)

type Config struct {
	RabbitURL   string
	Exchange    string
	Queue       string
	Bindings    []string
	Prefetch    int
	UseDLX      bool
	DLXName     string
	DLXQueue    string
	ServiceName string
}

type Consumer struct {
	cfg      Config
	notifier notifier.Notifier

	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewConsumer(cfg Config, n notifier.Notifier) *Consumer {
	return &Consumer{cfg: cfg, notifier: n}
}

func (c *Consumer) Connect() error {
	conn, err := amqp.Dial(c.cfg.RabbitURL)
	if err != nil {
		return fmt.Errorf("rabbit dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}

	args := amqp.Table{}
	if c.cfg.UseDLX {
		args["x-dead-letter-exchange"] = c.cfg.DLXName
	}
	q, err := ch.QueueDeclare(c.cfg.Queue, true, false, false, false, args)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("declare queue: %w", err)
	}

	if err := ch.ExchangeDeclare(c.cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("declare exchange %s: %w", c.cfg.Exchange, err)
	}
	for _, key := range c.cfg.Bindings {
		if err := ch.QueueBind(q.Name, key, c.cfg.Exchange, false, nil); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return fmt.Errorf("bind key=%s: %w", key, err)
		}
	}

	if c.cfg.UseDLX {
		if err := ch.ExchangeDeclare(c.cfg.DLXName, "topic", true, false, false, false, nil); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return fmt.Errorf("declare dlx: %w", err)
		}
		if _, err := ch.QueueDeclare(c.cfg.DLXQueue, true, false, false, false, nil); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return fmt.Errorf("declare dlq: %w", err)
		}
		if err := ch.QueueBind(c.cfg.DLXQueue, "#", c.cfg.DLXName, false, nil); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return fmt.Errorf("bind dlq: %w", err)
		}
	}

	if c.cfg.Prefetch <= 0 {
		c.cfg.Prefetch = 8
	}
	if err := ch.Qos(c.cfg.Prefetch, 0, false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("set qos: %w", err)
	}

	c.conn = conn
	c.ch = ch
	return nil
}

func (c *Consumer) Close() {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

func (c *Consumer) Run(ctx context.Context) error {
	msgs, err := c.ch.ConsumeWithContext(ctx, c.cfg.Queue, c.cfg.ServiceName, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			if err := c.handleDelivery(d); err != nil {
				log.Printf("[notify] handle error key=%s err=%v -> Nack&requeue", d.RoutingKey, err)
				_ = d.Nack(false, true)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (c *Consumer) handleDelivery(d amqp.Delivery) error {
	switch d.RoutingKey {
	case events.RKBookingCreated:
		ev, err := events.Unmarshal[events.BookingCreated](d.Body)
		if err != nil {
			return err
		}
		return c.notifier.Notify("Booking requested",
			fmt.Sprintf("Booking %s (item=%s) %s, waiting for owner approval.",
				ev.BookingID, ev.ItemID, notifier.HumanTimeRange(ev.Start, ev.End)))

	case events.RKBookingApproved:
		ev, err := events.Unmarshal[events.BookingDecided](d.Body)
		if err != nil {
			return err
		}
		return c.notifier.Notify("Booking approved",
			fmt.Sprintf("Booking %s has been approved by the item owner.", ev.BookingID))

	case events.RKBookingRejected:
		ev, err := events.Unmarshal[events.BookingDecided](d.Body)
		if err != nil {
			return err
		}
		return c.notifier.Notify("Booking rejected",
			fmt.Sprintf("Booking %s was rejected; the slot is free again.", ev.BookingID))

	default:
		log.Printf("[notify] skip unknown key=%s", d.RoutingKey)
	}
	return nil
}
