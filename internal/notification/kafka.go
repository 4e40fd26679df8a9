package notification

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/clubhubdev/clubhub-backend/config"
	"github.com/clubhubdev/clubhub-backend/internal/registration"
)

// Producer publishes registration confirmations to Kafka
type Producer struct {
	writer *kafka.Writer
}

func NewProducer(cfg *config.Config) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(strings.Split(cfg.KafkaBrokers, ",")...),
			Topic:        cfg.KafkaRegistrationTopic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 50 * time.Millisecond,
		},
	}
}

// PublishConfirmation satisfies registration.ConfirmationPublisher
func (p *Producer) PublishConfirmation(ctx context.Context, msg registration.ConfirmationMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.Email),
		Value: payload,
	})
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

// Consumer reads confirmations off Kafka and sends the emails
type Consumer struct {
	reader  *kafka.Reader
	emailer *Emailer
}

func NewConsumer(cfg *config.Config, emailer *Emailer) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: strings.Split(cfg.KafkaBrokers, ","),
			Topic:   cfg.KafkaRegistrationTopic,
			GroupID: "clubhub-notifications",
		}),
		emailer: emailer,
	}
}

// Start blocks consuming messages until the context is cancelled.
// Run it in its own goroutine.
func (c *Consumer) Start(ctx context.Context) {
	log.Println("📨 notification consumer started")

	for {
		m, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				log.Println("📨 notification consumer stopped")
				return
			}
			log.Printf("⚠️ notification: read failed: %v", err)
			continue
		}

		var msg registration.ConfirmationMessage
		if err := json.Unmarshal(m.Value, &msg); err != nil {
			log.Printf("⚠️ notification: bad message at offset %d: %v", m.Offset, err)
			continue
		}

		if err := c.emailer.SendRegistrationConfirmation(msg); err != nil {
			log.Printf("⚠️ notification: email to %s failed: %v", msg.Email, err)
		}
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
