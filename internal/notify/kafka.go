package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"piqueunique/pkg/config"
	"piqueunique/pkg/logger"
	"piqueunique/pkg/model"
)

// KafkaNotifier publishes booking events for the mail and back-office
// workers. Messages are keyed by booking ID so per-booking ordering holds
// within a partition.
type KafkaNotifier struct {
	confirmations *kafka.Writer
	admin         *kafka.Writer
	logger        *logger.Logger
}

func NewKafkaNotifier(cfg *config.Config) *KafkaNotifier {
	return &KafkaNotifier{
		confirmations: newWriter(cfg.KafkaBrokers, cfg.KafkaConfirmationTopic),
		admin:         newWriter(cfg.KafkaBrokers, cfg.KafkaAdminTopic),
		logger:        cfg.Log,
	}
}

func newWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Compression:  kafka.Snappy,
		BatchTimeout: 10 * time.Millisecond,
	}
}

// SendBookingConfirmation publishes the customer confirmation event with
// the rendered calendar invite attached.
func (n *KafkaNotifier) SendBookingConfirmation(ctx context.Context, booking *model.Booking) error {
	invite, err := RenderInvite(booking, time.Now())
	if err != nil {
		return fmt.Errorf("failed to render calendar invite: %w", err)
	}

	recipient := booking.ContactInfo.Email
	if recipient == "" {
		recipient = booking.UserEmail
	}

	return n.publish(ctx, n.confirmations, Event{
		EventID:   uuid.NewString(),
		Type:      EventTypeConfirmation,
		Booking:   booking,
		Calendar:  invite,
		Recipient: recipient,
	})
}

// SendAdminNotification publishes the back-office event. No recipient is
// set; the consumer fans out to the configured staff list.
func (n *KafkaNotifier) SendAdminNotification(ctx context.Context, booking *model.Booking) error {
	return n.publish(ctx, n.admin, Event{
		EventID: uuid.NewString(),
		Type:    EventTypeAdminNotification,
		Booking: booking,
	})
}

func (n *KafkaNotifier) publish(ctx context.Context, w *kafka.Writer, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.Booking.ID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.EventID)},
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}

	if err := w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Type, err)
	}

	n.logger.Info("Notification event published",
		"event_id", event.EventID,
		"event_type", event.Type,
		"booking_id", event.Booking.ID,
		"topic", w.Topic,
	)
	return nil
}

func (n *KafkaNotifier) Close() error {
	if err := n.confirmations.Close(); err != nil {
		return err
	}
	return n.admin.Close()
}
