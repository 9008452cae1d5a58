package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"jobpulse/internal/common"
)

const inAppSubject = "notifications.inapp"

type inAppMessage struct {
	OwnerID string    `json:"owner_id"`
	Kind    string    `json:"kind"`
	Body    string    `json:"body"`
	SentAt  time.Time `json:"sent_at"`
}

// NATSNotifier publishes in-app notifications for the web client to consume.
type NATSNotifier struct {
	conn   *nats.Conn
	logger *zap.Logger
}

func NewNATSNotifier(url string, logger *zap.Logger) (*NATSNotifier, error) {
	conn, err := nats.Connect(url,
		nats.Timeout(10*time.Second),
		nats.ReconnectWait(time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, err
	}
	return &NATSNotifier{conn: conn, logger: logger}, nil
}

func (n *NATSNotifier) Notify(ctx context.Context, ownerID common.UUID, kind, body string) error {
	data, err := json.Marshal(inAppMessage{
		OwnerID: ownerID.String(),
		Kind:    kind,
		Body:    body,
		SentAt:  time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	if err := n.conn.Publish(inAppSubject, data); err != nil {
		n.logger.Error("failed to publish in-app notification",
			zap.String("owner_id", ownerID.String()),
			zap.String("kind", kind),
			zap.Error(err))
		return err
	}
	return nil
}

func (n *NATSNotifier) Close() {
	if n.conn != nil {
		n.conn.Close()
	}
}
