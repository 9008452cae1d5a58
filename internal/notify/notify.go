package notify

import (
	"context"

	"jobpulse/internal/common"
)

// Dispatchers are external collaborators. Implementations must carry their own
// timeouts and surface failures; callers decide whether a failure aborts the
// operation or is logged and skipped.

type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

type PushSender interface {
	SendPush(ctx context.Context, ownerID common.UUID, title, body string) error
}

type InAppNotifier interface {
	Notify(ctx context.Context, ownerID common.UUID, kind, body string) error
}

// Nop satisfies the dispatcher interfaces for deployments that have not wired
// a channel yet.
type Nop struct{}

func (Nop) SendEmail(context.Context, string, string, string) error { return nil }

func (Nop) SendPush(context.Context, common.UUID, string, string) error { return nil }

func (Nop) Notify(context.Context, common.UUID, string, string) error { return nil }
