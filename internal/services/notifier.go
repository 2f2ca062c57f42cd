package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/yungbote/pactify-backend/internal/modules/contracts/wizard"
	"github.com/yungbote/pactify-backend/internal/realtime"
)

// ContractNotifier pushes transient feedback to the owner's SSE channel.
type ContractNotifier interface {
	Toast(ctx context.Context, userID uuid.UUID, toast realtime.Toast)
	ContractCreated(ctx context.Context, userID uuid.UUID, contractID uuid.UUID)
	// WizardUpdated lets other tabs of the same owner follow a session.
	WizardUpdated(ctx context.Context, userID uuid.UUID, sess *wizard.Session)
}

type contractNotifier struct {
	emit SSEEmitter
}

func NewContractNotifier(emit SSEEmitter) ContractNotifier {
	return &contractNotifier{emit: emit}
}

func (n *contractNotifier) Toast(ctx context.Context, userID uuid.UUID, toast realtime.Toast) {
	if n == nil || n.emit == nil || userID == uuid.Nil {
		return
	}
	n.emit.Emit(ctx, realtime.SSEMessage{
		Channel: realtime.UserChannel(userID),
		Event:   realtime.SSEEventToast,
		Data:    toast,
	})
}

func (n *contractNotifier) ContractCreated(ctx context.Context, userID uuid.UUID, contractID uuid.UUID) {
	if n == nil || n.emit == nil || userID == uuid.Nil {
		return
	}
	n.emit.Emit(ctx, realtime.SSEMessage{
		Channel: realtime.UserChannel(userID),
		Event:   realtime.SSEEventContractCreated,
		Data:    map[string]any{"contract_id": contractID},
	})
}

func (n *contractNotifier) WizardUpdated(ctx context.Context, userID uuid.UUID, sess *wizard.Session) {
	if n == nil || n.emit == nil || userID == uuid.Nil || sess == nil {
		return
	}
	n.emit.Emit(ctx, realtime.SSEMessage{
		Channel: realtime.UserChannel(userID),
		Event:   realtime.SSEEventWizardUpdated,
		Data:    sess,
	})
}
