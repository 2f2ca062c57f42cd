package realtime

import "github.com/google/uuid"

type SSEEvent string

const (
	SSEEventToast           SSEEvent = "Toast"
	SSEEventContractCreated SSEEvent = "ContractCreated"
	SSEEventWizardUpdated   SSEEvent = "WizardUpdated"
)

// SSEMessage is routed by Channel; every dashboard stream listens on its owner's
// UserChannel.
type SSEMessage struct {
	Channel string   `json:"channel"`
	Event   SSEEvent `json:"event"`
	Data    any      `json:"data,omitempty"`
}

func UserChannel(userID uuid.UUID) string { return "user:" + userID.String() }

const ToastDestructive = "destructive"

// Toast is a short-lived notification rendered by the dashboard.
type Toast struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant,omitempty"`
}
