package view

import "github.com/yungbote/pactify-backend/internal/domain/contracts"

// Badge is the visual category of a contract status. Tone selects the colour class.
type Badge struct {
	Label   string `json:"label"`
	Variant string `json:"variant"`
	Tone    string `json:"tone,omitempty"`
}

var unknownBadge = Badge{Label: "Unknown", Variant: "outline"}

var statusBadges = map[contracts.Status]Badge{
	contracts.StatusDraft:     {Label: "Draft", Variant: "outline", Tone: "muted"},
	contracts.StatusPending:   {Label: "Pending", Variant: "outline", Tone: "yellow"},
	contracts.StatusSigned:    {Label: "Signed", Variant: "outline", Tone: "green"},
	contracts.StatusCompleted: {Label: "Completed", Variant: "outline", Tone: "green-strong"},
	contracts.StatusCancelled: {Label: "Cancelled", Variant: "outline", Tone: "red"},
	contracts.StatusDisputed:  {Label: "Disputed", Variant: "destructive"},
}

func init() {
	for _, s := range contracts.AllStatuses {
		if _, ok := statusBadges[s]; !ok {
			panic("view: no badge for status " + string(s))
		}
	}
}

// StatusBadge is total: nil and unrecognized values render as Unknown.
func StatusBadge(status *string) Badge {
	if status == nil {
		return unknownBadge
	}
	s, ok := contracts.ParseStatus(*status)
	if !ok {
		return unknownBadge
	}
	return statusBadges[s]
}
