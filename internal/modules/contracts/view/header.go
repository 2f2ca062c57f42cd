package view

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yungbote/pactify-backend/internal/domain/user"
)

type Link struct {
	Label string
	Href  string
}

// Header is the dashboard top bar for the signed-in user.
type Header struct {
	DisplayName   string
	Initial       string
	UserTypeLabel string
	NewContract   Link
	Menu          []Link
	SignOutAction string
}

func NewHeader(u *user.User) Header {
	h := Header{
		NewContract: Link{Label: "New Contract", Href: "/dashboard/contracts/new"},
		Menu: []Link{
			{Label: "Account Settings", Href: "/dashboard/settings"},
			{Label: "Subscription", Href: "/dashboard/subscription"},
		},
		SignOutAction: "/sign-out",
		UserTypeLabel: UserTypeLabel(""),
	}
	if u == nil {
		h.DisplayName = "User"
		h.Initial = "U"
		return h
	}
	h.DisplayName = displayName(u)
	h.Initial = initial(h.DisplayName)
	h.UserTypeLabel = UserTypeLabel(u.UserType)
	return h
}

func UserTypeLabel(t user.UserType) string {
	switch t {
	case user.UserTypeFreelancer:
		return "Freelancer"
	case user.UserTypeClient:
		return "Client"
	default:
		return "Freelancer & Client"
	}
}

func displayName(u *user.User) string {
	if n := strings.TrimSpace(u.DisplayName); n != "" {
		return n
	}
	if n := strings.TrimSpace(u.FirstName + " " + u.LastName); n != "" {
		return n
	}
	if local, _, ok := strings.Cut(u.Email, "@"); ok && local != "" {
		return local
	}
	return "User"
}

func initial(name string) string {
	r, _ := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return "U"
	}
	return string(unicode.ToUpper(r))
}
