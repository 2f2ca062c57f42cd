package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserType is how the account presents itself in the dashboard.
type UserType string

const (
	UserTypeFreelancer UserType = "freelancer"
	UserTypeClient     UserType = "client"
	UserTypeBoth       UserType = "both"
)

func ParseUserType(raw string) (UserType, bool) {
	switch UserType(raw) {
	case UserTypeFreelancer, UserTypeClient, UserTypeBoth:
		return UserType(raw), true
	default:
		return "", false
	}
}

type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email       string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password    string    `gorm:"not null;column:password" json:"-"`
	FirstName   string    `gorm:"not null;column:first_name" json:"first_name"`
	LastName    string    `gorm:"not null;column:last_name" json:"last_name"`
	DisplayName string    `gorm:"column:display_name" json:"display_name"`
	UserType    UserType  `gorm:"not null;default:'freelancer';column:user_type" json:"user_type"`

	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (User) TableName() string { return "user" }

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.UserType == "" {
		u.UserType = UserTypeFreelancer
	}
	return nil
}
