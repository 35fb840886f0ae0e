package models

import (
	"time"

	"gorm.io/gorm"
)

type Workspace struct {
	ID         uint64         `gorm:"primarykey" json:"id"`
	Name       string         `gorm:"type:varchar(255);not null" json:"name"`
	ImageURL   string         `gorm:"type:longtext" json:"imageUrl"`
	InviteCode string         `gorm:"type:varchar(10);index;not null" json:"inviteCode"`
	UserID     uint64         `gorm:"not null" json:"userId"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Members  []Member  `gorm:"foreignKey:WorkspaceID" json:"members,omitempty"`
	Projects []Project `gorm:"foreignKey:WorkspaceID" json:"projects,omitempty"`
}
