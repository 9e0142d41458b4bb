package models

import "gorm.io/gorm"

// LoginTracking records each successful login for the account history view.
type LoginTracking struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"index;not null"`
	IP        string `json:"ip"`
	UserAgent string `json:"user_agent"`
	User      User   `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
