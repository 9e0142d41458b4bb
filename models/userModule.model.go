package models

import (
	"time"

	"gorm.io/gorm"
)

// ModuleStatus is the lifecycle state of a user's module enrollment.
type ModuleStatus string

const (
	StatusPlanned    ModuleStatus = "PLANNED"
	StatusInProgress ModuleStatus = "IN_PROGRESS"
	StatusCompleted  ModuleStatus = "COMPLETED"
	StatusFailed     ModuleStatus = "FAILED"
	StatusCancelled  ModuleStatus = "CANCELLED"
)

// IsValid reports whether s is one of the known enrollment statuses.
func (s ModuleStatus) IsValid() bool {
	switch s {
	case StatusPlanned, StatusInProgress, StatusCompleted, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// UserModule is a user's enrollment record for one module. Only COMPLETED
// rows count towards prerequisite fulfillment. CompletedAt is set exactly
// when the status transitions to COMPLETED and cleared on any other status.
type UserModule struct {
	gorm.Model
	UserID      uint         `json:"user_id" gorm:"index;not null;uniqueIndex:idx_user_module"`
	ModulePool  string       `json:"module_pool" gorm:"not null;uniqueIndex:idx_user_module"`
	Status      ModuleStatus `json:"status" gorm:"default:'PLANNED'"`
	Grade       *float64     `json:"grade"` // 1.0 (best) to 5.0, meaningful when COMPLETED
	Semester    string       `json:"semester"`
	Notes       string       `json:"notes"`
	CompletedAt *time.Time   `json:"completed_at"`
	User        User         `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Module      Module       `json:"module,omitempty" gorm:"foreignKey:ModulePool;references:Pool"`
}
