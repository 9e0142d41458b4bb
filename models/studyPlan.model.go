package models

import "gorm.io/gorm"

type StudyPlan struct {
	gorm.Model
	UserID         uint   `json:"user_id" gorm:"index;not null"`
	Name           string `json:"name" gorm:"not null"`
	Description    string `json:"description"`
	TargetSemester string `json:"target_semester"`
	IsActive       bool   `json:"is_active" gorm:"default:true"`
	User           User   `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
