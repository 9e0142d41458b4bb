package models

import "gorm.io/gorm"

type StudyPlanModule struct {
	gorm.Model
	StudyPlanID     uint      `json:"study_plan_id" gorm:"index;not null;uniqueIndex:idx_plan_module"`
	ModulePool      string    `json:"module_pool" gorm:"not null;uniqueIndex:idx_plan_module"`
	PlannedSemester string    `json:"planned_semester" gorm:"not null"`
	Priority        int       `json:"priority" gorm:"default:1"`
	StudyPlan       StudyPlan `json:"-" gorm:"foreignKey:StudyPlanID;constraint:OnDelete:CASCADE"`
	Module          Module    `json:"module,omitempty" gorm:"foreignKey:ModulePool;references:Pool"`
}
