package models

import "gorm.io/gorm"

// ModulePrerequisite is a directed edge: ModulePool requires PrerequisitePool.
// Required edges gate enrollment, optional edges only warn. Nothing stops
// catalog data from containing self-references or cycles; the chain resolver
// truncates those instead of failing.
type ModulePrerequisite struct {
	gorm.Model
	ModulePool       string `json:"module_pool" gorm:"index;not null"`
	PrerequisitePool string `json:"prerequisite_pool" gorm:"index;not null"`
	IsRequired       bool   `json:"is_required" gorm:"not null"`
	Description      string `json:"description"`
}
