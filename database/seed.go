package database

import (
	"log"
	"studyplanner/models"

	"gorm.io/gorm"
)

// SeedModuleCatalog loads the initial module catalog and prerequisite graph.
// It is a no-op when the modules table already has rows.
func SeedModuleCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Module{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Module catalog already seeded, skipping")
		return nil
	}

	modules := []models.Module{
		{Pool: "Orientierungsphase", Code: "GEN1001", Name: "Orientierungsphase", Credits: 15, Category: "GEN"},
		{Pool: "IT Vertiefung", Code: "INF2105", Name: "IT Vertiefung", Credits: 9, Category: "INF"},
		{Pool: "Webbasierte Programmierung 1", Code: "INF1011", Name: "Webbasierte Programmierung 1", Credits: 6, Category: "INF"},
		{Pool: "Webbasierte Programmierung 2", Code: "INF1012", Name: "Webbasierte Programmierung 2", Credits: 6, Category: "INF"},
		{Pool: "Theoretische Informatik 1", Code: "INF1021", Name: "Theoretische Informatik 1", Credits: 6, Category: "INF"},
		{Pool: "Theoretische Informatik 2", Code: "INF1022", Name: "Theoretische Informatik 2", Credits: 6, Category: "INF"},
		{Pool: "Mathematik 1", Code: "MAT1001", Name: "Mathematik 1", Credits: 9, Category: "MAT"},
		{Pool: "Mathematik 2", Code: "MAT1002", Name: "Mathematik 2", Credits: 9, Category: "MAT"},
		{Pool: "Software Engineering Konzepte", Code: "INF1031", Name: "Software Engineering Konzepte", Credits: 6, Category: "INF"},
		{Pool: "Software Engineering Realisierung", Code: "INF1032", Name: "Software Engineering Realisierung", Credits: 6, Category: "INF"},
		{Pool: "Datenbanksysteme", Code: "INF1041", Name: "Datenbanksysteme", Credits: 6, Category: "INF"},
		{Pool: "Machine Learning", Code: "INF2201", Name: "Machine Learning", Credits: 6, Category: "INF"},
		{Pool: "Statistik und Datenanalyse", Code: "MAT2101", Name: "Statistik und Datenanalyse", Credits: 6, Category: "MAT"},
		{Pool: "Grundlagen der Data Science", Code: "INF2101", Name: "Grundlagen der Data Science", Credits: 6, Category: "INF"},
		{Pool: "Big Data", Code: "INF2202", Name: "Big Data", Credits: 6, Category: "INF"},
		{Pool: "Webtechnologien", Code: "INF2102", Name: "Webtechnologien", Credits: 6, Category: "INF"},
		{Pool: "Zeitmanagement", Code: "GS1001", Name: "Zeitmanagement", Credits: 3, Category: "GS"},
		{Pool: "Industrie 4.0", Code: "II2001", Name: "Industrie 4.0", Credits: 6, Category: "II"},
		{Pool: "Physikalische Grundlagen", Code: "NAT1001", Name: "Physikalische Grundlagen", Credits: 6, Category: "NAT"},
		{Pool: "Digitale Medien und Kommunikation 1", Code: "MK1001", Name: "Digitale Medien und Kommunikation 1", Credits: 6, Category: "MK"},
		{Pool: "Digitale Medien und Kommunikation 2", Code: "MK1002", Name: "Digitale Medien und Kommunikation 2", Credits: 6, Category: "MK"},
		{Pool: "Grundlagen des Marketing", Code: "MAN1001", Name: "Grundlagen des Marketing", Credits: 6, Category: "MAN"},
	}

	if err := db.Create(&modules).Error; err != nil {
		return err
	}

	prerequisites := []models.ModulePrerequisite{
		{ModulePool: "Webbasierte Programmierung 2", PrerequisitePool: "Webbasierte Programmierung 1", IsRequired: true, Description: "Builds directly on the first web programming course"},
		{ModulePool: "Theoretische Informatik 2", PrerequisitePool: "Theoretische Informatik 1", IsRequired: true, Description: "Continues automata theory and computability"},
		{ModulePool: "Mathematik 2", PrerequisitePool: "Mathematik 1", IsRequired: true, Description: "Requires calculus and linear algebra basics"},
		{ModulePool: "Software Engineering Realisierung", PrerequisitePool: "Software Engineering Konzepte", IsRequired: true, Description: "Implements the concepts from the first course"},
		{ModulePool: "Machine Learning", PrerequisitePool: "Statistik und Datenanalyse", IsRequired: true, Description: "Statistical foundations are essential"},
		{ModulePool: "Machine Learning", PrerequisitePool: "Grundlagen der Data Science", IsRequired: false, Description: "Data handling experience is helpful"},
		{ModulePool: "Grundlagen der Data Science", PrerequisitePool: "Mathematik 1", IsRequired: false, Description: "Mathematical maturity recommended"},
		{ModulePool: "Big Data", PrerequisitePool: "Datenbanksysteme", IsRequired: true, Description: "Relational database knowledge required"},
		{ModulePool: "Digitale Medien und Kommunikation 2", PrerequisitePool: "Digitale Medien und Kommunikation 1", IsRequired: true, Description: "Continuation of the media course"},
		{ModulePool: "IT Vertiefung", PrerequisitePool: "Orientierungsphase", IsRequired: false, Description: "Orientation phase recommended before specialization"},
		{ModulePool: "Webtechnologien", PrerequisitePool: "Webbasierte Programmierung 2", IsRequired: false, Description: "Frontend experience recommended"},
	}

	if err := db.Create(&prerequisites).Error; err != nil {
		return err
	}

	log.Printf("Seeded module catalog with %d modules and %d prerequisites", len(modules), len(prerequisites))
	return nil
}
