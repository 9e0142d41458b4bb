package utils

import (
	"log"
	"studyplanner/database"
	"studyplanner/models"
	"time"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
)

const reminderWindowDays = 30

// InitializeSemesterScheduler starts the daily job that reminds users about
// planned modules shortly before the next semester begins.
func InitializeSemesterScheduler() {
	c := cron.New()

	_, err := c.AddFunc("0 8 * * *", sendSemesterReminders)
	if err != nil {
		log.Printf("Failed to schedule semester reminder job: %v", err)
		return
	}

	c.Start()
	log.Println("Semester reminder scheduler started")
}

// nextSemesterStart returns the start of the upcoming semester. Semesters
// begin on April 1st (summer) and October 1st (winter).
func nextSemesterStart(from time.Time) time.Time {
	year := from.Year()
	summer := now.With(time.Date(year, time.April, 1, 0, 0, 0, 0, from.Location())).BeginningOfDay()
	winter := now.With(time.Date(year, time.October, 1, 0, 0, 0, 0, from.Location())).BeginningOfDay()

	if from.Before(summer) {
		return summer
	}
	if from.Before(winter) {
		return winter
	}
	return summer.AddDate(1, 0, 0)
}

func sendSemesterReminders() {
	today := now.BeginningOfDay()
	semesterStart := nextSemesterStart(today)

	daysUntil := int(semesterStart.Sub(today).Hours() / 24)
	if daysUntil > reminderWindowDays {
		return
	}

	log.Printf("Running semester reminders, %d day(s) until semester start", daysUntil)

	var users []models.User
	if err := database.Database.Db.Where("is_deleted = ?", false).Find(&users).Error; err != nil {
		log.Printf("Failed to fetch users for semester reminders: %v", err)
		return
	}

	for _, user := range users {
		var enrollments []models.UserModule
		err := database.Database.Db.
			Where("user_id = ? AND status = ?", user.ID, models.StatusPlanned).
			Preload("Module").
			Find(&enrollments).Error
		if err != nil {
			log.Printf("Failed to fetch planned modules for user %d: %v", user.ID, err)
			continue
		}
		if len(enrollments) == 0 {
			continue
		}

		moduleNames := make([]string, 0, len(enrollments))
		for _, enrollment := range enrollments {
			moduleNames = append(moduleNames, enrollment.Module.Name)
		}

		go SendSemesterReminderEmail(user.Email, user.Name, moduleNames)
	}
}
