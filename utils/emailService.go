package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"studyplanner/config"
)

// SendEmail sends a plain text email using SMTP.
func SendEmail(to, subject, body string) error {
	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	message := []byte("From: " + from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" +
		body + "\r\n")

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, []string{to}, message)
	if err != nil {
		log.Printf("Failed to send email to %s: %v", to, err)
		return err
	}

	log.Printf("Email sent successfully to %s", to)
	return nil
}

// SendWelcomeEmail sends a welcome email to newly registered users.
func SendWelcomeEmail(to, name string) {
	subject := "Welcome to StudyPlanner!"
	body := fmt.Sprintf(
		"Hello %s,\n\n"+
			"Welcome to StudyPlanner! Your account has been created successfully.\n\n"+
			"You can now browse the module catalog, track your enrollments and build your study plans.\n\n"+
			"Best regards,\n"+
			"The StudyPlanner Team",
		name,
	)

	if err := SendEmail(to, subject, body); err != nil {
		log.Printf("Error sending welcome email: %v", err)
	}
}

// SendEnrollmentEmail confirms a new module enrollment.
func SendEnrollmentEmail(to, name, moduleName string) {
	subject := "Enrollment Confirmation"
	body := fmt.Sprintf(
		"Hello %s,\n\n"+
			"You have been enrolled in the module \"%s\".\n\n"+
			"You can track your progress and update your status at any time in your dashboard.\n\n"+
			"Best regards,\n"+
			"The StudyPlanner Team",
		name,
		moduleName,
	)

	if err := SendEmail(to, subject, body); err != nil {
		log.Printf("Error sending enrollment email: %v", err)
	}
}

// SendSemesterReminderEmail reminds a user about modules still planned for
// the upcoming semester.
func SendSemesterReminderEmail(to, name string, plannedModules []string) {
	subject := "Semester Planning Reminder"

	moduleList := ""
	for _, m := range plannedModules {
		moduleList += "  - " + m + "\n"
	}

	body := fmt.Sprintf(
		"Hello %s,\n\n"+
			"The next semester is approaching. You still have the following modules marked as planned:\n\n"+
			"%s\n"+
			"Log in to review your study plan and confirm your enrollments.\n\n"+
			"Best regards,\n"+
			"The StudyPlanner Team",
		name,
		moduleList,
	)

	if err := SendEmail(to, subject, body); err != nil {
		log.Printf("Error sending semester reminder email: %v", err)
	}
}
