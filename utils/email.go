package utils

import (
	"log"
	"os"

	"gopkg.in/gomail.v2"
)

// SendNotificationEmail delivers a notification to the user's email address.
func SendNotificationEmail(email, subject, message string) {
	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_SENDER"))
	m.SetHeader("To", email)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", message)

	d := gomail.NewDialer(
		os.Getenv("SMTP_HOST"),
		465,
		os.Getenv("SMTP_USER"),
		os.Getenv("SMTP_PASS"),
	)

	if err := d.DialAndSend(m); err != nil {
		log.Printf("Failed to send email to %s: %v", email, err)
		return
	}

	log.Printf("Email successfully sent to %s", email)
}
