package utils

import (
	"eduvillage/config"
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers an HTML email. When a SendGrid API key is configured it
// goes through SendGrid, otherwise plain SMTP.
func SendEmail(to []string, subject string, htmlBody string) error {
	if config.AppConfig.SendgridApiKey != "" {
		return sendViaSendgrid(to, subject, htmlBody)
	}
	return sendViaSMTP(to, subject, htmlBody)
}

func sendViaSendgrid(to []string, subject string, htmlBody string) error {
	from := sgmail.NewEmail(config.AppConfig.AppName, config.AppConfig.EmailSender)

	for _, recipient := range to {
		message := sgmail.NewSingleEmail(from, subject, sgmail.NewEmail("", recipient), "", htmlBody)
		client := sendgrid.NewSendClient(config.AppConfig.SendgridApiKey)
		resp, err := client.Send(message)
		if err != nil {
			log.Printf("Error sending email via SendGrid: %v", err)
			return err
		}
		if resp.StatusCode >= 300 {
			log.Printf("SendGrid rejected email: %d %s", resp.StatusCode, resp.Body)
			return fmt.Errorf("sendgrid rejected email: %d", resp.StatusCode)
		}
	}
	return nil
}

func sendViaSMTP(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: %s <%s>\r\n", config.AppConfig.AppName, from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		log.Printf("Error sending email: %v", err)
		return err
	}
	return nil
}

// HTML wrapper shared by all triggers
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #142C52; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #142C52; line-height: 1.6; }
			.content h2 { color: #142C52; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #1B9AAA; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>EDUVILLAGE</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 EduVillage. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// SendWelcomeEmail greets a newly registered account.
func SendWelcomeEmail(email, name string) {
	subject := "Welcome to EduVillage"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Welcome to <strong>EduVillage</strong>! Your account has been created.</p>
		<p>You can now browse the course catalogue and start learning.</p>
	`, name)

	go SendEmail([]string{email}, subject, getEmailTemplate("Welcome Onboard!", body))
}

// SendTeacherApprovedEmail notifies a teacher their account was approved.
func SendTeacherApprovedEmail(email, name string) {
	subject := "Your teacher account has been approved"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your teacher account on <strong>EduVillage</strong> has been approved by an administrator.</p>
		<p>You can now create courses and upload content.</p>
		<div class="info-box">
			<strong>Next Steps:</strong> Sign in and open your teacher dashboard to create your first course.
		</div>
	`, name)

	SendEmail([]string{email}, subject, getEmailTemplate("Account Approved", body))
}

// SendTeacherRejectedEmail notifies a teacher their application was rejected.
func SendTeacherRejectedEmail(email, name string) {
	subject := "Update on your teacher application"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>We are sorry to inform you that your teacher application on <strong>EduVillage</strong> was not approved.</p>
		<p>If you believe this is a mistake, please contact support.</p>
	`, name)

	SendEmail([]string{email}, subject, getEmailTemplate("Application Update", body))
}
