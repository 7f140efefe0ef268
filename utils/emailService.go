package utils

import (
	"fmt"
	"net/smtp"
	"strings"

	"lms/config"
)

// SendEmail sends an HTML email through the configured SMTP account
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Learnly <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

// getEmailTemplate wraps body content in the shared layout
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1E1B4B; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1E1B4B; line-height: 1.6; }
			.footer { padding: 20px; text-align: center; color: #94A3B8; font-size: 12px; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>%s</h1></div>
			<div class="content">%s</div>
			<div class="footer">Learnly · Keep learning</div>
		</div>
	</body>
	</html>`, title, bodyContent)
}

func SendWelcomeEmail(name, email string) error {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Welcome to Learnly! Your account is ready. Browse the catalog and start your first course today.</p>`, name)

	return SendEmail([]string{email}, "Welcome to Learnly", getEmailTemplate("Welcome to Learnly", body))
}

func SendEnrollmentEmail(name, courseTitle, email string) error {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>You are now enrolled in <strong>%s</strong>. Your progress is tracked automatically as you watch.</p>`, name, courseTitle)

	return SendEmail([]string{email}, "Enrollment confirmed: "+courseTitle, getEmailTemplate("Enrollment Confirmed", body))
}

func SendOrderEmail(name, orderRef string, total float64, email string) error {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Thanks for your purchase! Your order <strong>%s</strong> for a total of $%.2f is confirmed and your courses are ready in your dashboard.</p>`, name, orderRef, total)

	return SendEmail([]string{email}, "Order confirmation "+orderRef, getEmailTemplate("Order Confirmed", body))
}
