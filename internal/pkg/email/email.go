package email

import (
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"github.com/abp012/BonVoYage-The-Exclusive-Trip-Planner-and-Partner-sub001/config"
)

type Service struct {
	cfg *config.EmailConfig
}

func NewService(cfg *config.EmailConfig) *Service {
	return &Service{cfg: cfg}
}

// SendWelcome greets a newly created account.
func (s *Service) SendWelcome(to, name string) error {
	if name == "" {
		name = "traveler"
	}
	subject := "Welcome to BonVoyage"
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #0d9488;">Welcome aboard!</h2>
        <p>Hi %s,</p>
        <p>Thanks for joining BonVoyage. We added <strong>2 free trip credits</strong> to your account so you can start planning right away.</p>
        <ul>
            <li>Describe a destination and we build your day-by-day itinerary</li>
            <li>Earn reward points by rating your trips</li>
            <li>Go Premium for unlimited trip plans</li>
        </ul>
        <p>Bon voyage!</p>
        <hr style="border: none; border-top: 1px solid #e5e7eb; margin: 20px 0;">
        <p style="color: #6b7280; font-size: 12px;">This email was sent automatically, please do not reply.</p>
    </div>
</body>
</html>
`, name)

	return s.sendHTML(to, subject, body)
}

// SendTripConfirmation delivers the generated itinerary summary.
func (s *Service) SendTripConfirmation(to, name, destination string, durationDays int) error {
	if name == "" {
		name = "traveler"
	}
	subject := fmt.Sprintf("Your %s itinerary is ready - BonVoyage", destination)
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #0d9488;">Your trip is ready!</h2>
        <p>Hi %s,</p>
        <p>Your <strong>%d-day</strong> itinerary for <strong>%s</strong> has been generated. Open the app to see the full day-by-day plan.</p>
        <p>Have a wonderful trip!</p>
        <hr style="border: none; border-top: 1px solid #e5e7eb; margin: 20px 0;">
        <p style="color: #6b7280; font-size: 12px;">This email was sent automatically, please do not reply.</p>
    </div>
</body>
</html>
`, name, durationDays, destination)

	return s.sendHTML(to, subject, body)
}

// SendPremiumActivated confirms a subscription purchase.
func (s *Service) SendPremiumActivated(to, name, planName string, expiresAt time.Time) error {
	if name == "" {
		name = "traveler"
	}
	subject := "Premium activated - BonVoyage"
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #0d9488;">Premium activated</h2>
        <p>Hi %s,</p>
        <p>Your <strong>%s</strong> subscription is now active. Enjoy unlimited trip plans until <strong>%s</strong>.</p>
        <hr style="border: none; border-top: 1px solid #e5e7eb; margin: 20px 0;">
        <p style="color: #6b7280; font-size: 12px;">This email was sent automatically, please do not reply.</p>
    </div>
</body>
</html>
`, name, planName, expiresAt.Format("January 2, 2006"))

	return s.sendHTML(to, subject, body)
}

func (s *Service) sendHTML(to, subject, body string) error {
	headers := make(map[string]string)
	headers["From"] = s.cfg.From
	headers["To"] = to
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"

	var msg strings.Builder
	for k, v := range headers {
		msg.WriteString(fmt.Sprintf("%s: %s\r\n", k, v))
	}
	msg.WriteString("\r\n")
	msg.WriteString(body)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.SMTPHost)
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)

	return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg.String()))
}
