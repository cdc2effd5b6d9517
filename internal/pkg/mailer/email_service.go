package mailer

import (
	"fmt"
	"strings"

	"birthplan-agent-be/pkg/plan"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendPlanExport(toEmail string, doc *plan.ExportDocument) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

func (s *emailService) SendPlanExport(toEmail string, doc *plan.ExportDocument) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Jouw geboorteplan")

	m.SetBody("text/html", renderPlanBody(doc))

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send plan export to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Plan export sent to %s\n", toEmail)
	return nil
}

func renderPlanBody(doc *plan.ExportDocument) string {
	var b strings.Builder
	b.WriteString(`<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">`)
	b.WriteString(`<h2>Jouw geboorteplan</h2>`)
	b.WriteString(`<p>Hieronder vind je de wensen die je samen met de digitale verloskundige hebt vastgelegd.</p>`)

	for _, theme := range doc.Themes {
		b.WriteString(fmt.Sprintf(`<h3 style="color: #4CAF50;">%s</h3>`, theme.Name))
		if theme.Description != "" {
			b.WriteString(fmt.Sprintf(`<p><em>%s</em></p>`, theme.Description))
		}
		if len(theme.Topics) > 0 {
			b.WriteString(fmt.Sprintf(`<p>Onderwerpen: %s</p>`, strings.Join(theme.Topics, ", ")))
		}
		for _, qa := range theme.QA {
			b.WriteString(fmt.Sprintf(`<p><strong>%s</strong><br>%s</p>`, qa.Question, qa.Answer))
		}
	}

	b.WriteString(fmt.Sprintf(`<p style="color: #999;">Geëxporteerd op %s</p>`, doc.ExportedAt.Format("02-01-2006 15:04")))
	b.WriteString(`</div>`)
	return b.String()
}
