package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendHandoffAlert(displayName, contact, reason string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	operatorTo  string
}

// NewEmailService creates the mailer that alerts the fiscalization desk when
// a conversation needs a human operator.
func NewEmailService(host string, port int, username, password, senderEmail, operatorTo string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		operatorTo:  operatorTo,
	}
}

func (s *emailService) SendHandoffAlert(displayName, contact, reason string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", s.operatorTo)
	m.SetHeader("Subject", "AURORA: cidadão aguardando atendimento humano")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Atendimento humano solicitado</h2>
			<p><strong>Cidadão:</strong> %s</p>
			<p><strong>Contato WhatsApp:</strong> %s</p>
			<p><strong>Motivo:</strong> %s</p>
			<p>Responda pelo WhatsApp institucional o quanto antes.</p>
		</div>
	`, displayName, contact, reason)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send handoff alert for %s: %v\n", contact, err)
		return err
	}

	fmt.Printf("[MAILER] Handoff alert sent for %s\n", contact)
	return nil
}
