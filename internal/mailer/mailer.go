package mailer

import (
	"encoding/json"
	"fmt"
	"net/smtp"
	"os"

	"github.com/SchoolApp/content-service/internal/dto"
	"github.com/SchoolApp/content-service/internal/rabbitmq"
	"go.uber.org/zap"
)

type Mailer struct {
	logger   *zap.Logger
	rabbitmq *rabbitmq.MQConn

	from string
	pass string
	host string
	port string
}

func New(logger *zap.Logger, rabbitmq *rabbitmq.MQConn) *Mailer {
	return &Mailer{
		logger:   logger,
		rabbitmq: rabbitmq,
		from:     os.Getenv("SMTP_FROM"),
		pass:     os.Getenv("SMTP_PASS"),
		host:     os.Getenv("SMTP_HOST"),
		port:     os.Getenv("SMTP_PORT"),
	}
}

func (m *Mailer) StartProcessing() {
	go m.processModerationOutcomeMails()
}

func (m *Mailer) processModerationOutcomeMails() {
	msgs, err := m.rabbitmq.Consume(rabbitmq.MODERATION_OUTCOME_MAIL_QUEUE)
	if err != nil {
		panic(err)
	}

	for msg := range msgs {
		var job dto.MQModerationOutcomeMail
		if err := json.Unmarshal(msg.Body, &job); err != nil {
			msg.Ack(false)
			continue
		}

		outcome := "approved"
		if !job.Approved {
			outcome = "rejected"
		}
		subject := fmt.Sprintf("Your submission was %s", outcome)
		body := fmt.Sprintf("Your submission %q has been %s by the school administration.", job.Title, outcome)

		if err := m.send(job.Email, subject, body); err != nil {
			m.logger.Sugar().Errorf("failed to send outcome mail to %s: %s", job.Email, err.Error())
		}

		msg.Ack(false)
	}
}

func (m *Mailer) send(to, subject, body string) error {
	addr := m.host + ":" + m.port
	auth := smtp.PlainAuth("", m.from, m.pass, m.host)

	message := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", m.from, to, subject, body))
	return smtp.SendMail(addr, auth, m.from, []string{to}, message)
}
