// services/mail_service.go
package services

import (
	"bytes"
	"fmt"
	"html/template"
	texttemplate "text/template"
	"time"

	"gopkg.in/gomail.v2"

	"hibiscus/internal/models/db_models"
	"hibiscus/pkg/utils"
)

type IMailService interface {
	SendInquiryNotification(inquiry db_models.Inquiry) error
}

// SMTPConfig holds SMTP + branding config.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	NotifyTo string // agency inbox receiving new inquiries
	AppName  string
}

// mailSender is the part of *gomail.Dialer the service needs.
type mailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

type smtpMailService struct {
	cfg      SMTPConfig
	sender   mailSender
	htmlTpl  *template.Template
	plainTpl *texttemplate.Template
}

func NewSMTPMailService(cfg SMTPConfig) IMailService {
	return newSMTPMailService(cfg, gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password))
}

func newSMTPMailService(cfg SMTPConfig, sender mailSender) *smtpMailService {
	if cfg.AppName == "" {
		cfg.AppName = "Hibiscus Holidays"
	}
	if cfg.From == "" {
		cfg.From = cfg.Username
	}
	return &smtpMailService{
		cfg:      cfg,
		sender:   sender,
		htmlTpl:  template.Must(template.New("inquiryHTML").Parse(inquiryHTMLTemplate)),
		plainTpl: texttemplate.Must(texttemplate.New("inquiryText").Parse(inquiryTextTemplate)),
	}
}

type noopMailService struct{}

// NewNoopMailService is used when no SMTP server is configured.
func NewNoopMailService() IMailService { return noopMailService{} }

func (noopMailService) SendInquiryNotification(db_models.Inquiry) error { return nil }

// ------------------- Public API -------------------

func (s *smtpMailService) SendInquiryNotification(inquiry db_models.Inquiry) error {
	subject := fmt.Sprintf("New inquiry from %s", inquiry.Name)
	if inquiry.TripLocation != "" {
		subject = fmt.Sprintf("%s (%s)", subject, inquiry.TripLocation)
	}

	html, text, err := s.render(inquiryEmailData{
		Title:   subject,
		Inquiry: inquiry,
		Date:    utils.FormatISO(inquiry.Date),
		AppName: s.cfg.AppName,
		Year:    time.Now().Year(),
	})
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.From, s.cfg.FromName)
	m.SetHeader("To", s.cfg.NotifyTo)
	if inquiry.Email != "" {
		m.SetHeader("Reply-To", inquiry.Email)
	}
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", text)
	m.AddAlternative("text/html", html)

	return s.sender.DialAndSend(m)
}

// ------------------- Rendering -------------------

type inquiryEmailData struct {
	Title   string
	Inquiry db_models.Inquiry
	Date    string
	AppName string
	Year    int
}

const inquiryHTMLTemplate = `<!doctype html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <style>
    body { margin: 0; padding: 24px; background: #fdf6f0; font-family: -apple-system, "Segoe UI", Roboto, Arial, sans-serif; color: #1f2937; }
    .container { max-width: 600px; margin: 0 auto; background: #ffffff; border-radius: 12px; overflow: hidden; }
    .header { padding: 20px 28px; background: #e11d48; color: #ffffff; font-weight: 700; letter-spacing: 0.5px; }
    .body { padding: 28px; }
    td { padding: 6px 12px 6px 0; vertical-align: top; }
    .label { color: #6b7280; white-space: nowrap; }
    .message { margin-top: 16px; padding: 16px; background: #f9fafb; border-radius: 8px; white-space: pre-wrap; }
    .footer { padding: 16px 28px; color: #9ca3af; font-size: 12px; text-align: center; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">{{.AppName}}</div>
    <div class="body">
      <h2>{{.Title}}</h2>
      <table>
        <tr><td class="label">Name</td><td>{{.Inquiry.Name}}</td></tr>
        <tr><td class="label">Email</td><td>{{.Inquiry.Email}}</td></tr>
        <tr><td class="label">Phone</td><td>{{.Inquiry.Phone}}</td></tr>
        <tr><td class="label">Destination</td><td>{{.Inquiry.TripLocation}}</td></tr>
        <tr><td class="label">Received</td><td>{{.Date}}</td></tr>
      </table>
      {{if .Inquiry.Message}}<div class="message">{{.Inquiry.Message}}</div>{{end}}
    </div>
    <div class="footer">© {{.Year}} {{.AppName}}</div>
  </div>
</body>
</html>`

const inquiryTextTemplate = `{{.Title}}

Name:        {{.Inquiry.Name}}
Email:       {{.Inquiry.Email}}
Phone:       {{.Inquiry.Phone}}
Destination: {{.Inquiry.TripLocation}}
Received:    {{.Date}}

{{.Inquiry.Message}}

-- {{.AppName}} (c) {{.Year}}
`

func (s *smtpMailService) render(data inquiryEmailData) (html string, text string, err error) {
	var hb, tb bytes.Buffer

	if err = s.htmlTpl.Execute(&hb, data); err != nil {
		return "", "", err
	}
	if err = s.plainTpl.Execute(&tb, data); err != nil {
		return "", "", err
	}
	return hb.String(), tb.String(), nil
}
