package services

import (
	"bytes"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"net/url"
	"strings"
	"time"
)

type IMailService interface {
	// SendPasswordSetupMail delivers the 6-digit one-time code an invited
	// dentist needs to create their password. Best-effort; callers decide
	// whether a failure is fatal.
	SendPasswordSetupMail(to, name, otp string) error
	SendPasswordResetMail(to, token string) error
	SendNotifyMail(to, subject, body string) error
}

// SMTPConfig holds SMTP + branding config.
type SMTPConfig struct {
	Host       string // e.g. "smtp.gmail.com"
	Port       int    // 587 (STARTTLS) or 465 (SMTPS)
	Username   string
	Password   string
	From       string
	FromName   string
	UseSSL     bool // true for SMTPS 465, false for STARTTLS 587
	RequireTLS bool // fail if STARTTLS not offered

	AppName    string
	AppBaseURL string
}

type smtpMailService struct {
	cfg     SMTPConfig
	htmlTpl *template.Template
	textTpl *template.Template
}

func NewSMTPMailService(cfg SMTPConfig) (IMailService, error) {
	return &smtpMailService{
		cfg:     cfg,
		htmlTpl: template.Must(template.New("html").Parse(baseHTMLTemplate)),
		textTpl: template.Must(template.New("text").Parse(plainTextTemplate)),
	}, nil
}

type emailData struct {
	Title   string
	Intro   string
	Code    string
	LinkURL string
	LinkTxt string
	Outro   string
	AppName string
	Year    int
}

const baseHTMLTemplate = `<!doctype html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
</head>
<body style="margin:0;padding:24px;background:#f4f7fa;font-family:Helvetica,Arial,sans-serif;color:#1f2933;">
  <div style="max-width:560px;margin:0 auto;background:#ffffff;border-radius:8px;padding:32px;border:1px solid #e1e8ef;">
    <div style="font-size:20px;font-weight:bold;color:#0b7285;margin-bottom:16px;">{{.AppName}}</div>
    <h1 style="font-size:22px;margin:0 0 12px;">{{.Title}}</h1>
    <p style="line-height:1.6;margin:0 0 16px;">{{.Intro}}</p>
    {{if .Code}}
    <div style="font-size:32px;letter-spacing:8px;font-weight:bold;text-align:center;background:#f0f6f8;border-radius:6px;padding:16px;margin:16px 0;">{{.Code}}</div>
    {{end}}
    {{if .LinkURL}}
    <p style="margin:16px 0;"><a href="{{.LinkURL}}" style="background:#0b7285;color:#ffffff;text-decoration:none;padding:12px 24px;border-radius:6px;display:inline-block;">{{.LinkTxt}}</a></p>
    <p style="font-size:12px;color:#667;word-break:break-all;">If the button does not work, open: {{.LinkURL}}</p>
    {{end}}
    {{if .Outro}}<p style="line-height:1.6;color:#52606d;">{{.Outro}}</p>{{end}}
    <p style="font-size:12px;color:#9aa5b1;border-top:1px solid #e1e8ef;padding-top:16px;margin-top:24px;">© {{.Year}} {{.AppName}}. All rights reserved.</p>
  </div>
</body>
</html>`

const plainTextTemplate = `{{.Title}}

{{.Intro}}
{{if .Code}}
Your code: {{.Code}}
{{end}}{{if .LinkURL}}
Open this link:
{{.LinkURL}}
{{end}}{{if .Outro}}
{{.Outro}}
{{end}}
— {{.AppName}} (c) {{.Year}}
`

func (s *smtpMailService) SendPasswordSetupMail(to, name, otp string) error {
	subject := "Your password setup code"
	return s.sendRendered(to, subject, emailData{
		Title:   subject,
		Intro:   fmt.Sprintf("Hi %s, an account has been created for you. Use the code below to set your password.", name),
		Code:    otp,
		Outro:   "The code is valid for 24 hours. If you were not expecting this email, contact the clinic administrator.",
		AppName: s.cfg.AppName,
		Year:    time.Now().Year(),
	})
}

func (s *smtpMailService) SendPasswordResetMail(to, token string) error {
	link := fmt.Sprintf("%s/reset-password?token=%s", strings.TrimRight(s.cfg.AppBaseURL, "/"), url.QueryEscape(token))
	subject := "Reset your password"
	return s.sendRendered(to, subject, emailData{
		Title:   subject,
		Intro:   "We received a request to reset your password. Click the button below to continue. If you did not request this, you can safely ignore this email.",
		LinkURL: link,
		LinkTxt: "Reset Password",
		AppName: s.cfg.AppName,
		Year:    time.Now().Year(),
	})
}

func (s *smtpMailService) SendNotifyMail(to, subject, body string) error {
	return s.sendRendered(to, subject, emailData{
		Title:   subject,
		Intro:   body,
		AppName: s.cfg.AppName,
		Year:    time.Now().Year(),
	})
}

func (s *smtpMailService) sendRendered(to, subject string, data emailData) error {
	var hb, tb bytes.Buffer
	if err := s.htmlTpl.Execute(&hb, data); err != nil {
		return err
	}
	if err := s.textTpl.Execute(&tb, data); err != nil {
		return err
	}
	return s.send(to, subject, hb.String(), tb.String())
}

func (s *smtpMailService) send(to, subject, htmlBody, textBody string) error {
	fromHeader := s.formatFromHeader()
	date := time.Now().Format(time.RFC1123Z)
	boundary := fmt.Sprintf("mixed_%d", time.Now().UnixNano())

	var msg bytes.Buffer
	write := func(format string, a ...any) { _, _ = msg.WriteString(fmt.Sprintf(format, a...)) }

	write("From: %s\r\n", fromHeader)
	write("To: %s\r\n", to)
	write("Subject: %s\r\n", subject)
	write("Date: %s\r\n", date)
	write("MIME-Version: 1.0\r\n")
	write("Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	write("\r\n")

	write("--%s\r\n", boundary)
	write("Content-Type: text/plain; charset=UTF-8\r\n")
	write("Content-Transfer-Encoding: 7bit\r\n\r\n")
	write("%s\r\n\r\n", textBody)

	write("--%s\r\n", boundary)
	write("Content-Type: text/html; charset=UTF-8\r\n")
	write("Content-Transfer-Encoding: 7bit\r\n\r\n")
	write("%s\r\n\r\n", htmlBody)

	write("--%s--\r\n", boundary)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	if s.cfg.UseSSL {
		// SMTPS (implicit TLS, usually port 465)
		tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}
		conn, err := tls.DialWithDialer(&net.Dialer{Timeout: 10 * time.Second}, "tcp", addr, tlsCfg)
		if err != nil {
			return err
		}
		defer conn.Close()

		c, err := smtp.NewClient(conn, s.cfg.Host)
		if err != nil {
			return err
		}
		defer c.Quit()

		return s.transmit(c, to, msg.Bytes(), auth)
	}

	// STARTTLS path (typically port 587). The dial timeout keeps a slow
	// provider from hanging the request that triggered the send.
	dialer := &net.Dialer{Timeout: 10 * time.Second}
	conn, err := dialer.Dial("tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return err
	}
	defer c.Quit()

	if ok, _ := c.Extension("STARTTLS"); ok {
		tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}
		if err = c.StartTLS(tlsCfg); err != nil {
			return err
		}
	} else if s.cfg.RequireTLS {
		return fmt.Errorf("server does not support STARTTLS and RequireTLS=true")
	}

	return s.transmit(c, to, msg.Bytes(), auth)
}

func (s *smtpMailService) transmit(c *smtp.Client, to string, msg []byte, auth smtp.Auth) error {
	if err := c.Auth(auth); err != nil {
		return err
	}
	if err := c.Mail(s.cfg.From); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err = w.Write(msg); err != nil {
		return err
	}
	return w.Close()
}

func (s *smtpMailService) formatFromHeader() string {
	name := strings.TrimSpace(s.cfg.FromName)
	if name == "" {
		return s.cfg.From
	}
	return fmt.Sprintf("%s <%s>", mimeQuote(name), s.cfg.From)
}

// RFC 2047 encoded word for non-ASCII display names.
func mimeQuote(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] > 127 {
			return fmt.Sprintf("=?UTF-8?B?%s?=", base64.StdEncoding.EncodeToString([]byte(s)))
		}
	}
	return s
}
