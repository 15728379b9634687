package notification

import (
	"crypto/rand"
	"encoding/hex"
	"html"
	"net/smtp"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"bookly/config"
	"bookly/utils"
)

// SMTPMailer sends multipart plain+HTML email through the configured SMTP
// relay. It satisfies Mailer and degrades to a no-op when email is
// disabled in config.
type SMTPMailer struct{}

func NewSMTPMailer() *SMTPMailer {
	return &SMTPMailer{}
}

var urlRe = regexp.MustCompile(`(?i)https?://[^\s<]+`)

func (m *SMTPMailer) SendCustomer(to, subject, body string) bool {
	cfg := config.AppConfig
	if !cfg.EmailEnabled || to == "" {
		return false
	}
	if subject == "" {
		subject = cfg.EmailSubject
	}
	return m.deliver(to, subject, appendContactFooter(body))
}

func (m *SMTPMailer) SendAdmin(subject, body string) bool {
	cfg := config.AppConfig
	if !cfg.EmailEnabled || cfg.AdminNotifyEmail == "" {
		return false
	}
	if subject == "" {
		subject = "New booking request"
	}
	return m.deliver(cfg.AdminNotifyEmail, subject, body)
}

func (m *SMTPMailer) deliver(to, subject, plainBody string) bool {
	logger := utils.GetLogger()
	cfg := config.AppConfig
	message := buildMultipartMessage(to, subject, plainBody)
	addr := cfg.SMTPHost + ":" + cfg.SMTPPort
	var auth smtp.Auth
	if cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPHost)
	}
	from := cfg.EmailFrom
	if from == "" {
		from = cfg.SMTPUser
	}
	if err := smtp.SendMail(addr, auth, from, []string{to}, message); err != nil {
		logger.Error("email delivery failed",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err))
		return false
	}
	logger.Info("email sent", zap.String("to", to), zap.String("subject", subject))
	return true
}

// appendContactFooter adds the booking phone line to customer email unless
// the body already mentions it.
func appendContactFooter(body string) string {
	message := strings.TrimSpace(body)
	phone := strings.TrimSpace(config.AppConfig.ContactPhone)
	if phone == "" || strings.Contains(strings.ToLower(message), strings.ToLower(phone)) {
		return message
	}
	return message + "\n\nPhone: " + phone + "\n"
}

func buildMultipartMessage(to, subject, plainBody string) []byte {
	cfg := config.AppConfig
	normalized := strings.ReplaceAll(strings.ReplaceAll(plainBody, "\r\n", "\n"), "\r", "\n")
	htmlBody := buildEmailHTML(subject, normalized)
	boundary := "bookly_" + randomHex(12)

	var msg strings.Builder
	if cfg.EmailFrom != "" {
		msg.WriteString("From: " + cfg.EmailFrom + "\r\n")
	}
	msg.WriteString("To: " + to + "\r\n")
	if cfg.EmailReplyTo != "" {
		msg.WriteString("Reply-To: " + cfg.EmailReplyTo + "\r\n")
	}
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString(`Content-Type: multipart/alternative; boundary="` + boundary + `"` + "\r\n\r\n")

	msg.WriteString("--" + boundary + "\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("Content-Transfer-Encoding: 8bit\r\n\r\n")
	msg.WriteString(normalized + "\r\n\r\n")

	msg.WriteString("--" + boundary + "\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("Content-Transfer-Encoding: 8bit\r\n\r\n")
	msg.WriteString(htmlBody + "\r\n\r\n")

	msg.WriteString("--" + boundary + "--")
	return []byte(msg.String())
}

// linkifyForEmail escapes the plain body and turns bare URLs into anchors
// so the HTML part stays clickable.
func linkifyForEmail(plainText string) string {
	escaped := html.EscapeString(plainText)
	linked := urlRe.ReplaceAllStringFunc(escaped, func(raw string) string {
		return `<a href="` + raw + `" target="_blank" rel="noopener noreferrer" style="color:#e0006d;text-decoration:underline;">` + raw + `</a>`
	})
	return strings.ReplaceAll(linked, "\n", "<br>\n")
}

func buildEmailHTML(subject, plainBody string) string {
	subjectSafe := html.EscapeString(subject)
	bodyHTML := linkifyForEmail(plainBody)
	siteURL := strings.TrimSpace(config.AppConfig.SiteURL)
	year := time.Now().UTC().Format("2006")
	return `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width,initial-scale=1">
    <title>` + subjectSafe + `</title>
  </head>
  <body style="margin:0;padding:0;background:#11050b;font-family:Arial,sans-serif;color:#ffffff;">
    <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background:#11050b;padding:24px 12px;">
      <tr>
        <td align="center">
          <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width:560px;background:#1d0a12;border-radius:12px;padding:24px;">
            <tr>
              <td style="font-size:18px;font-weight:bold;padding-bottom:16px;color:#ff4f9a;">` + subjectSafe + `</td>
            </tr>
            <tr>
              <td style="font-size:14px;line-height:1.6;color:#f4e3ec;">` + bodyHTML + `</td>
            </tr>
            <tr>
              <td style="padding-top:20px;font-size:12px;color:#9b7688;">` +
		footerLine(siteURL, year) + `</td>
            </tr>
          </table>
        </td>
      </tr>
    </table>
  </body>
</html>`
}

func footerLine(siteURL, year string) string {
	if siteURL == "" {
		return "&copy; " + year
	}
	return `<a href="` + siteURL + `" style="color:#9b7688;">` + html.EscapeString(siteURL) + `</a> &middot; &copy; ` + year
}

func randomHex(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return hex.EncodeToString([]byte(time.Now().UTC().Format("150405.000000000")))[:2*n]
	}
	return hex.EncodeToString(buf)
}
