// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

// PasswordResetEmailData holds data for the password reset templates.
type PasswordResetEmailData struct {
	SiteName  string
	Name      string
	Link      string
	ExpiresIn string // e.g., "1 hora"
}

// BuildPasswordResetEmail creates a reset email with both HTML and text bodies.
func BuildPasswordResetEmail(data PasswordResetEmailData) Email {
	return Email{
		To:       "", // Set by caller
		Subject:  fmt.Sprintf("Redefinição de senha - %s", data.SiteName),
		TextBody: buildPasswordResetText(data),
		HTMLBody: buildPasswordResetHTML(data),
	}
}

// FormatExpiry renders d in minutes below an hour and in whole hours above.
func FormatExpiry(d time.Duration) string {
	minutes := int(d.Minutes())
	if minutes < 60 {
		if minutes == 1 {
			return "1 minuto"
		}
		return fmt.Sprintf("%d minutos", minutes)
	}
	hours := minutes / 60
	if hours == 1 {
		return "1 hora"
	}
	return fmt.Sprintf("%d horas", hours)
}

func buildPasswordResetText(data PasswordResetEmailData) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Olá, %s.\n\n", data.Name)
	fmt.Fprintf(&buf, "Recebemos um pedido para redefinir sua senha no %s.\n", data.SiteName)
	buf.WriteString("Abra o link abaixo para escolher uma nova senha:\n")
	buf.WriteString(data.Link + "\n\n")
	fmt.Fprintf(&buf, "O link expira em %s e só pode ser usado uma vez.\n\n", data.ExpiresIn)
	buf.WriteString("Se você não fez esse pedido, ignore este e-mail.\n")
	return buf.String()
}

var passwordResetTmpl = template.Must(template.New("password_reset").Parse(passwordResetHTMLTemplate))

func buildPasswordResetHTML(data PasswordResetEmailData) string {
	var buf bytes.Buffer
	_ = passwordResetTmpl.Execute(&buf, data)
	return buf.String()
}

const passwordResetHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Redefinição de senha</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif; background-color: #f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f3f4f6;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 480px; background-color: #ffffff; border-radius: 8px;">
          <tr>
            <td style="padding: 32px 32px 24px; text-align: center; border-bottom: 1px solid #e5e7eb;">
              <h1 style="margin: 0; font-size: 24px; font-weight: 600; color: #1e3a8a;">{{.SiteName}}</h1>
            </td>
          </tr>
          <tr>
            <td style="padding: 32px;">
              <p style="margin: 0 0 16px; font-size: 16px; color: #374151;">Olá, {{.Name}}.</p>
              <p style="margin: 0 0 24px; font-size: 16px; color: #374151; line-height: 1.5;">
                Recebemos um pedido para redefinir sua senha.
              </p>
              <table role="presentation" width="100%" cellspacing="0" cellpadding="0">
                <tr>
                  <td align="center">
                    <a href="{{.Link}}" style="display: inline-block; padding: 14px 32px; background-color: #1e3a8a; color: #ffffff; text-decoration: none; font-size: 16px; border-radius: 6px;">
                      Redefinir senha
                    </a>
                  </td>
                </tr>
              </table>
              <p style="margin: 24px 0 0; font-size: 13px; color: #9ca3af; text-align: center;">
                O link expira em {{.ExpiresIn}} e só pode ser usado uma vez.
              </p>
            </td>
          </tr>
          <tr>
            <td style="padding: 24px 32px; background-color: #f9fafb; border-top: 1px solid #e5e7eb; border-radius: 0 0 8px 8px;">
              <p style="margin: 0; font-size: 12px; color: #9ca3af; text-align: center;">
                Se você não fez esse pedido, ignore este e-mail.
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`
