package resend

import "fmt"

// Email HTML uses inline CSS throughout for email-client compatibility.

func wrapInLayout(content string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <title>SkateApp</title>
</head>
<body style="margin: 0; padding: 0; background-color: #f8fafc; font-family: 'Inter', 'Segoe UI', Arial, sans-serif;">
  <table role="presentation" width="100%%" cellspacing="0" cellpadding="0" style="background-color: #f8fafc;">
    <tr>
      <td align="center" style="padding: 40px 16px;">
        <table role="presentation" width="600" cellspacing="0" cellpadding="0" style="max-width: 600px; width: 100%%;">
          %s
          <tr>
            <td style="background: #f1f5f9; padding: 24px 32px; text-align: center; border-radius: 0 0 12px 12px; border: 1px solid #e2e8f0; border-top: none;">
              <p style="color: #94a3b8; font-size: 12px; margin: 0;">SkateApp — Drop-in Hockey Manager</p>
              <p style="color: #94a3b8; font-size: 11px; margin: 8px 0 0;">You received this email because you're on the SkateApp roster.</p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`, content)
}

func headerBlock(title, subtitle string) string {
	return fmt.Sprintf(`
  <tr>
    <td style="background: linear-gradient(135deg, #0f172a 0%%, #1e3a5f 100%%); padding: 40px 32px; text-align: center; border-radius: 12px 12px 0 0;">
      <h1 style="color: #ffffff; margin: 0; font-size: 26px; font-weight: 700;">%s</h1>
      <p style="color: #cbd5e1; margin: 12px 0 0; font-size: 14px;">%s</p>
    </td>
  </tr>`, title, subtitle)
}

// BuildRegistrationEmail renders the confirmation sent when a new player
// signs up.
func BuildRegistrationEmail(name, position, role string) string {
	content := headerBlock("🏒 Welcome to SkateApp!", "You've been added to the roster") + fmt.Sprintf(`
  <tr>
    <td style="background: #ffffff; padding: 32px; border-left: 1px solid #e2e8f0; border-right: 1px solid #e2e8f0;">
      <p style="color: #334155; font-size: 16px; margin: 0 0 16px; line-height: 1.6;">
        Hey <strong>%s</strong>,
      </p>
      <p style="color: #475569; font-size: 15px; margin: 0 0 24px; line-height: 1.6;">
        You've been successfully added to the roster! Here are your details:
      </p>
      <table role="presentation" width="100%%" cellspacing="0" cellpadding="0">
        <tr>
          <td style="background: #f1f5f9; padding: 20px 24px; border-radius: 8px; border: 1px solid #e2e8f0;">
            <p style="color: #334155; font-size: 14px; margin: 0 0 8px;"><strong>Position:</strong> %s</p>
            <p style="color: #334155; font-size: 14px; margin: 0;"><strong>Role:</strong> %s</p>
          </td>
        </tr>
      </table>
      <p style="color: #475569; font-size: 15px; margin: 24px 0 0; line-height: 1.6;">
        Keep an eye on your inbox — weekly session invites land here. See you on the ice!
      </p>
    </td>
  </tr>`, name, position, role)
	return wrapInLayout(content)
}

// BuildAnnouncementEmail renders one recipient's personalized weekly invite,
// with accept/decline deep links back into the RSVP page.
func BuildAnnouncementEmail(name, sessionDate, sessionTime, location string, maxPlayers int, inviteMessage, acceptURL, declineURL string) string {
	message := ""
	if inviteMessage != "" {
		message = fmt.Sprintf(`
      <p style="color: #475569; font-size: 15px; margin: 0 0 24px; line-height: 1.6;">%s</p>`, inviteMessage)
	}

	content := headerBlock("🏒 Sk8 This Week", sessionDate) + fmt.Sprintf(`
  <tr>
    <td style="background: #ffffff; padding: 32px; border-left: 1px solid #e2e8f0; border-right: 1px solid #e2e8f0;">
      <p style="color: #334155; font-size: 16px; margin: 0 0 16px; line-height: 1.6;">
        Hey <strong>%s</strong>,
      </p>%s
      <table role="presentation" width="100%%" cellspacing="0" cellpadding="0">
        <tr>
          <td style="background: #f1f5f9; padding: 20px 24px; border-radius: 8px; border: 1px solid #e2e8f0;">
            <p style="color: #334155; font-size: 14px; margin: 0 0 8px;"><strong>When:</strong> %s at %s</p>
            <p style="color: #334155; font-size: 14px; margin: 0 0 8px;"><strong>Where:</strong> %s</p>
            <p style="color: #334155; font-size: 14px; margin: 0;"><strong>Spots:</strong> %d skaters</p>
          </td>
        </tr>
      </table>
      <table role="presentation" width="100%%" cellspacing="0" cellpadding="0" style="margin-top: 28px;">
        <tr>
          <td align="center">
            <a href="%s" style="display: inline-block; background-color: #16a34a; color: #ffffff; font-size: 15px; font-weight: 600; padding: 14px 36px; text-decoration: none; border-radius: 8px; margin: 0 6px;">I'm In ✅</a>
            <a href="%s" style="display: inline-block; background-color: #dc2626; color: #ffffff; font-size: 15px; font-weight: 600; padding: 14px 36px; text-decoration: none; border-radius: 8px; margin: 0 6px;">Can't Make It ❌</a>
          </td>
        </tr>
      </table>
    </td>
  </tr>`, name, message, sessionDate, sessionTime, location, maxPlayers, acceptURL, declineURL)
	return wrapInLayout(content)
}
