package notification

import (
	"fmt"

	"podium/models"
)

// Render produces the subject and HTML body for a notification kind. The
// templates mirror the letters the program office sends by hand; data carries
// at minimum the applicant's name.
func Render(kind models.NotificationKind, programName string, data map[string]string) (subject, body string, err error) {
	name := data["name"]
	if name == "" {
		name = "Applicant"
	}

	switch kind {
	case models.NotifySubmitted:
		subject = fmt.Sprintf("%s — application received", programName)
		body = fmt.Sprintf(`
			<h1>Application Received</h1>
			<p>Dear %s,</p>
			<p>Thank you for applying to the %s. Your application has been
			received and is now under review. We will be in touch once
			decisions are made.</p>`, name, programName)

	case models.NotifyAccepted:
		subject = fmt.Sprintf("%s — decision", programName)
		body = fmt.Sprintf(`
			<h1>Congratulations!</h1>
			<p>Dear %s,</p>
			<p>We are delighted to offer you a place in the %s. To secure your
			spot, please sign in and complete the program confirmation form.
			An invoice for the program fee will follow your confirmation.</p>`, name, programName)

	case models.NotifyAcceptedUDL:
		subject = fmt.Sprintf("%s — decision", programName)
		body = fmt.Sprintf(`
			<h1>Congratulations!</h1>
			<p>Dear %s,</p>
			<p>We are delighted to offer you a place in the %s. As an Urban
			Debate League student you qualify for the reduced program fee.
			To secure your spot, please sign in and complete the program
			confirmation form.</p>`, name, programName)

	case models.NotifyWaitlisted:
		subject = fmt.Sprintf("%s — decision", programName)
		body = fmt.Sprintf(`
			<h1>Application Update</h1>
			<p>Dear %s,</p>
			<p>Thank you for applying to the %s. We are unable to offer you a
			place at this time, but you have been placed on our waitlist and
			will be contacted if a spot opens.</p>`, name, programName)

	case models.NotifyDenied:
		subject = fmt.Sprintf("%s — decision", programName)
		body = fmt.Sprintf(`
			<h1>Application Update</h1>
			<p>Dear %s,</p>
			<p>Thank you for applying to the %s. After careful review we are
			unable to offer you a place this year. We encourage you to apply
			again next season.</p>`, name, programName)

	case models.NotifyConfirmationReceived:
		subject = fmt.Sprintf("%s — confirmation received", programName)
		body = fmt.Sprintf(`
			<h1>You're Confirmed</h1>
			<p>Dear %s,</p>
			<p>We have received your program confirmation for the %s. Watch
			your inbox for logistics details as the program approaches.</p>`, name, programName)

	default:
		return "", "", fmt.Errorf("unknown notification kind: %s", kind)
	}
	return subject, body, nil
}
