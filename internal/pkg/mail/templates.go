package mail

import (
	"fmt"

	"github.com/mindspark-labs/localpages/internal/pkg/env"
)

func publicBaseURL() string {
	return env.GetEnv("PUBLIC_DOMAIN", "http://localhost:"+env.GetEnv("APP_PORT", "4000"))
}

// SendWelcomeMail notifies a newly approved business owner about their
// account and temporary password. Delivery failures are the caller's call
// to ignore; approval must not roll back over a mail outage.
func SendWelcomeMail(to, businessName, tempPassword string) error {
	subject := fmt.Sprintf("Your %s listing was approved", businessName)
	body := fmt.Sprintf(
		"<p>Good news! Your application for <strong>%s</strong> was approved.</p>"+
			"<p>We created a client account for you:</p>"+
			"<p>Email: %s<br>Temporary password: <code>%s</code></p>"+
			"<p>Sign in at <a href=\"%s/login\">%s/login</a> and pick a subscription to activate your listing. "+
			"Please change your password after the first login.</p>",
		businessName, to, tempPassword, publicBaseURL(), publicBaseURL(),
	)
	return SendMail(to, subject, body)
}

// SendRejectionMail notifies an applicant that their application was declined.
func SendRejectionMail(to, businessName string) error {
	subject := fmt.Sprintf("Update on your %s application", businessName)
	body := fmt.Sprintf(
		"<p>Thank you for your interest in listing <strong>%s</strong>.</p>"+
			"<p>After review we are unable to approve the application at this time. "+
			"You are welcome to apply again with updated details.</p>",
		businessName,
	)
	return SendMail(to, subject, body)
}

// SendLeadNotification tells an organization owner about a new inbound lead.
func SendLeadNotification(to, businessName, leadName, leadEmail, message string) error {
	subject := fmt.Sprintf("New lead for %s", businessName)
	body := fmt.Sprintf(
		"<p>You received a new inquiry for <strong>%s</strong>:</p>"+
			"<p>From: %s (%s)</p>"+
			"<blockquote>%s</blockquote>"+
			"<p>Reply directly or manage your leads at <a href=\"%s/client/leads\">%s/client/leads</a>.</p>",
		businessName, leadName, leadEmail, message, publicBaseURL(), publicBaseURL(),
	)
	return SendMail(to, subject, body)
}
