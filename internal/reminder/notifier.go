package reminder

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// TwilioNotifier sends reminders as SMS through the Twilio REST API.
type TwilioNotifier struct {
	client *twilio.RestClient
	from   string
	log    logrus.FieldLogger
}

func NewTwilioNotifier(accountSID, authToken, from string, log logrus.FieldLogger) *TwilioNotifier {
	return &TwilioNotifier{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
		from: from,
		log:  log,
	}
}

func (n *TwilioNotifier) Notify(_ context.Context, phone, body string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(phone)
	params.SetFrom(n.from)
	params.SetBody(body)

	resp, err := n.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("twilio send: %w", err)
	}
	if resp.Sid != nil {
		n.log.WithFields(logrus.Fields{"to": phone, "sid": *resp.Sid}).Debug("sms accepted")
	}
	return nil
}

// LogNotifier writes reminders to the log instead of sending them. Used when
// Twilio credentials are not configured, and in tests.
type LogNotifier struct {
	log logrus.FieldLogger
}

func NewLogNotifier(log logrus.FieldLogger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(_ context.Context, phone, body string) error {
	n.log.WithFields(logrus.Fields{"to": phone, "body": body}).Info("reminder (dry run)")
	return nil
}
