package notification

import (
	"context"
	"fmt"

	"podium/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.uber.org/zap"
)

// Mailer sends lifecycle emails. Sends are best-effort: the caller treats a
// returned error as a retry hint, never as a failure of the transition that
// triggered the send.
type Mailer interface {
	Send(ctx context.Context, payload models.NotificationPayload) error
}

// SESMailer is the production implementation over AWS SES.
type SESMailer struct {
	client      *ses.Client
	from        string
	programName string
	logger      *zap.Logger
}

// NewSESMailer creates a Mailer using the default AWS credential chain.
func NewSESMailer(ctx context.Context, region, from, programName string, logger *zap.Logger) (*SESMailer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &SESMailer{
		client:      ses.NewFromConfig(cfg),
		from:        from,
		programName: programName,
		logger:      logger,
	}, nil
}

// Send renders the template for the payload kind and delivers it to every
// recipient in a single SES call.
func (m *SESMailer) Send(ctx context.Context, payload models.NotificationPayload) error {
	if len(payload.Recipients) == 0 {
		return fmt.Errorf("no recipients for notification %s", payload.Kind)
	}

	subject, body, err := Render(payload.Kind, m.programName, payload.Data)
	if err != nil {
		return err
	}

	input := &ses.SendEmailInput{
		Source: aws.String(fmt.Sprintf("%q <%s>", m.programName, m.from)),
		Destination: &types.Destination{
			ToAddresses: payload.Recipients,
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Html: &types.Content{Data: aws.String(body)},
			},
		},
	}

	if _, err := m.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send %s email: %w", payload.Kind, err)
	}

	m.logger.Info("notification sent",
		zap.String("kind", string(payload.Kind)),
		zap.Int("recipients", len(payload.Recipients)))
	return nil
}
