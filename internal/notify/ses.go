package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// SESDispatcher sends reminder emails through Amazon SES.
type SESDispatcher struct {
	client *sesv2.Client
	sender string
}

func NewSESDispatcher(client *sesv2.Client, sender string) *SESDispatcher {
	return &SESDispatcher{client: client, sender: sender}
}

func (d *SESDispatcher) SendExpiredEmail(ctx context.Context, n Notification) error {
	subject := fmt.Sprintf("Your %s certification has expired", n.CertificationName)
	body := fmt.Sprintf(
		"Hi %s,\n\nYour %s certification expired on %s. Please upload a renewed certification as soon as possible.\n",
		n.User.FirstName, n.CertificationName, n.ExpirationDate.Format("January 2, 2006"))
	return d.send(ctx, n.User.Email, subject, body)
}

func (d *SESDispatcher) SendExpiringSoonEmail(ctx context.Context, n Notification) error {
	subject := fmt.Sprintf("Your %s certification expires soon", n.CertificationName)
	body := fmt.Sprintf(
		"Hi %s,\n\nYour %s certification expires on %s. Please schedule a renewal before then.\n",
		n.User.FirstName, n.CertificationName, n.ExpirationDate.Format("January 2, 2006"))
	return d.send(ctx, n.User.Email, subject, body)
}

func (d *SESDispatcher) SendMissingEmail(ctx context.Context, n Notification) error {
	subject := fmt.Sprintf("Missing required certification: %s", n.CertificationName)
	body := fmt.Sprintf(
		"Hi %s,\n\nOur records show no %s certification on file for you, but your current assignment requires one. Please upload it when you can.\n",
		n.User.FirstName, n.CertificationName)
	return d.send(ctx, n.User.Email, subject, body)
}

func (d *SESDispatcher) send(ctx context.Context, to, subject, body string) error {
	_, err := d.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(d.sender),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("send email to %s: %w", to, err)
	}
	return nil
}
