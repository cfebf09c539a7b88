package cloud

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"tabela/internal/domain/submission"
)

const charsetUTF8 = "UTF-8"

// SendEmailAPI is the subset of *sesv2.Client used by Notifier.
type SendEmailAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// Notifier sends plain-text emails from one sender to one recipient.
type Notifier struct {
	client    SendEmailAPI
	sender    string
	recipient string
}

func NewNotifier(client SendEmailAPI, sender, recipient string) *Notifier {
	return &Notifier{client: client, sender: sender, recipient: recipient}
}

func (n *Notifier) Send(ctx context.Context, msg submission.Message) error {
	_, err := n.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(n.sender),
		Destination:      &types.Destination{ToAddresses: []string{n.recipient}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String(charsetUTF8)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(msg.Body), Charset: aws.String(charsetUTF8)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("send email to %s: %w", n.recipient, err)
	}
	return nil
}
