// Package notify sends optional submit confirmations: an operator email via
// SES and a customer SMS via SNS. Both channels are config-gated and failures
// never affect the submit response.
package notify

import (
	"context"
	"fmt"

	"intake-api/internal/common/config"
	"intake-api/internal/common/logger"
	"intake-api/internal/common/metrics"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// Define interfaces for mocking
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type Notifier struct {
	config    config.NotificationConfig
	logger    logger.Logger
	sesClient SESService
	snsClient SNSService
}

func NewNotifier(cfg config.NotificationConfig, log logger.Logger) (*Notifier, error) {
	n := &Notifier{
		config: cfg,
		logger: log.WithFields(map[string]interface{}{"component": "notify"}),
	}

	if !cfg.Email.Enabled && !cfg.SMS.Enabled {
		return n, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	if cfg.Email.Enabled {
		n.sesClient = ses.NewFromConfig(awsCfg)
	}
	if cfg.SMS.Enabled {
		n.snsClient = sns.NewFromConfig(awsCfg)
	}
	return n, nil
}

// SubmissionReceived notifies the configured channels about a new intake.
// Errors are logged and swallowed; the receipt has already been persisted.
func (n *Notifier) SubmissionReceived(ctx context.Context, receiptID, customerName, phone string) {
	if n == nil {
		return
	}

	if n.config.Email.Enabled && n.sesClient != nil {
		if err := n.sendOperatorEmail(ctx, receiptID, customerName); err != nil {
			metrics.NotificationsSentTotal.WithLabelValues("email", "error").Inc()
			n.logger.Error("operator email failed", map[string]interface{}{
				"receiptId": receiptID,
				"error":     err.Error(),
			})
		} else {
			metrics.NotificationsSentTotal.WithLabelValues("email", "success").Inc()
		}
	}

	if n.config.SMS.Enabled && n.snsClient != nil {
		if err := n.sendCustomerSMS(ctx, receiptID, phone); err != nil {
			metrics.NotificationsSentTotal.WithLabelValues("sms", "error").Inc()
			n.logger.Error("customer SMS failed", map[string]interface{}{
				"receiptId": receiptID,
				"error":     err.Error(),
			})
		} else {
			metrics.NotificationsSentTotal.WithLabelValues("sms", "success").Inc()
		}
	}
}

func (n *Notifier) sendOperatorEmail(ctx context.Context, receiptID, customerName string) error {
	subject := fmt.Sprintf("새 접수: %s", receiptID)
	body := fmt.Sprintf("고객명: %s\n접수번호: %s", customerName, receiptID)

	_, err := n.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(n.config.Email.FromEmail),
		Destination: &sestypes.Destination{
			ToAddresses: []string{n.config.Email.ToEmail},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(subject)},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: aws.String(body)},
			},
		},
	})
	return err
}

func (n *Notifier) sendCustomerSMS(ctx context.Context, receiptID, phone string) error {
	message := fmt.Sprintf("접수가 완료되었습니다. 접수번호: %s", receiptID)

	input := &sns.PublishInput{
		PhoneNumber: aws.String(phone),
		Message:     aws.String(message),
	}
	if n.config.SMS.SenderID != "" {
		input.MessageAttributes = map[string]snstypes.MessageAttributeValue{
			"AWS.SNS.SMS.SenderID": {
				DataType:    aws.String("String"),
				StringValue: aws.String(n.config.SMS.SenderID),
			},
		}
	}

	_, err := n.snsClient.Publish(ctx, input)
	return err
}
