package sns

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/go-email-confirm/internal/config"
)

// EventPublisher announces completed email confirmations to downstream
// systems (CRM sync, welcome-mail senders). Publishing is best-effort: the
// confirmation transition has already committed by the time this runs.
type EventPublisher interface {
	PublishConfirmed(ctx context.Context, userID, email string) error
}

type publisher struct {
	client   *sns.Client
	topicARN string
}

func NewPublisher(cfg *config.Config) (EventPublisher, error) {
	if cfg.SNSTopicARN == "" {
		return nil, fmt.Errorf("SNS_TOPIC_ARN not configured")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.SNSRegion),
	)
	if err != nil {
		return nil, err
	}
	return &publisher{client: sns.NewFromConfig(awsCfg), topicARN: cfg.SNSTopicARN}, nil
}

type confirmedEvent struct {
	Event  string `json:"event"`
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	At     string `json:"at"`
}

func (p *publisher) PublishConfirmed(ctx context.Context, userID, email string) error {
	body, err := json.Marshal(confirmedEvent{
		Event:  "email.confirmed",
		UserID: userID,
		Email:  email,
		At:     time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	msg := string(body)
	_, err = p.client.Publish(ctx, &sns.PublishInput{
		TopicArn: &p.topicARN,
		Message:  &msg,
	})
	return err
}
