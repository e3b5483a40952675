package natsjetstream

import (
	"context"
	"encoding/json"

	apperrors "github.com/scottwarrens/challengeboard/errors"
)

type Publisher struct {
	client *Client
}

func NewPublisher(client *Client) *Publisher {
	return &Publisher{client: client}
}

// PublishJSON encodes v as JSON and publishes it on subject. All engine
// events are plain JSON so any consumer can decode them without a schema.
func (p *Publisher) PublishJSON(ctx context.Context, subject string, v interface{}) *apperrors.AppError {
	data, err := json.Marshal(v)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeObjectMarshalError, "failed to marshal event payload")
	}

	return p.Publish(ctx, subject, data)
}

func (p *Publisher) Publish(ctx context.Context, subject string, data []byte) *apperrors.AppError {
	_, err := p.client.js.Publish(ctx, subject, data)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeEventPublishError, "failed to publish message")
	}
	return nil
}
