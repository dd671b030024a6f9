package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"aurora-fiscalizacao-be/internal/dto"
)

// IPublisherService enqueues inbound gateway events on the intake topic. The
// webhook endpoint only publishes and returns; the consumer goroutine drains
// the topic one message at a time, which keeps dialogue handling serialized.
type IPublisherService interface {
	PublishInbound(ctx context.Context, req *dto.InboundMessageRequest) error
}

type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
}

func NewPublisherService(topicName string, pubSub *gochannel.GoChannel) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
	}
}

func (ps *publisherService) PublishInbound(_ context.Context, req *dto.InboundMessageRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	return ps.pubSub.Publish(ps.topicName, msg)
}
