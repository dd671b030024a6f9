package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"aurora-fiscalizacao-be/internal/dto"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the intake topic. Messages are processed strictly one
// at a time on a single goroutine, which is what guarantees two rapid messages
// from the same citizen cannot interleave inside the engine.
type consumerService struct {
	pubSub          *gochannel.GoChannel
	topicName       string
	dialogueService IDialogueService
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	dialogueService IDialogueService,
) IConsumerService {
	return &consumerService{
		pubSub:          pubSub,
		topicName:       topicName,
		dialogueService: dialogueService,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var req dto.InboundMessageRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		log.Printf("[ERROR] Failed to unmarshal inbound message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	if err := cs.dialogueService.HandleMessage(ctx, &req); err != nil {
		log.Printf("[ERROR] Failed to handle message from %s: %v", req.SenderId, err)
	}
	// The dialogue layer swallows delivery errors itself; redelivering the
	// citizen's message would produce duplicate replies.
	msg.Ack()
}
