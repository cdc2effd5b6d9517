package service

import (
	"context"
	"encoding/json"

	"birthplan-agent-be/internal/dto"
	"birthplan-agent-be/internal/pkg/logger"
	"birthplan-agent-be/internal/pkg/mailer"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IDeliveryService interface {
	Consume(ctx context.Context) error
}

// deliveryService drains the export topic and mails finished plans. Sending
// happens off the request path so a slow SMTP server never delays the export
// response.
type deliveryService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	mailer    mailer.IEmailService
	log       logger.ILogger
}

func NewDeliveryService(
	pubSub *gochannel.GoChannel,
	topicName string,
	emailService mailer.IEmailService,
	log logger.ILogger,
) IDeliveryService {
	return &deliveryService{
		pubSub:    pubSub,
		topicName: topicName,
		mailer:    emailService,
		log:       log,
	}
}

func (d *deliveryService) Consume(ctx context.Context) error {
	messages, err := d.pubSub.Subscribe(ctx, d.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			d.processMessage(msg)
		}
	}()

	return nil
}

func (d *deliveryService) processMessage(msg *message.Message) {
	var payload dto.PublishPlanExportMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		d.log.Error("delivery", "failed to unmarshal export message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // invalid payloads never become valid, drop them
		return
	}

	if payload.Email == "" || payload.Document == nil {
		d.log.Warn("delivery", "export message missing email or document", nil)
		msg.Ack()
		return
	}

	if err := d.mailer.SendPlanExport(payload.Email, payload.Document); err != nil {
		d.log.Error("delivery", "failed to send plan export", map[string]interface{}{
			"session_id": payload.Document.SessionID,
			"error":      err.Error(),
		})
		msg.Nack() // retriable, SMTP may be back shortly
		return
	}

	d.log.Info("delivery", "plan export sent", map[string]interface{}{
		"session_id": payload.Document.SessionID,
	})
	msg.Ack()
}
