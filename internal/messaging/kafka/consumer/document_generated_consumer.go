package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"go-schooldocs/internal/events"
	"go-schooldocs/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeDocumentGenerated turns document.generated events into a
// notification for the issuing user.
func ConsumeDocumentGenerated(
	ctx context.Context,
	reader *kafkago.Reader,
	notificationService notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.document_generated")
	log.Info("document generated consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("document generated consumer stopped")
				return
			}
			log.Error("fetch document generated message failed", zap.Error(err))
			continue
		}

		var event events.DocumentGeneratedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode document_generated event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		message := fmt.Sprintf("Document %s has been generated.", event.Reference)
		_, err = notificationService.Create(ctx, event.IssuedByID, message)
		if err != nil {
			log.Error("create notification from document_generated failed",
				zap.String("document_id", event.DocumentID),
				zap.String("reference", event.Reference),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit document generated message failed", zap.Error(err))
			continue
		}

		log.Info("notification created from document_generated event",
			zap.String("document_id", event.DocumentID),
			zap.String("reference", event.Reference),
			zap.String("user_id", event.IssuedByID),
		)
	}
}
