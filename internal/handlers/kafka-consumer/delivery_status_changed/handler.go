package delivery_status_changed

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/IBM/sarama"
	"orders/internal/entities"
	orderservice "orders/internal/service/order"
	"orders/pkg/logger"
)

type Handler struct {
	orderService             Service
	log                      handlerLogger
	messageProcessingTimeout time.Duration
}

func New(log handlerLogger, orderService Service, timeout time.Duration) *Handler {
	return &Handler{
		orderService:             orderService,
		log:                      log.With(logger.NewField("handler", "delivery.status.changed")),
		messageProcessingTimeout: timeout,
	}
}

func (h *Handler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				h.log.Info("claim messages closed, exiting ConsumeClaim")
				return nil
			}

			if shouldExit := h.messageProcessing(sess, message); shouldExit {
				return nil
			}

		case <-sess.Context().Done():
			h.log.Info("session context done, exiting ConsumeClaim")
			return nil
		}
	}
}

// messageProcessing обрабатывает одно сообщение из Kafka.
// Возвращает true, если нужно выйти из ConsumeClaim без пометки сообщения,
// тогда следующая сессия прочитает его заново с закоммиченного offset.
func (h *Handler) messageProcessing(sess sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) bool {
	ctx, cancel := context.WithTimeout(sess.Context(), h.messageProcessingTimeout)
	defer cancel()

	var event deliveryEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		h.log.Error("bad message", logger.NewField("error", err))
		sess.MarkMessage(message, "")
		return false
	}

	msgLog := h.log.With(
		logger.NewField("order", event.OrderID),
		logger.NewField("delivery_status", event.Status),
		logger.NewField("offset", message.Offset),
	)

	if entities.DeliveryStatusType(event.Status) != entities.DeliveryDelivered {
		msgLog.Info("delivery status ignored")
		sess.MarkMessage(message, "")
		return false
	}

	order, err := h.orderService.CompleteOrder(ctx, entities.SystemCaller, event.OrderID)
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			msgLog.Warn("context cancelled, message will be reprocessed", logger.NewField("error", err))
			return true

		case errors.Is(err, orderservice.ErrInvalidTransition):
			msgLog.Warn("order cannot be completed", logger.NewField("error", err))

		case errors.Is(err, orderservice.ErrOrderNotFound),
			errors.Is(err, orderservice.ErrValidation):
			msgLog.Warn("order not found", logger.NewField("error", err))

		default:
			msgLog.Error("failed to complete order, message will be reprocessed", logger.NewField("error", err))
			return true
		}
		sess.MarkMessage(message, "")
		return false
	}

	msgLog.Info("order completed", logger.NewField("status", order.Status.String()))
	sess.MarkMessage(message, "")
	return false
}
