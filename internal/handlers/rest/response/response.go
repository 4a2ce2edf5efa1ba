package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"orders/internal/generated/dto"
	"orders/internal/service/order"
	"orders/pkg/logger"
)

type errorLogger interface {
	Error(msg string, fields ...logger.Field)
}

func JSON(log errorLogger, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("encode JSON response", logger.NewField("error", err))
	}
}

func Message(log errorLogger, w http.ResponseWriter, status int, msg string) {
	JSON(log, w, status, dto.ErrorResponse{Error: msg})
}

// Error пишет статус по ошибке сервиса. В тело уходит только текст sentinel ошибки,
// неожиданные ошибки логируем и наружу их текст не отдаем.
func Error(log errorLogger, w http.ResponseWriter, err error) {
	status := StatusFromError(err)
	body := dto.ErrorResponse{Error: publicMessage(err)}

	var transitionErr *order.TransitionError
	if errors.As(err, &transitionErr) {
		current := dto.OrderStatus(transitionErr.Current)
		body.CurrentStatus = &current
	}

	if status == http.StatusInternalServerError {
		log.Error("request failed", logger.NewField("error", err))
		body.Error = http.StatusText(http.StatusInternalServerError)
	}

	JSON(log, w, status, body)
}

func publicMessage(err error) string {
	var transitionErr *order.TransitionError
	switch {
	case errors.As(err, &transitionErr):
		return transitionErr.Error()
	case errors.Is(err, order.ErrOrderNotFound):
		return order.ErrOrderNotFound.Error()
	case errors.Is(err, order.ErrInvalidTransition):
		return order.ErrInvalidTransition.Error()
	case errors.Is(err, order.ErrDuplicateRequest):
		return order.ErrDuplicateRequest.Error()
	case errors.Is(err, order.ErrForbidden):
		return order.ErrForbidden.Error()
	default:
		return err.Error()
	}
}

func StatusFromError(err error) int {
	switch {
	case errors.Is(err, order.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrDuplicateRequest):
		return http.StatusConflict
	case errors.Is(err, order.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, order.ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
