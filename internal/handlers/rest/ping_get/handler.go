package ping_get

import (
	"net/http"

	"orders/internal/generated/dto"
	"orders/internal/handlers/rest/response"
)

type Handler struct {
	log handlerLogger
}

func New(log handlerLogger) *Handler {
	return &Handler{
		log: log.With(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	message := "pong"
	response.JSON(h.log, w, http.StatusOK, dto.PingResponse{Message: &message})
}
