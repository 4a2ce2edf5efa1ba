package orders_get

import (
	"net/http"

	"github.com/gorilla/mux"
	"orders/internal/entities"
	"orders/internal/handlers/rest/convert"
	"orders/internal/handlers/rest/response"
	"orders/internal/pkg/middlewares/auth"
)

// Handler обслуживает и список владельца, и админский список; scope задается на роуте.
type Handler struct {
	log     handlerLogger
	service Service
	scope   entities.Scope
}

func New(log handlerLogger, service Service, scope entities.Scope) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		service: service,
		scope:   scope,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		response.Message(h.log, w, http.StatusUnauthorized, "missing caller")
		return
	}

	var status *entities.OrderStatusType
	if raw, ok := mux.Vars(r)["status"]; ok {
		s := entities.OrderStatusType(raw)
		status = &s
	}

	orders, err := h.service.List(r.Context(), caller, h.scope, status)
	if err != nil {
		response.Error(h.log, w, err)
		return
	}

	response.JSON(h.log, w, http.StatusOK, convert.ToDTOOrders(orders))
}
