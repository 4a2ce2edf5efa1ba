package order_pay_post

import (
	"net/http"

	"github.com/gorilla/mux"
	"orders/internal/handlers/rest/convert"
	"orders/internal/handlers/rest/response"
	"orders/internal/pkg/middlewares/auth"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.CallerFromContext(r.Context())
	if !ok {
		response.Message(h.log, w, http.StatusUnauthorized, "missing caller")
		return
	}

	order, err := h.service.PayOrder(r.Context(), caller, mux.Vars(r)["id"])
	if err != nil {
		response.Error(h.log, w, err)
		return
	}

	response.JSON(h.log, w, http.StatusOK, convert.ToDTOOrder(*order))
}
