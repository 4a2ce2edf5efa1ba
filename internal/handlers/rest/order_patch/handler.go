package order_patch

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"orders/internal/entities"
	"orders/internal/generated/dto"
	"orders/internal/handlers/rest/convert"
	"orders/internal/handlers/rest/response"
	"orders/internal/pkg/middlewares/auth"
	"orders/pkg/logger"
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

	var orderPatchDTO dto.OrderPatch
	if err := json.NewDecoder(r.Body).Decode(&orderPatchDTO); err != nil {
		response.Message(h.log, w, http.StatusBadRequest, "malformed request body")
		return
	}

	modify, err := toModify(orderPatchDTO)
	if err != nil {
		response.Message(h.log, w, http.StatusBadRequest, err.Error())
		return
	}

	orderID := mux.Vars(r)["id"]
	order, err := h.service.UpdateOrder(r.Context(), caller, orderID, modify)
	if err != nil {
		response.Error(h.log, w, err)
		return
	}

	h.log.Info("order updated by admin",
		logger.NewField("order", order.ID),
		logger.NewField("admin", caller.ID),
	)

	response.JSON(h.log, w, http.StatusOK, convert.ToDTOOrder(*order))
}

func toModify(in dto.OrderPatch) (entities.OrderModify, error) {
	var modify entities.OrderModify

	if in.Status != nil {
		status := entities.OrderStatusType(*in.Status)
		modify.Status = &status
	}

	if in.LineItems != nil {
		items, err := convert.FromDTOLineItems(*in.LineItems)
		if err != nil {
			return entities.OrderModify{}, err
		}
		modify.LineItems = &items
	}

	amount, err := convert.FromDTOAmount(in.Amount)
	if err != nil {
		return entities.OrderModify{}, err
	}
	modify.Amount = amount

	return modify, nil
}
