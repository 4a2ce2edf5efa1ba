package order_post

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/AlekSi/pointer"
	"orders/internal/entities"
	"orders/internal/generated/dto"
	"orders/internal/handlers/rest/convert"
	"orders/internal/handlers/rest/response"
	"orders/internal/pkg/middlewares/auth"
	"orders/pkg/logger"
)

const idempotencyKeyHeader = "Idempotency-Key"

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

	var orderCreateDTO dto.OrderCreate
	if err := json.NewDecoder(r.Body).Decode(&orderCreateDTO); err != nil && !errors.Is(err, io.EOF) {
		response.Message(h.log, w, http.StatusBadRequest, "malformed request body")
		return
	}

	placement, err := toPlacement(orderCreateDTO)
	if err != nil {
		response.Message(h.log, w, http.StatusBadRequest, err.Error())
		return
	}

	if key := r.Header.Get(idempotencyKeyHeader); key != "" {
		placement.IdempotencyKey = &key
	}

	order, err := h.service.PlaceOrder(r.Context(), caller, placement)
	if err != nil {
		response.Error(h.log, w, err)
		return
	}

	h.log.Info("order placed",
		logger.NewField("order", order.ID),
		logger.NewField("user", caller.ID),
	)

	response.JSON(h.log, w, http.StatusCreated, convert.ToDTOOrder(*order))
}

func toPlacement(in dto.OrderCreate) (entities.OrderPlacement, error) {
	items, err := convert.FromDTOLineItems(pointer.Get(in.LineItems))
	if err != nil {
		return entities.OrderPlacement{}, err
	}

	amount, err := convert.FromDTOAmount(in.Amount)
	if err != nil {
		return entities.OrderPlacement{}, err
	}

	return entities.OrderPlacement{
		LineItems: items,
		Amount:    amount,
	}, nil
}
