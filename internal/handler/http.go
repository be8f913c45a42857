package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/porterhub/shipment-service/internal/entities"
	"github.com/porterhub/shipment-service/internal/service"
	"github.com/porterhub/shipment-service/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type ShipmentService interface {
	CreateShipment(ctx context.Context, in service.CreateShipmentInput) (entities.Shipment, error)
	GetShipment(ctx context.Context, shipmentID string) (entities.Shipment, error)
	ListEvents(ctx context.Context, shipmentID string) ([]entities.TrackingEvent, error)
	Search(ctx context.Context, f entities.ShipmentFilter) ([]entities.Shipment, error)
	ListPartners(ctx context.Context) ([]entities.DeliveryPartner, error)
	ChangeStatus(ctx context.Context, shipmentID string, next entities.ShipmentStatus, remarks, actor string, role entities.AuthorRole) (entities.Shipment, entities.TrackingEvent, error)
	ReassignCourier(ctx context.Context, shipmentID, partnerID string) (entities.Shipment, entities.TrackingEvent, error)
	ReassignTrackingNumber(ctx context.Context, shipmentID, trackingNumber string) (entities.Shipment, entities.TrackingEvent, error)
}

type HTTPHandler struct {
	logger   *slog.Logger
	validate *validator.Validate
	svc      ShipmentService
}

func NewHTTPHandler(logger *slog.Logger, svc ShipmentService) *HTTPHandler {
	return &HTTPHandler{
		logger:   logger.With(slog.String("handler", "http")),
		validate: validator.New(),
		svc:      svc,
	}
}

func (h *HTTPHandler) Init(r chi.Router) {
	r.Route("/shipments", func(r chi.Router) {
		r.Post("/", h.CreateShipment)
		r.Get("/", h.SearchShipments)
		r.Get("/{shipment_id}", h.GetShipment)
		r.Get("/{shipment_id}/events", h.ListEvents)
		r.Patch("/{shipment_id}/status", h.ChangeStatus)
		r.Patch("/{shipment_id}/courier", h.ReassignCourier)
		r.Patch("/{shipment_id}/tracking-number", h.ReassignTrackingNumber)
	})
	r.Get("/partners", h.ListPartners)
	r.Get("/statuses", h.ListStatuses)
}

// CreateShipment registers a shipment for a confirmed order.
// @Summary      Create a shipment
// @Description  Registers a shipment in PICKUP_PENDING and records the seed tracking event
// @Tags         shipments
// @Accept       json
// @Param        request  body  CreateShipmentRequest  true  "Shipment to create"
// @Success      201  {object}  Shipment
// @Failure      400  {object}  utils.ValidationErrorResponse
// @Failure      409  {object}  utils.ErrorResponse "Order already has a shipment"
// @Failure      500  {object}  utils.ErrorResponse
// @Router       /shipments [post]
func (h *HTTPHandler) CreateShipment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateShipmentRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	shipment, err := h.svc.CreateShipment(ctx, service.CreateShipmentInput{
		OrderID:           req.OrderID,
		TrackingNumber:    req.TrackingNumber,
		PartnerID:         req.PartnerID,
		Origin:            req.Origin,
		Destination:       req.Destination,
		EstimatedDelivery: req.EstimatedDelivery,
	})
	if err != nil {
		h.writeServiceError(ctx, w, err)
		return
	}

	shipmentsCreated.Inc()
	utils.WriteJSON(w, ShipmentEntityToJSON(shipment), http.StatusCreated)
}

// GetShipment returns one shipment by ID.
// @Summary      Get a shipment
// @Tags         shipments
// @Param        shipment_id  path  string  true  "Shipment ID"
// @Success      200  {object}  Shipment
// @Failure      404  {object}  utils.ErrorResponse "Shipment not found"
// @Failure      500  {object}  utils.ErrorResponse
// @Router       /shipments/{shipment_id} [get]
func (h *HTTPHandler) GetShipment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	shipmentID := chi.URLParam(r, "shipment_id")

	if err := h.validate.Var(shipmentID, "required"); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	shipment, err := h.svc.GetShipment(ctx, shipmentID)
	if err != nil {
		h.writeServiceError(ctx, w, err)
		return
	}

	utils.WriteJSON(w, ShipmentEntityToJSON(shipment), http.StatusOK)
}

// SearchShipments lists shipments matching all supplied filters.
// @Summary      Search shipments
// @Description  Filters are ANDed; q matches tracking number or order ID as a case-insensitive substring
// @Tags         shipments
// @Param        status   query  string  false  "Status filter"
// @Param        courier  query  string  false  "Delivery partner ID filter"
// @Param        q        query  string  false  "Text query"
// @Success      200  {array}   Shipment
// @Failure      400  {object}  utils.ErrorResponse "Unknown status"
// @Failure      500  {object}  utils.ErrorResponse
// @Router       /shipments [get]
func (h *HTTPHandler) SearchShipments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter := entities.ShipmentFilter{
		PartnerID: r.URL.Query().Get("courier"),
		Query:     r.URL.Query().Get("q"),
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := entities.ShipmentStatus(raw)
		if !status.Valid() {
			utils.WriteError(w, "unknown status", http.StatusBadRequest)
			return
		}
		filter.Status = &status
	}

	shipments, err := h.svc.Search(ctx, filter)
	if err != nil {
		h.writeServiceError(ctx, w, err)
		return
	}

	utils.WriteJSON(w, ShipmentsEntityToJSON(shipments), http.StatusOK)
}

// ListEvents returns the shipment's tracking history, oldest first.
// @Summary      List tracking events
// @Tags         shipments
// @Param        shipment_id  path  string  true  "Shipment ID"
// @Success      200  {array}   TrackingEvent
// @Failure      404  {object}  utils.ErrorResponse "Shipment not found"
// @Failure      500  {object}  utils.ErrorResponse
// @Router       /shipments/{shipment_id}/events [get]
func (h *HTTPHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	shipmentID := chi.URLParam(r, "shipment_id")

	events, err := h.svc.ListEvents(ctx, shipmentID)
	if err != nil {
		h.writeServiceError(ctx, w, err)
		return
	}

	utils.WriteJSON(w, EventsEntityToJSON(events), http.StatusOK)
}

// ChangeStatus applies a status transition.
// @Summary      Change shipment status
// @Description  Validates the transition against the status graph and appends a tracking event
// @Tags         shipments
// @Accept       json
// @Param        shipment_id  path  string               true  "Shipment ID"
// @Param        request      body  ChangeStatusRequest  true  "Requested transition"
// @Success      200  {object}  MutationResponse
// @Failure      400  {object}  utils.ValidationErrorResponse
// @Failure      404  {object}  utils.ErrorResponse "Shipment not found"
// @Failure      409  {object}  utils.ErrorResponse "Transition not allowed"
// @Failure      500  {object}  utils.ErrorResponse
// @Router       /shipments/{shipment_id}/status [patch]
func (h *HTTPHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	shipmentID := chi.URLParam(r, "shipment_id")

	var req ChangeStatusRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	shipment, event, err := h.svc.ChangeStatus(ctx, shipmentID,
		entities.ShipmentStatus(req.Status), req.Remarks, req.Actor, entities.AuthorRole(req.ActorRole))
	if err != nil {
		h.writeServiceError(ctx, w, err)
		return
	}

	statusChanges.WithLabelValues(req.Status).Inc()
	utils.WriteJSON(w, MutationResponse{
		Shipment: ShipmentEntityToJSON(shipment),
		Event:    EventEntityToJSON(event),
	}, http.StatusOK)
}

// ReassignCourier points the shipment at a different delivery partner.
// @Summary      Reassign courier
// @Tags         shipments
// @Accept       json
// @Param        shipment_id  path  string                  true  "Shipment ID"
// @Param        request      body  ReassignCourierRequest  true  "New partner"
// @Success      200  {object}  MutationResponse
// @Failure      400  {object}  utils.ValidationErrorResponse
// @Failure      404  {object}  utils.ErrorResponse "Shipment or partner not found"
// @Failure      409  {object}  utils.ErrorResponse "Shipment is terminal"
// @Failure      500  {object}  utils.ErrorResponse
// @Router       /shipments/{shipment_id}/courier [patch]
func (h *HTTPHandler) ReassignCourier(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	shipmentID := chi.URLParam(r, "shipment_id")

	var req ReassignCourierRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	shipment, event, err := h.svc.ReassignCourier(ctx, shipmentID, req.PartnerID)
	if err != nil {
		h.writeServiceError(ctx, w, err)
		return
	}

	utils.WriteJSON(w, MutationResponse{
		Shipment: ShipmentEntityToJSON(shipment),
		Event:    EventEntityToJSON(event),
	}, http.StatusOK)
}

// ReassignTrackingNumber replaces the shipment's tracking number.
// @Summary      Reassign tracking number
// @Tags         shipments
// @Accept       json
// @Param        shipment_id  path  string                         true  "Shipment ID"
// @Param        request      body  ReassignTrackingNumberRequest  true  "New tracking number"
// @Success      200  {object}  MutationResponse
// @Failure      400  {object}  utils.ValidationErrorResponse
// @Failure      404  {object}  utils.ErrorResponse "Shipment not found"
// @Failure      409  {object}  utils.ErrorResponse "Number in use or shipment terminal"
// @Failure      500  {object}  utils.ErrorResponse
// @Router       /shipments/{shipment_id}/tracking-number [patch]
func (h *HTTPHandler) ReassignTrackingNumber(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	shipmentID := chi.URLParam(r, "shipment_id")

	var req ReassignTrackingNumberRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	shipment, event, err := h.svc.ReassignTrackingNumber(ctx, shipmentID, req.TrackingNumber)
	if err != nil {
		h.writeServiceError(ctx, w, err)
		return
	}

	utils.WriteJSON(w, MutationResponse{
		Shipment: ShipmentEntityToJSON(shipment),
		Event:    EventEntityToJSON(event),
	}, http.StatusOK)
}

// ListPartners returns all known delivery partners.
// @Summary      List delivery partners
// @Tags         partners
// @Success      200  {array}   DeliveryPartner
// @Failure      500  {object}  utils.ErrorResponse
// @Router       /partners [get]
func (h *HTTPHandler) ListPartners(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	partners, err := h.svc.ListPartners(ctx)
	if err != nil {
		h.writeServiceError(ctx, w, err)
		return
	}

	result := make([]DeliveryPartner, 0, len(partners))
	for _, p := range partners {
		result = append(result, PartnerEntityToJSON(p))
	}
	utils.WriteJSON(w, result, http.StatusOK)
}

// ListStatuses returns display attributes for every shipment status.
// @Summary      List status display attributes
// @Tags         shipments
// @Success      200  {array}  StatusDisplay
// @Router       /statuses [get]
func (h *HTTPHandler) ListStatuses(w http.ResponseWriter, _ *http.Request) {
	result := make([]StatusDisplay, 0, len(entities.Statuses))
	for _, s := range entities.Statuses {
		d := entities.DisplayFor(s)
		result = append(result, StatusDisplay{Status: string(s), Label: d.Label, Tone: d.Tone})
	}
	utils.WriteJSON(w, result, http.StatusOK)
}

func (h *HTTPHandler) writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	var ite entities.InvalidTransitionError
	switch {
	case errors.Is(err, entities.ErrShipmentNotFound):
		utils.WriteError(w, "shipment not found", http.StatusNotFound)
	case errors.Is(err, entities.ErrPartnerNotFound):
		utils.WriteError(w, "delivery partner not found", http.StatusNotFound)
	case errors.Is(err, entities.ErrDuplicateOrder):
		utils.WriteError(w, "order already has a shipment", http.StatusConflict)
	case errors.Is(err, entities.ErrTrackingNumberConflict):
		utils.WriteError(w, "tracking number already in use", http.StatusConflict)
	case errors.Is(err, entities.ErrTerminalState):
		utils.WriteError(w, "shipment is in a terminal state", http.StatusConflict)
	case errors.As(err, &ite):
		invalidTransitions.WithLabelValues(ite.Reason).Inc()
		utils.WriteError(w, ite.Error(), http.StatusConflict)
	default:
		h.logger.ErrorContext(ctx, "request failed", slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
	}
}
