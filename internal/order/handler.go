// AngelaMos | 2026
// handler.go

package order

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/beanvoyage/storefront/internal/core"
	"github.com/beanvoyage/storefront/internal/middleware"
)

const IdempotencyKeyHeader = "Idempotency-Key"

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterRoutes mounts the customer endpoints. checkoutLimit throttles
// order placement separately from the global limit.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, checkoutLimit func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/subscription", h.GetSubscription)
		r.Put("/subscription/status", h.ChangeSubscriptionStatus)
		r.With(checkoutLimit).Post("/checkout", h.Checkout)
		r.Post("/shipments/{shipmentID}/review", h.SubmitReview)
	})
}

func (h *Handler) RegisterAdminRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin/shipments", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Get("/", h.ListOrders)
		r.Put("/{shipmentID}/status", h.TransitionShipment)
	})
}

func (h *Handler) GetSubscription(w http.ResponseWriter, r *http.Request) {
	sub, err := h.service.GetSubscription(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	if sub == nil {
		core.OK(w, nil)
		return
	}

	core.OK(w, ToSubscriptionResponse(sub))
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	res, err := h.service.Checkout(
		r.Context(),
		middleware.GetUserID(r.Context()),
		r.Header.Get(IdempotencyKeyHeader),
		req,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.Created(w, CheckoutResponse{
		Subscription: ToSubscriptionResponse(&res.Subscription),
		Shipment:     ToShipmentResponse(&res.Shipment),
	})
}

func (h *Handler) ChangeSubscriptionStatus(w http.ResponseWriter, r *http.Request) {
	var req SubscriptionStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	sub, err := h.service.ChangeSubscriptionStatus(
		r.Context(),
		middleware.GetUserID(r.Context()),
		req.Status,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, ToSubscriptionResponse(sub))
}

func (h *Handler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	var req ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	res, err := h.service.SubmitReview(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "shipmentID"),
		req,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.Created(w, ToReviewResponse(res))
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	params := ListOrdersParams{
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", 20),
	}
	params.Normalize()

	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := ParseShipmentStatus(raw)
		if err != nil {
			core.BadRequest(w, "unknown shipment status")
			return
		}
		params.Status = status
	}

	rows, total, err := h.service.ListOrders(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, ToOrderResponseList(rows), params.Page, params.PageSize, total)
}

func (h *Handler) TransitionShipment(w http.ResponseWriter, r *http.Request) {
	var req ShipmentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	shipment, err := h.service.TransitionShipment(
		r.Context(),
		chi.URLParam(r, "shipmentID"),
		req.Status,
		req.TrackingNumber,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, ToShipmentResponse(shipment))
}

func writeError(w http.ResponseWriter, err error) {
	var te *TransitionError

	switch {
	case errors.As(err, &te):
		core.JSONError(w, core.UnprocessableError("INVALID_TRANSITION", te.Error()))
	case errors.Is(err, ErrAddressRequired):
		core.JSONError(w, core.UnprocessableError("ADDRESS_REQUIRED", "shipping address is required"))
	case errors.Is(err, ErrUnknownPlan):
		core.JSONError(w, core.UnprocessableError("UNKNOWN_PLAN", "unknown tier or product"))
	case errors.Is(err, ErrRatingRequired):
		core.BadRequest(w, "rating must be between 1 and 5")
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, err.Error())
	case errors.Is(err, ErrLiveSubscription):
		core.Conflict(w, "customer already has a live subscription")
	case errors.Is(err, ErrDuplicateCheckout):
		core.Conflict(w, "checkout already submitted")
	case errors.Is(err, ErrAlreadyReviewed):
		core.Conflict(w, "shipment has already been reviewed")
	case errors.Is(err, ErrReviewNotDue):
		core.JSONError(w, core.UnprocessableError("REVIEW_NOT_DUE", "shipment is not awaiting a review"))
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "record")
	case errors.Is(err, core.ErrUnauthorized):
		core.JSONError(w, core.UnauthorizedError("authentication required"))
	default:
		core.InternalServerError(w, err)
	}
}

func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}
