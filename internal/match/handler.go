// AngelaMos | 2026
// handler.go

package match

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/attribute"

	"github.com/beanvoyage/storefront/internal/core"
	"github.com/beanvoyage/storefront/internal/middleware"
	"github.com/beanvoyage/storefront/internal/taste"
)

type Handler struct {
	service   *Recommender
	validator *validator.Validate
}

func NewHandler(service *Recommender) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
	optionalAuth func(http.Handler) http.Handler,
) {
	r.Route("/recommendations", func(r chi.Router) {
		r.With(optionalAuth).Post("/preview", h.Preview)
		r.With(authenticator).Get("/me", h.Me)
	})
}

func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	var req taste.ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	req.Normalize()
	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	ctx := r.Context()
	core.AddSpanEvent(ctx, "match.preview",
		attribute.Bool("user.authenticated", middleware.IsAuthenticated(ctx)),
	)

	rec, err := h.service.Preview(ctx, req.ToProfile(middleware.GetUserID(ctx)))
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToRecommendationResponse(rec))
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	rec, err := h.service.Recommend(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToRecommendationResponse(rec))
}
