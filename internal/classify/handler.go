package classify

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wastesort-backend/internal/shared/server/respond"
)

// Handler exposes the classification pipeline over HTTP.
type Handler struct {
	Service *Service
}

// NewHandler builds a Handler backed by the given service.
func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

// Classify handles POST /classifications. The body is accepted loosely:
// snake_case and camelCase field names are both honored, and a run always
// answers with a complete record, even when the input was unusable.
func (h *Handler) Classify(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_body", "request body must be a JSON object", err.Error())
		return
	}

	input := Input{
		ImageURL:         pickString(body, "imageUrl", "image_url"),
		ExpectedCategory: pickString(body, "expectedCategory", "expected_category"),
		UserLocation:     pickString(body, "userLocation", "user_location"),
	}

	outcome := h.Service.Classify(c.Request.Context(), input)
	respond.OK(c, outcome)
}
