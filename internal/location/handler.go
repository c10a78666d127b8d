package location

import (
	"net/http"

	"github.com/Suyog-Rijal/Makeover-me-backend/internal/httputil"
	"github.com/Suyog-Rijal/Makeover-me-backend/internal/logging"
)

type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// List returns regions, the cities of a region or the areas of a city
// @Summary      Get regions, cities, or areas
// @Tags         locations
// @Produce      json
// @Param        region query string false "Filter by region ID"
// @Param        city   query string false "Filter by city ID"
// @Success      200 {array} Place
// @Failure      400 {object} httputil.ErrorResponse "Both filters given"
// @Router       /locations [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	regionID := r.URL.Query().Get("region")
	cityID := r.URL.Query().Get("city")

	var (
		places []Place
		err    error
	)
	switch {
	case regionID != "" && cityID != "":
		httputil.RespondErrorWithCode(w, "Provide either 'region' or 'city' parameter, not both.", httputil.CodeValidation, http.StatusBadRequest)
		return
	case regionID != "":
		places, err = h.repo.ListCities(r.Context(), regionID)
	case cityID != "":
		places, err = h.repo.ListAreas(r.Context(), cityID)
	default:
		places, err = h.repo.ListRegions(r.Context())
	}
	if err != nil {
		logging.GetLoggerFromContext(r.Context()).WithError(err).Error("failed to list locations")
		httputil.RespondInternal(w)
		return
	}

	httputil.RespondJSON(w, places, http.StatusOK)
}
