package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/paulmach/orb/geojson"
	"p9e.in/aquasure/models"
	"p9e.in/aquasure/pkg/quality"
	"p9e.in/aquasure/repository"
	"p9e.in/aquasure/services"
	"p9e.in/aquasure/utils"
)

// LocationHandler serves /api/locations.
type LocationHandler struct {
	samples *services.SampleService
}

func NewLocationHandler(samples *services.SampleService) *LocationHandler {
	return &LocationHandler{samples: samples}
}

// ListLocations lists monitored locations; ?active=true hides inactive ones.
func (h *LocationHandler) ListLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.samples.Locations(r.Context(), r.URL.Query().Get("active") == "true")
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, locations)
}

// UpdateLocation sets address, coordinates, type or active flag.
func (h *LocationHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(mux.Vars(r)["name"])
	if name == "" {
		writeError(w, badRequest("location name is required"))
		return
	}
	var d repository.LocationDetails
	if err := decodeJSON(r, &d); err != nil {
		writeError(w, err)
		return
	}
	loc, err := h.samples.UpdateLocation(r.Context(), name, d)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loc)
}

// LocationMap godoc
// @Summary Locations with coordinates as a GeoJSON FeatureCollection
// @Tags locations
// @Produce json
// @Param lat query number false "Centre latitude for a radius filter"
// @Param lng query number false "Centre longitude for a radius filter"
// @Param radiusKm query number false "Radius in km"
// @Success 200 {object} map[string]interface{}
// @Router /api/locations/map [get]
func (h *LocationHandler) LocationMap(w http.ResponseWriter, r *http.Request) {
	var near *utils.Coordinate
	var radius float64
	lat, err := queryFloat(r, "lat")
	if err != nil {
		writeError(w, err)
		return
	}
	lng, err := queryFloat(r, "lng")
	if err != nil {
		writeError(w, err)
		return
	}
	radiusKm, err := queryFloat(r, "radiusKm")
	if err != nil {
		writeError(w, err)
		return
	}
	if lat != nil || lng != nil || radiusKm != nil {
		if lat == nil || lng == nil || radiusKm == nil || *radiusKm <= 0 {
			writeError(w, badRequest("lat, lng and a positive radiusKm are required together"))
			return
		}
		near = &utils.Coordinate{Lat: *lat, Lng: *lng}
		if err := utils.ValidateCoordinate(*near); err != nil {
			writeError(w, badRequest("%v", err))
			return
		}
		radius = *radiusKm
	}

	locations, err := h.samples.Locations(r.Context(), true)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, locationFeatures(locations, near, radius))
}

// locationFeatures places every location that has coordinates as a point
// feature, optionally only those within radiusKm of near. The collection
// carries the mean position of its features as "center".
func locationFeatures(locations []models.Location, near *utils.Coordinate, radiusKm float64) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	var coords []utils.Coordinate
	for _, loc := range locations {
		if !loc.HasCoordinates() {
			continue
		}
		c := utils.Coordinate{Lat: *loc.Latitude, Lng: *loc.Longitude}
		if near != nil && utils.DistanceKm(*near, c) > radiusKm {
			continue
		}
		coords = append(coords, c)

		f := geojson.NewFeature(c.Point())
		f.ID = loc.ID.String()
		f.Properties["name"] = loc.Name
		f.Properties["type"] = loc.Type
		f.Properties["sampleCount"] = loc.SampleCount
		f.Properties["qualityIndex"] = loc.AverageQualityIndex
		if loc.SampleCount > 0 {
			f.Properties["status"] = string(quality.Classify(int(loc.AverageQualityIndex + 0.5)))
		}
		if loc.LastSampleDate != nil {
			f.Properties["lastSampleDate"] = loc.LastSampleDate
		}
		fc.Append(f)
	}
	if len(coords) > 0 {
		fc.ExtraMembers = geojson.Properties{"center": utils.CalculateCenter(coords)}
	}
	return fc
}
