package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tradfri-tools/tradfrid/internal/command"
	kerrors "github.com/tradfri-tools/tradfrid/internal/errors"
	"github.com/tradfri-tools/tradfrid/internal/http/handlers"
)

// registerLegacyRoutes mounts the flat GET routes the original web UI calls.
// They live outside the Huma API: successes answer with an empty body, and
// partial room fan-outs need 207 Multi-Status, which Huma cannot express.
//
// The {room} segment in the bulb routes is accepted for URL compatibility but
// unused; bulb ids are unique across the gateway.
func (s *Server) registerLegacyRoutes(router *chi.Mux) {
	router.Get("/description.json", s.legacyDescription)

	router.Get("/bulb/on/{room}/{bulb}", s.legacyBulbPower(true))
	router.Get("/bulb/off/{room}/{bulb}", s.legacyBulbPower(false))
	router.Get("/bulb/dimmer/{room}/{bulb}/{value}", s.legacyBulbDimmer)

	router.Get("/room/on/{room}", s.legacyRoomPower(true))
	router.Get("/room/off/{room}", s.legacyRoomPower(false))
	router.Get("/room/dimmer/{room}/{value}", s.legacyRoomDimmer)
	router.Get("/room/ambiance/{room}/{value}", s.legacyRoomAmbiance)
}

func (s *Server) legacyDescription(w http.ResponseWriter, r *http.Request) {
	desc, err := s.cache.Get(r.Context())
	if err != nil {
		s.writeLegacyError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(desc); err != nil {
		s.logger.Error("Failed to encode description response", "error", err)
	}
}

func (s *Server) legacyBulbPower(on bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bulbID := chi.URLParam(r, "bulb")
		s.finishLegacyCommand(w, s.dispatcher.SetBulbPower(r.Context(), bulbID, on))
	}
}

func (s *Server) legacyBulbDimmer(w http.ResponseWriter, r *http.Request) {
	bulbID := chi.URLParam(r, "bulb")
	value, err := strconv.Atoi(chi.URLParam(r, "value"))
	if err != nil {
		s.writeLegacyError(w, kerrors.InvalidInputf("dimmer value must be an integer"))
		return
	}
	s.finishLegacyCommand(w, s.dispatcher.SetBulbDimmer(r.Context(), bulbID, value))
}

func (s *Server) legacyRoomPower(on bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roomID := chi.URLParam(r, "room")
		s.finishLegacyCommand(w, s.dispatcher.SetRoomPower(r.Context(), roomID, on))
	}
}

func (s *Server) legacyRoomDimmer(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "room")
	value, err := strconv.Atoi(chi.URLParam(r, "value"))
	if err != nil {
		s.writeLegacyError(w, kerrors.InvalidInputf("dimmer value must be an integer"))
		return
	}
	s.finishLegacyCommand(w, s.dispatcher.SetRoomDimmer(r.Context(), roomID, value))
}

func (s *Server) legacyRoomAmbiance(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "room")
	ambianceID := chi.URLParam(r, "value")
	s.finishLegacyCommand(w, s.dispatcher.SetRoomAmbiance(r.Context(), roomID, ambianceID))
}

// finishLegacyCommand writes the response for a dispatcher call. Success is an
// empty 200 body, matching what the original routes returned.
func (s *Server) finishLegacyCommand(w http.ResponseWriter, err error) {
	if err != nil {
		s.writeLegacyError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) writeLegacyError(w http.ResponseWriter, err error) {
	var partial *command.PartialError
	if errors.As(err, &partial) {
		msgs := make([]string, len(partial.Failures))
		for i, f := range partial.Failures {
			msgs[i] = "device " + f.DeviceID + ": " + f.Message
		}
		writeLegacyJSON(w, http.StatusMultiStatus, handlers.PartialStatusResponse{
			Status: "partial",
			Errors: msgs,
		})
		return
	}

	status := http.StatusBadGateway
	switch {
	case kerrors.IsDeviceNotFound(err) || kerrors.IsGroupNotFound(err):
		status = http.StatusNotFound
	case kerrors.IsInvalidInput(err):
		status = http.StatusBadRequest
	}
	writeLegacyJSON(w, status, map[string]string{"error": err.Error()})
}

func writeLegacyJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
