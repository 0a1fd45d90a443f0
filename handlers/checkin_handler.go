package handlers

import (
	"errors"
	"net/http"

	"github.com/marchalgreen/rundeklar/services"
)

type CheckInHandler struct {
	checkInService services.CheckInService
}

func NewCheckInHandler(checkInService services.CheckInService) *CheckInHandler {
	return &CheckInHandler{checkInService: checkInService}
}

// Create handles POST /checkins.
func (h *CheckInHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input struct {
		PlayerID int `json:"player_id"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.PlayerID <= 0 {
		badRequestResponse(w, r, errors.New("player_id is required"))
		return
	}

	checkIn, err := h.checkInService.CheckIn(r.Context(), input.PlayerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"check_in": checkIn}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Delete handles DELETE /checkins/{playerID}.
func (h *CheckInHandler) Delete(w http.ResponseWriter, r *http.Request) {
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.checkInService.CheckOut(r.Context(), playerID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// List handles GET /checkins.
func (h *CheckInHandler) List(w http.ResponseWriter, r *http.Request) {
	checkIns, err := h.checkInService.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"check_ins": checkIns}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
