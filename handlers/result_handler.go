package handlers

import (
	"errors"
	"net/http"

	"github.com/marchalgreen/rundeklar/models"
	"github.com/marchalgreen/rundeklar/services"
)

type ResultHandler struct {
	resultService services.ResultService
}

func NewResultHandler(resultService services.ResultService) *ResultHandler {
	return &ResultHandler{resultService: resultService}
}

// Create handles POST /results.
func (h *ResultHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Round       int               `json:"round"`
		CourtNumber int               `json:"court_number"`
		Sets        []models.SetScore `json:"sets"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Round <= 0 || input.CourtNumber <= 0 {
		badRequestResponse(w, r, errors.New("round and court_number are required"))
		return
	}

	result, err := h.resultService.Record(r.Context(), input.Round, input.CourtNumber, input.Sets)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"result": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListBySession handles GET /sessions/{sessionID}/results.
func (h *ResultHandler) ListBySession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := getIDFromURL(r, "sessionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	results, err := h.resultService.ListBySession(r.Context(), sessionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"results": results}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
