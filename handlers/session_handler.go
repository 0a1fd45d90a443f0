package handlers

import (
	"net/http"

	"github.com/marchalgreen/rundeklar/services"
)

type SessionHandler struct {
	sessionService services.SessionService
}

func NewSessionHandler(sessionService services.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// Start handles POST /session. Starting twice returns the same session.
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessionService.Start(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"session": session}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// End handles POST /session/end.
func (h *SessionHandler) End(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessionService.End(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"session": session}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Active handles GET /session.
func (h *SessionHandler) Active(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessionService.Active(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"session": session}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SelectRound handles PUT /session/round/{round}.
func (h *SessionHandler) SelectRound(w http.ResponseWriter, r *http.Request) {
	round, err := getIDFromURL(r, "round")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	view, err := h.sessionService.SelectRound(r.Context(), round)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"board": view}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
