package handlers

import (
	"net/http"

	"github.com/marchalgreen/rundeklar/repositories"
)

// PlayerHandler exposes the club roster. The roster itself is maintained
// elsewhere (membership system); this API only reads it.
type PlayerHandler struct {
	playerRepo repositories.PlayerRepository
}

func NewPlayerHandler(playerRepo repositories.PlayerRepository) *PlayerHandler {
	return &PlayerHandler{playerRepo: playerRepo}
}

// List handles GET /players.
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.playerRepo.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"players": players}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetByID handles GET /players/{playerID}.
func (h *PlayerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := h.playerRepo.GetByID(r.Context(), playerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
