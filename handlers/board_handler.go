package handlers

import (
	"errors"
	"net/http"

	"github.com/marchalgreen/rundeklar/services"
)

type BoardHandler struct {
	boardService services.BoardService
}

func NewBoardHandler(boardService services.BoardService) *BoardHandler {
	return &BoardHandler{boardService: boardService}
}

// View handles GET /board.
func (h *BoardHandler) View(w http.ResponseWriter, r *http.Request) {
	view, err := h.boardService.View(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.writeView(w, r, view)
}

// Move handles POST /board/move.
func (h *BoardHandler) Move(w http.ResponseWriter, r *http.Request) {
	var cmd services.MoveCommand
	if err := readJSON(w, r, &cmd); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if cmd.PlayerID <= 0 {
		badRequestResponse(w, r, errors.New("player_id is required"))
		return
	}

	view, err := h.boardService.Move(r.Context(), cmd)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.writeView(w, r, view)
}

// AutoArrange handles POST /board/arrange. The first call fills the
// empty courts; subsequent calls reshuffle everything that is not
// locked.
func (h *BoardHandler) AutoArrange(w http.ResponseWriter, r *http.Request) {
	outcome, err := h.boardService.AutoArrange(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"arrange": outcome}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ResetRound handles POST /board/reset.
func (h *BoardHandler) ResetRound(w http.ResponseWriter, r *http.Request) {
	view, err := h.boardService.ResetRound(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.writeView(w, r, view)
}

// ToggleLock handles POST /board/courts/{courtNumber}/lock.
func (h *BoardHandler) ToggleLock(w http.ResponseWriter, r *http.Request) {
	courtNumber, err := getIDFromURL(r, "courtNumber")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	view, err := h.boardService.ToggleLock(r.Context(), courtNumber)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.writeView(w, r, view)
}

// SetCapacity handles PUT /board/courts/{courtNumber}/capacity.
func (h *BoardHandler) SetCapacity(w http.ResponseWriter, r *http.Request) {
	courtNumber, err := getIDFromURL(r, "courtNumber")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Capacity int `json:"capacity"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	view, err := h.boardService.SetCapacity(r.Context(), courtNumber, input.Capacity)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.writeView(w, r, view)
}

// ActivatePlayer handles POST /board/players/{playerID}/activate.
func (h *BoardHandler) ActivatePlayer(w http.ResponseWriter, r *http.Request) {
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	view, err := h.boardService.ActivatePlayer(r.Context(), playerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.writeView(w, r, view)
}

// MarkAvailable handles POST /board/players/{playerID}/available.
func (h *BoardHandler) MarkAvailable(w http.ResponseWriter, r *http.Request) {
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	view, err := h.boardService.MarkAvailable(r.Context(), playerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	h.writeView(w, r, view)
}

func (h *BoardHandler) writeView(w http.ResponseWriter, r *http.Request, view *services.BoardView) {
	if err := writeJSON(w, http.StatusOK, jsonResponse{"board": view}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
