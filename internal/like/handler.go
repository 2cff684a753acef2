package like

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/valmaiimtiyaz/artzybackend/internal/auth"
	"github.com/valmaiimtiyaz/artzybackend/pkg/utilities"
)

type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// ToggleResponse is the body of POST /api/artworks/{id}/like.
type ToggleResponse struct {
	Message   string `json:"message"`
	Liked     bool   `json:"liked"`
	LikeCount int64  `json:"like_count"`
}

func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		utilities.WriteError(w, http.StatusUnauthorized, "Token required!")
		return
	}
	artworkID, ok := utilities.PathID(r, "id")
	if !ok {
		utilities.WriteError(w, http.StatusBadRequest, "Invalid artwork id")
		return
	}
	res, err := h.svc.Toggle(r.Context(), id, artworkID)
	if err != nil {
		switch {
		case errors.Is(err, ErrArtworkNotFound):
			utilities.WriteError(w, http.StatusNotFound, "Artwork not found!")
			return
		case errors.Is(err, ErrUserNotFound):
			utilities.WriteError(w, http.StatusNotFound, "User not found!")
			return
		}
		h.logger.Errorw("toggle like failed", "artwork_id", artworkID, "user_id", id.UserID, "err", err)
		utilities.WriteError(w, http.StatusInternalServerError, "Failed to toggle like")
		return
	}
	msg := "Unliked"
	if res.Liked {
		msg = "Liked"
	}
	utilities.WriteJSON(w, http.StatusOK, ToggleResponse{Message: msg, Liked: res.Liked, LikeCount: res.LikeCount})
}
