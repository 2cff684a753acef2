package artwork

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/valmaiimtiyaz/artzybackend/internal/auth"
	"github.com/valmaiimtiyaz/artzybackend/pkg/utilities"
)

// Handler exposes the artwork endpoints.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// Year accepts a JSON number, a numeric string, an empty string or null.
type Year struct {
	Value *int
}

func (y *Year) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		y.Value = nil
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			y.Value = nil
			return nil
		}
		b = []byte(s)
	}
	v, err := strconv.Atoi(string(b))
	if err != nil {
		return fmt.Errorf("year must be a whole number: %w", err)
	}
	y.Value = &v
	return nil
}

// ArtworkRequest is the body of create and update; update replaces every field.
type ArtworkRequest struct {
	Image       string  `json:"image" validate:"required"`
	Title       string  `json:"title" validate:"required,max=200"`
	Artist      string  `json:"artist" validate:"required,max=200"`
	Year        Year    `json:"year"`
	Category    string  `json:"category" validate:"max=100"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
}

func (req ArtworkRequest) input() (Input, error) {
	if y := req.Year.Value; y != nil && (*y < 0 || *y > 9999) {
		return Input{}, errors.New("year out of range")
	}
	return Input{
		Image:       req.Image,
		Title:       req.Title,
		Artist:      req.Artist,
		Year:        req.Year.Value,
		Category:    req.Category,
		Description: req.Description,
	}, nil
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (Input, bool) {
	var req ArtworkRequest
	if err := utilities.DecodeJSON(r, &req); err != nil {
		h.logger.Debugw("invalid artwork payload", "err", err)
		utilities.WriteError(w, http.StatusBadRequest, utilities.ValidationMessage(err))
		return Input{}, false
	}
	in, err := req.input()
	if err != nil {
		utilities.WriteError(w, http.StatusBadRequest, err.Error())
		return Input{}, false
	}
	return in, true
}

// artworkID parses the {id} path value; it writes a 400 and reports false when invalid.
func artworkID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := utilities.PathID(r, "id")
	if !ok {
		utilities.WriteError(w, http.StatusBadRequest, "Invalid artwork id")
	}
	return id, ok
}

func identity(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		utilities.WriteError(w, http.StatusUnauthorized, "Token required!")
	}
	return id, ok
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	in, ok := h.decode(w, r)
	if !ok {
		return
	}
	a, err := h.svc.Create(r.Context(), id, in)
	if err != nil {
		if errors.Is(err, ErrInvalidCategory) {
			utilities.WriteError(w, http.StatusBadRequest, "Category invalid!")
			return
		}
		h.logger.Errorw("create artwork failed", "user_id", id.UserID, "err", err)
		utilities.WriteError(w, http.StatusInternalServerError, "Failed to save artwork!")
		return
	}
	utilities.WriteJSON(w, http.StatusCreated, a)
}

func (h *Handler) ListOwn(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	items, err := h.svc.ListOwn(r.Context(), id)
	if err != nil {
		h.logger.Errorw("list artworks failed", "user_id", id.UserID, "err", err)
		utilities.WriteError(w, http.StatusInternalServerError, "Failed to get gallery!")
		return
	}
	utilities.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) GetOwn(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	artID, ok := artworkID(w, r)
	if !ok {
		return
	}
	d, err := h.svc.GetOwn(r.Context(), id, artID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			utilities.WriteError(w, http.StatusNotFound, "Artwork not found!")
			return
		}
		h.logger.Errorw("get artwork failed", "artwork_id", artID, "err", err)
		utilities.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	utilities.WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	artID, ok := artworkID(w, r)
	if !ok {
		return
	}
	in, ok := h.decode(w, r)
	if !ok {
		return
	}
	d, err := h.svc.Update(r.Context(), id, artID, in)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			utilities.WriteError(w, http.StatusNotFound, "Artwork not found or unauthorized")
			return
		}
		h.logger.Errorw("update artwork failed", "artwork_id", artID, "err", err)
		utilities.WriteError(w, http.StatusInternalServerError, "Failed to update artwork!")
		return
	}
	utilities.WriteJSON(w, http.StatusOK, map[string]any{"message": "Artwork updated successfully!", "artwork": d})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := identity(w, r)
	if !ok {
		return
	}
	artID, ok := artworkID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), id, artID); err != nil {
		h.logger.Errorw("delete artwork failed", "artwork_id", artID, "err", err)
		utilities.WriteError(w, http.StatusInternalServerError, "Failed to delete!")
		return
	}
	utilities.WriteJSON(w, http.StatusOK, map[string]string{"message": "Artwork deleted!"})
}

// ListByUsername serves the public gallery; it runs behind the optional authenticator.
func (h *Handler) ListByUsername(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	items, err := h.svc.ListByUsername(r.Context(), username, auth.ViewerID(r.Context()))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			utilities.WriteJSON(w, http.StatusNotFound, map[string]string{"message": "User not found"})
			return
		}
		h.logger.Errorw("public gallery failed", "username", username, "err", err)
		utilities.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	utilities.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) GetPublic(w http.ResponseWriter, r *http.Request) {
	artID, ok := artworkID(w, r)
	if !ok {
		return
	}
	p, err := h.svc.GetPublic(r.Context(), artID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			utilities.WriteError(w, http.StatusNotFound, "Artwork not found!")
			return
		}
		h.logger.Errorw("get public artwork failed", "artwork_id", artID, "err", err)
		utilities.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	utilities.WriteJSON(w, http.StatusOK, p)
}
