package category

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/valmaiimtiyaz/artzybackend/pkg/utilities"
)

// Handler contains dependencies for handling category endpoints.
type Handler struct {
	svc    *Service
	logger *zap.SugaredLogger
}

// NewHandler constructs a new Handler.
func NewHandler(svc *Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// List returns every category as a JSON array.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	cats, err := h.svc.List(r.Context())
	if err != nil {
		h.logger.Errorw("list categories failed", "err", err)
		utilities.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	utilities.WriteJSON(w, http.StatusOK, cats)
}
