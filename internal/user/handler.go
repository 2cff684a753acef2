package user

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/valmaiimtiyaz/artzybackend/internal/auth"
	"github.com/valmaiimtiyaz/artzybackend/internal/user/entity"
	"github.com/valmaiimtiyaz/artzybackend/pkg/utilities"
)

// Handler exposes HTTP endpoints for account and profile operations.
type Handler struct {
	svc    *UserService
	logger *zap.SugaredLogger
}

func NewHandler(svc *UserService, logger *zap.SugaredLogger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// RegisterRequest request body for the register endpoint.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=50"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,maxbytes=72"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := utilities.DecodeJSON(r, &req); err != nil {
		h.logger.Debugw("invalid register payload", "err", err)
		utilities.WriteError(w, http.StatusBadRequest, utilities.ValidationMessage(err))
		return
	}
	u, err := h.svc.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailTaken):
			utilities.WriteError(w, http.StatusBadRequest, "Email already in use!")
		case errors.Is(err, ErrUsernameTaken):
			utilities.WriteError(w, http.StatusBadRequest, "Username already taken!")
		case errors.Is(err, auth.ErrPasswordTooLong):
			utilities.WriteError(w, http.StatusBadRequest, "Password too long!")
		default:
			h.logger.Errorw("register failed", "err", err)
			utilities.WriteError(w, http.StatusInternalServerError, "Server error")
		}
		return
	}
	utilities.WriteJSON(w, http.StatusCreated, map[string]any{"message": "Register Success!", "user": u})
}

// LoginRequest login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := utilities.DecodeJSON(r, &req); err != nil {
		h.logger.Debugw("invalid login payload", "err", err)
		utilities.WriteError(w, http.StatusBadRequest, utilities.ValidationMessage(err))
		return
	}
	token, profile, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailNotFound):
			utilities.WriteError(w, http.StatusBadRequest, "Email not found!")
		case errors.Is(err, ErrWrongPassword):
			utilities.WriteError(w, http.StatusBadRequest, "Wrong password!")
		default:
			h.logger.Errorw("login failed", "err", err)
			utilities.WriteError(w, http.StatusInternalServerError, "Server error")
		}
		return
	}
	utilities.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Login success!",
		"token":   token,
		"user":    profile,
	})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		utilities.WriteError(w, http.StatusUnauthorized, "Token required!")
		return
	}
	p, err := h.svc.Profile(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			utilities.WriteError(w, http.StatusNotFound, "User not found!")
			return
		}
		h.logger.Errorw("get profile failed", "user_id", id.UserID, "err", err)
		utilities.WriteError(w, http.StatusInternalServerError, "Failed to get profile!")
		return
	}
	utilities.WriteJSON(w, http.StatusOK, p)
}

// UpdateProfileRequest replaces the caller's profile; omitted optional fields are cleared.
type UpdateProfileRequest struct {
	FirstName  *string `json:"first_name" validate:"omitempty,max=100"`
	LastName   *string `json:"last_name" validate:"omitempty,max=100"`
	Username   string  `json:"username" validate:"required,max=50"`
	Email      string  `json:"email" validate:"required,email,max=254"`
	ProfilePic *string `json:"profile_pic"`
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		utilities.WriteError(w, http.StatusUnauthorized, "Token required!")
		return
	}
	var req UpdateProfileRequest
	if err := utilities.DecodeJSON(r, &req); err != nil {
		h.logger.Debugw("invalid profile payload", "err", err)
		utilities.WriteError(w, http.StatusBadRequest, utilities.ValidationMessage(err))
		return
	}
	p, err := h.svc.UpdateProfile(r.Context(), id, entity.ProfileUpdate{
		Username:   req.Username,
		Email:      req.Email,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		ProfilePic: req.ProfilePic,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailTaken):
			utilities.WriteError(w, http.StatusBadRequest, "Email already in use!")
		case errors.Is(err, ErrUsernameTaken):
			utilities.WriteError(w, http.StatusBadRequest, "Username already taken!")
		case errors.Is(err, ErrUserNotFound):
			utilities.WriteError(w, http.StatusNotFound, "User not found!")
		default:
			h.logger.Errorw("update profile failed", "user_id", id.UserID, "err", err)
			utilities.WriteError(w, http.StatusInternalServerError, "Failed to update profile!")
		}
		return
	}
	utilities.WriteJSON(w, http.StatusOK, map[string]any{"message": "Profile updated!", "user": p})
}

// ForgotPasswordRequest forgot-password payload.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required"`
}

func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := utilities.DecodeJSON(r, &req); err != nil {
		utilities.WriteError(w, http.StatusBadRequest, utilities.ValidationMessage(err))
		return
	}
	if _, err := h.svc.ForgotPassword(r.Context(), req.Email); err != nil {
		if errors.Is(err, ErrEmailNotFound) {
			utilities.WriteError(w, http.StatusNotFound, "Email not registered!")
			return
		}
		h.logger.Errorw("forgot password failed", "err", err)
		utilities.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	utilities.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Reset link has been sent to console (see backend terminal)",
	})
}

// ResetPasswordRequest carries the reset token from the emailed link and the new password.
type ResetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=6,maxbytes=72"`
}

func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := utilities.DecodeJSON(r, &req); err != nil {
		utilities.WriteError(w, http.StatusBadRequest, utilities.ValidationMessage(err))
		return
	}
	if err := h.svc.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		switch {
		case errors.Is(err, ErrInvalidResetToken):
			utilities.WriteError(w, http.StatusBadRequest, "Reset token invalid or expired")
			return
		case errors.Is(err, auth.ErrPasswordTooLong):
			utilities.WriteError(w, http.StatusBadRequest, "Password too long!")
			return
		}
		h.logger.Errorw("reset password failed", "err", err)
		utilities.WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}
	utilities.WriteJSON(w, http.StatusOK, map[string]string{"message": "Password has been reset!"})
}
