package httptransport

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"ptz-simulator/internal/platform/middleware"
	dErrors "ptz-simulator/pkg/domain-errors"
)

// AdminAuth defines the interface for the shared-credential login.
type AdminAuth interface {
	Login(username, password string) (string, error)
}

// AdminHandler issues admin tokens.
type AdminHandler struct {
	logger *slog.Logger
	auth   AdminAuth
}

func NewAdminHandler(auth AdminAuth, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{logger: logger, auth: auth}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (h *AdminHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "corps de requête invalide"))
		return
	}

	token, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		h.logger.WarnContext(ctx, "admin login rejected",
			"request_id", middleware.GetRequestID(ctx),
			"username", req.Username,
		)
		WriteError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, loginResponse{Token: token})
}
