package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phuslu/log"

	"github.com/CodeurSahil/ChatDOCX-pdf-rag/internal/domain"
	"github.com/CodeurSahil/ChatDOCX-pdf-rag/internal/service"
)

type SessionHandler struct {
	Service  *service.Service
	Validate *validator.Validate
	Logger   *log.Logger
}

type deleteSessionRequest struct {
	CollectionName string `json:"collection_name" validate:"required"`
}

type deleteSessionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Delete handles POST /delete_session. Deleting a session that does not
// exist reports success; the operation is idempotent.
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req deleteSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.Logger, domain.NewInputError("invalid request payload"))
		return
	}
	if err := h.Validate.Struct(&req); err != nil {
		writeError(w, h.Logger, domain.NewInputError("collection name is required"))
		return
	}

	cleared, err := h.Service.ClearSession(r.Context(), req.CollectionName)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	message := fmt.Sprintf("collection %q deleted successfully", req.CollectionName)
	if !cleared {
		message = fmt.Sprintf("collection %q does not exist", req.CollectionName)
	}
	writeJSON(w, http.StatusOK, deleteSessionResponse{Success: true, Message: message})
}
