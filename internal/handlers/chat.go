package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phuslu/log"

	"github.com/CodeurSahil/ChatDOCX-pdf-rag/internal/domain"
	"github.com/CodeurSahil/ChatDOCX-pdf-rag/internal/service"
)

type ChatHandler struct {
	Service  *service.Service
	Validate *validator.Validate
	Logger   *log.Logger
}

// ChatRequest mirrors the front-end payload: the session's collection
// name plus the full conversation so far, newest message last.
type ChatRequest struct {
	CollectionName string           `json:"collection_name" validate:"required,uuid4"`
	Content        []domain.Message `json:"content" validate:"required"`
}

type chatResponse struct {
	Success      bool   `json:"success"`
	Query        string `json:"query"`
	Response     string `json:"response"`
	SourcesCount int    `json:"sources_count"`
}

// Chat handles POST /chat.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.Logger, domain.NewInputError("invalid request payload"))
		return
	}
	if len(req.Content) == 0 {
		writeError(w, h.Logger, domain.NewInputError("no conversation history provided"))
		return
	}
	if err := h.Validate.Struct(&req); err != nil {
		writeError(w, h.Logger, domain.NewInputError("invalid request: %v", err))
		return
	}

	result, err := h.Service.Chat(r.Context(), req.CollectionName, req.Content)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Success:      true,
		Query:        req.Content[len(req.Content)-1].Content,
		Response:     result.Answer,
		SourcesCount: result.SourceCount,
	})
}
