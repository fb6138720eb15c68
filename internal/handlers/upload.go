package handlers

import (
	"bytes"
	"io"
	"net/http"

	"github.com/phuslu/log"

	"github.com/CodeurSahil/ChatDOCX-pdf-rag/internal/domain"
	"github.com/CodeurSahil/ChatDOCX-pdf-rag/internal/extract"
	"github.com/CodeurSahil/ChatDOCX-pdf-rag/internal/service"
)

type UploadHandler struct {
	Service  *service.Service
	Logger   *log.Logger
	MaxBytes int64
}

type uploadResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	CollectionName string `json:"collection_name"`
}

// Upload handles POST /upload: a multipart form with a "file" field
// holding a PDF or DOCX document.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxBytes)

	if err := r.ParseMultipartForm(h.MaxBytes); err != nil {
		writeError(w, h.Logger, domain.NewInputError("the uploaded file is too big or the form is malformed"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, h.Logger, domain.NewInputError("no file provided"))
		return
	}
	defer file.Close()

	format, err := extract.FormatFromFilename(header.Filename)
	if err != nil {
		writeError(w, h.Logger, domain.NewInputError("%v", err))
		return
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		writeError(w, h.Logger, domain.NewInputError("failed to read uploaded file"))
		return
	}

	result, err := h.Service.Ingest(r.Context(), buf.Bytes(), format, header.Filename)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{
		Success:        true,
		Message:        result.Greeting,
		CollectionName: result.SessionID,
	})
}
