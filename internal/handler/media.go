package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"socialite/internal/httputil"
	"socialite/internal/model"
	"socialite/internal/service"
	"socialite/internal/transport/http/middleware"
)

type MediaHandler struct {
	mediaService *service.MediaService
}

func NewMediaHandler(mediaService *service.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// Presign handles POST /media/presign
func (h *MediaHandler) Presign(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req model.PresignUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	resp, err := h.mediaService.PresignUpload(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrBadContentType):
			httputil.WriteBadRequest(w, "Unsupported content type")
		case errors.Is(err, model.ErrFileTooLarge):
			httputil.WriteBadRequest(w, "File exceeds 10MB limit")
		default:
			log.Printf("[ERROR] Presign handler: user=%d err=%v", userID, err)
			httputil.WriteInternalError(w, err, "Failed to presign upload")
		}
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, resp)
}

// PresignBatch handles POST /media/presign/batch
func (h *MediaHandler) PresignBatch(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req model.PresignUploadBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	resp, err := h.mediaService.PresignUploadBatch(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrTooManyPresigns):
			httputil.WriteBadRequest(w, "Batch must contain 1-10 items")
		case errors.Is(err, model.ErrBadContentType):
			httputil.WriteBadRequest(w, "Unsupported content type")
		case errors.Is(err, model.ErrFileTooLarge):
			httputil.WriteBadRequest(w, "File exceeds 10MB limit")
		default:
			log.Printf("[ERROR] PresignBatch handler: user=%d err=%v", userID, err)
			httputil.WriteInternalError(w, err, "Failed to presign uploads")
		}
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, resp)
}
