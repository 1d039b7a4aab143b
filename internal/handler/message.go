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

type MessageHandler struct {
	messageService *service.MessageService
}

func NewMessageHandler(messageService *service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// Send handles POST /messages
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req model.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	msg, err := h.messageService.Send(r.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrCannotMessageSelf):
			httputil.WriteBadRequest(w, "Cannot message yourself")
		case errors.Is(err, model.ErrMessageEmpty):
			httputil.WriteBadRequest(w, "Message content is required")
		case errors.Is(err, model.ErrMessageTooLong):
			httputil.WriteBadRequest(w, "Message too long (max 2000 characters)")
		case errors.Is(err, model.ErrUserNotFound):
			httputil.WriteNotFound(w, "Recipient not found")
		case errors.Is(err, model.ErrBlocked):
			httputil.WriteForbidden(w, "Cannot message this user")
		default:
			log.Printf("[ERROR] Send message handler: user=%d err=%v", userID, err)
			httputil.WriteInternalError(w, err, "Failed to send message")
		}
		return
	}

	httputil.WriteSuccess(w, http.StatusCreated, msg)
}

// Conversations handles GET /messages
func (h *MessageHandler) Conversations(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}
	limit, offset, ok := pagination(w, r)
	if !ok {
		return
	}

	conversations, err := h.messageService.Conversations(r.Context(), userID, limit, offset)
	if err != nil {
		log.Printf("[ERROR] Conversations handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w, err, "Failed to get conversations")
		return
	}

	httputil.WritePage(w, http.StatusOK, conversations, limit, offset)
}

// Thread handles GET /messages/{id} where id is the peer user ID.
// Fetching a thread marks the peer's messages as read.
func (h *MessageHandler) Thread(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}
	peerID, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	limit, offset, ok := pagination(w, r)
	if !ok {
		return
	}

	messages, err := h.messageService.Thread(r.Context(), userID, peerID, limit, offset)
	if err != nil {
		log.Printf("[ERROR] Thread handler: user=%d peer=%d err=%v", userID, peerID, err)
		httputil.WriteInternalError(w, err, "Failed to get messages")
		return
	}

	httputil.WritePage(w, http.StatusOK, messages, limit, offset)
}

// Edit handles PATCH /messages/{id}
func (h *MessageHandler) Edit(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}
	messageID, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	var req model.EditMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	msg, err := h.messageService.Edit(r.Context(), userID, messageID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrMessageEmpty):
			httputil.WriteBadRequest(w, "Message content is required")
		case errors.Is(err, model.ErrMessageTooLong):
			httputil.WriteBadRequest(w, "Message too long (max 2000 characters)")
		case errors.Is(err, model.ErrMessageNotFound):
			httputil.WriteNotFound(w, "Message not found")
		case errors.Is(err, model.ErrNotMessageSender):
			httputil.WriteForbidden(w, "You can only edit your own messages")
		case errors.Is(err, model.ErrEditWindowClosed):
			httputil.WriteForbidden(w, "Message can no longer be edited")
		default:
			log.Printf("[ERROR] Edit message handler: user=%d message=%d err=%v", userID, messageID, err)
			httputil.WriteInternalError(w, err, "Failed to edit message")
		}
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, msg)
}

// Delete handles DELETE /messages/{id}
func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}
	messageID, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.messageService.Delete(r.Context(), userID, messageID); err != nil {
		switch {
		case errors.Is(err, model.ErrMessageNotFound):
			httputil.WriteNotFound(w, "Message not found")
		case errors.Is(err, model.ErrNotMessageSender):
			httputil.WriteForbidden(w, "You can only delete your own messages")
		default:
			log.Printf("[ERROR] Delete message handler: user=%d message=%d err=%v", userID, messageID, err)
			httputil.WriteInternalError(w, err, "Failed to delete message")
		}
		return
	}

	httputil.WriteMessage(w, http.StatusOK, "Message deleted successfully")
}

// MarkRead handles POST /messages/{id}/read where id is the peer user ID.
func (h *MessageHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}
	peerID, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.messageService.MarkThreadRead(r.Context(), userID, peerID); err != nil {
		log.Printf("[ERROR] MarkRead handler: user=%d peer=%d err=%v", userID, peerID, err)
		httputil.WriteInternalError(w, err, "Failed to mark messages read")
		return
	}

	httputil.WriteMessage(w, http.StatusOK, "Messages marked read")
}
