package httputil

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// Pagination echoes the normalized paging parameters back to the client.
type Pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// Envelope is the response shape shared by every endpoint:
// {"success": bool, "data": ..., "error": "...", "message": "...", "pagination": {...}}
type Envelope struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
	Message    string      `json:"message,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// WriteJSON writes an arbitrary payload with the given status code.
func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			// Headers are already sent; nothing useful left to do.
			return
		}
	}
}

// WriteSuccess writes a success envelope wrapping data.
func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	WriteJSON(w, status, Envelope{Success: true, Data: data})
}

// WriteMessage writes a success envelope carrying only a human-readable message.
func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Envelope{Success: true, Message: message})
}

// WritePage writes a success envelope with pagination metadata.
func WritePage(w http.ResponseWriter, status int, data interface{}, limit, offset int) {
	WriteJSON(w, status, Envelope{
		Success:    true,
		Data:       data,
		Pagination: &Pagination{Limit: limit, Offset: offset},
	})
}

// WriteError writes a failure envelope with the given status code.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Envelope{Success: false, Error: message})
}

func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message)
}

func WriteUnauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, message)
}

func WriteForbidden(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusForbidden, message)
}

func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message)
}

func WriteConflict(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusConflict, message)
}

func WriteTooManyRequests(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusTooManyRequests, message)
}

// exposeDetail controls whether 500 responses carry the underlying error.
// Set once at startup from APP_ENV; development only.
var exposeDetail bool

// ExposeErrorDetail toggles internal error detail in 500 responses.
func ExposeErrorDetail(on bool) {
	exposeDetail = on
}

// WriteInternalError writes a 500. Outside development the client sees
// only the caller's message; in development the underlying error is
// appended so failures are debuggable without tailing logs.
func WriteInternalError(w http.ResponseWriter, err error, message string) {
	if exposeDetail && err != nil {
		message = message + ": " + err.Error()
	}
	WriteError(w, http.StatusInternalServerError, message)
}

// Paging defaults and caps shared by every list endpoint.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ParsePagination reads limit/offset query parameters. Missing values take the
// defaults; limit is capped at MaxLimit. Non-numeric or negative values are a
// validation error, not a silent clamp, so range mistakes surface to callers.
func ParsePagination(r *http.Request) (limit, offset int, ok bool) {
	limit = DefaultLimit
	offset = 0

	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			return 0, 0, false
		}
		if v > MaxLimit {
			v = MaxLimit
		}
		limit = v
	}

	if raw := r.URL.Query().Get("offset"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return 0, 0, false
		}
		offset = v
	}

	return limit, offset, true
}
