package server

import (
	"net/http"

	"github.com/jrsteele09/surf-club-server/auth"
	"github.com/jrsteele09/surf-club-server/media"
)

type chatRequest struct {
	Message string `json:"message"`
}

type presignRequest struct {
	Kind        media.Kind `json:"kind"`
	ContentType string     `json:"contentType"`
}

func (s *Server) ChatMessageHandler(w http.ResponseWriter, r *http.Request, _ auth.Identity) {
	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	reply, err := s.chat.Send(r.Context(), req.Message)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageBody{Message: reply})
}

func (s *Server) PresignUploadHandler(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	var req presignRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	upload, err := s.media.PresignUpload(r.Context(), id.AccountID, req.Kind, req.ContentType)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, upload)
}

func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
