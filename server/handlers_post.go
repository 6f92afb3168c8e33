package server

import (
	"net/http"

	"github.com/jrsteele09/surf-club-server/auth"
	"github.com/jrsteele09/surf-club-server/posts"
)

func (s *Server) CreatePostHandler(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	var req posts.CreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	post, err := s.posts.Create(r.Context(), id, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Post created successfully",
		"post":    post,
	})
}

func (s *Server) ListPostsHandler(w http.ResponseWriter, r *http.Request, _ auth.Identity) {
	list, err := s.posts.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) FuturePostsHandler(w http.ResponseWriter, r *http.Request, _ auth.Identity) {
	list, err := s.posts.ListUpcoming(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) GetPostHandler(w http.ResponseWriter, r *http.Request, _ auth.Identity) {
	post, err := s.posts.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (s *Server) UpdatePostHandler(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	var req posts.UpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	post, err := s.posts.Update(r.Context(), id, r.PathValue("id"), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Post updated successfully",
		"post":    post,
	})
}

func (s *Server) DeletePostHandler(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	if err := s.posts.Delete(r.Context(), id, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageBody{Message: "Post deleted successfully"})
}

func (s *Server) LikePostHandler(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	liked, count, err := s.posts.ToggleLike(r.Context(), id, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	message := "Like removed successfully"
	if liked {
		message = "Post liked successfully"
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": message, "likeCount": count})
}

func (s *Server) JoinPostHandler(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	joined, count, err := s.posts.ToggleParticipation(r.Context(), id, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	message := "Participation removed successfully"
	if joined {
		message = "Participation confirmed successfully"
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": message, "participantCount": count})
}

func (s *Server) ClearLikesHandler(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	if err := s.posts.ClearLikes(r.Context(), id, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "All likes deleted successfully", "likeCount": 0})
}

func (s *Server) ClearParticipantsHandler(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	if err := s.posts.ClearParticipants(r.Context(), id, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "All participants removed successfully", "participantCount": 0})
}
