package server

import (
	"net/http"

	"github.com/jrsteele09/surf-club-server/auth"
)

type contentRequest struct {
	Content string `json:"content"`
}

func (s *Server) CreateCommentHandler(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	var req contentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	comment, err := s.comments.Create(r.Context(), id, r.PathValue("postId"), req.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Comment created successfully",
		"comment": comment,
	})
}

func (s *Server) CommentsByPostHandler(w http.ResponseWriter, r *http.Request, _ auth.Identity) {
	list, err := s.comments.ListByPost(r.Context(), r.PathValue("postId"))
	if err != nil {
		writeError(w, err)
		return
	}
	message := "Comments retrieved successfully."
	if len(list) == 0 {
		message = "No comments found for this post."
	}
	writeJSON(w, http.StatusOK, map[string]any{"comments": list, "message": message})
}

func (s *Server) GetCommentHandler(w http.ResponseWriter, r *http.Request, _ auth.Identity) {
	comment, err := s.comments.Get(r.Context(), r.PathValue("commentId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comment)
}

func (s *Server) CommentsByUserHandler(w http.ResponseWriter, r *http.Request, _ auth.Identity) {
	list, err := s.comments.ListByAccount(r.Context(), r.PathValue("userId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) UpdateCommentHandler(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	var req contentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	comment, err := s.comments.Update(r.Context(), id, r.PathValue("commentId"), req.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":   "Comment updated successfully",
		"comment":   comment,
		"timeStamp": comment.Timestamp,
	})
}

func (s *Server) DeleteCommentHandler(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	remaining, err := s.comments.Delete(r.Context(), id, r.PathValue("commentId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":       "Comment deleted successfully",
		"numOfComments": remaining,
	})
}

func (s *Server) DeleteAllCommentsHandler(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	post, err := s.comments.DeleteAllForPost(r.Context(), id, r.PathValue("postId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":       "All comments deleted successfully",
		"post":          post,
		"commentAmount": len(post.Comments),
	})
}
