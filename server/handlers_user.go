package server

import (
	"net/http"

	"github.com/jrsteele09/surf-club-server/accounts"
	"github.com/jrsteele09/surf-club-server/auth"
)

type tokenRequest struct {
	Token string `json:"token"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type googleLoginRequest struct {
	Credential string `json:"credential"`
	Code       string `json:"code"`
}

type loginResponse struct {
	Email string `json:"email"`
	ID    string `json:"id"`
	*auth.LoginResult
}

func newLoginResponse(res *auth.LoginResult) loginResponse {
	return loginResponse{Email: res.Account.Email, ID: res.Account.ID, LoginResult: res}
}

func (s *Server) RegisterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req auth.RegisterRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}
		acct, err := s.sessions.Register(r.Context(), req)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"user": acct.Profile()})
	}
}

func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}
		res, err := s.sessions.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, newLoginResponse(res))
	}
}

func (s *Server) GoogleLoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req googleLoginRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}
		res, err := s.sessions.FederatedLogin(r.Context(), req.Credential, req.Code)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, newLoginResponse(res))
	}
}

func (s *Server) RefreshTokenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req tokenRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}
		pair, err := s.sessions.Refresh(r.Context(), req.Token)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, pair)
	}
}

func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req tokenRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}
		if err := s.sessions.Logout(r.Context(), req.Token); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, messageBody{Message: "User logged out successfully"})
	}
}

func (s *Server) UpdateUserHandler(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	var update accounts.ProfileUpdate
	if err := decodeJSON(r, &update); err != nil {
		writeError(w, err)
		return
	}
	if err := update.Validate(); err != nil {
		writeError(w, err)
		return
	}
	acct, err := s.accounts.UpdateProfile(r.Context(), id.AccountID, update)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "User updated successfully",
		"user":    acct.Profile(),
	})
}

func (s *Server) DeleteUserHandler(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	if err := s.sessions.DeleteAccount(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageBody{Message: "User deleted successfully"})
}

func (s *Server) GetUserHandler(w http.ResponseWriter, r *http.Request, _ auth.Identity) {
	acct, err := s.accounts.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, acct.Profile())
}

// ActivitiesHandler lists the sessions the caller has joined.
func (s *Server) ActivitiesHandler(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	list, err := s.posts.ListJoinedBy(r.Context(), id.AccountID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
