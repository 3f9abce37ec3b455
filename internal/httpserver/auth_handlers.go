package httpserver

import (
	"encoding/json"
	"net/http"

	"collegeconnect/internal/domain"
	"collegeconnect/internal/service"
)

type registerRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	Branch        string `json:"branch"`
	Year          string `json:"year"`
	ContactNumber string `json:"contactNumber"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// tokenResponse pairs the issued bearer token with the sanitized user view.
type tokenResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// @Summary      Register a new student
// @Description  Create an account and return an access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body registerRequest true "Register input"
// @Success      201  {object}  tokenResponse
// @Failure      400  {object}  errorResponse
// @Router       /auth/register [post]
func handleRegister(authSvc *service.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
			return
		}

		res, err := authSvc.Register(r.Context(), service.RegisterInput{
			Name:          req.Name,
			Email:         req.Email,
			Password:      req.Password,
			Branch:        req.Branch,
			Year:          req.Year,
			ContactNumber: req.ContactNumber,
		})
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, tokenResponse{Token: res.Token, User: res.User})
	}
}

// @Summary      Login
// @Description  Login with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body loginRequest true "Login input"
// @Success      200  {object}  tokenResponse
// @Failure      400  {object}  errorResponse
// @Router       /auth/login [post]
func handleLogin(authSvc *service.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
			return
		}

		res, err := authSvc.Login(r.Context(), service.LoginInput{
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, tokenResponse{Token: res.Token, User: res.User})
	}
}
