package login

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/surest/member-service/pkg/apierror"
)

type Handle struct {
	loginService *LoginService
}

func NewHandle(loginService *LoginService) Handle {
	return Handle{
		loginService: loginService,
	}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// Login authenticates a username/password pair and returns a bearer token
// (POST /login)
func (h Handle) Login(w http.ResponseWriter, r *http.Request) {
	var request LoginRequest
	if err := render.DecodeJSON(r.Body, &request); err != nil {
		apierror.Respond(w, r, apierror.ValidationFailed(map[string]interface{}{
			"body": "invalid request body",
		}))
		return
	}

	details := make(map[string]interface{})
	if request.Username == "" {
		details["username"] = "username is required"
	}
	if request.Password == "" {
		details["password"] = "password is required"
	}
	if len(details) > 0 {
		apierror.Respond(w, r, apierror.ValidationFailed(details))
		return
	}

	slog.Info("login request received", "username", request.Username)
	tokenStr, err := h.loginService.Login(r.Context(), request.Username, request.Password)
	if err != nil {
		apierror.Respond(w, r, err)
		return
	}

	slog.Info("login successful", "username", request.Username)
	render.JSON(w, r, LoginResponse{Token: tokenStr})
}

func Routes(h Handle) *chi.Mux {
	r := chi.NewRouter()
	r.Post("/login", h.Login)
	return r
}
