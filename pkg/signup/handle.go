package signup

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/surest/member-service/pkg/apierror"
)

type Handle struct {
	signupService *Service
}

func NewHandle(signupService *Service) Handle {
	return Handle{
		signupService: signupService,
	}
}

type RegisterRequest struct {
	Username string   `json:"username"`
	Password string   `json:"password"`
	Roles    []string `json:"roles"`
}

type RegisterResponse struct {
	UserID   uuid.UUID `json:"userId"`
	Username string    `json:"username"`
	Roles    []string  `json:"roles"`
}

// Register creates a new credential with a role set
// (POST /register)
func (h Handle) Register(w http.ResponseWriter, r *http.Request) {
	var request RegisterRequest
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
	if len(request.Roles) == 0 {
		details["roles"] = "at least one role is required"
	}
	if len(details) > 0 {
		apierror.Respond(w, r, apierror.ValidationFailed(details))
		return
	}

	cred, err := h.signupService.Register(r.Context(), request.Username, request.Password, request.Roles)
	if err != nil {
		apierror.Respond(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, RegisterResponse{
		UserID:   cred.ID,
		Username: cred.Username,
		Roles:    cred.Roles,
	})
}

func Routes(h Handle) *chi.Mux {
	r := chi.NewRouter()
	r.Post("/register", h.Register)
	return r
}
