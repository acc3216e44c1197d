package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ranjanashish/leh-registry/internal/domain/repository"
	"github.com/ranjanashish/leh-registry/internal/observability/logger"
	"github.com/ranjanashish/leh-registry/internal/service"
)

// UsersController traduce las operaciones de cuentas al wire format de la
// API: sobres {success, message} y los códigos del contrato original.
type UsersController struct {
	users *service.Users
}

func NewUsersController(users *service.Users) *UsersController {
	return &UsersController{users: users}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool             `json:"success"`
	User    *repository.User `json:"user"`
}

// Login: POST /login
func (c *UsersController) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !ReadJSON(w, r, &req) {
		return
	}

	u, err := c.users.Login(r.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		WriteJSON(w, http.StatusOK, loginResponse{Success: true, User: u})
	case repository.IsNotFound(err):
		writeStatus(w, http.StatusUnauthorized, false, "Invalid credentials")
	default:
		logger.From(r.Context()).Error("login failed", logger.Err(err))
		writeStatus(w, http.StatusInternalServerError, false, "Login error")
	}
}

type addUserRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
	Password   string `json:"password"`
}

// Add: POST /add-user
func (c *UsersController) Add(w http.ResponseWriter, r *http.Request) {
	var req addUserRequest
	if !ReadJSON(w, r, &req) {
		return
	}

	err := c.users.Add(r.Context(), repository.CreateUserInput{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Department: req.Department,
		Password:   req.Password,
	})
	switch {
	case err == nil:
		writeStatus(w, http.StatusOK, true, "User added successfully")
	case repository.IsInvalidInput(err):
		writeStatus(w, http.StatusBadRequest, false, "All fields are required")
	case repository.IsConflict(err):
		writeStatus(w, http.StatusConflict, false, "Email already exists")
	default:
		logger.From(r.Context()).Error("add user failed", logger.Err(err))
		writeStatus(w, http.StatusInternalServerError, false, "Error creating user")
	}
}

type editUserRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
}

// Edit: PUT /edit-user/{id}
// Siempre 200 con success=existía; un id malformado cuenta como inexistente.
func (c *UsersController) Edit(w http.ResponseWriter, r *http.Request) {
	var req editUserRequest
	if !ReadJSON(w, r, &req) {
		return
	}

	existed, err := c.users.Edit(r.Context(), chi.URLParam(r, "id"), repository.UpdateUserInput{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Department: req.Department,
	})
	switch {
	case err == nil:
		writeStatus(w, http.StatusOK, existed, "")
	case repository.IsInvalidID(err):
		writeStatus(w, http.StatusOK, false, "")
	default:
		logger.From(r.Context()).Error("edit user failed", logger.Err(err))
		writeStatus(w, http.StatusInternalServerError, false, "Error updating user")
	}
}

// Delete: DELETE /delete-user/{id}
// Los rechazos van con 200 y success=false, fiel al contrato original.
func (c *UsersController) Delete(w http.ResponseWriter, r *http.Request) {
	err := c.users.Delete(r.Context(), chi.URLParam(r, "id"))
	switch {
	case err == nil:
		writeStatus(w, http.StatusOK, true, "")
	case repository.IsNotFound(err), repository.IsInvalidID(err):
		writeStatus(w, http.StatusOK, false, "User not found")
	case repository.IsProtectedEntity(err):
		writeStatus(w, http.StatusOK, false, "Cannot delete admin user")
	default:
		logger.From(r.Context()).Error("delete user failed", logger.Err(err))
		writeStatus(w, http.StatusInternalServerError, false, "Delete error")
	}
}

// List: GET /users
func (c *UsersController) List(w http.ResponseWriter, r *http.Request) {
	users, err := c.users.List(r.Context())
	if err != nil {
		logger.From(r.Context()).Error("list users failed", logger.Err(err))
		WriteJSON(w, http.StatusInternalServerError, map[string]string{"message": "Fetch error"})
		return
	}
	if users == nil {
		users = []repository.User{}
	}
	WriteJSON(w, http.StatusOK, users)
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}

// ResetPassword: POST /reset-password
func (c *UsersController) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if !ReadJSON(w, r, &req) {
		return
	}

	matched, err := c.users.ResetPassword(r.Context(), req.Email, req.NewPassword)
	switch {
	case err == nil:
		writeStatus(w, http.StatusOK, matched, "")
	case repository.IsInvalidInput(err):
		writeStatus(w, http.StatusBadRequest, false, "Email and new password required")
	default:
		logger.From(r.Context()).Error("reset password failed", logger.Err(err))
		writeStatus(w, http.StatusInternalServerError, false, "Server error")
	}
}
