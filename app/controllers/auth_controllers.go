package controllers

import (
	"net/http"

	"github.com/beshgebeya/pos/app/services"
	"github.com/beshgebeya/pos/pkg/middleware"
	"github.com/beshgebeya/pos/pkg/response"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

type signupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=80,alpha_dash"`
	Email    string `json:"email"    validate:"required,email,max=120"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Name     string `json:"name"     validate:"nullable,max=100"`
}

func (c *AuthController) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if !decode(w, r, &req) {
		return
	}

	user, err := c.service.Signup(r.Context(), services.SignupInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, user)
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decode(w, r, &req) {
		return
	}

	token, user, err := c.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		fail(w, r, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

func (c *AuthController) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	user, err := c.service.Profile(r.Context(), userID)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, user)
}
