package handler

import "github.com/finadvisor/assessment-api/internal/core/domain"

type signupRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Msg    string `json:"msg"`
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

type userProfileResponse struct {
	User *domain.User `json:"user"`
}
