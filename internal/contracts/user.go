package contracts

import "github.com/marcojulioc/Finanzas-Personales-2.0-sub000/internal/domain/user"

type UserRegisterRequest struct {
	Name  string `json:"name" binding:"required,max=100"`
	Email string `json:"email" binding:"required,email"`
}

type UserRegisterResponse struct {
	Message  string     `json:"message"`
	User     *user.User `json:"user"`
	ApiToken string     `json:"api_token"`
}

type UserSingleResponse struct {
	User *user.User `json:"user"`
}
