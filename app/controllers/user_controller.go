package controllers

import (
	"github.com/shashiranjanraj/kashvi-shop/app/resources"
	"github.com/shashiranjanraj/kashvi-shop/app/services"
	"github.com/shashiranjanraj/kashvi-shop/pkg/ctx"
	"github.com/shashiranjanraj/kashvi-shop/pkg/resource"
)

type createUserRequest struct {
	Username string `json:"username" validate:"required,max=80"`
	Email    string `json:"email"    validate:"required,email,max=150"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone"    validate:"nullable,max=20"`
	Address  string `json:"address"`
}

type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

// Store registers a buyer. POST /users/
func (uc *UserController) Store(c *ctx.Context) {
	var in createUserRequest
	if !c.BindJSON(&in) {
		return
	}
	u, err := uc.users.Register(c.Context(), services.NewUser{
		Username: in.Username,
		Email:    in.Email,
		Password: in.Password,
		Phone:    in.Phone,
		Address:  in.Address,
	})
	if err != nil {
		fail(c, err, "Could not create user")
		return
	}
	c.Created(resource.One(u, resources.User))
}
