package response

import (
	"time"

	"rentmart/internal/usecase/commands"
	"rentmart/internal/usecase/queries"

	"github.com/google/uuid"
)

type LoginResponse struct {
	Token string `json:"token"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func FromLoginResult(result *commands.LoginResult) *LoginResponse {
	return &LoginResponse{
		Token: result.Token,
		Name:  result.Name,
		Role:  result.Role,
	}
}

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func FromUserView(view *queries.UserView) *UserResponse {
	return &UserResponse{
		ID:        view.ID,
		Email:     view.Email,
		Name:      view.Name,
		Role:      view.Role,
		CreatedAt: view.CreatedAt,
	}
}
