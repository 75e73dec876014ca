package commands

import (
	"context"

	"rentmart/internal/infra"
	"rentmart/internal/pkg/errs"
	"rentmart/internal/pkg/jwt"
	"rentmart/internal/pkg/password"
)

type LoginResult struct {
	Token string
	Name  string
	Role  string
}

type AuthCommands interface {
	Login(ctx context.Context, email, rawPassword string) (*LoginResult, error)
}

type authCommandsImpl struct {
	userRepo   UserRepository
	jwtService *jwt.Service
}

func NewAuthCommands(userRepo UserRepository, jwtService *jwt.Service) AuthCommands {
	return &authCommandsImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Login returns ErrInvalidCredentials for both unknown email and wrong
// password so the response does not reveal which accounts exist.
func (a *authCommandsImpl) Login(ctx context.Context, email, rawPassword string) (*LoginResult, error) {
	account, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrInvalidCredentials
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if err := password.ComparePassword(account.PasswordHash(), rawPassword); err != nil {
		return nil, errs.ErrInvalidCredentials
	}

	token, err := a.jwtService.GenerateToken(account.ID(), account.Role())
	if err != nil {
		return nil, errs.Wrap(err, "failed to generate token")
	}

	return &LoginResult{
		Token: token,
		Name:  account.Name(),
		Role:  account.Role().String(),
	}, nil
}
