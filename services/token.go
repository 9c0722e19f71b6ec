package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lucsky/cuid"
	"github.com/madflojo/tasks"
	"go.uber.org/zap"

	"github.com/tjarju/bank-users-go/config"
	"github.com/tjarju/bank-users-go/credentials"
	"github.com/tjarju/bank-users-go/errors"
	"github.com/tjarju/bank-users-go/models"
	"github.com/tjarju/bank-users-go/store"
	"github.com/tjarju/bank-users-go/types/requests"
	"github.com/tjarju/bank-users-go/types/responses"
)

type TokenService interface {
	IssueToken(context.Context, *requests.IssueTokenRequest) (*responses.Response[*models.AccessToken], error)
}

func NewTokenService(accounts store.AccountStore, tokenStore store.TokenStore, creds *credentials.Manager, scheduler *tasks.Scheduler, log *zap.Logger) TokenService {
	t := &tokenService{
		service: service{
			accounts:    accounts,
			tokens:      tokenStore,
			credentials: creds,
			log:         log,
		},
	}
	t.startExpirySweep(scheduler)
	return t
}

type tokenService struct {
	service
}

func (t *tokenService) IssueToken(ctx context.Context, req *requests.IssueTokenRequest) (*responses.Response[*models.AccessToken], error) {
	violations, err := validateShape(req)
	if err != nil {
		return nil, err
	}
	if len(violations) > 0 {
		return nil, errors.NewViolationsError(violations)
	}

	account, err := t.accounts.GetByUsername(ctx, req.Username)
	if err != nil {
		// A missing username and a bad password are indistinguishable to
		// the caller.
		if errors.AsAppError(err).Type == errors.ErrNotFound {
			return nil, errors.NewAuthenticationError("invalid username or password")
		}
		return nil, err
	}
	if !t.credentials.Verify(req.Password, account.PasswordHash) {
		return nil, errors.NewAuthenticationError("invalid username or password")
	}

	now := time.Now().UTC()
	accessToken := &models.AccessToken{
		ID:          uuid.NewString(),
		Name:        "API Token",
		Description: "token issued via credentials exchange",
		AccountID:   account.ID,
		Token:       "tok_" + cuid.Slug(),
		ExpiresAt:   now.Add(config.TOKEN_TTL),
	}
	if err := t.tokens.Insert(ctx, accessToken); err != nil {
		return nil, err
	}

	return &responses.Response[*models.AccessToken]{
		Status:  "successful",
		Message: "Token issued successfully",
		Data:    accessToken,
	}, nil
}

func (t *tokenService) startExpirySweep(scheduler *tasks.Scheduler) {
	err := scheduler.AddWithID("access-token-sweep", &tasks.Task{
		Interval: config.TOKEN_SWEEP_INTERVAL,
		TaskFunc: func() error {
			swept, err := t.tokens.DeleteExpired(context.Background(), time.Now().UTC())
			if err != nil {
				t.log.Error("sweeping expired access tokens", zap.Error(err))
				return nil
			}
			if swept > 0 {
				t.log.Info("swept expired access tokens", zap.Int64("count", swept))
			}
			return nil
		},
	})
	if err != nil {
		t.log.Error("registering access token sweep", zap.Error(err))
	}
}
