package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/tjarju/bank-users-go/credentials"
	"github.com/tjarju/bank-users-go/errors"
	"github.com/tjarju/bank-users-go/models"
	"github.com/tjarju/bank-users-go/store"
	"github.com/tjarju/bank-users-go/utils"
)

type service struct {
	accounts    store.AccountStore
	tokens      store.TokenStore
	credentials *credentials.Manager

	log *zap.Logger
}

// CallerFromContext extracts the authenticated account placed in the
// request context by the access-token middleware. Nil means anonymous.
func CallerFromContext(ctx context.Context) *models.Account {
	caller, _ := ctx.Value("user").(*models.Account)
	return caller
}

// validateShape runs struct-tag validation and returns the violations it
// found. A failure that does not decompose into field violations is
// returned as-is.
func validateShape(req any) ([]errors.FieldViolation, error) {
	err := utils.Validator.Validate(req)
	if err == nil {
		return nil, nil
	}
	app := errors.HandleBindError(err)
	if len(app.Violations) == 0 {
		return nil, app
	}
	return app.Violations, nil
}

// hasViolation reports whether field was already flagged, so the field
// stage does not double-report what the shape stage caught.
func hasViolation(violations []errors.FieldViolation, field string) bool {
	for _, v := range violations {
		if v.Field == field {
			return true
		}
	}
	return false
}
