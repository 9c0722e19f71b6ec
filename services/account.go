package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lucsky/cuid"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tjarju/bank-users-go/config"
	"github.com/tjarju/bank-users-go/credentials"
	"github.com/tjarju/bank-users-go/errors"
	"github.com/tjarju/bank-users-go/iban"
	"github.com/tjarju/bank-users-go/models"
	"github.com/tjarju/bank-users-go/policy"
	"github.com/tjarju/bank-users-go/store"
	"github.com/tjarju/bank-users-go/types/requests"
	"github.com/tjarju/bank-users-go/types/responses"
)

type AccountService interface {
	CreateAccount(context.Context, *requests.CreateAccountRequest) (*responses.Response[*responses.CreateAccountResponseData], error)
	FetchAccount(context.Context, *requests.FetchAccountRequest) (*responses.Response[*responses.AccountView], error)
	ListAccounts(context.Context, *requests.ListAccountsRequest) (*responses.Response[[]*responses.AccountView], error)
	ReplaceAccount(context.Context, *requests.ReplaceAccountRequest) (*responses.Response[*responses.AccountView], error)
	PatchAccount(context.Context, *requests.PatchAccountRequest) (*responses.Response[*responses.AccountView], error)
	DeleteAccount(context.Context, *requests.DeleteAccountRequest) error

	GetAccountByAccessToken(context.Context, string) (*models.Account, error)
}

func NewAccountService(accounts store.AccountStore, tokens store.TokenStore, creds *credentials.Manager, log *zap.Logger) AccountService {
	return &accountService{
		service{
			accounts:    accounts,
			tokens:      tokens,
			credentials: creds,
			log:         log,
		},
	}
}

type accountService struct {
	service
}

func (a *accountService) CreateAccount(ctx context.Context, req *requests.CreateAccountRequest) (*responses.Response[*responses.CreateAccountResponseData], error) {
	caller := CallerFromContext(ctx)
	if err := policy.Authorize(policy.OpCreate, caller); err != nil {
		return nil, err
	}
	if (req.IsStaff || req.IsSuperuser) && !caller.Elevated() {
		return nil, errors.NewPermissionError("only administrators may grant elevated roles")
	}

	violations, err := validateShape(req)
	if err != nil {
		return nil, err
	}

	currency, currencyErr := models.ParseCurrency(req.Currency)
	if currencyErr != nil && !hasViolation(violations, "currency") {
		violations = append(violations, errors.FieldViolation{Field: "currency", Reason: currencyErr.Error()})
	}
	normalizedIBAN, vio := checkIBAN(req.IBAN, req.IsStaff || req.IsSuperuser)
	if vio != nil && !hasViolation(violations, "iban") {
		violations = append(violations, *vio)
	}
	if len(violations) > 0 {
		return nil, errors.NewViolationsError(violations)
	}

	hash, err := a.credentials.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &models.Account{
		ID:           uuid.NewString(),
		Username:     req.Username,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        cases.Lower(language.English).String(req.Email),
		IBAN:         normalizedIBAN,
		Balance:      req.Balance,
		Currency:     currency,
		IsStaff:      req.IsStaff,
		IsSuperuser:  req.IsSuperuser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := a.accounts.Insert(ctx, account); err != nil {
		return nil, err
	}

	accessToken := &models.AccessToken{
		ID:          uuid.NewString(),
		Name:        "Default Token",
		Description: "default token for user requests",
		AccountID:   account.ID,
		Token:       "tok_" + cuid.Slug(),
		ExpiresAt:   now.Add(config.TOKEN_TTL),
	}
	if err := a.tokens.Insert(ctx, accessToken); err != nil {
		// Undo the account insert so a retry does not trip the username
		// unique index.
		if delErr := a.accounts.Delete(ctx, account.ID); delErr != nil {
			a.log.Error("rolling back account after token insert failure",
				zap.String("account_id", account.ID), zap.Error(delErr))
		}
		return nil, err
	}

	return &responses.Response[*responses.CreateAccountResponseData]{
		Status:  "successful",
		Message: "Account created successfully",
		Data: &responses.CreateAccountResponseData{
			User:  responses.NewAccountView(account),
			Token: accessToken,
		},
	}, nil
}

func (a *accountService) FetchAccount(ctx context.Context, req *requests.FetchAccountRequest) (*responses.Response[*responses.AccountView], error) {
	if err := policy.Authorize(policy.OpGet, CallerFromContext(ctx)); err != nil {
		return nil, err
	}

	account, err := a.accounts.Get(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	return &responses.Response[*responses.AccountView]{
		Status: "successful",
		Data:   responses.NewAccountView(account),
	}, nil
}

func (a *accountService) ListAccounts(ctx context.Context, req *requests.ListAccountsRequest) (*responses.Response[[]*responses.AccountView], error) {
	if err := policy.Authorize(policy.OpList, CallerFromContext(ctx)); err != nil {
		return nil, err
	}

	violations, err := validateShape(req)
	if err != nil {
		return nil, err
	}
	if len(violations) > 0 {
		return nil, errors.NewViolationsError(violations)
	}

	filter := store.Filter{Staff: req.Staff, Limit: req.Limit, Offset: req.Offset}
	if req.Currency != "" {
		currency, err := models.ParseCurrency(req.Currency)
		if err != nil {
			return nil, errors.NewViolationsError([]errors.FieldViolation{{Field: "currency", Reason: err.Error()}})
		}
		filter.Currency = &currency
	}

	accounts, err := a.accounts.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &responses.Response[[]*responses.AccountView]{
		Status: "successful",
		Data:   responses.NewAccountViews(accounts),
	}, nil
}

func (a *accountService) ReplaceAccount(ctx context.Context, req *requests.ReplaceAccountRequest) (*responses.Response[*responses.AccountView], error) {
	if err := policy.Authorize(policy.OpReplace, CallerFromContext(ctx)); err != nil {
		return nil, err
	}

	existing, err := a.accounts.Get(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	violations, err := validateShape(req)
	if err != nil {
		return nil, err
	}
	if req.Username != "" && req.Username != existing.Username {
		violations = append(violations, errors.FieldViolation{Field: "username", Reason: "cannot be changed"})
	}
	currency, currencyErr := models.ParseCurrency(req.Currency)
	if currencyErr != nil && !hasViolation(violations, "currency") {
		violations = append(violations, errors.FieldViolation{Field: "currency", Reason: currencyErr.Error()})
	}
	normalizedIBAN, vio := checkIBAN(req.IBAN, req.IsStaff || req.IsSuperuser)
	if vio != nil && !hasViolation(violations, "iban") {
		violations = append(violations, *vio)
	}
	if len(violations) > 0 {
		return nil, errors.NewViolationsError(violations)
	}

	updated := *existing
	updated.FirstName = req.FirstName
	updated.LastName = req.LastName
	updated.Email = cases.Lower(language.English).String(req.Email)
	updated.IBAN = normalizedIBAN
	updated.Balance = req.Balance
	updated.Currency = currency
	updated.IsStaff = req.IsStaff
	updated.IsSuperuser = req.IsSuperuser
	updated.UpdatedAt = time.Now().UTC()

	if req.Password != nil {
		hash, err := a.credentials.Hash(*req.Password)
		if err != nil {
			return nil, err
		}
		updated.PasswordHash = hash
	}

	if err := a.accounts.Update(ctx, &updated); err != nil {
		return nil, err
	}

	return &responses.Response[*responses.AccountView]{
		Status:  "successful",
		Message: "Account updated successfully",
		Data:    responses.NewAccountView(&updated),
	}, nil
}

func (a *accountService) PatchAccount(ctx context.Context, req *requests.PatchAccountRequest) (*responses.Response[*responses.AccountView], error) {
	if err := policy.Authorize(policy.OpPatch, CallerFromContext(ctx)); err != nil {
		return nil, err
	}

	existing, err := a.accounts.Get(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	violations, err := validateShape(req)
	if err != nil {
		return nil, err
	}
	if req.Username != nil && *req.Username != existing.Username {
		violations = append(violations, errors.FieldViolation{Field: "username", Reason: "cannot be changed"})
	}

	updated := *existing
	if req.FirstName != nil {
		updated.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		updated.LastName = *req.LastName
	}
	if req.Email != nil {
		updated.Email = cases.Lower(language.English).String(*req.Email)
	}
	if req.Balance != nil {
		updated.Balance = *req.Balance
	}
	if req.Currency != nil {
		currency, currencyErr := models.ParseCurrency(*req.Currency)
		if currencyErr != nil && !hasViolation(violations, "currency") {
			violations = append(violations, errors.FieldViolation{Field: "currency", Reason: currencyErr.Error()})
		} else {
			updated.Currency = currency
		}
	}
	if req.IsStaff != nil {
		updated.IsStaff = *req.IsStaff
	}
	if req.IsSuperuser != nil {
		updated.IsSuperuser = *req.IsSuperuser
	}
	if req.IBAN != nil {
		if *req.IBAN == "" {
			updated.IBAN = ""
		} else {
			normalized, parseErr := iban.Parse(*req.IBAN)
			if parseErr != nil {
				violations = append(violations, errors.FieldViolation{Field: "iban", Reason: parseErr.Error()})
			} else {
				updated.IBAN = normalized
			}
		}
	}
	// The record must still satisfy the IBAN requirement after the patch
	// lands, whichever side of it changed.
	if updated.IBAN == "" && !updated.Elevated() {
		violations = append(violations, errors.FieldViolation{Field: "iban", Reason: "is required"})
	}
	if len(violations) > 0 {
		return nil, errors.NewViolationsError(violations)
	}

	if req.Password != nil {
		hash, err := a.credentials.Hash(*req.Password)
		if err != nil {
			return nil, err
		}
		updated.PasswordHash = hash
	}

	// A served patch bumps updated_at even when it carried no fields.
	updated.UpdatedAt = time.Now().UTC()

	if err := a.accounts.Update(ctx, &updated); err != nil {
		return nil, err
	}

	return &responses.Response[*responses.AccountView]{
		Status:  "successful",
		Message: "Account updated successfully",
		Data:    responses.NewAccountView(&updated),
	}, nil
}

func (a *accountService) DeleteAccount(ctx context.Context, req *requests.DeleteAccountRequest) error {
	if err := policy.Authorize(policy.OpDelete, CallerFromContext(ctx)); err != nil {
		return err
	}

	return a.accounts.Delete(ctx, req.UserID)
}

func (a *accountService) GetAccountByAccessToken(ctx context.Context, token string) (*models.Account, error) {
	account, accessToken, err := a.tokens.GetAccountByToken(ctx, token)
	if err != nil {
		if errors.AsAppError(err).Type == errors.ErrNotFound {
			return nil, errors.NewInvalidTokenError()
		}
		return nil, err
	}
	if accessToken.Expired(time.Now().UTC()) {
		return nil, errors.NewExpiredTokenError()
	}

	return account, nil
}

// checkIBAN applies the elevated-role exemption: an absent IBAN is allowed
// only for staff/superuser records; anything present must parse.
func checkIBAN(code string, elevated bool) (string, *errors.FieldViolation) {
	if code == "" {
		if elevated {
			return "", nil
		}
		return "", &errors.FieldViolation{Field: "iban", Reason: "is required"}
	}
	normalized, err := iban.Parse(code)
	if err != nil {
		return "", &errors.FieldViolation{Field: "iban", Reason: err.Error()}
	}
	return normalized, nil
}
