package services_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tjarju/bank-users-go/errors"
	"github.com/tjarju/bank-users-go/models"
	"github.com/tjarju/bank-users-go/store"
)

// fakeAccountStore mirrors the store contract in memory, including the two
// uniqueness invariants.
type fakeAccountStore struct {
	mu      sync.Mutex
	records map[string]*models.Account
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{records: map[string]*models.Account{}}
}

func (f *fakeAccountStore) Insert(_ context.Context, account *models.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.records {
		if existing.Username == account.Username {
			return errors.NewEntryExistsError("username")
		}
		if account.IBAN != "" && existing.IBAN == account.IBAN {
			return errors.NewEntryExistsError("iban")
		}
	}
	clone := *account
	f.records[account.ID] = &clone
	return nil
}

func (f *fakeAccountStore) Get(_ context.Context, id string) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.records[id]
	if !ok {
		return nil, errors.NewNotFoundError("account not found")
	}
	clone := *record
	return &clone, nil
}

func (f *fakeAccountStore) GetByUsername(_ context.Context, username string) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, record := range f.records {
		if record.Username == username {
			clone := *record
			return &clone, nil
		}
	}
	return nil, errors.NewNotFoundError("account not found")
}

func (f *fakeAccountStore) List(_ context.Context, filter store.Filter) ([]*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	matches := make([]*models.Account, 0)
	for _, record := range f.records {
		if filter.Currency != nil && record.Currency != *filter.Currency {
			continue
		}
		if filter.Staff != nil && record.IsStaff != *filter.Staff {
			continue
		}
		clone := *record
		matches = append(matches, &clone)
	}
	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].CreatedAt.Equal(matches[j].CreatedAt) {
			return matches[i].CreatedAt.Before(matches[j].CreatedAt)
		}
		return matches[i].ID < matches[j].ID
	})
	if filter.Offset > 0 {
		if filter.Offset >= uint64(len(matches)) {
			return []*models.Account{}, nil
		}
		matches = matches[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < uint64(len(matches)) {
		matches = matches[:filter.Limit]
	}
	return matches, nil
}

func (f *fakeAccountStore) Update(_ context.Context, account *models.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[account.ID]; !ok {
		return errors.NewNotFoundError("account not found")
	}
	for id, existing := range f.records {
		if id == account.ID {
			continue
		}
		if existing.Username == account.Username {
			return errors.NewEntryExistsError("username")
		}
		if account.IBAN != "" && existing.IBAN == account.IBAN {
			return errors.NewEntryExistsError("iban")
		}
	}
	clone := *account
	f.records[account.ID] = &clone
	return nil
}

func (f *fakeAccountStore) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[id]; !ok {
		return errors.NewNotFoundError("account not found")
	}
	delete(f.records, id)
	return nil
}

func (f *fakeAccountStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

type fakeTokenStore struct {
	mu       sync.Mutex
	tokens   map[string]*models.AccessToken
	accounts *fakeAccountStore

	insertErr error
}

func newFakeTokenStore(accounts *fakeAccountStore) *fakeTokenStore {
	return &fakeTokenStore{tokens: map[string]*models.AccessToken{}, accounts: accounts}
}

func (f *fakeTokenStore) Insert(_ context.Context, token *models.AccessToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	clone := *token
	f.tokens[token.Token] = &clone
	return nil
}

func (f *fakeTokenStore) GetAccountByToken(ctx context.Context, token string) (*models.Account, *models.AccessToken, error) {
	f.mu.Lock()
	accessToken, ok := f.tokens[token]
	f.mu.Unlock()
	if !ok {
		return nil, nil, errors.NewNotFoundError("token not found")
	}
	account, err := f.accounts.Get(ctx, accessToken.AccountID)
	if err != nil {
		return nil, nil, err
	}
	clone := *accessToken
	return account, &clone, nil
}

func (f *fakeTokenStore) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var swept int64
	for key, token := range f.tokens {
		if token.ExpiresAt.Before(before) {
			delete(f.tokens, key)
			swept++
		}
	}
	return swept, nil
}
