package shop

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/mrlokans/techshop/internal/database"
	"github.com/mrlokans/techshop/internal/entities"
)

// Accounts manages customer profiles.
type Accounts struct {
	accounts *database.Table[entities.Account]
}

func NewAccounts(store *database.Store) *Accounts {
	return &Accounts{accounts: database.For[entities.Account](store)}
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	return email, nil
}

// Register creates an account. Registering an email twice fails with
// database.ErrDuplicateKey.
func (a *Accounts) Register(ctx context.Context, email, displayName string) (*entities.Account, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	account := &entities.Account{
		Email:       email,
		DisplayName: strings.TrimSpace(displayName),
	}
	if _, err := a.accounts.Add(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// ByEmail finds the account registered with email.
func (a *Accounts) ByEmail(ctx context.Context, email string) (entities.Account, bool, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return entities.Account{}, false, err
	}

	found, err := a.accounts.GetWhere(ctx, database.Eq("email", email))
	if err != nil {
		return entities.Account{}, false, err
	}
	if len(found) == 0 {
		return entities.Account{}, false, nil
	}
	return found[0], true, nil
}

// Get returns the account with the given ID.
func (a *Accounts) Get(ctx context.Context, id string) (entities.Account, bool) {
	return a.accounts.GetByKey(ctx, id)
}

// Update saves profile changes. The email is normalised and validated
// as in Register.
func (a *Accounts) Update(ctx context.Context, account *entities.Account) (bool, error) {
	if account == nil {
		return false, database.ErrNilRecord
	}
	email, err := normalizeEmail(account.Email)
	if err != nil {
		return false, err
	}
	account.Email = email
	account.DisplayName = strings.TrimSpace(account.DisplayName)
	return a.accounts.Update(ctx, account)
}

// Delete removes an account.
func (a *Accounts) Delete(ctx context.Context, account *entities.Account) (bool, error) {
	return a.accounts.Delete(ctx, account)
}
