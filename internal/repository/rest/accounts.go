// internal/repository/rest/accounts.go
package rest

import (
	"context"

	"github.com/acippicacipa/orchid-erp-sub001/internal/client"
	"github.com/acippicacipa/orchid-erp-sub001/internal/domain"
	"github.com/acippicacipa/orchid-erp-sub001/internal/repository"
)

type Accounts struct {
	api *client.Client
}

func NewAccounts(api *client.Client) *Accounts {
	return &Accounts{api: api}
}

var _ repository.AccountsRepository = (*Accounts)(nil)

func (r *Accounts) Profile(ctx context.Context) (*domain.User, error) {
	return getOne[domain.User](ctx, r.api, "/accounts/profile/")
}

func (r *Accounts) ListUsers(ctx context.Context, opts repository.ListOptions) (client.Page[domain.User], error) {
	return list[domain.User](ctx, r.api, "/accounts/users/", opts)
}
