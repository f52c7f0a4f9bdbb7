package customer

import (
	"context"

	vo "github.com/planwise-io/planwise/internal/domain/catalog/valueobjects"
	"github.com/planwise-io/planwise/internal/shared/query"
)

type Repository interface {
	Create(ctx context.Context, customer *Customer) error
	GetByID(ctx context.Context, id uint) (*Customer, error)
	GetByKey(ctx context.Context, key string) (*Customer, error)
	Update(ctx context.Context, customer *Customer) error
	// Delete permanently removes a customer. Callers must only delete
	// archived customers.
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filter Filter) ([]*Customer, int64, error)
}

type Filter struct {
	Status *vo.EntityStatus
	Search string
	query.BaseFilter
}
