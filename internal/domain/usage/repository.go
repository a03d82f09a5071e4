package usage

import "context"

type Repository interface {
	Insert(ctx context.Context, record Record) error
	Recent(ctx context.Context, limit int) ([]Record, error)
}
