package entity

import (
	"time"

	"github.com/google/uuid"
)

// BaseNoDelete holds the identity and audit columns of rows that are
// removed with a hard delete.
type BaseNoDelete struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func NewBaseNoDelete(now time.Time) BaseNoDelete {
	return BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
}

// Touch stamps the row as modified at now.
func (b *BaseNoDelete) Touch(now time.Time) {
	b.UpdatedAt = now
}
