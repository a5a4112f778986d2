package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/timmy/haikuforge/internal/domain"
	"gorm.io/gorm"
)

const BackendSQL = "sql"

// poemRow is the table layout. ID and CreatedAt are bookkeeping that never
// leaves the repository.
type poemRow struct {
	ID        string    `gorm:"type:text;primaryKey"`
	Topic     string    `gorm:"type:text;not null"`
	Haiku     string    `gorm:"column:haiku;type:text;not null"`
	CreatedAt time.Time `gorm:"index"`
}

// PoemRepository stores poems in a SQL table through gorm.
type PoemRepository struct {
	db    *gorm.DB
	table string
}

// NewPoemRepository creates a new PoemRepository.
// Parameters:
//   - db: GORM database handle used for queries.
//   - table: table name, usually "haiku_table".
//
// Returns:
//   - *PoemRepository: repository instance bound to db.
func NewPoemRepository(db *gorm.DB, table string) *PoemRepository {
	return &PoemRepository{db: db, table: table}
}

// Migrate creates or updates the poem table.
func (r *PoemRepository) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Table(r.table).AutoMigrate(&poemRow{}); err != nil {
		return &domain.StoreError{Backend: BackendSQL, Op: domain.StoreOpInit, Err: fmt.Errorf("failed to migrate %s: %w", r.table, err)}
	}
	return nil
}

// Backend returns "sql".
func (r *PoemRepository) Backend() string {
	return BackendSQL
}

// Append inserts one poem.
func (r *PoemRepository) Append(ctx context.Context, poem domain.Poem) error {
	if err := poem.Validate(); err != nil {
		return &domain.StoreError{Backend: BackendSQL, Op: domain.StoreOpAppend, Err: err}
	}
	row := poemRow{
		ID:    uuid.New().String(),
		Topic: poem.Topic,
		Haiku: poem.Body,
	}
	if err := r.db.WithContext(ctx).Table(r.table).Create(&row).Error; err != nil {
		return &domain.StoreError{Backend: BackendSQL, Op: domain.StoreOpAppend, Err: err}
	}
	return nil
}

// ListAll returns every poem in insertion order.
func (r *PoemRepository) ListAll(ctx context.Context) ([]domain.Poem, error) {
	var rows []poemRow
	if err := r.db.WithContext(ctx).Table(r.table).
		Order("created_at ASC").
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, &domain.StoreError{Backend: BackendSQL, Op: domain.StoreOpList, Err: err}
	}

	poems := make([]domain.Poem, 0, len(rows))
	for _, row := range rows {
		p, err := domain.NewPoem(row.Topic, row.Haiku)
		if err != nil {
			return nil, &domain.StoreError{Backend: BackendSQL, Op: domain.StoreOpList, Err: fmt.Errorf("row %s: %w", row.ID, err)}
		}
		poems = append(poems, p)
	}
	return poems, nil
}
