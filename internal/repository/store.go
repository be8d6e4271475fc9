package repository

import (
	"context"
	"errors"

	"github.com/moneyapp/internal/models"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrDuplicateUser       = errors.New("username or email already registered")
)

// UserStore persists user identities and password digests
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]models.User, error)
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
	Delete(ctx context.Context, id uint) error
}

// TransactionStore owns the mapping from owner to transactions.
// A nil ownerID in GetByID means "any owner".
type TransactionStore interface {
	Create(ctx context.Context, tx *models.Transaction) error
	GetByID(ctx context.Context, id uint, ownerID *uint) (*models.Transaction, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]models.Transaction, error)
	List(ctx context.Context) ([]models.Transaction, error)
	Update(ctx context.Context, tx *models.Transaction) error
	Delete(ctx context.Context, id uint) error
	DeleteByOwner(ctx context.Context, ownerID uint) (int64, error)
}

// Store hands out repositories and runs units of work atomically.
// The Store passed to fn is bound to the unit of work; it is committed when fn
// returns nil and rolled back otherwise, including on panic.
type Store interface {
	Users() UserStore
	Transactions() TransactionStore
	WithinTx(ctx context.Context, fn func(Store) error) error
}

var _ Store = (*GormStore)(nil)

// GormStore is the relational Store
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GormStore
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Users() UserStore {
	return NewUserRepository(s.db)
}

func (s *GormStore) Transactions() TransactionStore {
	return NewTransactionRepository(s.db)
}

// WithinTx runs fn inside a database transaction
func (s *GormStore) WithinTx(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

// AutoMigrate creates or updates the schema
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Transaction{},
	)
}
