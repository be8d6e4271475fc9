package repository

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/moneyapp/internal/models"
)

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*memoryTx)(nil)
)

type memoryData struct {
	users        map[uint]models.User
	transactions map[uint]models.Transaction
	nextUserID   uint
	nextTxID     uint
}

func (d *memoryData) clone() *memoryData {
	c := &memoryData{
		users:        make(map[uint]models.User, len(d.users)),
		transactions: make(map[uint]models.Transaction, len(d.transactions)),
		nextUserID:   d.nextUserID,
		nextTxID:     d.nextTxID,
	}
	for id, u := range d.users {
		c.users[id] = u
	}
	for id, t := range d.transactions {
		c.transactions[id] = t
	}
	return c
}

// MemoryStore keeps users and transactions in process memory.
// WithinTx holds the store lock for the whole unit of work and works on a copy
// that replaces the live data only on success.
type MemoryStore struct {
	mu   sync.Mutex
	data *memoryData
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: &memoryData{
			users:        make(map[uint]models.User),
			transactions: make(map[uint]models.Transaction),
		},
	}
}

func (s *MemoryStore) acquire() (*memoryData, func()) {
	s.mu.Lock()
	return s.data, s.mu.Unlock
}

func (s *MemoryStore) Users() UserStore {
	return memoryUsers{acquire: s.acquire}
}

func (s *MemoryStore) Transactions() TransactionStore {
	return memoryTransactions{acquire: s.acquire}
}

func (s *MemoryStore) WithinTx(ctx context.Context, fn func(Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.data.clone()
	if err := fn(&memoryTx{data: work}); err != nil {
		return err
	}
	s.data = work
	return nil
}

type memoryTx struct {
	data *memoryData
}

func (t *memoryTx) acquire() (*memoryData, func()) {
	return t.data, func() {}
}

func (t *memoryTx) Users() UserStore {
	return memoryUsers{acquire: t.acquire}
}

func (t *memoryTx) Transactions() TransactionStore {
	return memoryTransactions{acquire: t.acquire}
}

func (t *memoryTx) WithinTx(ctx context.Context, fn func(Store) error) error {
	return fn(t)
}

type memoryUsers struct {
	acquire func() (*memoryData, func())
}

func (m memoryUsers) Create(ctx context.Context, user *models.User) error {
	d, release := m.acquire()
	defer release()

	for _, u := range d.users {
		if u.Username == user.Username || u.Email == user.Email {
			return ErrDuplicateUser
		}
	}
	d.nextUserID++
	now := time.Now()
	user.ID = d.nextUserID
	user.CreatedAt, user.UpdatedAt = now, now
	d.users[user.ID] = *user
	return nil
}

func (m memoryUsers) GetByID(ctx context.Context, id uint) (*models.User, error) {
	d, release := m.acquire()
	defer release()

	u, ok := d.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &u, nil
}

func (m memoryUsers) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	d, release := m.acquire()
	defer release()

	for _, u := range d.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m memoryUsers) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := m.GetByUsername(ctx, username)
	if errors.Is(err, ErrUserNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (m memoryUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	d, release := m.acquire()
	defer release()

	for _, u := range d.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m memoryUsers) List(ctx context.Context) ([]models.User, error) {
	d, release := m.acquire()
	defer release()

	users := make([]models.User, 0, len(d.users))
	for _, u := range d.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (m memoryUsers) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	d, release := m.acquire()
	defer release()

	u, ok := d.users[id]
	if !ok {
		return ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()
	d.users[id] = u
	return nil
}

func (m memoryUsers) Delete(ctx context.Context, id uint) error {
	d, release := m.acquire()
	defer release()

	if _, ok := d.users[id]; !ok {
		return ErrUserNotFound
	}
	delete(d.users, id)
	return nil
}

type memoryTransactions struct {
	acquire func() (*memoryData, func())
}

func (m memoryTransactions) Create(ctx context.Context, tx *models.Transaction) error {
	d, release := m.acquire()
	defer release()

	if _, ok := d.users[tx.OwnerID]; !ok {
		return ErrUserNotFound
	}
	d.nextTxID++
	now := time.Now()
	tx.ID = d.nextTxID
	tx.CreatedAt, tx.UpdatedAt = now, now
	d.transactions[tx.ID] = *tx
	return nil
}

func (m memoryTransactions) GetByID(ctx context.Context, id uint, ownerID *uint) (*models.Transaction, error) {
	d, release := m.acquire()
	defer release()

	t, ok := d.transactions[id]
	if !ok || (ownerID != nil && t.OwnerID != *ownerID) {
		return nil, ErrTransactionNotFound
	}
	return &t, nil
}

func (m memoryTransactions) ListByOwner(ctx context.Context, ownerID uint) ([]models.Transaction, error) {
	return m.filter(func(t models.Transaction) bool { return t.OwnerID == ownerID }), nil
}

func (m memoryTransactions) List(ctx context.Context) ([]models.Transaction, error) {
	return m.filter(func(models.Transaction) bool { return true }), nil
}

func (m memoryTransactions) filter(keep func(models.Transaction) bool) []models.Transaction {
	d, release := m.acquire()
	defer release()

	txs := make([]models.Transaction, 0)
	for _, t := range d.transactions {
		if keep(t) {
			txs = append(txs, t)
		}
	}
	sort.Slice(txs, func(i, j int) bool { return txs[i].ID < txs[j].ID })
	return txs
}

func (m memoryTransactions) Update(ctx context.Context, tx *models.Transaction) error {
	d, release := m.acquire()
	defer release()

	stored, ok := d.transactions[tx.ID]
	if !ok || stored.OwnerID != tx.OwnerID {
		return ErrTransactionNotFound
	}
	stored.Category = tx.Category
	stored.Type = tx.Type
	stored.Amount = tx.Amount
	stored.Description = tx.Description
	stored.Date = tx.Date
	stored.UpdatedAt = time.Now()
	d.transactions[tx.ID] = stored
	return nil
}

func (m memoryTransactions) Delete(ctx context.Context, id uint) error {
	d, release := m.acquire()
	defer release()

	if _, ok := d.transactions[id]; !ok {
		return ErrTransactionNotFound
	}
	delete(d.transactions, id)
	return nil
}

func (m memoryTransactions) DeleteByOwner(ctx context.Context, ownerID uint) (int64, error) {
	d, release := m.acquire()
	defer release()

	var n int64
	for id, t := range d.transactions {
		if t.OwnerID == ownerID {
			delete(d.transactions, id)
			n++
		}
	}
	return n, nil
}
