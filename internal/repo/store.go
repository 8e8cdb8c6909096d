package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Repos bundles every repository bound to the same connection or transaction.
type Repos struct {
	Locations  LocationRepo
	Facilities FacilityRepo
	Employees  EmployeeRepo
	Tags       TagRepo
}

// NewRepos builds the full repository set over one db handle.
func NewRepos(db db) Repos {
	return Repos{
		Locations:  NewLocationRepo(db),
		Facilities: NewFacilityRepo(db),
		Employees:  NewEmployeeRepo(db),
		Tags:       NewTagRepo(db),
	}
}

// Store hands out repositories and runs multi-statement work atomically.
type Store interface {
	// Repos returns repositories bound to the underlying pool.
	Repos() Repos

	// InTx runs fn with repositories bound to a fresh transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	InTx(ctx context.Context, fn func(Repos) error) error
}

// beginner is satisfied by *pgxpool.Pool and by pgx.Tx, whose Begin opens a
// savepoint. Tests pass an outer transaction so every write is rolled back.
type beginner interface {
	db
	Begin(ctx context.Context) (pgx.Tx, error)
}

type pgStore struct {
	conn beginner
}

// NewStore constructs a Store over a pool (production) or a transaction (tests).
func NewStore(conn beginner) Store {
	return &pgStore{conn: conn}
}

func (s *pgStore) Repos() Repos { return NewRepos(s.conn) }

func (s *pgStore) InTx(ctx context.Context, fn func(Repos) error) error {
	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.Store.InTx: begin: %w", err)
	}
	// Rollback after a successful Commit is a no-op returning ErrTxClosed.
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.Store.InTx: commit: %w", err)
	}
	return nil
}
