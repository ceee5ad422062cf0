package storage

import (
	"context"
	"database/sql"

	"github.com/stephenafamo/bob"
)

// Storage hands out read views and units of work over one backend.
type Storage interface {
	Read() *Reader
	Write(ctx context.Context) (*Writer, error)
	Ping(ctx context.Context) error
	Close() error
}

// Postgres is the bob-backed Storage.
type Postgres struct {
	DB     *sql.DB
	bobDB  bob.DB
	reader *Reader
}

func NewPostgres(db *sql.DB) *Postgres {
	bobDB := bob.NewDB(db)
	return &Postgres{
		DB:     db,
		bobDB:  bobDB,
		reader: NewReader(bobDB),
	}
}

func (p *Postgres) Read() *Reader {
	return p.reader
}

// Write begins a READ COMMITTED transaction. Balance updates rely on the
// FOR UPDATE row locks taken by the account writer.
func (p *Postgres) Write(ctx context.Context) (*Writer, error) {
	tx, err := p.bobDB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, err
	}
	return NewBobWriter(tx), nil
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.DB.PingContext(ctx)
}

func (p *Postgres) Close() error {
	return p.DB.Close()
}
