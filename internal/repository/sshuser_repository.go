package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/trace"
)

const createSSHUsersTable = `
CREATE TABLE IF NOT EXISTS ssh_users (
    id          BIGSERIAL   PRIMARY KEY,
    username    TEXT        NOT NULL UNIQUE,
    fingerprint TEXT        NOT NULL UNIQUE,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    last_login  TIMESTAMPTZ
);
`

type SSHUser struct {
	ID          int64
	Username    string
	Fingerprint string
	CreatedAt   time.Time
	LastLogin   *time.Time
}

// SSHUserRepository resolves dashboard users by SSH key fingerprint.
type SSHUserRepository struct {
	pool   PgxPool
	tracer trace.Tracer
}

func NewSSHUserRepository(pool PgxPool, tracer trace.Tracer) *SSHUserRepository {
	return &SSHUserRepository{pool: pool, tracer: tracer}
}

func (r *SSHUserRepository) RunMigrations(ctx context.Context) error {
	_, span := r.tracer.Start(ctx, "ssh-user-repo.run-migrations")
	defer span.End()

	_, err := r.pool.Exec(ctx, createSSHUsersTable)
	return err
}

// FindByFingerprint returns nil without error when no user matches.
func (r *SSHUserRepository) FindByFingerprint(ctx context.Context, fingerprint string) (*SSHUser, error) {
	_, span := r.tracer.Start(ctx, "ssh-user-repo.find-by-fingerprint")
	defer span.End()

	rows, err := r.pool.Query(ctx,
		`SELECT id, username, fingerprint, created_at, last_login
		 FROM ssh_users
		 WHERE fingerprint = $1`,
		fingerprint,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	user, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByPos[SSHUser])
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *SSHUserRepository) UpdateLastLogin(ctx context.Context, id int64) error {
	_, span := r.tracer.Start(ctx, "ssh-user-repo.update-last-login")
	defer span.End()

	_, err := r.pool.Exec(ctx, `UPDATE ssh_users SET last_login = now() WHERE id = $1`, id)
	return err
}
