package queries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"perfume-store/internal/db"
	"perfume-store/internal/session"

	"github.com/Masterminds/squirrel"
)

// StateQueries хранит состояние покупательских сессий в таблице client_state.
// Каждый ключ сессии - отдельная строка.
type StateQueries struct {
	db *db.Database
	sq squirrel.StatementBuilderType
}

// NewStateQueries создает новый экземпляр StateQueries
func NewStateQueries(db *db.Database) *StateQueries {
	return &StateQueries{
		db: db,
		sq: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).RunWith(db),
	}
}

// Load возвращает сохраненное значение ключа
func (q *StateQueries) Load(ctx context.Context, sessionID, key string) (session.Record, error) {
	query := q.sq.
		Select("version", "payload").
		From("client_state").
		Where(squirrel.Eq{"session_id": sessionID, "key": key})

	qsql, args, err := query.ToSql()
	if err != nil {
		return session.Record{}, fmt.Errorf("failed to build query: %w", err)
	}

	var (
		version int
		payload []byte
	)
	if err := q.db.QueryRowContext(ctx, qsql, args...).Scan(&version, &payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return session.Record{}, fmt.Errorf("%s/%s: %w", sessionID, key, session.ErrNotFound)
		}
		return session.Record{}, fmt.Errorf("failed to load state: %w", err)
	}

	return session.Record{Version: version, Payload: payload}, nil
}

// Save записывает значение ключа, заменяя предыдущее
func (q *StateQueries) Save(ctx context.Context, sessionID, key string, rec session.Record) error {
	query := q.sq.
		Insert("client_state").
		Columns("session_id", "key", "version", "payload", "updated_at").
		Values(sessionID, key, rec.Version, string(rec.Payload), squirrel.Expr("NOW()")).
		Suffix("ON CONFLICT (session_id, key) DO UPDATE SET version = EXCLUDED.version, payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at")

	qsql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := q.db.ExecContext(ctx, qsql, args...); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}

	return nil
}

// Delete удаляет все ключи сессии
func (q *StateQueries) Delete(ctx context.Context, sessionID string) error {
	query := q.sq.
		Delete("client_state").
		Where(squirrel.Eq{"session_id": sessionID})

	qsql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := q.db.ExecContext(ctx, qsql, args...); err != nil {
		return fmt.Errorf("failed to delete state: %w", err)
	}

	return nil
}
