package directoryserver

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"e2ekeys/internal/domain"
)

// SQLiteStore persists directory state in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize tables: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) initTables() error {
	stmts := []string{`
	CREATE TABLE IF NOT EXISTS public_keys (
		user_id TEXT PRIMARY KEY,
		public_key BLOB NOT NULL,
		key_id TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`, `
	CREATE TABLE IF NOT EXISTS group_members (
		group_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		user_name TEXT NOT NULL DEFAULT '',
		added_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (group_id, user_id)
	);`, `
	CREATE TABLE IF NOT EXISTS group_bundles (
		group_id TEXT PRIMARY KEY,
		publisher TEXT NOT NULL,
		publisher_key BLOB
	);`, `
	CREATE TABLE IF NOT EXISTS wrapped_keys (
		group_id TEXT NOT NULL REFERENCES group_bundles(group_id) ON DELETE CASCADE,
		user_id TEXT NOT NULL,
		key_id TEXT NOT NULL,
		recipient_key_id TEXT NOT NULL DEFAULT '',
		ciphertext BLOB NOT NULL,
		nonce BLOB NOT NULL,
		sender_key BLOB,
		PRIMARY KEY (group_id, user_id)
	);`,
	}
	for _, q := range stmts {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) RegisterKey(ctx context.Context, rec domain.PublicKeyRecord) error {
	res, err := s.db.ExecContext(ctx, `
	INSERT INTO public_keys (user_id, public_key, key_id) VALUES (?, ?, ?)
	ON CONFLICT(user_id) DO NOTHING`,
		rec.UserID, rec.PublicKey, rec.KeyID)
	if err != nil {
		return fmt.Errorf("failed to register key: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrExists
	}
	return nil
}

func (s *SQLiteStore) ReplaceKey(ctx context.Context, rec domain.PublicKeyRecord) error {
	_, err := s.db.ExecContext(ctx, `
	INSERT OR REPLACE INTO public_keys (user_id, public_key, key_id, updated_at)
	VALUES (?, ?, ?, CURRENT_TIMESTAMP)`,
		rec.UserID, rec.PublicKey, rec.KeyID)
	if err != nil {
		return fmt.Errorf("failed to replace key: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Key(ctx context.Context, userID domain.UserID) (domain.PublicKeyRecord, bool, error) {
	rec := domain.PublicKeyRecord{UserID: userID}
	err := s.db.QueryRowContext(ctx,
		`SELECT public_key, key_id FROM public_keys WHERE user_id = ?`, userID,
	).Scan(&rec.PublicKey, &rec.KeyID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.PublicKeyRecord{}, false, nil
	}
	if err != nil {
		return domain.PublicKeyRecord{}, false, fmt.Errorf("failed to get key: %w", err)
	}
	return rec, true, nil
}

func (s *SQLiteStore) AddMember(ctx context.Context, groupID domain.GroupID, userID domain.UserID, userName string) error {
	_, err := s.db.ExecContext(ctx, `
	INSERT INTO group_members (group_id, user_id, user_name) VALUES (?, ?, ?)
	ON CONFLICT(group_id, user_id) DO UPDATE SET user_name = excluded.user_name`,
		groupID, userID, userName)
	if err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Members(ctx context.Context, groupID domain.GroupID) ([]domain.GroupMember, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT m.user_id, m.user_name, k.public_key, k.key_id
	FROM group_members m LEFT JOIN public_keys k ON k.user_id = m.user_id
	WHERE m.group_id = ?
	ORDER BY m.rowid`, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	out := []domain.GroupMember{}
	for rows.Next() {
		var (
			m     domain.GroupMember
			keyID sql.NullString
		)
		if err := rows.Scan(&m.UserID, &m.UserName, &m.PublicKey, &keyID); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		m.KeyID = domain.KeyID(keyID.String)
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) PublishBundle(ctx context.Context, groupID domain.GroupID, b Bundle) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	for _, q := range []string{
		`DELETE FROM wrapped_keys WHERE group_id = ?`,
		`DELETE FROM group_bundles WHERE group_id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, q, groupID); err != nil {
			return fmt.Errorf("failed to clear bundle: %w", err)
		}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO group_bundles (group_id, publisher, publisher_key) VALUES (?, ?, ?)`,
		groupID, b.Publisher, b.PublisherKey); err != nil {
		return fmt.Errorf("failed to save bundle: %w", err)
	}
	for _, e := range b.Entries {
		if _, err := tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO wrapped_keys
			(group_id, user_id, key_id, recipient_key_id, ciphertext, nonce, sender_key)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
			groupID, e.UserID, e.KeyID, e.RecipientKeyID,
			e.EncryptedGroupKey.Ciphertext, e.EncryptedGroupKey.Nonce, e.EncryptedGroupKey.SenderEphemeralPublicKey,
		); err != nil {
			return fmt.Errorf("failed to save wrapped key for %s: %w", e.UserID, err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) WrappedKey(ctx context.Context, groupID domain.GroupID, userID domain.UserID) (domain.WrappedGroupKey, bool, error) {
	var (
		b Bundle
		e domain.WrappedGroupKeyEntry
	)
	err := s.db.QueryRowContext(ctx, `
	SELECT b.publisher, b.publisher_key, w.key_id, w.recipient_key_id, w.ciphertext, w.nonce, w.sender_key
	FROM wrapped_keys w JOIN group_bundles b ON b.group_id = w.group_id
	WHERE w.group_id = ? AND w.user_id = ?`, groupID, userID,
	).Scan(&b.Publisher, &b.PublisherKey, &e.KeyID, &e.RecipientKeyID,
		&e.EncryptedGroupKey.Ciphertext, &e.EncryptedGroupKey.Nonce, &e.EncryptedGroupKey.SenderEphemeralPublicKey)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.WrappedGroupKey{}, false, nil
	}
	if err != nil {
		return domain.WrappedGroupKey{}, false, fmt.Errorf("failed to get wrapped key: %w", err)
	}
	e.UserID = userID
	b.Entries = []domain.WrappedGroupKeyEntry{e}
	wk, ok := wrappedFor(b, userID)
	return wk, ok, nil
}

var _ Store = (*SQLiteStore)(nil)
