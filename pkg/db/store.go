package db

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS recent_phishy (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    token_address TEXT NOT NULL,
    token_type TEXT NOT NULL,
    token_symbol TEXT,
    phishy_count INTEGER NOT NULL,
    total_addresses INTEGER NOT NULL,
    total_transferred REAL DEFAULT 0,
    total_bought REAL DEFAULT 0,
    total_without_buy REAL DEFAULT 0,
    risk_score INTEGER DEFAULT 0,
    detected_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_recent_phishy_time ON recent_phishy(detected_at);
`

// Store is the append-only recent-phishy-tokens log. It is the only shared
// mutable state in the server; sql.DB serializes writers, so concurrent
// checks never interfere.
type Store struct {
	db *sql.DB
}

func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// AppendPhishy records a completed check that found phishy addresses.
func (s *Store) AppendPhishy(e PhishyTokenEntry) error {
	_, err := s.db.Exec(`
		INSERT INTO recent_phishy
			(token_address, token_type, token_symbol, phishy_count, total_addresses,
			 total_transferred, total_bought, total_without_buy, risk_score)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.TokenAddress, e.TokenType, e.TokenSymbol, e.PhishyCount, e.TotalAddresses,
		e.TotalTransferred, e.TotalBought, e.TotalWithoutBuy, e.RiskScore)
	return err
}

// GetRecent returns the log most-recent-first, bounded by limit.
func (s *Store) GetRecent(limit int) ([]PhishyTokenEntry, error) {
	rows, err := s.db.Query(`
		SELECT token_address, token_type, COALESCE(token_symbol,''), phishy_count, total_addresses,
		       total_transferred, total_bought, total_without_buy, risk_score, detected_at
		FROM recent_phishy ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []PhishyTokenEntry{}
	for rows.Next() {
		var e PhishyTokenEntry
		if err := rows.Scan(&e.TokenAddress, &e.TokenType, &e.TokenSymbol, &e.PhishyCount, &e.TotalAddresses,
			&e.TotalTransferred, &e.TotalBought, &e.TotalWithoutBuy, &e.RiskScore, &e.DetectedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Prune drops everything beyond the newest keep entries.
func (s *Store) Prune(keep int) error {
	_, err := s.db.Exec(`
		DELETE FROM recent_phishy
		WHERE id NOT IN (SELECT id FROM recent_phishy ORDER BY id DESC LIMIT ?)`, keep)
	return err
}
