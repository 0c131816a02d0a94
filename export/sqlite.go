package export

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/maastricht-university/coref-chains/chain"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS mentions (
	conv_id        INTEGER NOT NULL,
	chain_id       INTEGER NOT NULL,
	turn_id        INTEGER NOT NULL,
	speaker        TEXT NOT NULL,
	text           TEXT NOT NULL,
	reference_type TEXT NOT NULL,
	salience_score INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_mentions_chain ON mentions(conv_id, chain_id);

CREATE TABLE IF NOT EXISTS transitions (
	conv_id          INTEGER NOT NULL,
	chain_id         INTEGER NOT NULL,
	cluster_id       INTEGER NOT NULL,
	turn_start       INTEGER NOT NULL,
	turn_end         INTEGER NOT NULL,
	start_type       TEXT NOT NULL,
	end_type         TEXT NOT NULL,
	speaker_chain    TEXT NOT NULL,
	is_cross_speaker BOOLEAN NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transitions_chain ON transitions(conv_id, chain_id);
`

// SQLiteSink stores mention and transition rows in a SQLite database.
// Rows of an already exported dialogue are replaced.
type SQLiteSink struct {
	db *sql.DB
}

func NewSQLiteSink(path string) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?_pragma=busy_timeout(10000)", path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &SQLiteSink{db: db}, nil
}

// DB exposes the underlying handle for queries over exported rows.
func (s *SQLiteSink) DB() *sql.DB { return s.db }

func (s *SQLiteSink) WriteChains(convID int, chains []*chain.Chain) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM mentions WHERE conv_id = ?`, convID); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM transitions WHERE conv_id = ?`, convID); err != nil {
		return err
	}

	for _, r := range MentionRows(convID, chains) {
		_, err := tx.Exec(`INSERT INTO mentions
			(conv_id, chain_id, turn_id, speaker, text, reference_type, salience_score)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			r.ConvID, r.ChainID, r.TurnID, r.Speaker, r.Text, string(r.Form), r.Salience)
		if err != nil {
			return fmt.Errorf("insert mention: %w", err)
		}
	}
	for _, r := range TransitionRows(convID, chains) {
		_, err := tx.Exec(`INSERT INTO transitions
			(conv_id, chain_id, cluster_id, turn_start, turn_end, start_type, end_type, speaker_chain, is_cross_speaker)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ConvID, r.ChainID, r.ClusterID, r.TurnStart, r.TurnEnd,
			string(r.StartForm), string(r.EndForm), r.SpeakerChain, r.IsCrossSpeaker)
		if err != nil {
			return fmt.Errorf("insert transition: %w", err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteSink) Close() error {
	return s.db.Close()
}
