// Package storage provides SQLite-based persistence for battle records.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-monsters/internal/battle"
)

// Store manages the SQLite database connection for the battle ledger.
type Store struct {
	db *sql.DB
}

// Record is one finished battle.
type Record struct {
	ID              int64
	BattleID        string
	Kind            battle.Kind
	Result          battle.Result
	Turns           int
	TrainerName     string // Empty for wild battles
	PlayerLead      string
	PlayerLevel     int
	EnemyLead       string
	EnemyLevel      int
	PlayerRemaining int
	EnemyRemaining  int
	CreatedAt       time.Time
}

// Tally counts battle outcomes.
type Tally struct {
	Battles   int
	Victories int
	Defeats   int
	Escapes   int
	Turns     int64
}

// WinRate returns victories over battles, or 0 with no battles.
func (t Tally) WinRate() float64 {
	if t.Battles == 0 {
		return 0
	}
	return float64(t.Victories) / float64(t.Battles)
}

// LeadStats aggregates battles by the player's lead monster.
type LeadStats struct {
	Lead      string
	Battles   int
	Victories int
	AvgTurns  float64
	LastFight time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS battles (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			battle_id TEXT NOT NULL UNIQUE,
			kind TEXT NOT NULL,
			result TEXT NOT NULL,
			turns INTEGER NOT NULL DEFAULT 0,
			trainer_name TEXT,
			player_lead TEXT NOT NULL,
			player_level INTEGER NOT NULL,
			enemy_lead TEXT NOT NULL,
			enemy_level INTEGER NOT NULL,
			player_remaining INTEGER NOT NULL DEFAULT 0,
			enemy_remaining INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_battles_result ON battles(result);
		CREATE INDEX IF NOT EXISTS idx_battles_player_lead ON battles(player_lead);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveBattle records a finished battle. Battles that never ended are
// rejected.
func (s *Store) SaveBattle(sum battle.Summary) error {
	_, err := s.saveBattle(sum)
	return err
}

// Ensure Store can be handed to battle.WithSaver
var _ battle.SummarySaver = (*Store)(nil)

func (s *Store) saveBattle(sum battle.Summary) (int64, error) {
	if sum.Result == battle.ResultNone {
		return 0, fmt.Errorf("storage: battle %s has no result", sum.ID)
	}

	var trainer sql.NullString
	if sum.TrainerName != "" {
		trainer = sql.NullString{String: sum.TrainerName, Valid: true}
	}

	res, err := s.db.Exec(
		`INSERT INTO battles
		 (battle_id, kind, result, turns, trainer_name, player_lead, player_level,
		  enemy_lead, enemy_level, player_remaining, enemy_remaining)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sum.ID,
		sum.Kind.String(),
		sum.Result.String(),
		sum.Turns,
		trainer,
		sum.PlayerLead,
		sum.PlayerLevel,
		sum.EnemyLead,
		sum.EnemyLevel,
		sum.PlayerRemaining,
		sum.EnemyRemaining,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save battle: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const recordColumns = `id, battle_id, kind, result, turns, trainer_name, player_lead, player_level,
		        enemy_lead, enemy_level, player_remaining, enemy_remaining, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var (
		r         Record
		kind      string
		result    string
		trainer   sql.NullString
		createdAt any
	)
	if err := row.Scan(
		&r.ID,
		&r.BattleID,
		&kind,
		&result,
		&r.Turns,
		&trainer,
		&r.PlayerLead,
		&r.PlayerLevel,
		&r.EnemyLead,
		&r.EnemyLevel,
		&r.PlayerRemaining,
		&r.EnemyRemaining,
		&createdAt,
	); err != nil {
		return Record{}, err
	}

	r.Kind, _ = battle.ParseKind(kind)
	r.Result, _ = battle.ParseResult(result)
	if trainer.Valid {
		r.TrainerName = trainer.String
	}
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// BattleByID retrieves a battle by its battle id. It returns nil when the
// battle is unknown.
func (s *Store) BattleByID(battleID string) (*Record, error) {
	row := s.db.QueryRow(`SELECT `+recordColumns+` FROM battles WHERE battle_id = ?`, battleID)
	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query battle: %w", err)
	}
	return &r, nil
}

// RecentBattles retrieves the most recent battles, newest first.
func (s *Store) RecentBattles(limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+recordColumns+`
		 FROM battles
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query battles: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// Tally counts all recorded outcomes.
func (s *Store) Tally() (Tally, error) {
	var t Tally
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(result = ?), 0),
		        COALESCE(SUM(result = ?), 0),
		        COALESCE(SUM(result = ?), 0),
		        COALESCE(SUM(turns), 0)
		 FROM battles`,
		battle.ResultVictory.String(),
		battle.ResultDefeat.String(),
		battle.ResultEscape.String(),
	).Scan(&t.Battles, &t.Victories, &t.Defeats, &t.Escapes, &t.Turns)
	if err != nil {
		return Tally{}, fmt.Errorf("storage: cannot tally battles: %w", err)
	}
	return t, nil
}

// StatsByLead aggregates battles per player lead monster.
func (s *Store) StatsByLead() (map[string]*LeadStats, error) {
	rows, err := s.db.Query(
		`SELECT player_lead, COUNT(*), COALESCE(SUM(result = ?), 0), AVG(turns), MAX(created_at)
		 FROM battles
		 GROUP BY player_lead`,
		battle.ResultVictory.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get lead stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*LeadStats)
	for rows.Next() {
		var ls LeadStats
		var last any
		if err := rows.Scan(&ls.Lead, &ls.Battles, &ls.Victories, &ls.AvgTurns, &last); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ls.LastFight = parseTime(last)
		stats[ls.Lead] = &ls
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// ClearBattles deletes every recorded battle.
func (s *Store) ClearBattles() error {
	if _, err := s.db.Exec("DELETE FROM battles"); err != nil {
		return fmt.Errorf("storage: cannot clear battles: %w", err)
	}
	return nil
}
