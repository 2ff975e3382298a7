package game

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
)

type HighScoreService struct {
	db *sql.DB
}

const tableName = "high_scores"

type Score struct {
	ID         int       `json:"id"`
	PlayerName string    `json:"player"`
	Score      int       `json:"score"`
	GridWidth  int       `json:"width"`
	GridHeight int       `json:"height"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewHighScoreService opens (or creates) the sqlite database at dbPath.
func NewHighScoreService(dbPath string) (*HighScoreService, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("error opening database %s: %w", dbPath, err)
	}

	service := &HighScoreService{db: db}
	if err := service.createTable(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating high scores table: %w", err)
	}

	return service, nil
}

// createTable creates the high_scores table if it does not exist.
func (serviceImpl *HighScoreService) createTable() error {
	const createTableSQL = `
	CREATE TABLE IF NOT EXISTS ` + tableName + ` (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		player_name TEXT NOT NULL,
		score INTEGER NOT NULL,
		grid_width INTEGER NOT NULL,
		grid_height INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`

	_, err := serviceImpl.db.Exec(createTableSQL)
	if err != nil {
		return fmt.Errorf("failed to execute CREATE TABLE: %w", err)
	}
	log.Debug("High scores table ensured.")
	return nil
}

func (serviceImpl *HighScoreService) SaveScore(playerName string, score, gridWidth, gridHeight int) error {
	const insertSQL = `
	INSERT INTO ` + tableName + ` (player_name, score, grid_width, grid_height)
	VALUES (?, ?, ?, ?);`

	_, err := serviceImpl.db.Exec(insertSQL, playerName, score, gridWidth, gridHeight)
	if err != nil {
		return fmt.Errorf("failed to insert high score for %s: %w", playerName, err)
	}

	return nil
}

// GetHighScores retrieves a paginated list of scores, best first. Ties go to
// whoever got there earlier.
func (serviceImpl *HighScoreService) GetHighScores(limit, offset int) ([]Score, error) {
	const selectSQL = `
	SELECT id, player_name, score, grid_width, grid_height, created_at
	FROM ` + tableName + `
	ORDER BY score DESC, created_at ASC, id ASC
	LIMIT ? OFFSET ?;`

	rows, err := serviceImpl.db.Query(selectSQL, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query high scores: %w", err)
	}
	defer rows.Close()

	scores := []Score{}

	for rows.Next() {
		var score Score
		err := rows.Scan(&score.ID, &score.PlayerName, &score.Score, &score.GridWidth, &score.GridHeight, &score.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		scores = append(scores, score)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}

	return scores, nil
}

func (serviceImpl *HighScoreService) GetTotalScoreCount() (int, error) {
	const countSQL = `SELECT COUNT(*) FROM ` + tableName + `;`
	var count int
	err := serviceImpl.db.QueryRow(countSQL).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get total score count: %w", err)
	}
	return count, nil
}

func (serviceImpl *HighScoreService) Close() error {
	return serviceImpl.db.Close()
}
