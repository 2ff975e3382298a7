// Package api serves the high-score table over HTTP.
package api

import (
	"net/http"
	"strconv"

	"github.com/Mshel/snake/internal/game"
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// ScoreLister is the read side of game.HighScoreService.
type ScoreLister interface {
	GetHighScores(limit, offset int) ([]game.Score, error)
	GetTotalScoreCount() (int, error)
}

// NewRouter wires the leaderboard routes onto a fresh gin engine.
func NewRouter(scores ScoreLister) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/scores", ScoresHandler(scores))

	return router
}

// ScoresHandler pages through the table with limit and offset. The total
// number of stored scores goes in the X-Total-Count header.
func ScoresHandler(scores ScoreLister) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
			return
		}
		limit = max(1, min(limit, maxLimit))

		offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
		if err != nil || offset < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "offset must be a non-negative integer"})
			return
		}

		result, err := scores.GetHighScores(limit, offset)
		if err != nil {
			log.Error("Failed to load high scores", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to load high scores"})
			return
		}

		total, err := scores.GetTotalScoreCount()
		if err != nil {
			log.Error("Failed to count high scores", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to load high scores"})
			return
		}

		c.Header("X-Total-Count", strconv.Itoa(total))
		c.JSON(http.StatusOK, result)
	}
}
