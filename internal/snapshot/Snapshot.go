// Package snapshot renders a board to a PNG image.
package snapshot

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/Mshel/snake/internal/game"
	"github.com/fogleman/gg"
)

type rgb struct {
	r, g, b int
}

var (
	colorBackground    = rgb{220, 220, 220}
	colorHighlightText = rgb{255, 0, 0}
	colorFruit         = rgb{0, 255, 0}
	colorSnakeHead     = rgb{255, 0, 0}
	colorSnakeBody     = rgb{127, 127, 127}
	colorText          = rgb{0, 0, 0}
)

func setColor(dc *gg.Context, c rgb) {
	dc.SetRGB255(c.r, c.g, c.b)
}

// Render draws the board at cellSize pixels per cell.
func Render(view game.RenderData, cellSize int) image.Image {
	width := view.Width * cellSize
	height := view.Height * cellSize

	dc := gg.NewContext(width, height)
	setColor(dc, colorBackground)
	dc.Clear()

	drawCell := func(c game.Coordinate, color rgb) {
		setColor(dc, color)
		dc.DrawRectangle(float64(c.X*cellSize), float64(c.Y*cellSize), float64(cellSize), float64(cellSize))
		dc.Fill()
	}

	drawCell(view.Fruit, colorFruit)
	for _, segment := range view.Body {
		drawCell(segment, colorSnakeBody)
	}
	drawCell(view.Head, colorSnakeHead)

	score := fmt.Sprintf("Score: %d", view.Score)
	if view.Running {
		setColor(dc, colorText)
		dc.DrawString(score, 10, 20)
	} else {
		setColor(dc, colorText)
		dc.DrawStringAnchored("GameOver", float64(width)/2, float64(height)/2-20, 0.5, 0.5)
		setColor(dc, colorHighlightText)
		dc.DrawStringAnchored(score, float64(width)/2, float64(height)/2, 0.5, 0.5)
	}

	return dc.Image()
}

// Save writes the rendered board into dir and returns the file path.
func Save(dir string, view game.RenderData, cellSize int) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create snapshot dir %s: %w", dir, err)
	}

	fileName := filepath.Join(dir, fmt.Sprintf("snake-%d.png", time.Now().UnixNano()))
	if err := gg.SavePNG(fileName, Render(view, cellSize)); err != nil {
		return "", fmt.Errorf("failed to save snapshot %s: %w", fileName, err)
	}

	return fileName, nil
}
