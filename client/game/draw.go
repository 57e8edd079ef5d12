package game

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/cbodonnell/lockstep/pkg/game/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
)

// pixelsPerUnit is the camera zoom. The world origin sits at the centre of the screen.
const pixelsPerUnit = 24

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)

	switch g.mode {
	case GameModeMenu:
		drawLines(screen, []string{
			"LOCKSTEP",
			"",
			fmt.Sprintf("Room %d, %s", g.room, g.config),
			"",
			"C  create a game",
			"J  join a game",
			"H  past games",
		})
	case GameModeConnecting:
		drawLines(screen, []string{
			"Waiting for the other player",
			g.manager.State().String(),
			"",
			"ESC  cancel",
		})
	case GameModePlay:
		g.drawWorld(screen)
	case GameModeHistory:
		g.drawHistory(screen)
	case GameModeError:
		drawLines(screen, []string{g.message, "", "ENTER  back"})
	}

	if g.debug {
		g.drawDebugOverlay(screen)
	}
}

func (g *Game) drawWorld(screen *ebiten.Image) {
	local := g.gameManager.LocalHandle()
	g.gameManager.World().Each(func(e types.Entity, c *types.Components) {
		if c.Transform == nil || c.Collider == nil {
			return
		}
		x, y, w, h := screenRect(c.Transform.Position.X, c.Transform.Position.Y, c.Collider.BoundingBox.X, c.Collider.BoundingBox.Y)
		vector.DrawFilledRect(screen, x, y, w, h, entityColor(c, local), false)
		if g.debug && c.Collider.Sides != 0 {
			vector.StrokeRect(screen, x, y, w, h, 1, colornames.Red, false)
		}
	})
}

// screenRect maps a centred world box with y up to a screen rectangle with y down.
func screenRect(cx, cy, width, height float32) (x, y, w, h float32) {
	w = width * pixelsPerUnit
	h = height * pixelsPerUnit
	x = DefaultScreenWidth/2 + cx*pixelsPerUnit - w/2
	y = DefaultScreenHeight/2 - cy*pixelsPerUnit - h/2
	return x, y, w, h
}

func entityColor(c *types.Components, localHandle int) color.Color {
	switch {
	case c.Player != nil && c.Player.Handle == localHandle:
		return colornames.Limegreen
	case c.Player != nil:
		return colornames.Orchid
	case c.Vine:
		return colornames.Forestgreen
	case c.Platform:
		return colornames.Sienna
	default:
		return colornames.Lightgray
	}
}

func (g *Game) drawHistory(screen *ebiten.Image) {
	lines := []string{"PAST GAMES", ""}
	if len(g.history) == 0 {
		lines = append(lines, "No games played yet")
	}
	for _, m := range g.history {
		lines = append(lines, fmt.Sprintf("%s  room %d  %s  seed %d  diff %d  %d frames  %s",
			m.StartedAt.Local().Format("Jan 02 15:04"), m.Room, m.Role, m.Seed, m.Difficulty, m.Frames, m.EndReason))
	}
	lines = append(lines, "", "ENTER  back")
	drawLines(screen, lines)
}

func drawLines(screen *ebiten.Image, lines []string) {
	ebitenutil.DebugPrintAt(screen, strings.Join(lines, "\n"), 32, DefaultScreenHeight/3)
}

func (g *Game) drawDebugOverlay(screen *ebiten.Image) {
	lines := []string{
		fmt.Sprintf("FPS: %0.1f", ebiten.ActualFPS()),
		fmt.Sprintf("TPS: %0.1f", ebiten.ActualTPS()),
		fmt.Sprintf("Mode: %s", g.mode),
	}
	if g.mode == GameModePlay {
		lines = append(lines,
			fmt.Sprintf("Frame: %d", g.gameManager.Frame()),
			fmt.Sprintf("Desyncs: %d", g.gameManager.Desyncs()),
			fmt.Sprintf("Entities: %d", g.gameManager.World().Len()),
		)
	}
	ebitenutil.DebugPrint(screen, strings.Join(lines, "\n"))
}
