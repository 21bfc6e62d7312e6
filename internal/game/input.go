package game

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"nocturne/internal/geom"
)

// InputHandler translates key state into player movement, once per tick.
type InputHandler struct {
	game *Game
}

// NewInputHandler creates a new input handler
func NewInputHandler(game *Game) *InputHandler {
	return &InputHandler{game: game}
}

// HandleInput processes movement and turning for one tick.
func (ih *InputHandler) HandleInput() {
	g := ih.game
	moveSpeed := g.cfg.GetMoveSpeed()
	rotSpeed := g.cfg.GetRotSpeed()

	if ebiten.IsKeyPressed(ebiten.KeyLeft) {
		g.player.Angle = geom.NormalizeAngle(g.player.Angle + rotSpeed)
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) {
		g.player.Angle = geom.NormalizeAngle(g.player.Angle - rotSpeed)
	}

	var forward, sideways float64
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		forward += moveSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		forward -= moveSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		sideways += moveSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		sideways -= moveSpeed
	}

	if forward != 0 || sideways != 0 {
		// Sideways is 90 degrees counterclockwise from forward.
		sin, cos := math.Sincos(g.player.Angle)
		dx := forward*cos - sideways*sin
		dy := forward*sin + sideways*cos
		ih.tryMove(geom.V(g.player.Position.X+dx, g.player.Position.Y+dy))
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		g.activateLifts()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.cfg.Graphics.ShowStats = !g.cfg.Graphics.ShowStats
	}
}

// tryMove moves the player unless the destination is outside any sector.
// There is no collision against walls, just a guard against leaving the map.
func (ih *InputHandler) tryMove(to geom.Vertex) {
	if ih.game.world.Map.SectorAt(to) == nil {
		return
	}
	ih.game.player.Position = to
}
