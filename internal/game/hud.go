package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	ebitext "github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// drawHUD draws the status line at the bottom of the screen: the sector the
// player stands in, its current light level and floor height.
func (g *Game) drawHUD(screen *ebiten.Image) {
	sector := g.world.Map.SectorAt(g.player.Position)
	if sector == nil {
		return
	}

	msg := fmt.Sprintf("LIGHT %3d  FLOOR %4.0f  OBJECTS %d",
		sector.LightLevel, sector.CurrentFloor, len(g.world.Objects))

	face := basicfont.Face7x13
	y := g.cfg.GetScreenHeight() - 4
	ebitext.Draw(screen, msg, face, 4, y, color.White)
}
