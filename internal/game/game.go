// Package game wires the simulation and the renderer into an ebiten game:
// input, the player viewpoint and frame presentation.
package game

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"nocturne/internal/config"
	"nocturne/internal/geom"
	"nocturne/internal/level"
	"nocturne/internal/perf"
	"nocturne/internal/render"
	"nocturne/internal/sim"
)

// Game is the top-level ebiten game. Update runs at the simulation tick
// rate; each Draw renders the current world state from the player viewpoint.
type Game struct {
	cfg       *config.Config
	world     *sim.World
	scheduler *sim.Scheduler
	renderer  *render.Renderer
	fb        *render.Framebuffer
	frame     *ebiten.Image
	input     *InputHandler
	monitor   *perf.Monitor
	player    Player
	tick      int
}

// Player is the viewpoint owner: position, facing and the floor height of
// the sector underneath, which the eye follows.
type Player struct {
	Position    geom.Vertex
	Angle       float64
	FloorHeight float64
}

// NewGame builds the game from a loaded map and asset stores.
func NewGame(cfg *config.Config, m *level.Map, textures *level.TextureStore, sprites *level.SpriteStore) *Game {
	world := sim.NewWorld(m)
	scheduler := sim.NewScheduler(world, cfg.GetRandomSeed())

	width := cfg.GetScreenWidth()
	height := cfg.GetScreenHeight()

	g := &Game{
		cfg:       cfg,
		world:     world,
		scheduler: scheduler,
		renderer:  render.NewRenderer(m, textures, sprites, width, height, cfg.GetAspectCorrection()),
		fb:        render.NewFramebuffer(width, height),
		frame:     ebiten.NewImage(width, height),
		monitor:   perf.NewMonitor(),
	}
	g.input = NewInputHandler(g)
	g.placePlayerAtStart()
	return g
}

// placePlayerAtStart moves the player to the first player start thing, or
// the map origin when the map has none.
func (g *Game) placePlayerAtStart() {
	for _, thing := range g.world.Map.Things {
		if thing.Type == sim.ThingPlayer1Start {
			g.player.Position = thing.Position
			g.player.Angle = thing.Angle
			break
		}
	}
	g.syncFloorHeight()
}

// syncFloorHeight makes the eye follow the floor of the sector under the
// player, including floors moved by the simulation.
func (g *Game) syncFloorHeight() {
	if sector := g.world.Map.SectorAt(g.player.Position); sector != nil {
		g.player.FloorHeight = sector.CurrentFloor
	}
}

// liftTag marks sectors the use key raises and lowers.
const liftTag = 1

// activateLifts starts a rise-and-return floor move on every lift sector.
func (g *Game) activateLifts() {
	for i := range g.world.Map.Sectors {
		sec := &g.world.Map.Sectors[i]
		if sec.Tag == liftTag {
			g.scheduler.AddMovingFloor(i, sec.FloorHeight+48, 2, sim.FloorFinishReturn)
		}
	}
}

// Update advances the world by one simulation tick. The TPS is set to the
// tick rate in main, so real time and simulation time stay locked.
func (g *Game) Update() error {
	g.input.HandleInput()
	g.scheduler.Tick()
	g.syncFloorHeight()
	g.tick++
	return nil
}

// Draw renders the world into the software framebuffer and presents it.
func (g *Game) Draw(screen *ebiten.Image) {
	view := render.Viewpoint{
		Position:    g.player.Position,
		Angle:       g.player.Angle,
		FloorHeight: g.player.FloorHeight,
	}

	timer := g.monitor.StartFrame()
	g.renderer.RenderFrame(g.fb, view, g.world)
	timer.EndFrame()

	g.frame.WritePixels(g.fb.Pixels)
	screen.DrawImage(g.frame, nil)

	g.drawHUD(screen)
	if g.cfg.Graphics.ShowStats {
		g.drawStats(screen)
	}
}

// Layout returns the fixed render resolution; the window scales it up.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.GetScreenWidth(), g.cfg.GetScreenHeight()
}

func (g *Game) drawStats(screen *ebiten.Image) {
	msg := fmt.Sprintf("FPS %.0f  render %.1fms\nx %.0f y %.0f a %.2f\ntick %d  thinkers %d",
		ebiten.ActualFPS(), g.monitor.LastFrame().Seconds()*1000,
		g.player.Position.X, g.player.Position.Y, g.player.Angle,
		g.tick, g.scheduler.ActiveThinkers())
	ebitenutil.DebugPrint(screen, msg)
}
