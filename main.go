package main

import (
	"log"

	"nocturne/internal/config"
	"nocturne/internal/game"
	"nocturne/internal/sim"
	"nocturne/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	// Load configuration
	cfg := config.MustLoadConfig("config.yaml")

	// Build the demo map and its assets
	m, err := world.BuildDemoMap()
	if err != nil {
		log.Fatalf("demo map: %v", err)
	}
	textures := world.BuildTextures()
	sprites := world.BuildSprites()

	// Set window properties from config
	ebiten.SetWindowSize(cfg.GetScreenWidth()*cfg.Display.WindowScale, cfg.GetScreenHeight()*cfg.Display.WindowScale)
	ebiten.SetWindowTitle(cfg.Display.WindowTitle)
	if cfg.Display.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	// Lock update rate to the simulation tick rate
	ebiten.SetTPS(sim.TicRate)

	g := game.NewGame(cfg, m, textures, sprites)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
