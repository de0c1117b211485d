// Package game implements the main game loop.
package game

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/ironvale/internal/config"
	"github.com/Faultbox/ironvale/internal/engine/input"
	"github.com/Faultbox/ironvale/internal/engine/renderer"
	"github.com/Faultbox/ironvale/internal/engine/scene"
	"github.com/Faultbox/ironvale/internal/engine/window"
	"github.com/Faultbox/ironvale/internal/logger"
)

// Title is the window title.
const Title = "Ironvale"

// Game is the main game instance.
type Game struct {
	config  *config.Config
	running bool
	window  *window.Window
	input   *input.Input
	scene   *scene.Scene
	session *Session
	log     *zap.Logger
}

// New creates a new game instance.
func New(cfg *config.Config) (*Game, error) {
	log := logger.Named("game")
	log.Info("initializing game",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Bool("fullscreen", cfg.Graphics.Fullscreen),
	)

	g := &Game{
		config: cfg,
		log:    log,
	}

	// Create window (this also creates OpenGL context)
	var err error
	g.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		Antialias:  cfg.Graphics.Antialias,
		Samples:    cfg.Graphics.Samples,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	r, err := renderer.New()
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	g.scene, err = scene.New(scene.Options{
		PixelRatio:       cfg.Graphics.PixelRatio,
		Antialias:        cfg.Graphics.Antialias,
		Shadows:          cfg.Graphics.Shadows,
		ShadowResolution: cfg.Graphics.ShadowResolution,
		PlayArea:         max(cfg.Terrain.Width, cfg.Terrain.Height),
	}, r, g.window)
	if err != nil {
		r.Dispose()
		g.window.Close()
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}

	g.input = input.New()
	g.session = NewSession(g.scene, g.input, cfg)

	log.Info("game initialized successfully")
	return g, nil
}

// Run starts the main game loop.
func (g *Game) Run() error {
	g.running = true

	var frameBudget time.Duration
	if g.config.Graphics.FPSLimit > 0 {
		frameBudget = time.Second / time.Duration(g.config.Graphics.FPSLimit)
	}

	// Timing
	lastTime := time.Now()
	frameCount := 0
	fps := 0
	fpsTimer := time.Now()
	phase := g.session.Phase()
	g.window.SetTitle(windowTitle(phase, 0))

	g.log.Info("starting game loop")

	for g.running {
		frameStart := time.Now()
		dt := frameStart.Sub(lastTime).Seconds()
		lastTime = frameStart

		// 1. Process input; listeners run during Update
		if g.input.Update() {
			g.running = false
			break
		}
		for _, event := range g.input.Events() {
			if event.Type == input.EventWindowResize {
				g.scene.HandleResize()
			}
		}
		if g.session.Quit() {
			g.running = false
			break
		}

		// 2. Update camera and lights
		g.session.Update(float32(dt))

		// 3. Render
		if err := g.session.Render(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}

		// 4. Present (swap buffers)
		g.window.SwapBuffers()

		// FPS counter
		frameCount++
		titleDirty := false
		if time.Since(fpsTimer) >= time.Second {
			g.log.Debug("fps", zap.Int("count", frameCount), zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)))
			if g.config.Game.ShowFPS {
				fps = frameCount
				titleDirty = true
			}
			frameCount = 0
			fpsTimer = time.Now()
		}
		if p := g.session.Phase(); p != phase {
			phase = p
			titleDirty = true
		}
		if titleDirty {
			g.window.SetTitle(windowTitle(phase, fps))
		}

		if frameBudget > 0 {
			if rest := frameBudget - time.Since(frameStart); rest > 0 {
				time.Sleep(rest)
			}
		}
	}

	return nil
}

// windowTitle names the phase and, when fps is positive, the frame rate.
func windowTitle(p Phase, fps int) string {
	if fps > 0 {
		return fmt.Sprintf("%s - %s - %d fps", Title, p, fps)
	}
	return fmt.Sprintf("%s - %s", Title, p)
}

// Close cleans up game resources.
func (g *Game) Close() {
	g.log.Info("closing game")

	if g.session != nil {
		g.session.Dispose()
	}
	if g.scene != nil {
		g.scene.Dispose()
	}
	if g.window != nil {
		g.window.Close()
	}
}
