// Package game implements the main game loop.
package game

import (
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/brawl/internal/assets"
	"github.com/Faultbox/brawl/internal/config"
	"github.com/Faultbox/brawl/internal/engine/actor"
	"github.com/Faultbox/brawl/internal/engine/audio"
	"github.com/Faultbox/brawl/internal/engine/clock"
	"github.com/Faultbox/brawl/internal/engine/debug"
	"github.com/Faultbox/brawl/internal/engine/input"
	"github.com/Faultbox/brawl/internal/engine/keys"
	"github.com/Faultbox/brawl/internal/engine/renderer"
	"github.com/Faultbox/brawl/internal/engine/scheduler"
	"github.com/Faultbox/brawl/internal/engine/window"
	"github.com/Faultbox/brawl/internal/game/fighter"
	"github.com/Faultbox/brawl/internal/game/states"
	"github.com/Faultbox/brawl/internal/logger"
	"github.com/Faultbox/brawl/pkg/math"
)

const title = "Brawl"

// ScreenshotKey saves the next frame as a PNG.
const ScreenshotKey = keys.F12

// Game is the main game instance.
type Game struct {
	config  *config.Config
	running bool
	log     *zap.Logger

	window    *window.Window
	renderer  *renderer.Renderer
	input     *input.Input
	audio     *audio.Manager
	clock     *clock.Clock
	scheduler *scheduler.Scheduler
	states    *states.Manager
	fight     *states.Fight

	screenshots *debug.Screenshots
	captureNext bool
}

// canvas lets the fight state draw actors without depending on OpenGL.
type canvas struct {
	r *renderer.Renderer
}

func (c canvas) Begin()                   { c.r.Begin() }
func (c canvas) DrawActor(a *actor.Actor) { c.r.DrawActor(a) }
func (c canvas) End()                     { c.r.End() }

// New creates the window, engine services and both fighters.
func New(cfg *config.Config) (*Game, error) {
	log := logger.Named("game")
	log.Info("initializing game",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	g := &Game{
		config: cfg,
		log:    log,
	}

	var err error
	g.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	}, logger.Named("window"))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer needs the GL context created by the window.
	width, height := g.window.DrawableSize()
	g.renderer, err = renderer.New(renderer.Config{
		Width:     width,
		Height:    height,
		ViewWidth: cfg.Graphics.ViewWidth,
		FloorZ:    cfg.Game.Players[0].Start[2],
	}, logger.Named("renderer"))
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	g.input = input.New()
	g.audio = g.initAudio()
	g.clock = clock.New(cfg.Game.MaxFrameDelta)
	g.scheduler = scheduler.New(logger.Named("scheduler"))
	g.states = states.NewManager()
	g.screenshots = debug.NewScreenshots(filepath.Join(config.ConfigDir(), "screenshots"), "brawl")

	g.fight = states.NewFight(g.scheduler, canvas{g.renderer}, g.audio, logger.Named("fight"))
	manifests := assets.NewManager()
	loader := actor.NewLoader(manifests, logger.Named("actor"))
	schemes := [2]fighter.SchemeID{fighter.SchemeOne, fighter.SchemeTwo}
	for i, p := range cfg.Game.Players {
		setup := states.PlayerSetup{
			Slot:      p.Character,
			Scheme:    schemes[i],
			WalkSpeed: cfg.Game.WalkSpeed,
			Start:     math.Vec3{X: p.Start[0], Y: p.Start[1], Z: p.Start[2]},
		}
		if _, err := g.fight.Join(setup, loader, g.input); err != nil {
			g.Close()
			return nil, fmt.Errorf("player %d: %w", i+1, err)
		}
	}
	// Both actors own their clip tables now.
	hits, misses := manifests.Stats()
	log.Debug("releasing manifests", zap.Int("hits", hits), zap.Int("misses", misses))
	manifests.Release()

	g.states.Change(g.fight)

	log.Info("game initialized successfully")
	return g, nil
}

// initAudio opens the audio device. Failure leaves the game silent.
func (g *Game) initAudio() *audio.Manager {
	m := audio.New(logger.Named("audio"))
	m.SetMasterVolume(g.config.Audio.MasterVolume)
	m.SetSFXVolume(g.config.Audio.SFXVolume)
	m.SetMuted(g.config.Audio.Muted)
	if g.config.Audio.Muted {
		return m
	}
	if err := m.Init(); err != nil {
		g.log.Warn("audio unavailable, continuing without sound", zap.Error(err))
	}
	return m
}

// Run starts the main game loop.
func (g *Game) Run() error {
	g.running = true

	frameCount := 0
	fpsTimer := time.Now()

	g.log.Info("starting game loop")

	for g.running {
		dt := g.clock.Tick()

		// 1. Process input
		if g.input.Update() {
			g.running = false
			break
		}
		if err := g.handleEvents(); err != nil {
			return fmt.Errorf("input error: %w", err)
		}
		if !g.running {
			break
		}

		// 2. Update game state
		if err := g.states.Update(dt); err != nil {
			return fmt.Errorf("update error: %w", err)
		}

		// 3. Render
		if err := g.states.Render(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}

		if g.captureNext {
			g.captureNext = false
			g.saveScreenshot()
		}

		// 4. Present (swap buffers)
		g.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			g.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.Uint64("frame", g.clock.Frames()),
				zap.Uint64("tick", g.scheduler.Frame()),
				zap.Float64("dtMs", dt*1000),
				zap.Stringers("held", g.input.Held()),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (g *Game) handleEvents() error {
	if g.input.KeyPressed(keys.Escape) {
		g.running = false
		return nil
	}
	for _, event := range g.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			w, h := g.window.DrawableSize()
			g.renderer.Resize(w, h)
		case input.EventKeyDown:
			if event.Repeat {
				continue
			}
			if event.Key == ScreenshotKey {
				g.captureNext = true
				continue
			}
			if err := g.states.HandleInput(states.KeyPress{Key: event.Key}); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *Game) saveScreenshot() {
	pixels, w, h := g.renderer.ReadPixels()
	path, err := g.screenshots.Save(pixels, w, h)
	if err != nil {
		g.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	g.log.Info("screenshot saved", zap.String("path", path))
}

// Close cleans up game resources.
func (g *Game) Close() {
	g.log.Info("closing game")

	if g.states != nil {
		if err := g.states.Close(); err != nil {
			g.log.Warn("leaving state", zap.Error(err))
		}
	}
	if g.fight != nil {
		if err := g.fight.Close(); err != nil {
			g.log.Warn("releasing fighters", zap.Error(err))
		}
	}
	if g.audio != nil {
		g.audio.Close()
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}
