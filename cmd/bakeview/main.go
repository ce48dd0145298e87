// Package main is the interactive level viewer. It renders the level
// with whatever tiles are ready, so baking progress is visible live.
package main

import (
	"fmt"
	"os"
	"time"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/tilebake/internal/config"
	"github.com/Faultbox/tilebake/internal/engine/palette"
	"github.com/Faultbox/tilebake/internal/engine/tracer"
	"github.com/Faultbox/tilebake/internal/engine/window"
	"github.com/Faultbox/tilebake/internal/game/level"
	"github.com/Faultbox/tilebake/internal/logger"
	"github.com/Faultbox/tilebake/pkg/imaging"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Tilebake Viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}

func run(cfg *config.Config) error {
	// Fill in placeholder art for any block surfaces not on disk, so a
	// fresh checkout has something to show without real textures.
	if n, err := palette.Generate(cfg.Palette.Dir, cfg.Palette.Blocks); err != nil {
		return fmt.Errorf("generating textures: %w", err)
	} else if n > 0 {
		logger.Info("generated placeholder textures", zap.Int("count", n))
	}

	pal, err := palette.Load(cfg.Palette.Dir, cfg.Palette.Blocks)
	if err != nil {
		return fmt.Errorf("loading palette: %w", err)
	}

	lvl, err := level.Load(cfg.Viewer.Level)
	if err != nil {
		return fmt.Errorf("loading level: %w", err)
	}

	win, err := window.New(window.Config{
		Title:  "tilebake",
		Width:  cfg.Viewer.Width,
		Height: cfg.Viewer.Height,
		VSync:  cfg.Viewer.VSync,
	})
	if err != nil {
		return err
	}
	defer win.Close()

	v := &viewer{
		win:      win,
		renderer: tracer.NewRenderer(pal, cfg.Lighting),
		level:    lvl,
		textures: newTextureCache(func(tex *sdl.Texture) { tex.Destroy() }),
	}
	defer v.close()

	return v.loop()
}

// viewer draws the level each frame and pans with the arrow keys.
type viewer struct {
	win      *window.Window
	renderer *tracer.Renderer
	level    *level.Level
	textures *textureCache[*sdl.Texture]

	// camera offset in pixels
	camX, camY int
}

func (v *viewer) close() {
	v.textures.close()
	v.renderer.LogStats()
	v.renderer.Close()
}

func (v *viewer) loop() error {
	lastTitle := time.Now()

	for {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				return nil
			case *sdl.KeyboardEvent:
				if e.Type == sdl.KEYDOWN && e.Keysym.Sym == sdl.K_ESCAPE {
					return nil
				}
			}
		}
		v.handleKeys()

		if err := v.drawFrame(); err != nil {
			return err
		}

		if time.Since(lastTitle) > time.Second {
			v.win.SetTitle("tilebake - " + v.renderer.Stats().String())
			// Drop textures for tiles no frame has asked for since the
			// last tick, mostly stand-ins superseded by finished bakes.
			v.textures.sweep()
			lastTitle = time.Now()
		}
	}
}

func (v *viewer) handleKeys() {
	const panSpeed = 8
	keys := sdl.GetKeyboardState()
	if keys[sdl.SCANCODE_LEFT] != 0 {
		v.camX -= panSpeed
	}
	if keys[sdl.SCANCODE_RIGHT] != 0 {
		v.camX += panSpeed
	}
	if keys[sdl.SCANCODE_UP] != 0 {
		v.camY -= panSpeed
	}
	if keys[sdl.SCANCODE_DOWN] != 0 {
		v.camY += panSpeed
	}
}

func (v *viewer) drawFrame() error {
	rend := v.win.Renderer()
	if err := rend.SetDrawColor(20, 20, 30, 255); err != nil {
		return err
	}
	if err := rend.Clear(); err != nil {
		return err
	}

	winW, winH := v.win.GetSize()
	x0 := max(v.camX/tracer.Grid, 0)
	y0 := max(v.camY/tracer.Grid, 0)
	x1 := min((v.camX+winW)/tracer.Grid+1, v.level.Width)
	y1 := min((v.camY+winH)/tracer.Grid+1, v.level.Height)

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			tile := v.renderer.RenderTile(v.level.KeyAt(x, y))
			tex, err := v.texture(tile)
			if err != nil {
				return err
			}
			dst := sdl.Rect{
				X: int32(x*tracer.Grid - v.camX),
				Y: int32(y*tracer.Grid - v.camY),
				W: tracer.Grid,
				H: tracer.Grid,
			}
			if err := rend.Copy(tex, nil, &dst); err != nil {
				return err
			}
		}
	}

	rend.Present()
	return nil
}

// texture returns the SDL texture for a baked tile, uploading it on
// first sight. Tiles are immutable once cached, so the pointer is a
// stable identity.
func (v *viewer) texture(tile *tracer.Tile) (*sdl.Texture, error) {
	if tex, ok := v.textures.get(tile); ok {
		return tex, nil
	}

	tex, err := v.win.Renderer().CreateTexture(
		sdl.PIXELFORMAT_ARGB8888,
		sdl.TEXTUREACCESS_STATIC,
		tracer.Grid,
		tracer.Grid,
	)
	if err != nil {
		return nil, fmt.Errorf("creating tile texture: %w", err)
	}

	raw := imaging.RawBGRA(tile)
	if err := tex.Update(nil, unsafe.Pointer(&raw[0]), tracer.Grid*4); err != nil {
		tex.Destroy()
		return nil, fmt.Errorf("uploading tile texture: %w", err)
	}

	v.textures.put(tile, tex)
	return tex, nil
}
