// Package main is the headless baker. It renders a whole level, or a
// single 3x3 neighborhood given with -key, to completion and writes
// the result as a PNG.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/tilebake/internal/config"
	"github.com/Faultbox/tilebake/internal/engine/palette"
	"github.com/Faultbox/tilebake/internal/engine/tracer"
	"github.com/Faultbox/tilebake/internal/game/level"
	"github.com/Faultbox/tilebake/internal/logger"
	"github.com/Faultbox/tilebake/pkg/imaging"
)

var (
	flagOut   = flag.String("out", "level.png", "output PNG path")
	flagKey   = flag.String("key", "", "bake a single neighborhood: 9 comma-separated block ids, row-major")
	flagGoody = flag.Uint("goody", 0, "overlay block id for -key")
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

	logger.Info("=== Tilebake ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("bake failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	// Fill in placeholder art for any block surfaces not on disk, so a
	// fresh checkout bakes without real textures.
	if n, err := palette.Generate(cfg.Palette.Dir, cfg.Palette.Blocks); err != nil {
		return fmt.Errorf("generating textures: %w", err)
	} else if n > 0 {
		logger.Info("generated placeholder textures", zap.Int("count", n))
	}

	pal, err := palette.Load(cfg.Palette.Dir, cfg.Palette.Blocks)
	if err != nil {
		return fmt.Errorf("loading palette: %w", err)
	}

	if *flagKey != "" {
		key, err := parseKey(*flagKey, uint8(*flagGoody))
		if err != nil {
			return err
		}
		r := tracer.NewRenderer(pal, cfg.Lighting)
		defer r.Close()

		tile := bakeKey(r, key)
		r.LogStats()
		if err := imaging.SavePNG(tile, *flagOut); err != nil {
			return fmt.Errorf("writing %s: %w", *flagOut, err)
		}
		logger.Info("wrote output", zap.String("path", *flagOut))
		return nil
	}

	lvl, err := level.Load(cfg.Viewer.Level)
	if err != nil {
		return fmt.Errorf("loading level: %w", err)
	}
	logger.Info("level loaded",
		zap.String("path", cfg.Viewer.Level),
		zap.Int("width", lvl.Width),
		zap.Int("height", lvl.Height),
	)

	r := tracer.NewRenderer(pal, cfg.Lighting)
	defer r.Close()

	start := time.Now()
	out := bakeLevel(r, lvl)
	r.LogStats()
	logger.Info("bake finished", zap.Duration("wall", time.Since(start)))

	if err := imaging.SavePNG(out, *flagOut); err != nil {
		return fmt.Errorf("writing %s: %w", *flagOut, err)
	}
	logger.Info("wrote output", zap.String("path", *flagOut))
	return nil
}

// parseKey turns "a,b,c,d,e,f,g,h,i" into a neighborhood key with e in
// the center.
func parseKey(s string, goody uint8) (tracer.TileKey, error) {
	var key tracer.TileKey
	parts := strings.Split(s, ",")
	if len(parts) != 9 {
		return key, fmt.Errorf("-key needs 9 block ids, got %d", len(parts))
	}
	for i, p := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return key, fmt.Errorf("-key element %d: %w", i, err)
		}
		key.Blocks[i/3][i%3] = uint8(id)
	}
	key.Goody = goody
	return key, nil
}

// bakeKey requests the tile until the full-quality bake lands.
func bakeKey(r *tracer.Renderer, key tracer.TileKey) *tracer.Tile {
	for {
		tile := r.RenderTile(key)
		if r.Stats().Baking == 0 {
			return tile
		}
		time.Sleep(20 * time.Millisecond)
	}
}

// bakeLevel renders every tile of the level until no bakes remain in
// flight, then composites the finished tiles into one image.
func bakeLevel(r *tracer.Renderer, lvl *level.Level) *tracer.Tile {
	// Each pass requests every tile; completed bakes are only collected
	// inside RenderTile, so keep making passes until one leaves nothing
	// in flight.
	for {
		for y := 0; y < lvl.Height; y++ {
			for x := 0; x < lvl.Width; x++ {
				r.RenderTile(lvl.KeyAt(x, y))
			}
		}
		if r.Stats().Baking == 0 {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}

	out := imaging.New[imaging.BGRA](lvl.Width*tracer.Grid, lvl.Height*tracer.Grid)
	for y := 0; y < lvl.Height; y++ {
		for x := 0; x < lvl.Width; x++ {
			tile := r.RenderTile(lvl.KeyAt(x, y))
			for ty := 0; ty < tracer.Grid; ty++ {
				for tx := 0; tx < tracer.Grid; tx++ {
					out.Set(x*tracer.Grid+tx, y*tracer.Grid+ty, tile.At(tx, ty))
				}
			}
		}
	}
	return out
}
