package tracer

import (
	"runtime"

	"go.uber.org/zap"

	"github.com/Faultbox/tilebake/internal/logger"
	"github.com/Faultbox/tilebake/pkg/imaging"
)

// workQueueSize bounds the work channel. In practice the dispatcher
// submits each canonical key at most once, so the queue never grows
// anywhere near this; the buffer only exists so Send never blocks.
const workQueueSize = 4096

// doneItem is a baked tile travelling back from a worker.
type doneItem struct {
	key TileKey
	img *imaging.Image[imaging.BGRA]
}

// Bakery asynchronously renders ("bakes") tile lighting on a fixed
// pool of worker goroutines. Send and TryRecv must be called from a
// single dispatcher goroutine; only the two channels are shared with
// the workers.
type Bakery struct {
	work chan TileKey
	done chan doneItem
	quit chan struct{}

	shared *SharedData

	// outbox holds completed bakes not yet claimed via TryRecv.
	outbox    map[TileKey]*imaging.Image[imaging.BGRA]
	numBaking int
}

// NewBakery starts the worker pool. Workers run until Close is called.
func NewBakery(palette Palette, lights Lights) *Bakery {
	b := &Bakery{
		work:   make(chan TileKey, workQueueSize),
		done:   make(chan doneItem, workQueueSize),
		quit:   make(chan struct{}),
		shared: NewSharedData(palette, lights),
		outbox: make(map[TileKey]*imaging.Image[imaging.BGRA]),
	}

	n := numRenderThreads()
	logger.Debug("starting bakery", zap.Int("workers", n))
	for i := 0; i < n; i++ {
		go b.worker()
	}
	return b
}

// numRenderThreads leaves one core free for the caller (rendering,
// input handling), but uses at least one.
func numRenderThreads() int {
	return max(runtime.NumCPU()-1, 1)
}

func (b *Bakery) worker() {
	for key := range b.work {
		img := b.shared.RenderCentralBlock(key)
		select {
		case b.done <- doneItem{key: key, img: img}:
		case <-b.quit:
			// Collector is gone; shut down quietly.
			return
		}
	}
}

// Send starts asynchronously baking the key's central tile. The baked
// image can later be retrieved through TryRecv. Never blocks beyond
// queue insertion.
func (b *Bakery) Send(key TileKey) {
	b.numBaking++
	b.work <- key
}

// TryRecv returns the baked image for the key if it is ready, nil
// otherwise. The key must have been sent, exactly once, earlier.
func (b *Bakery) TryRecv(key TileKey) *imaging.Image[imaging.BGRA] {
	// Move completed items to the outbox, if any.
	for {
		select {
		case item := <-b.done:
			b.numBaking--
			b.outbox[item.key] = item.img
		default:
			if img, ok := b.outbox[key]; ok {
				delete(b.outbox, key)
				return img
			}
			return nil
		}
	}
}

// NumBaking returns the number of keys sent but not yet collected.
func (b *Bakery) NumBaking() int {
	return b.numBaking
}

// CPUMillis returns cumulative worker CPU time spent baking.
func (b *Bakery) CPUMillis() int64 {
	return b.shared.CPUMillis()
}

// Close stops the worker pool. In-flight bakes finish or are dropped;
// no new work is accepted.
func (b *Bakery) Close() {
	close(b.quit)
	close(b.work)
}

// LogStats logs queue diagnostics.
func (b *Bakery) LogStats() {
	logger.Sugar.Infof("bakery: baking: %d, outbox: %d, CPU: %.1f s",
		b.numBaking, len(b.outbox), float64(b.CPUMillis())/1000.0)
}
