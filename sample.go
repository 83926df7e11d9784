package meshsdf

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/soypat/meshsdf/internal/d3"
	"github.com/soypat/meshsdf/internal/log"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// DefaultGridSize is the default number of cells per axis.
	DefaultGridSize = 30
	// DefaultPadding is the default margin added around the mesh bounds.
	DefaultPadding = 1.0
)

var logger = log.New("meshsdf")

// Config controls how a mesh is sampled.
type Config struct {
	// GridSize is the number of cells along each axis. Must be 1 or larger.
	GridSize int
	// Padding is the margin added around the mesh bounding box on
	// every side of every axis, in world units.
	Padding float64
	// Workers is the number of goroutines sampling the grid.
	// If zero the number of CPUs is used.
	Workers int
	// LegacyEdgeBC measures points closest to a triangle's b-c edge against
	// vertex c, reproducing volumes written by older exporters.
	LegacyEdgeBC bool
	// Progress, if not nil, is called about every 10% of sampled voxels
	// with the number of voxels done. Calls are never concurrent.
	Progress func(done, total int)
}

// DefaultConfig returns the configuration used when no options are given.
func DefaultConfig() Config {
	return Config{
		GridSize: DefaultGridSize,
		Padding:  DefaultPadding,
	}
}

// Validate checks the configuration values.
func (cfg Config) Validate() error {
	if cfg.GridSize < 1 {
		return fmt.Errorf("%w, got %d", ErrGridSize, cfg.GridSize)
	}
	if cfg.Padding < 0 || math.IsNaN(cfg.Padding) || math.IsInf(cfg.Padding, 0) {
		return fmt.Errorf("%w, got %g", ErrPadding, cfg.Padding)
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("%w: negative worker count %d", ErrInvalidInput, cfg.Workers)
	}
	// Avoid allocating absurd amounts of memory on typos.
	if float64(cfg.GridSize)*float64(cfg.GridSize)*float64(cfg.GridSize) > math.MaxInt32 {
		return fmt.Errorf("%w, grid size %d too large", ErrGridSize, cfg.GridSize)
	}
	return nil
}

// Sample evaluates the signed distance to m at the center of every cell of
// a cfg.GridSize³ grid spanning the mesh bounds grown by cfg.Padding.
// Input errors are reported before any sampling starts. The context is
// checked between slabs of voxels; if it is done before every slab is
// sampled the context's error is returned wrapped. A volume finished
// before cancellation is returned.
//
// The result does not depend on cfg.Workers: each voxel is written by
// exactly one goroutine using the same arithmetic.
func Sample(ctx context.Context, m *Mesh, cfg Config) (*Volume, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if m == nil || m.Len() == 0 {
		return nil, ErrEmptyMesh
	}
	bb := m.bb.Pad(cfg.Padding)
	if !d3.IsFinite(bb.Min) || !d3.IsFinite(bb.Max) || !d3.IsFinite(bb.Size()) {
		return nil, fmt.Errorf("%w: bounds %v %v with padding %g overflow", ErrNonFinite, bb.Min, bb.Max, cfg.Padding)
	}
	if d3.LTEZero(bb.Size()) {
		return nil, fmt.Errorf("%w: size %v with padding %g", ErrDegenerateBounds, bb.Size(), cfg.Padding)
	}

	n := cfg.GridSize
	vol := &Volume{
		Size: n,
		Min:  bb.Min,
		Max:  bb.Max,
		Data: make([]float64, n*n*n),
	}
	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	if workers > n {
		// One slab of constant x is the smallest unit of work.
		workers = n
	}
	s := sampler{
		mesh:     m,
		origin:   bb.Min,
		step:     gridStep(bb, n),
		size:     n,
		legacyBC: cfg.LegacyEdgeBC,
	}
	prog := progress{total: len(vol.Data), fn: cfg.Progress}
	logger.Debugf("sampling %d triangles on %d³ grid %v to %v with %d workers", m.Len(), n, bb.Min, bb.Max, workers)
	start := time.Now()

	var (
		wg   sync.WaitGroup
		next atomic.Int64
	)
	slab := n * n
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ctx.Err() == nil {
				x := int(next.Add(1) - 1)
				if x >= n {
					return
				}
				s.sampleSlab(x, vol.Data[x*slab:(x+1)*slab])
				prog.add(slab)
			}
		}()
	}
	wg.Wait()
	if err := ctx.Err(); err != nil && prog.done < prog.total {
		return nil, fmt.Errorf("sampling stopped after %d of %d voxels: %w", prog.done, prog.total, err)
	}
	logger.Debugf("sampled %d voxels in %s", len(vol.Data), time.Since(start))
	return vol, nil
}

type sampler struct {
	mesh     *Mesh
	origin   r3.Vec
	step     r3.Vec
	size     int
	legacyBC bool
}

// sampleSlab fills dst with the signed distances of all voxels with the
// given x index. dst must have length size².
func (s *sampler) sampleSlab(x int, dst []float64) {
	for y := 0; y < s.size; y++ {
		for z := 0; z < s.size; z++ {
			p := voxelCenter(s.origin, s.step, x, y, z)
			dst[y*s.size+z] = s.mesh.signedDistance(p, s.legacyBC)
		}
	}
}

// progress reports sampling progress at every completed tenth of the work.
type progress struct {
	mu     sync.Mutex
	done   int
	total  int
	tenths int
	fn     func(done, total int)
}

func (p *progress) add(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done += n
	tenths := 10 * p.done / p.total
	if tenths == p.tenths {
		return
	}
	p.tenths = tenths
	logger.Infof("progress: %.1f%%", 100*float64(p.done)/float64(p.total))
	if p.fn != nil {
		p.fn(p.done, p.total)
	}
}
