package palette

import (
	"context"
	"fmt"
	"sync"

	"github.com/cespare/xxhash"

	"github.com/justestif/go-spotify-mood-playlist/internal/mood"
)

// DefaultCacheSize is the number of image analyses kept in memory.
const DefaultCacheSize = 128

// Analyzer loads images, extracts their palettes and maps them to mood
// results. Results are cached by a hash of the image bytes.
type Analyzer struct {
	loader    *Loader
	extractor Extractor

	cacheSize int
	mu        sync.Mutex
	cache     map[uint64]mood.Result
	order     []uint64
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithCacheSize sets the number of cached analyses. Zero disables caching.
func WithCacheSize(n int) Option {
	return func(a *Analyzer) {
		if n >= 0 {
			a.cacheSize = n
		}
	}
}

// WithLoader replaces the default image loader.
func WithLoader(l *Loader) Option {
	return func(a *Analyzer) {
		a.loader = l
	}
}

// NewAnalyzer creates an Analyzer around the given extractor.
func NewAnalyzer(extractor Extractor, opts ...Option) *Analyzer {
	a := &Analyzer{
		loader:    NewLoader(),
		extractor: extractor,
		cacheSize: DefaultCacheSize,
		cache:     make(map[uint64]mood.Result),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze maps the image described by src to audio targets.
// An empty source maps the empty palette.
func (a *Analyzer) Analyze(ctx context.Context, src Source) (mood.Result, error) {
	data, err := a.loader.Load(ctx, src)
	if err != nil {
		return mood.Result{}, fmt.Errorf("loading image: %w", err)
	}
	if len(data) == 0 {
		return mood.MapPalette(nil)
	}
	return a.AnalyzeBytes(data)
}

// AnalyzeBytes maps raw image bytes to audio targets.
func (a *Analyzer) AnalyzeBytes(data []byte) (mood.Result, error) {
	key := xxhash.Sum64(data)
	if result, ok := a.lookup(key); ok {
		return result, nil
	}

	img, err := Decode(data)
	if err != nil {
		return mood.Result{}, err
	}

	colors, err := a.extractor.Extract(img)
	if err != nil {
		return mood.Result{}, fmt.Errorf("extracting palette: %w", err)
	}

	result, err := mood.MapPalette(colors)
	if err != nil {
		return mood.Result{}, err
	}

	a.store(key, result)
	return result, nil
}

func (a *Analyzer) lookup(key uint64) (mood.Result, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	result, ok := a.cache[key]
	return result.Clone(), ok
}

// store adds a result, evicting the oldest entry when the cache is full.
func (a *Analyzer) store(key uint64, result mood.Result) {
	if a.cacheSize == 0 {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.cache[key]; ok {
		return
	}
	if len(a.order) >= a.cacheSize {
		oldest := a.order[0]
		a.order = a.order[1:]
		delete(a.cache, oldest)
	}
	a.cache[key] = result.Clone()
	a.order = append(a.order, key)
}

// cached returns the number of cached analyses.
func (a *Analyzer) cached() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.cache)
}
