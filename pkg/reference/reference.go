// Package reference resolves the opaque ids found in race rows
// (tracks, vehicles, vehicle classes) to display names. The source ids
// are signed 32 bit hashes from the game and can be negative.
package reference

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/samber/lo"

	"github.com/skidmark-racing/chorley/log"
)

const (
	tracksFile         = "tracks.json"
	vehiclesFile       = "vehicles.json"
	vehicleClassesFile = "vehicle_classes.json"
)

type Track struct {
	ID       int32  `json:"id"`
	Name     string `json:"name"`
	GridSize int32  `json:"gridsize"`
}

type Vehicle struct {
	ID    int32  `json:"id"`
	Name  string `json:"name"`
	Class int32  `json:"class"`
}

type VehicleClass struct {
	Value          int32  `json:"value"`
	Name           string `json:"name"`
	TranslatedName string `json:"translated_name"`
}

// the game api wraps every list in this envelope
type envelope[T any] struct {
	Result   string `json:"result"`
	Response struct {
		List []T `json:"list"`
	} `json:"response"`
}

type Index struct {
	mu      sync.RWMutex
	dir     string
	log     *log.Logger
	tracks  map[int32]Track
	cars    map[int32]Vehicle
	classes map[int32]VehicleClass
}

type Option func(*Index)

func WithLogger(l *log.Logger) Option {
	return func(idx *Index) { idx.log = l }
}

// NewIndex loads the three catalogs from dir. A file that cannot be
// read leaves its table empty; lookups still work via placeholders.
func NewIndex(dir string, opts ...Option) *Index {
	ret := &Index{
		dir:     dir,
		log:     log.Default().Named("reference"),
		tracks:  map[int32]Track{},
		cars:    map[int32]Vehicle{},
		classes: map[int32]VehicleClass{},
	}
	for _, opt := range opts {
		opt(ret)
	}
	ret.Reload()
	return ret
}

// Reload re-reads all catalogs and atomically replaces the lookup
// tables. A catalog that fails to load keeps its previous table.
func (idx *Index) Reload() {
	tracks, err := loadKeyed(filepath.Join(idx.dir, tracksFile),
		func(t Track) int32 { return t.ID })
	if err != nil {
		idx.log.Warn("could not load tracks", log.ErrorField(err))
		tracks = nil
	}
	cars, err := loadKeyed(filepath.Join(idx.dir, vehiclesFile),
		func(v Vehicle) int32 { return v.ID })
	if err != nil {
		idx.log.Warn("could not load vehicles", log.ErrorField(err))
		cars = nil
	}
	classes, err := loadKeyed(filepath.Join(idx.dir, vehicleClassesFile),
		func(c VehicleClass) int32 { return c.Value })
	if err != nil {
		idx.log.Warn("could not load vehicle classes", log.ErrorField(err))
		classes = nil
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()
	if tracks != nil {
		idx.tracks = tracks
	}
	if cars != nil {
		idx.cars = cars
	}
	if classes != nil {
		idx.classes = classes
	}
	idx.log.Info("reference data loaded",
		log.Int("tracks", len(idx.tracks)),
		log.Int("vehicles", len(idx.cars)),
		log.Int("vehicleClasses", len(idx.classes)))
}

func loadKeyed[T any](path string, key func(T) int32) (map[int32]T, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var env envelope[T]
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, err
	}
	if env.Result != "ok" {
		return nil, fmt.Errorf("unexpected result %q in %s", env.Result, path)
	}
	return lo.KeyBy(env.Response.List, key), nil
}

func (idx *Index) Track(id int32) (Track, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	t, ok := idx.tracks[id]
	return t, ok
}

func (idx *Index) Vehicle(id int32) (Vehicle, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	v, ok := idx.cars[id]
	return v, ok
}

func (idx *Index) VehicleClass(id int32) (VehicleClass, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	c, ok := idx.classes[id]
	return c, ok
}

// TrackName resolves a track id, never fails.
func (idx *Index) TrackName(id int32) string {
	if t, ok := idx.Track(id); ok {
		return t.Name
	}
	return fmt.Sprintf("Unknown Track (%d)", id)
}

// VehicleName resolves a vehicle model id, never fails.
func (idx *Index) VehicleName(id int32) string {
	if v, ok := idx.Vehicle(id); ok {
		return v.Name
	}
	return fmt.Sprintf("Unknown Vehicle (%d)", id)
}

// VehicleClassName resolves a class value, never fails.
func (idx *Index) VehicleClassName(id int32) string {
	if c, ok := idx.VehicleClass(id); ok {
		return c.TranslatedName
	}
	return fmt.Sprintf("Unknown Class (%d)", id)
}

// SearchTracks does a case-insensitive substring match on track names.
func (idx *Index) SearchTracks(query string) []Track {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	q := strings.ToLower(query)
	return lo.Filter(lo.Values(idx.tracks), func(t Track, _ int) bool {
		return strings.Contains(strings.ToLower(t.Name), q)
	})
}

// SearchVehicles does a case-insensitive substring match on vehicle names.
func (idx *Index) SearchVehicles(query string) []Vehicle {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	q := strings.ToLower(query)
	return lo.Filter(lo.Values(idx.cars), func(v Vehicle, _ int) bool {
		return strings.Contains(strings.ToLower(v.Name), q)
	})
}

// Counts reports the table sizes, used by the check command.
func (idx *Index) Counts() (tracks, vehicles, classes int) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.tracks), len(idx.cars), len(idx.classes)
}
