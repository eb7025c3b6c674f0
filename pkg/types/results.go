package types

import (
	"sort"
	"time"
)

// TimestampLayout formats run timestamps. Values sort lexicographically in
// chronological order, which is what keeps report artifacts ordered on disk.
const TimestampLayout = "20060102_150405"

// FileStatus is the per-file outcome of a run
type FileStatus string

const (
	// FileStatusMoved means the file was relocated
	FileStatusMoved FileStatus = "moved"

	// FileStatusPlanned means a dry-run computed the route without moving
	FileStatusPlanned FileStatus = "planned"

	// FileStatusFailed means the file could not be relocated
	FileStatusFailed FileStatus = "failed"
)

// FileResult records what happened to one scanned file
type FileResult struct {
	Name        string     `json:"name"`
	Route       Route      `json:"route"`
	Destination string     `json:"destination"`
	Renamed     bool       `json:"renamed,omitempty"`
	Size        int64      `json:"size"`
	Status      FileStatus `json:"status"`
	Error       string     `json:"error,omitempty"`
}

// RunStatistics is the aggregate of one organize run. It is owned by a single
// Organizer.Run call and handed to the reporter once the run is finished.
// The JSON field names are the artifact contract read by the charting tools.
type RunStatistics struct {
	ID               string         `json:"id"`
	Timestamp        string         `json:"timestamp"`
	Mode             Mode           `json:"modo"`
	Source           string         `json:"origen"`
	FilesSeen        int            `json:"archivos_procesados"`
	FilesMoved       int            `json:"archivos_movidos"`
	Errors           int            `json:"errores"`
	Collisions       int            `json:"colisiones"`
	BytesMoved       int64          `json:"bytes_movidos"`
	DurationMs       int64          `json:"duracion_ms"`
	Complete         bool           `json:"completo"`
	CountsByLocation map[string]int `json:"por_subcategoria"`
	CountsByCategory map[string]int `json:"por_categoria"`

	StartedAt time.Time    `json:"-"`
	Files     []FileResult `json:"-"`
}

// NewRunStatistics creates an empty aggregate for a run starting at startedAt
func NewRunStatistics(id string, mode Mode, source string, startedAt time.Time) *RunStatistics {
	return &RunStatistics{
		ID:               id,
		Timestamp:        startedAt.Format(TimestampLayout),
		Mode:             mode,
		Source:           source,
		CountsByLocation: make(map[string]int),
		CountsByCategory: make(map[string]int),
		StartedAt:        startedAt,
	}
}

// RecordPlanned tallies a dry-run route. files_moved is never touched.
func (s *RunStatistics) RecordPlanned(name string, route Route, destination string) {
	s.FilesSeen++
	s.tally(route)
	s.Files = append(s.Files, FileResult{
		Name:        name,
		Route:       route,
		Destination: destination,
		Status:      FileStatusPlanned,
	})
}

// RecordMoved tallies a successful move
func (s *RunStatistics) RecordMoved(name string, route Route, destination string, size int64, renamed bool) {
	s.FilesSeen++
	s.FilesMoved++
	s.BytesMoved += size
	s.tally(route)
	if renamed {
		s.Collisions++
	}
	s.Files = append(s.Files, FileResult{
		Name:        name,
		Route:       route,
		Destination: destination,
		Renamed:     renamed,
		Size:        size,
		Status:      FileStatusMoved,
	})
}

// tally counts route toward its location and its category
func (s *RunStatistics) tally(route Route) {
	s.CountsByLocation[route.Key()]++
	s.CountsByCategory[route.Category]++
}

// RecordFailed tallies a file that could not be relocated. Failed files do
// not count toward any location.
func (s *RunStatistics) RecordFailed(name string, route Route, err error) {
	s.FilesSeen++
	s.Errors++
	result := FileResult{
		Name:   name,
		Route:  route,
		Status: FileStatusFailed,
	}
	if err != nil {
		result.Error = err.Error()
	}
	s.Files = append(s.Files, result)
}

// Finish marks the run complete and stamps its duration
func (s *RunStatistics) Finish(now time.Time) {
	s.Complete = true
	s.DurationMs = now.Sub(s.StartedAt).Milliseconds()
}

// Routes returns the route of every processed file, in processing order
func (s *RunStatistics) Routes() []Route {
	routes := make([]Route, 0, len(s.Files))
	for _, f := range s.Files {
		routes = append(routes, f.Route)
	}
	return routes
}

// LocationCount is one entry of a category breakdown
type LocationCount struct {
	Route Route
	Count int
}

// CategoryBreakdown groups non-zero location counts by category
type CategoryBreakdown struct {
	Category  string
	Total     int
	Locations []LocationCount
}

// Breakdown groups counts by category. Categories are sorted
// lexicographically; locations inside a category by descending count,
// then by key so the output is stable.
func (s *RunStatistics) Breakdown() []CategoryBreakdown {
	byCategory := make(map[string]*CategoryBreakdown)
	for key, count := range s.CountsByLocation {
		if count <= 0 {
			continue
		}
		route := ParseRouteKey(key)
		group, ok := byCategory[route.Category]
		if !ok {
			group = &CategoryBreakdown{Category: route.Category}
			byCategory[route.Category] = group
		}
		group.Total += count
		group.Locations = append(group.Locations, LocationCount{Route: route, Count: count})
	}

	result := make([]CategoryBreakdown, 0, len(byCategory))
	for _, group := range byCategory {
		sort.Slice(group.Locations, func(i, j int) bool {
			a, b := group.Locations[i], group.Locations[j]
			if a.Count != b.Count {
				return a.Count > b.Count
			}
			return a.Route.Key() < b.Route.Key()
		})
		result = append(result, *group)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Category < result[j].Category
	})
	return result
}
