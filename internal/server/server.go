// Package server exposes the search engine over HTTP and WebSocket.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/matryer/way"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/pdrpinto/gridastar"
	"github.com/pdrpinto/gridastar/obstacles"
)

const (
	URI_PATH      = "/path"
	URI_REACHABLE = "/reachable"
	URI_STEP      = "/step"
	URI_HEALTH    = "/health"
	URI_METRICS   = "/metrics"
)

// maxBodyBytes bounds every request body and WebSocket request frame.
const maxBodyBytes = 16 << 20

// Server routes requests to the engine. maxExpansions caps every search
// it runs and maxCells every grid it builds, whatever the request asks for.
type Server struct {
	router        *way.Router
	upgrader      *websocket.Upgrader
	log           log.FieldLogger
	registry      *prometheus.Registry
	metrics       *metrics
	maxExpansions int
	maxCells      int
}

// New builds a Server with its own metrics registry. Only the limits
// in settings are used; zero disables a limit.
func New(logger log.FieldLogger, settings Settings) *Server {
	if logger == nil {
		logger = log.StandardLogger()
	}
	registry := prometheus.NewRegistry()
	s := &Server{
		upgrader:      &websocket.Upgrader{},
		log:           logger,
		registry:      registry,
		metrics:       newMetrics(registry),
		maxExpansions: settings.MaxExpansions,
		maxCells:      settings.MaxCells,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router = way.NewRouter()
	s.router.HandleFunc(http.MethodPost, URI_PATH, s.handlePath())
	s.router.HandleFunc(http.MethodPost, URI_REACHABLE, s.handleReachable())
	s.router.HandleFunc(http.MethodGet, URI_STEP, s.handleStep())
	s.router.HandleFunc(http.MethodGet, URI_HEALTH, s.handleHealth())
	s.router.Handle(http.MethodGet, URI_METRICS, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// gridRequest describes a grid either by size and blocked cells or by an
// ASCII map. The map wins when both are given. Obstacles is an optional
// GeoJSON FeatureCollection rasterized at CellSize plane units per cell.
type gridRequest struct {
	Width     int               `json:"width"`
	Height    int               `json:"height"`
	Blocked   []gridastar.Coord `json:"blocked,omitempty"`
	Map       string            `json:"map,omitempty"`
	Obstacles json.RawMessage   `json:"obstacles,omitempty"`
	CellSize  float64           `json:"cellSize,omitempty"`
}

type pathRequest struct {
	gridRequest
	Start         *gridastar.Coord `json:"start,omitempty"`
	Goal          *gridastar.Coord `json:"goal,omitempty"`
	MaxExpansions int              `json:"maxExpansions,omitempty"`
}

type cellCost struct {
	Cell gridastar.Coord `json:"cell"`
	Cost float64         `json:"cost"`
}

type reachableResponse struct {
	Count     int        `json:"count"`
	Truncated bool       `json:"truncated,omitempty"`
	Costs     []cellCost `json:"costs"`
}

type errorResponse struct {
	Error string `json:"error"`
}

var (
	errMissingEndpoint = errors.New("missing endpoint")
	errBadObstacles    = errors.New("invalid obstacles")
	errGridTooLarge    = errors.New("grid too large")
)

// build returns the grid plus any start and goal markers from a map.
// Grids over maxCells cells are rejected, sized requests before the mask
// is allocated; maxCells <= 0 means no limit.
func (req gridRequest) build(maxCells int) (*gridastar.Map, error) {
	if req.Map != "" {
		m, err := gridastar.ParseGrid(strings.NewReader(req.Map))
		if err != nil {
			return nil, err
		}
		if err := checkCells(m.Grid.Width(), m.Grid.Height(), maxCells); err != nil {
			return nil, err
		}
		return m, nil
	}
	if err := checkCells(req.Width, req.Height, maxCells); err != nil {
		return nil, err
	}
	blocked := req.Blocked
	if len(req.Obstacles) > 0 {
		polygons, err := obstacles.LoadGeoJSON(bytes.NewReader(req.Obstacles))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errBadObstacles, err)
		}
		rasterizer := obstacles.Rasterizer{CellSize: req.CellSize}
		blocked = append(blocked, rasterizer.Blocked(req.Width, req.Height, polygons)...)
	}
	grid, err := gridastar.NewGrid(req.Width, req.Height, blocked)
	if err != nil {
		return nil, err
	}
	return &gridastar.Map{Grid: grid}, nil
}

// checkCells leaves non-positive sizes to NewGrid and rejects grids
// with more than maxCells cells.
func checkCells(width, height, maxCells int) error {
	if maxCells <= 0 || width <= 0 || height <= 0 {
		return nil
	}
	if height > maxCells/width {
		return fmt.Errorf("%w: %dx%d exceeds %d cells", errGridTooLarge, width, height, maxCells)
	}
	return nil
}

// endpoints resolves start and goal, preferring explicit request values.
func (req pathRequest) endpoints(m *gridastar.Map) (start, goal gridastar.Coord, err error) {
	switch {
	case req.Start != nil:
		start = *req.Start
	case m.HasStart:
		start = m.Start
	default:
		return start, goal, fmt.Errorf("%w: start", errMissingEndpoint)
	}
	switch {
	case req.Goal != nil:
		goal = *req.Goal
	case m.HasGoal:
		goal = m.Goal
	default:
		return start, goal, fmt.Errorf("%w: goal", errMissingEndpoint)
	}
	return start, goal, nil
}

// expansionCap combines the server limit with the request limit.
func (s *Server) expansionCap(requested int) int {
	switch {
	case requested <= 0:
		return s.maxExpansions
	case s.maxExpansions <= 0 || requested < s.maxExpansions:
		return requested
	default:
		return s.maxExpansions
	}
}

// statusFor maps engine errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, gridastar.ErrInvalidDimension),
		errors.Is(err, gridastar.ErrOutOfBounds),
		errors.Is(err, gridastar.ErrInvalidEndpoint),
		errors.Is(err, gridastar.ErrBadMap),
		errors.Is(err, errMissingEndpoint),
		errors.Is(err, errBadObstacles),
		errors.Is(err, errGridTooLarge):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.WithError(err).Warn("writing response failed")
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.log.WithError(err).Error("search failed")
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func sortCoords(cells []gridastar.Coord) {
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Row != cells[j].Row {
			return cells[i].Row < cells[j].Row
		}
		return cells[i].Col < cells[j].Col
	})
}
