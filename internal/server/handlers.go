package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/pdrpinto/gridastar"
)

const (
	endpointPath      = "path"
	endpointReachable = "reachable"
	endpointStep      = "step"
)

func outcome(result gridastar.Result) string {
	switch {
	case result.Found:
		return "found"
	case result.Truncated:
		return "truncated"
	default:
		return "not_found"
	}
}

func (s *Server) handlePath() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req pathRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
			s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
			return
		}
		m, err := req.build(s.maxCells)
		if err != nil {
			s.writeError(w, err)
			return
		}
		start, goal, err := req.endpoints(m)
		if err != nil {
			s.writeError(w, err)
			return
		}

		began := time.Now()
		result, err := gridastar.FindPath(m.Grid, start, goal,
			gridastar.WithMaxExpansions(s.expansionCap(req.MaxExpansions)),
			gridastar.WithLogger(s.log))
		if err != nil {
			s.metrics.searches.WithLabelValues(endpointPath, "error").Inc()
			s.writeError(w, err)
			return
		}
		s.metrics.searches.WithLabelValues(endpointPath, outcome(result)).Inc()
		s.metrics.expansions.WithLabelValues(endpointPath).Observe(float64(result.Expanded))
		s.metrics.duration.WithLabelValues(endpointPath).Observe(time.Since(began).Seconds())

		s.log.WithFields(log.Fields{
			"width":    m.Grid.Width(),
			"height":   m.Grid.Height(),
			"found":    result.Found,
			"expanded": result.Expanded,
			"cost":     result.Cost,
		}).Info("path request served")
		s.writeJSON(w, http.StatusOK, result)
	}
}

func (s *Server) handleReachable() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req pathRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
			s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
			return
		}
		m, err := req.build(s.maxCells)
		if err != nil {
			s.writeError(w, err)
			return
		}
		var start gridastar.Coord
		switch {
		case req.Start != nil:
			start = *req.Start
		case m.HasStart:
			start = m.Start
		default:
			s.writeError(w, errMissingEndpoint)
			return
		}

		began := time.Now()
		reach, err := gridastar.Explore(m.Grid, start,
			gridastar.WithMaxExpansions(s.expansionCap(req.MaxExpansions)),
			gridastar.WithLogger(s.log))
		if err != nil {
			s.metrics.searches.WithLabelValues(endpointReachable, "error").Inc()
			s.writeError(w, err)
			return
		}
		reachOutcome := "found"
		if reach.Truncated {
			reachOutcome = "truncated"
		}
		s.metrics.searches.WithLabelValues(endpointReachable, reachOutcome).Inc()
		s.metrics.expansions.WithLabelValues(endpointReachable).Observe(float64(reach.Expanded))
		s.metrics.duration.WithLabelValues(endpointReachable).Observe(time.Since(began).Seconds())

		cells := make([]gridastar.Coord, 0, len(reach.Costs))
		for c := range reach.Costs {
			cells = append(cells, c)
		}
		sortCoords(cells)
		resp := reachableResponse{Count: len(cells), Truncated: reach.Truncated, Costs: make([]cellCost, 0, len(cells))}
		for _, c := range cells {
			resp.Costs = append(resp.Costs, cellCost{Cell: c, Cost: reach.Costs[c]})
		}
		s.writeJSON(w, http.StatusOK, resp)
	}
}

// stepMessage is one WebSocket frame of the /step stream.
type stepMessage struct {
	gridastar.StepSnapshot
	OpenList   []gridastar.Coord `json:"open"`
	ClosedList []gridastar.Coord `json:"closed"`
}

func newStepMessage(snapshot gridastar.StepSnapshot) stepMessage {
	msg := stepMessage{
		StepSnapshot: snapshot,
		OpenList:     snapshot.OpenCells(),
		ClosedList:   snapshot.ClosedCells(),
	}
	sortCoords(msg.OpenList)
	sortCoords(msg.ClosedList)
	return msg
}

// handleStep streams one snapshot per expansion. The client opens the
// socket, sends a single path request and reads until a done frame.
func (s *Server) handleStep() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		con, err := s.upgrader.Upgrade(w, r, nil)
		if err != nil {
			s.log.WithError(err).Warn("websocket upgrade failed")
			return
		}
		defer con.Close()

		con.SetReadLimit(maxBodyBytes)
		var req pathRequest
		if err := con.ReadJSON(&req); err != nil {
			s.log.WithError(err).Warn("reading step request failed")
			s.closeWith(con, websocket.CloseUnsupportedData, "invalid request")
			return
		}
		stepper, err := s.newStepper(req)
		if err != nil {
			_ = con.WriteJSON(errorResponse{Error: err.Error()})
			s.closeWith(con, websocket.ClosePolicyViolation, "invalid search")
			return
		}

		for {
			snapshot, err := stepper.Step()
			if err != nil {
				s.metrics.searches.WithLabelValues(endpointStep, "error").Inc()
				s.log.WithError(err).Error("step search failed")
				_ = con.WriteJSON(errorResponse{Error: err.Error()})
				s.closeWith(con, websocket.CloseInternalServerErr, "search failed")
				return
			}
			if err := con.WriteJSON(newStepMessage(snapshot)); err != nil {
				s.log.WithError(err).Debug("step client went away")
				return
			}
			if snapshot.Done {
				s.metrics.searches.WithLabelValues(endpointStep, outcome(gridastar.Result{
					Found:     snapshot.Found,
					Truncated: snapshot.Truncated,
				})).Inc()
				s.metrics.expansions.WithLabelValues(endpointStep).Observe(float64(snapshot.StepIndex))
				s.closeWith(con, websocket.CloseNormalClosure, "done")
				return
			}
		}
	}
}

func (s *Server) newStepper(req pathRequest) (*gridastar.Stepper, error) {
	m, err := req.build(s.maxCells)
	if err != nil {
		return nil, err
	}
	start, goal, err := req.endpoints(m)
	if err != nil {
		return nil, err
	}
	return gridastar.NewStepper(m.Grid, start, goal,
		gridastar.WithMaxExpansions(s.expansionCap(req.MaxExpansions)))
}

func (s *Server) closeWith(con *websocket.Conn, code int, text string) {
	msg := websocket.FormatCloseMessage(code, text)
	if err := con.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second)); err != nil {
		s.log.WithError(err).Debug("close frame not sent")
	}
}

func (s *Server) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusOK, map[string]any{
			"status":        "ready",
			"maxExpansions": s.maxExpansions,
		})
	}
}
