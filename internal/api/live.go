package api

import (
	"bytes"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"redemption-fee-lab/internal/analysis"
	"redemption-fee-lab/internal/feemodel"
	"redemption-fee-lab/internal/fingerprint"
	"redemption-fee-lab/internal/observability"
)

// Live session protocol settings.
const (
	// livePingInterval is how often the server pings an idle session.
	livePingInterval = 30 * time.Second
	// liveReadTimeout bounds the wait for the next message or pong.
	liveReadTimeout = 60 * time.Second
	// liveWriteTimeout bounds every outgoing frame.
	liveWriteTimeout = 10 * time.Second
	// liveReadLimit caps incoming frames; parameter messages are tiny.
	liveReadLimit = 1 << 16
)

// liveSession is one WebSocket connection driving recompute-on-message:
// each client message carries an independent parameter snapshot, each reply
// is a full recompute from it. Messages are processed serially in arrival
// order, so replies never interleave.
type liveSession struct {
	id   string
	srv  *Server
	conn *websocket.Conn

	writeMu sync.Mutex // serializes result, error, and ping frames
	seq     uint64
	done    chan struct{}
}

// handleLive upgrades the connection and runs a live recompute session until
// the client disconnects.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     s.checkOrigin,
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response.
		s.logger.Printf("live upgrade failed: %v", err)
		return
	}

	sess := &liveSession{
		id:   uuid.NewString(),
		srv:  s,
		conn: conn,
		done: make(chan struct{}),
	}

	s.liveOpened()
	defer s.liveClosed()

	s.logger.Printf("live session %s opened from %s", sess.id, r.RemoteAddr)
	sess.run()
	s.logger.Printf("live session %s closed after %d results", sess.id, sess.seq)
}

// checkOrigin mirrors the CORS policy for the WebSocket handshake.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || len(s.allowedOrigins) == 0 {
		return true
	}
	for _, allowed := range s.allowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

// run reads parameter messages until the connection ends.
func (sess *liveSession) run() {
	defer func() {
		close(sess.done)
		sess.conn.Close()
	}()

	go sess.pingLoop()

	sess.conn.SetReadLimit(liveReadLimit)
	sess.conn.SetReadDeadline(time.Now().Add(liveReadTimeout))
	sess.conn.SetPongHandler(func(string) error {
		return sess.conn.SetReadDeadline(time.Now().Add(liveReadTimeout))
	})

	for {
		_, data, err := sess.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				sess.srv.logger.Printf("live session %s read error: %v", sess.id, err)
			}
			return
		}
		sess.conn.SetReadDeadline(time.Now().Add(liveReadTimeout))
		sess.handleMessage(data)
	}
}

// pingLoop keeps the connection alive between parameter changes.
func (sess *liveSession) pingLoop() {
	ticker := time.NewTicker(livePingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-sess.done:
			return
		case <-ticker.C:
			sess.writeMu.Lock()
			sess.conn.SetWriteDeadline(time.Now().Add(liveWriteTimeout))
			err := sess.conn.WriteMessage(websocket.PingMessage, nil)
			sess.writeMu.Unlock()
			if err != nil {
				// Dead connection; the read loop ends the session.
				return
			}
		}
	}
}

// handleMessage recomputes scenario, sweep, and analysis from one parameter
// snapshot and sends a single result frame. Rejected messages get an error
// frame and the session stays open.
func (sess *liveSession) handleMessage(data []byte) {
	start := time.Now()
	srv := sess.srv

	req, err := srv.decodeSweepRequest(bytes.NewReader(data))
	if err != nil {
		sess.writeError(fmt.Sprintf("decode message: %v", err), nil)
		return
	}

	in, _, msg, fields := srv.resolveSweepInputs(req)
	if msg != "" {
		sess.writeError(msg, fields)
		return
	}

	scenario := feemodel.Compute(in.params)
	rows, err := srv.generator.Run(in.params, in.deposits, in.variant)
	if err != nil {
		sess.writeError(err.Error(), nil)
		return
	}
	summary := analysis.Analyze(rows)

	srv.countScenarioRun()
	srv.countSweepRun()
	observability.RecordScenarioComputation()
	observability.RecordProfitableLevels(in.variant.String(), summary.ProfitableCount)

	sess.seq++
	paramsID := fingerprint.ComputeParameterSetID(in.params)
	sess.writeJSON(LiveResult{
		Type:           LiveFrameResult,
		SessionID:      sess.id,
		Seq:            sess.seq,
		ParameterSetID: paramsID,
		Variant:        in.variant.String(),
		Scenario:       toScenarioResponse(paramsID, scenario),
		Summary:        toSummary(summary),
		Curve:          toCurve(analysis.ProfitCurve(rows)),
		Alert:          joinAlerts(summary),
	})

	observability.RecordLiveMessage(time.Since(start).Seconds())
}

func (sess *liveSession) writeError(msg string, fields []string) {
	sess.writeJSON(LiveError{Type: LiveFrameError, Error: msg, Fields: fields})
}

// writeJSON sends one frame, serialized against the ping loop.
func (sess *liveSession) writeJSON(v any) {
	sess.writeMu.Lock()
	defer sess.writeMu.Unlock()

	sess.conn.SetWriteDeadline(time.Now().Add(liveWriteTimeout))
	if err := sess.conn.WriteJSON(v); err != nil {
		sess.srv.logger.Printf("live session %s write failed: %v", sess.id, err)
	}
}
