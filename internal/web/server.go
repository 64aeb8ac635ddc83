// Package web serves the panel's JSON API and the SSE snapshot stream
// consumed by the dashboard's sparkline charts.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/paineldocafe/panel/internal/clients"
	"github.com/paineldocafe/panel/internal/domain"
	"github.com/paineldocafe/panel/internal/services/history"
)

const streamPollInterval = 5 * time.Second

type historyReader interface {
	All() []domain.PriceSnapshot
}

type reportReader interface {
	Report() (domain.Report, bool)
	Products() []domain.Product
}

type quoteReader interface {
	LatestBoard() (domain.QuoteBoard, bool)
}

type weatherFetcher interface {
	Forecast(ctx context.Context, loc clients.Location, days int) (domain.WeatherForecast, error)
}

// Server exposes the HTTP API.
type Server struct {
	addr     string
	history  historyReader
	reports  reportReader
	quotes   quoteReader
	weather  weatherFetcher
	location clients.Location
	logger   *zap.Logger

	streamInterval time.Duration
}

// NewServer creates the API server.
func NewServer(addr string, historyStore historyReader, reports reportReader,
	quotes quoteReader, weather weatherFetcher, location clients.Location, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		addr:           addr,
		history:        historyStore,
		reports:        reports,
		quotes:         quotes,
		weather:        weather,
		location:       location,
		logger:         logger,
		streamInterval: streamPollInterval,
	}
}

// Start runs the HTTP server (blocking) and shuts it down when ctx is
// cancelled.
func (s *Server) Start(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/report", s.handleReport)
	mux.HandleFunc("/api/history", s.handleHistory)
	mux.HandleFunc("/api/history/series", s.handleSeries)
	mux.HandleFunc("/api/quotes", s.handleQuotes)
	mux.HandleFunc("/api/weather", s.handleWeather)
	mux.HandleFunc("/api/prices/stream", s.handlePriceStream)

	server := &http.Server{
		Addr:              s.addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	report, ok := s.reports.Report()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "report not computed yet")
		return
	}

	writeJSON(w, struct {
		domain.Report
		Products []domain.Product `json:"products"`
	}{Report: report, Products: s.reports.Products()})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	snapshots := s.history.All()
	if snapshots == nil {
		snapshots = []domain.PriceSnapshot{}
	}
	writeJSON(w, snapshots)
}

// handleSeries extracts one chart series from the history. Consumers should
// treat fewer than two points as not chartable; the endpoint reports the
// count so they can decide.
func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	kind := domain.SeriesKind(r.URL.Query().Get("kind"))
	key := r.URL.Query().Get("key")

	if kind != domain.SeriesStocks && kind != domain.SeriesValues {
		writeError(w, http.StatusBadRequest, "kind must be stocks or values")
		return
	}
	if key == "" {
		writeError(w, http.StatusBadRequest, "key is required")
		return
	}

	points := history.Series(s.history.All(), kind, key)
	writeJSON(w, struct {
		Kind   domain.SeriesKind `json:"kind"`
		Key    string            `json:"key"`
		Count  int               `json:"count"`
		Points []float64         `json:"points"`
	}{Kind: kind, Key: key, Count: len(points), Points: points})
}

// handleQuotes serves the latest poll in full, feed messages included. The
// snapshot history keeps only stocks and values, so the board is held
// separately by the poller.
func (s *Server) handleQuotes(w http.ResponseWriter, r *http.Request) {
	board, ok := s.quotes.LatestBoard()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "no quotes captured yet")
		return
	}
	writeJSON(w, board)
}

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	forecast, err := s.weather.Forecast(r.Context(), s.location, 5)
	if err != nil {
		s.logger.Error("weather fetch failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, "weather feed unavailable")
		return
	}
	writeJSON(w, forecast)
}

// handlePriceStream pushes each freshly captured snapshot over SSE.
func (s *Server) handlePriceStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// comment heartbeat every 30s so proxies keep the connection open
	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	pollTicker := time.NewTicker(s.streamInterval)
	defer pollTicker.Stop()

	var lastSent time.Time
	sendFresh := func() {
		snapshots := s.history.All()
		if len(snapshots) == 0 {
			return
		}
		newest := snapshots[0]
		if !newest.CapturedAt.After(lastSent) {
			return
		}
		payload, err := json.Marshal(newest)
		if err != nil {
			s.logger.Error("encode snapshot for stream", zap.Error(err))
			return
		}
		w.Write([]byte("event: snapshot\n"))
		w.Write([]byte("data: "))
		w.Write(payload)
		w.Write([]byte("\n\n"))
		flusher.Flush()
		lastSent = newest.CapturedAt
	}

	sendFresh()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			w.Write([]byte(": ping\n\n"))
			flusher.Flush()
		case <-pollTicker.C:
			sendFresh()
		}
	}
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
