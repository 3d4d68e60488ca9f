package main

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	charts "github.com/midbel/livecharts"
	"github.com/midbel/livecharts/load"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve [flags] [file...]",
	Short: "Serve a live chart fed over http",
	RunE:  runServe,
}

var (
	serveFlags   chartFlags
	flagAddr     string
	flagFallback string
)

const (
	flagAddrName     = "addr"
	flagFallbackName = "default-serie"
	defaultSerie     = "default"
	shutdownTimeout  = 5 * time.Second
	metricsNamespace = "livechart"
)

func init() {
	serveFlags.register(serveCmd.Flags())
	serveCmd.Flags().StringVar(&flagAddr, flagAddrName, ":8080", "listening address")
	serveCmd.Flags().StringVar(&flagFallback, flagFallbackName, defaultSerie, "serie of the records without serie field")
}

func runServe(cmd *cobra.Command, args []string) error {
	opts, err := serveFlags.options(cmd.Flags())
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if isTime(opts) {
		return serve[time.Time](ctx, opts, args)
	}
	return serve[float64](ctx, opts, args)
}

func serve[T charts.Key](ctx context.Context, opts charts.Options, files []string) error {
	registry := prometheus.NewRegistry()
	collector := charts.NewCollector(metricsNamespace)
	if err := registry.Register(collector); err != nil {
		return err
	}
	ch, err := buildChart[T](opts, &serveFlags, 0, files, charts.WithObserver(collector))
	if err != nil {
		return err
	}
	defer ch.Close()

	dec, err := load.NewDecoder[T](opts)
	if err != nil {
		return err
	}
	dec.Serie = serveFlags.SerieField

	handler := newServer(ch, dec, flagFallback, registry)
	srv := &http.Server{
		Addr:              flagAddr,
		Handler:           handler,
		ReadHeaderTimeout: 3 * time.Second,
	}

	grp, ctx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		log.WithField("address", flagAddr).Info("start listening")
		err := srv.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	grp.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		sub, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sub)
	})
	return grp.Wait()
}

type server[T charts.Key] struct {
	chart    *charts.Chart[T]
	decoder  load.Decoder[T]
	fallback string
}

func newServer[T charts.Key](ch *charts.Chart[T], dec load.Decoder[T], fallback string, reg *prometheus.Registry) http.Handler {
	if fallback == "" {
		fallback = defaultSerie
	}
	s := server[T]{
		chart:    ch,
		decoder:  dec,
		fallback: fallback,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /series", s.addSerie)
	mux.HandleFunc("DELETE /series", s.removeSeries)
	mux.HandleFunc("POST /points", s.updatePoints)
	mux.HandleFunc("GET /locate", s.locate)
	mux.HandleFunc("GET /chart.svg", s.render)
	mux.HandleFunc("POST /resize", s.resize)
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return mux
}

type serieRequest struct {
	ID    string `json:"id"`
	Color string `json:"color"`
}

func (s server[T]) addSerie(w http.ResponseWriter, r *http.Request) {
	var req serieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.ID == "" {
		http.Error(w, "missing serie id", http.StatusBadRequest)
		return
	}
	if err := s.chart.Add(req.ID, req.Color); err != nil {
		var dup *charts.DuplicateSeriesError
		if errors.As(err, &dup) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	log.WithField("serie", req.ID).Debug("serie added")
	w.WriteHeader(http.StatusCreated)
}

func (s server[T]) removeSeries(w http.ResponseWriter, r *http.Request) {
	ids := r.URL.Query()["id"]
	s.chart.Remove(ids...)
	log.WithField("series", ids).Debug("series removed")
	w.WriteHeader(http.StatusNoContent)
}

type updateResponse struct {
	Slide   bool `json:"slide"`
	Evicted int  `json:"evicted"`
	Points  int  `json:"points"`
}

func (s server[T]) updatePoints(w http.ResponseWriter, r *http.Request) {
	list, err := load.ReadJSON(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	_, groups, err := s.decoder.Group(list, s.fallback)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	u := s.chart.Update(groups)
	log.WithFields(log.Fields{
		"records": len(list),
		"slide":   u.Slide,
		"evicted": u.Evicted,
	}).Debug("points merged")
	writeJSON(w, updateResponse{
		Slide:   u.Slide,
		Evicted: u.Evicted,
		Points:  len(list),
	})
}

type nearestResponse struct {
	ID    string   `json:"id"`
	Color string   `json:"color"`
	X     any      `json:"x"`
	Y     *float64 `json:"y"`
}

func (s server[T]) locate(w http.ResponseWriter, r *http.Request) {
	x, err := s.decoder.Key(r.URL.Query().Get("x"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	list := make([]nearestResponse, 0)
	for _, n := range s.chart.Locate(x) {
		res := nearestResponse{
			ID:    n.ID,
			Color: n.Color,
			X:     n.Point.X,
		}
		if y := n.Point.Y; !math.IsNaN(y) {
			res.Y = &y
		}
		list = append(list, res)
	}
	writeJSON(w, list)
}

func (s server[T]) render(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/svg+xml")
	str := r.URL.Query().Get("x")
	if str == "" {
		if err := s.chart.Render(w); err != nil {
			log.WithError(err).Warn("fail to render chart")
		}
		return
	}
	x, err := s.decoder.Key(str)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.chart.RenderAt(w, x); err != nil {
		log.WithError(err).Warn("fail to render chart")
	}
}

func (s server[T]) resize(w http.ResponseWriter, r *http.Request) {
	width, err := strconv.ParseFloat(r.URL.Query().Get("width"), 64)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.chart.Resize(width)
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("fail to encode response")
	}
}
