// Package web serves the map generation form and the generated maps.
package web

import (
	"context"
	_ "embed"
	"encoding/json"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sells-group/parking-zones/internal/config"
	"github.com/sells-group/parking-zones/internal/mapgen"
	"github.com/sells-group/parking-zones/internal/model"
	"github.com/sells-group/parking-zones/internal/render"
)

//go:embed form.html.tmpl
var formTemplate string

var formTmpl = template.Must(template.New("form").Parse(formTemplate))

// MapGenerator produces a map for a request.
type MapGenerator interface {
	Generate(ctx context.Context, req mapgen.Request) (*mapgen.Result, error)
}

// Handler serves the web form.
type Handler struct {
	gen MapGenerator
	cfg *config.Config
}

// NewRouter builds the HTTP routes for the web form.
func NewRouter(gen MapGenerator, cfg *config.Config) http.Handler {
	h := &Handler{gen: gen, cfg: cfg}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", h.form)
	r.Get("/map", h.generate)
	r.Get("/health", h.health)

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.Server.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			MaxAge:         300,
		}))
		r.Get("/locations", h.locations)
		r.Get("/tiles", h.tiles)
	})

	return r
}

type formData struct {
	Title       string
	Locations   []model.Location
	Tiles       []render.TileProvider
	DefaultTile string
}

func (h *Handler) form(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := formTmpl.Execute(w, formData{
		Title:       h.cfg.Map.Title,
		Locations:   h.cfg.Locations,
		Tiles:       render.Providers(),
		DefaultTile: h.cfg.Map.TileProvider,
	})
	if err != nil {
		zap.L().Error("web: render form", zap.Error(err))
	}
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("location")
	loc, ok := h.cfg.LocationByName(name)
	if !ok {
		http.Error(w, "unknown location: "+name, http.StatusBadRequest)
		return
	}

	tile := r.URL.Query().Get("tile")
	if tile == "" {
		tile = h.cfg.Map.TileProvider
	}

	mapID := uuid.New().String()
	log := zap.L().With(
		zap.String("map_id", mapID),
		zap.String("location", loc.Name),
		zap.String("tile", tile),
	)

	res, err := h.gen.Generate(r.Context(), mapgen.Request{
		Center:       loc.Point(),
		RadiusMeters: h.cfg.Map.RadiusMeters,
		TileProvider: tile,
	})
	if err != nil {
		log.Error("web: map generation failed", zap.Error(err))
		http.Error(w, userMessage(err), statusFor(err))
		return
	}

	log.Info("web: map generated",
		zap.Int("streets", res.Streets),
		zap.Int("assigned", res.Classification.Total()),
		zap.Int("missing", len(res.Classification.Missing)),
	)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Map-ID", mapID)
	_, _ = w.Write(res.HTML)
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) locations(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.cfg.Locations)
}

func (h *Handler) tiles(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, render.Providers())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps a generation error to an HTTP status.
func statusFor(err error) int {
	switch mapgen.KindOf(err) {
	case mapgen.KindInput, mapgen.KindConfiguration:
		return http.StatusBadRequest
	case mapgen.KindDataFetch:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// userMessage returns the text shown in place of the map.
func userMessage(err error) string {
	switch mapgen.KindOf(err) {
	case mapgen.KindDataFetch:
		return "Failed to fetch map data. Please check your internet connection and try again.\n\n" + err.Error()
	case mapgen.KindInput:
		return "Invalid input: " + err.Error()
	case mapgen.KindConfiguration:
		return "Configuration error: " + err.Error()
	default:
		return "An unexpected error occurred while generating the map."
	}
}

// requestLogger logs each request through the global zap logger.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		zap.L().Debug("web: request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}
