// Package web renders the participant's screens and serves the countdown stream.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/template/html/v2"

	"github.com/mmynk/amigo/internal/middleware"
	"github.com/mmynk/amigo/internal/models"
	"github.com/mmynk/amigo/internal/party"
	"github.com/mmynk/amigo/internal/session"
)

//go:embed templates
var templates embed.FS

const (
	layout     = "layouts/main"
	saveFailed = "No se pudo guardar. Inténtalo de nuevo."
)

// screens maps each stage to its template.
var screens = map[models.Stage]string{
	models.StageWelcome:      "welcome",
	models.StageRegistration: "registration",
	models.StageNameInput:    "name",
	models.StageDashboard:    "dashboard",
}

type panelLink struct {
	Value models.Panel
	Label string
}

var panelLinks = []panelLink{
	{models.PanelRules, "Reglas"},
	{models.PanelWishes, "Ideas de Regalos"},
	{models.PanelDinner, "Cena Navideña"},
}

// Config holds the handler's collaborators.
type Config struct {
	Party  *party.Controller
	Tokens *session.Manager

	// Stores returns the persisted-state contract of an origin.
	Stores func(origin string) party.Store

	// Now defaults to time.Now; Tick defaults to one second.
	Now  func() time.Time
	Tick time.Duration
}

// Handler serves the HTML surface.
type Handler struct {
	party  *party.Controller
	tokens *session.Manager
	stores func(string) party.Store
	now    func() time.Time
	tick   time.Duration
	engine *html.Engine
}

// page is the data every template receives.
type page struct {
	Title  string
	Stage  models.Stage
	State  string
	Email  string
	Notice string
	View   party.View
}

// New loads the templates and returns a Handler.
func New(cfg Config) (*Handler, error) {
	sub, err := fs.Sub(templates, "templates")
	if err != nil {
		return nil, fmt.Errorf("failed to open templates: %w", err)
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("panels", func() []panelLink { return panelLinks })
	if err := engine.Load(); err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	tick := cfg.Tick
	if tick <= 0 {
		tick = time.Second
	}

	return &Handler{
		party:  cfg.Party,
		tokens: cfg.Tokens,
		stores: cfg.Stores,
		now:    now,
		tick:   tick,
		engine: engine,
	}, nil
}

// Register adds the HTML routes to mux. Every route runs behind the origin cookie.
func (h *Handler) Register(mux *http.ServeMux) {
	routes := map[string]http.HandlerFunc{
		"GET /{$}":                h.index,
		"POST /enter":             h.enter,
		"POST /register/email":    h.submitEmail,
		"POST /register/name":     h.submitName,
		"POST /dashboard/reveal":  h.reveal,
		"POST /dashboard/panel":   h.openPanel,
		"POST /dashboard/wishes":  h.addWish,
		"POST /dashboard/dinner":  h.addDish,
		"POST /dashboard/suggest": h.suggest,
		"GET /countdown":          h.countdown,
	}
	for pattern, fn := range routes {
		mux.Handle(pattern, middleware.Origin(fn))
	}
}

// state restores the page state posted with the form. A missing or foreign token is a
// fresh page.
func (h *Handler) state(r *http.Request) (string, models.AppState) {
	origin := middleware.GetOrigin(r.Context())
	return origin, h.tokens.Restore(origin, r.PostFormValue("state"))
}

// index is a page load: it always starts on the welcome screen.
func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, models.NewAppState(), "")
}

func (h *Handler) enter(w http.ResponseWriter, r *http.Request) {
	origin, st := h.state(r)
	st = h.party.Enter(r.Context(), h.stores(origin), st)
	h.render(w, r, st, "")
}

func (h *Handler) submitEmail(w http.ResponseWriter, r *http.Request) {
	origin, st := h.state(r)
	next, _, err := h.party.SubmitEmail(r.Context(), h.stores(origin), st, r.PostFormValue("email"))
	h.afterWrite(w, r, next, err)
}

func (h *Handler) submitName(w http.ResponseWriter, r *http.Request) {
	origin, st := h.state(r)
	next, _, err := h.party.SubmitName(r.Context(), h.stores(origin), st, r.PostFormValue("name"))
	h.afterWrite(w, r, next, err)
}

func (h *Handler) reveal(w http.ResponseWriter, r *http.Request) {
	_, st := h.state(r)
	h.render(w, r, h.party.Reveal(st), "")
}

func (h *Handler) openPanel(w http.ResponseWriter, r *http.Request) {
	_, st := h.state(r)
	h.render(w, r, h.party.OpenPanel(st, models.ParsePanel(r.PostFormValue("panel"))), "")
}

func (h *Handler) addWish(w http.ResponseWriter, r *http.Request) {
	origin, st := h.state(r)
	next, _, err := h.party.AddWish(r.Context(), h.stores(origin), st, r.PostFormValue("item"))
	h.afterWrite(w, r, next, err)
}

func (h *Handler) addDish(w http.ResponseWriter, r *http.Request) {
	origin, st := h.state(r)
	next, _, err := h.party.AddSuggestion(r.Context(), h.stores(origin), st, r.PostFormValue("dish"))
	h.afterWrite(w, r, next, err)
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	origin, st := h.state(r)
	h.render(w, r, h.party.AskSuggestion(r.Context(), origin, st, r.PostFormValue("prompt")), "")
}

// afterWrite renders the result of a persisting operation. On failure the controller
// has already returned the unchanged state.
func (h *Handler) afterWrite(w http.ResponseWriter, r *http.Request, st models.AppState, err error) {
	if err != nil {
		slog.Error("Failed to save", "origin", middleware.GetOrigin(r.Context()), "path", r.URL.Path, "error", err)
		h.render(w, r, st, saveFailed)
		return
	}
	h.render(w, r, st, "")
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, st models.AppState, notice string) {
	origin := middleware.GetOrigin(r.Context())
	token, err := h.tokens.Encode(origin, st)
	if err != nil {
		slog.Error("Failed to encode state", "origin", origin, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	data := page{
		Title:  h.party.Event().Title,
		Stage:  st.Session.Stage,
		State:  token,
		Email:  st.Session.Email,
		Notice: notice,
	}
	if view, ok := h.party.Dashboard(r.Context(), h.stores(origin), st); ok {
		data.View = view
	}

	var buf bytes.Buffer
	if err := h.engine.Render(&buf, screens[st.Session.Stage], data, layout); err != nil {
		slog.Error("Failed to render", "stage", st.Session.Stage, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}
