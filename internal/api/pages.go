package api

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/alexivanou/composer-atlas/internal/model"
	"github.com/alexivanou/composer-atlas/internal/service"
	"github.com/alexivanou/composer-atlas/internal/validation"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

const genericFailure = "Something went wrong while talking to the database. Please try again."

var templateFuncs = template.FuncMap{
	"year": func(t time.Time) string {
		if t.Equal(model.UnknownDate) {
			return "unknown"
		}
		return strconv.Itoa(t.Year())
	},
	"title": func(s string) string {
		if s == "" {
			return s
		}
		return strings.ToUpper(s[:1]) + s[1:]
	},
}

func parsePages() (map[string]*template.Template, error) {
	pages := map[string]*template.Template{}
	for _, name := range []string{"composers", "composer", "add_city", "error"} {
		tpl, err := template.New(name).Funcs(templateFuncs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		pages[name] = tpl
	}
	return pages, nil
}

// PageHandler serves the server-rendered pages
type PageHandler struct {
	service service.ServiceInterface
	pages   map[string]*template.Template
	logger  *zap.Logger
}

// NewPageHandler parses the embedded templates
func NewPageHandler(service service.ServiceInterface, logger *zap.Logger) (*PageHandler, error) {
	pages, err := parsePages()
	if err != nil {
		return nil, err
	}
	return &PageHandler{service: service, pages: pages, logger: logger}, nil
}

type composersPage struct {
	Composers []model.Composer
}

type composerPage struct {
	Composer     *model.Composer
	Cities       []model.City
	Reasons      []model.Reason
	SelectedCity string
	Form         url.Values
	Errors       validation.Errors
	Notice       string
}

type addCityPage struct {
	Redirect string
	Form     url.Values
	Errors   validation.Errors
	Notice   string
}

type errorPage struct {
	Title   string
	Message string
}

// Home handles GET /
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/database", http.StatusFound)
}

// Composers handles GET /database
func (h *PageHandler) Composers(w http.ResponseWriter, r *http.Request) {
	composers, err := h.service.ListComposers(r.Context())
	if err != nil {
		h.renderError(w, r, http.StatusInternalServerError, "Error", genericFailure)
		return
	}
	h.render(w, r, http.StatusOK, "composers", composersPage{Composers: composers})
}

// Composer handles GET /database/composer/{id}. The optional city query
// parameter preselects a city in the add-location form.
func (h *PageHandler) Composer(w http.ResponseWriter, r *http.Request) {
	selected := r.URL.Query().Get("city")
	h.renderComposer(w, r, http.StatusOK, composerPage{
		SelectedCity: selected,
		Form:         url.Values{},
	})
}

// AddLocation handles POST /database/composer/{id}/locations
func (h *PageHandler) AddLocation(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Bad request", "The form could not be read.")
		return
	}
	form := r.PostForm
	form.Set("composer_id", id)

	_, err := h.service.AddLocation(r.Context(), form)
	if err == nil {
		http.Redirect(w, r, "/database/composer/"+url.PathEscape(id), http.StatusSeeOther)
		return
	}

	page := composerPage{SelectedCity: form.Get("city_id"), Form: form}
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		page.Errors = verrs
		h.renderComposer(w, r, http.StatusUnprocessableEntity, page)
		return
	}
	page.Notice = genericFailure
	h.renderComposer(w, r, http.StatusInternalServerError, page)
}

// AddCityForm handles GET /database/city/add/{redirect}
func (h *PageHandler) AddCityForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "add_city", addCityPage{
		Redirect: mux.Vars(r)["redirect"],
		Form:     url.Values{},
	})
}

// AddCity handles POST /database/city/add/{redirect}. On success it returns to
// the composer page with the new city preselected.
func (h *PageHandler) AddCity(w http.ResponseWriter, r *http.Request) {
	redirect := mux.Vars(r)["redirect"]
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Bad request", "The form could not be read.")
		return
	}

	city, err := h.service.AddCity(r.Context(), r.PostForm)
	if err == nil {
		target := "/database/composer/" + url.PathEscape(redirect) + "?city=" + url.QueryEscape(city.ID)
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}

	page := addCityPage{Redirect: redirect, Form: r.PostForm}
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		page.Errors = verrs
		h.render(w, r, http.StatusUnprocessableEntity, "add_city", page)
		return
	}
	page.Notice = genericFailure
	h.render(w, r, http.StatusInternalServerError, "add_city", page)
}

// renderComposer loads the composer, its locations and the city list into page
func (h *PageHandler) renderComposer(w http.ResponseWriter, r *http.Request, status int, page composerPage) {
	composer, err := h.service.GetComposerByID(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, service.ErrComposerNotFound) {
		h.renderError(w, r, http.StatusNotFound, "Composer not found", "No composer matches this address.")
		return
	}
	if err != nil {
		h.renderError(w, r, http.StatusInternalServerError, "Error", genericFailure)
		return
	}

	cities, err := h.service.ListCities(r.Context())
	if err != nil {
		h.renderError(w, r, http.StatusInternalServerError, "Error", genericFailure)
		return
	}

	page.Composer = composer
	page.Cities = cities
	page.Reasons = model.Reasons
	h.render(w, r, status, "composer", page)
}

func (h *PageHandler) renderError(w http.ResponseWriter, r *http.Request, status int, title, message string) {
	h.render(w, r, status, "error", errorPage{Title: title, Message: message})
}

// render executes into a buffer first so a template failure never leaves a
// half written page behind a 200 status
func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, status int, name string, data interface{}) {
	var buf bytes.Buffer
	if err := h.pages[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		h.logger.Error("Error rendering page", zap.String("page", name), zap.String("path", r.URL.Path), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
