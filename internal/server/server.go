package server

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/gorilla/mux"
	"golang.org/x/crypto/blake2b"

	"blog/internal/models"
)

// PostCatalog is the read side of the blog.
type PostCatalog interface {
	ListAll() []models.Post
	GetBySlug(slug string) (models.Post, bool)
	ListByCategory(category string) []models.Post
	ListCategories() []string
	HasCategory(name string) bool
	ETag(slug string) (string, bool)
}

// TodoStore is the mutable task list behind /api/todos.
type TodoStore interface {
	List() []models.Todo
	Create(text string) (models.Todo, error)
	Update(id int, completed *bool) (models.Todo, error)
	Delete(id int) error
}

// Renderer converts post markdown to HTML.
type Renderer interface {
	Render(markdown string) (template.HTML, error)
}

type Server struct {
	posts    PostCatalog
	todos    TodoStore
	markdown Renderer
	logger   *slog.Logger

	tmpl    map[string]*template.Template
	static  fs.FS
	handler http.Handler

	// viewVersion changes with the templates or the markdown pipeline and
	// is folded into post ETags.
	viewVersion string
}

var templateFuncs = template.FuncMap{
	"pathEscape": url.PathEscape,
}

// New parses the templates under templates/ in assets (layout.html plus one
// file per page) and serves static/ from the same filesystem.
func New(posts PostCatalog, todos TodoStore, markdown Renderer, assets fs.FS, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	templates := map[string]*template.Template{}
	layout := "templates/layout.html"
	pages, err := fs.Glob(assets, "templates/*.html")
	if err != nil {
		return nil, err
	}
	for _, page := range pages {
		if page == layout {
			continue
		}
		t, err := template.New(path.Base(layout)).Funcs(templateFuncs).ParseFS(assets, layout, page)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		name := strings.TrimSuffix(path.Base(page), ".html")
		templates[name] = t
	}
	for _, name := range []string{"home", "post", "todos", "404"} {
		if _, ok := templates[name]; !ok {
			return nil, fmt.Errorf("missing template %q", name)
		}
	}

	static, err := fs.Sub(assets, "static")
	if err != nil {
		return nil, err
	}

	version, err := viewVersion(assets, pages, markdown)
	if err != nil {
		return nil, err
	}

	s := &Server{
		posts:       posts,
		todos:       todos,
		markdown:    markdown,
		logger:      logger,
		tmpl:        templates,
		static:      static,
		viewVersion: version,
	}
	s.handler = s.withRequestID(s.logRequests(s.recoverPanics(trimTrailingSlash(s.routes()))))
	return s, nil
}

func (s *Server) routes() http.Handler {
	// Vars are matched on the escaped path and unescaped by pathVar, so a
	// %2F inside a category or slug stays part of that segment.
	r := mux.NewRouter().UseEncodedPath().SkipClean(true)
	page := []string{http.MethodGet, http.MethodHead}

	r.Methods(page...).Path("/").HandlerFunc(s.handleIndex)
	r.Methods(page...).Path("/category/{name}").HandlerFunc(s.handleCategory)
	r.Methods(page...).Path("/post/{slug}").HandlerFunc(s.handlePost)
	r.Methods(page...).Path("/todos").HandlerFunc(s.handleTodosPage)

	r.Methods(page...).Path("/api/todos").HandlerFunc(s.handleListTodos)
	r.Methods(http.MethodPost).Path("/api/todos").HandlerFunc(s.handleCreateTodo)
	r.Methods(http.MethodPatch).Path("/api/todos/{id}").HandlerFunc(s.handleUpdateTodo)
	r.Methods(http.MethodDelete).Path("/api/todos/{id}").HandlerFunc(s.handleDeleteTodo)

	r.Methods(page...).PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(s.static))))

	// A path served under another verb is as missing as an unknown path.
	r.NotFoundHandler = http.HandlerFunc(s.handleNotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(s.handleNotFound)
	return r
}

// pathVar returns the unescaped route variable key.
func pathVar(r *http.Request, key string) (string, bool) {
	v, err := url.PathUnescape(mux.Vars(r)[key])
	return v, err == nil
}

// viewVersion hashes the page templates together with the markdown
// renderer's fingerprint, when it has one.
func viewVersion(assets fs.FS, pages []string, markdown Renderer) (string, error) {
	h, _ := blake2b.New256(nil)
	for _, page := range pages {
		b, err := fs.ReadFile(assets, page)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(h, "%s\x00%d\x00", page, len(b))
		h.Write(b)
	}
	if f, ok := markdown.(interface{ Fingerprint() string }); ok {
		fmt.Fprintf(h, "%s\x00", f.Fingerprint())
	}
	return hex.EncodeToString(h.Sum(nil)[:8]), nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	t, ok := s.tmpl[name]
	if !ok {
		s.serverError(w, r, fmt.Errorf("template %q not found", name))
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		s.serverError(w, r, fmt.Errorf("render %s: %w", name, err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if r.Method != http.MethodHead {
		buf.WriteTo(w)
	}
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	s.render(w, r, http.StatusNotFound, "404", s.page(""))
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", RequestID(r.Context()),
		"err", err,
	)
	if strings.HasPrefix(r.URL.Path, "/api/") {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
