package server

import (
	"html/template"
	"net/http"
	"strings"

	"blog/internal/models"
)

// page carries what the layout needs on every view.
type page struct {
	Categories []string
	Current    string
}

type homeView struct {
	page
	Posts []models.Post
}

type postView struct {
	page
	Post        models.Post
	ContentHTML template.HTML
}

func (s *Server) page(current string) page {
	return page{Categories: s.posts.ListCategories(), Current: current}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "home", homeView{
		page:  s.page(""),
		Posts: s.posts.ListAll(),
	})
}

func (s *Server) handleCategory(w http.ResponseWriter, r *http.Request) {
	name, ok := pathVar(r, "name")
	// Unknown categories are 404; a known one with no posts is an empty page.
	if !ok || !s.posts.HasCategory(name) {
		s.handleNotFound(w, r)
		return
	}
	s.render(w, r, http.StatusOK, "home", homeView{
		page:  s.page(name),
		Posts: s.posts.ListByCategory(name),
	})
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	slug, ok := pathVar(r, "slug")
	if !ok {
		s.handleNotFound(w, r)
		return
	}
	post, ok := s.posts.GetBySlug(slug)
	if !ok {
		s.handleNotFound(w, r)
		return
	}

	if etag, ok := s.postETag(slug); ok {
		w.Header().Set("ETag", etag)
		if etagMatches(r.Header.Get("If-None-Match"), etag) {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}

	content, err := s.markdown.Render(post.Content)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "post", postView{
		page:        s.page(""),
		Post:        post,
		ContentHTML: content,
	})
}

func (s *Server) handleTodosPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "todos", s.page(""))
}

// postETag combines the post's content tag with the view version, so a
// template or renderer change invalidates cached pages.
func (s *Server) postETag(slug string) (string, bool) {
	base, ok := s.posts.ETag(slug)
	if !ok {
		return "", false
	}
	opaque := strings.TrimSuffix(strings.TrimPrefix(strings.TrimPrefix(base, "W/"), `"`), `"`)
	return `W/"` + opaque + "-" + s.viewVersion + `"`, true
}

// etagMatches implements the weak comparison used for If-None-Match.
func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	want := strings.TrimPrefix(etag, "W/")
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == want {
			return true
		}
	}
	return false
}
