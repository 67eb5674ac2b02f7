package report

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"gohare/app"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server serves a pre-rendered report over HTTP. Documents are built
// once at startup; there is no re-computation per request.
type Server struct {
	docs map[string][]byte
	port string
}

// NewServer renders the bundle and returns a server ready to listen.
func NewServer(b *app.ReportBundle, port string) (*Server, error) {
	docs, err := RenderAll(b)
	if err != nil {
		return nil, err
	}
	return &Server{docs: docs, port: port}, nil
}

// Start blocks serving the report until the listener fails.
func (s *Server) Start() error {
	addr := ":" + strings.TrimPrefix(s.port, ":")
	log.Printf("[Server] Report available at http://localhost%s", addr)
	return http.ListenAndServe(addr, s.routes())
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.servePage)
	r.Get("/charts/{name}", s.serveChart)
	return r
}

func (s *Server) servePage(w http.ResponseWriter, r *http.Request) {
	s.writeDoc(w, PageName)
}

func (s *Server) serveChart(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	s.writeDoc(w, fmt.Sprintf("charts/%s", name))
}

func (s *Server) writeDoc(w http.ResponseWriter, name string) {
	doc, ok := s.docs[name]
	if !ok {
		http.NotFound(w, nil)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(doc)
}
