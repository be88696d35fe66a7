// Package ui is the web playground: expressions are stored as documents in
// a SQLite database and evaluated on view, with an optional parse trace.
package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
	"strings"

	"github.com/dhamidi/comb"
	"github.com/dhamidi/comb/calc"
	"github.com/dhamidi/comb/format"
)

//go:embed templates
var embeddedFS embed.FS

type Server struct {
	store     *Store
	templates *template.Template
	mux       *http.ServeMux
}

func NewServer(store *Store) (*Server, error) {
	tmpl, err := template.New("").ParseFS(mustSub(embeddedFS, "templates"), "*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		store:     store,
		templates: tmpl,
		mux:       http.NewServeMux(),
	}

	s.mux.HandleFunc("POST /documents", s.handleCreate)
	s.mux.HandleFunc("GET /documents/{id}", s.handleDocument)
	s.mux.HandleFunc("POST /documents/{id}", s.handleUpdate)
	s.mux.HandleFunc("POST /documents/{id}/delete", s.handleDelete)
	s.mux.HandleFunc("GET /", s.handleIndex)

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	docs, err := s.store.List()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	data := struct {
		Documents []Document
	}{
		Documents: docs,
	}
	s.render(w, "index.html", data)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data: "+err.Error(), http.StatusBadRequest)
		return
	}
	doc := Document{
		Name:   r.FormValue("name"),
		Source: r.FormValue("source"),
	}
	if doc.Name == "" {
		doc.Name = "untitled"
	}
	if err := s.store.Create(&doc); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/documents/"+doc.ID, http.StatusSeeOther)
}

// DocumentView is the data shown on a document page.
type DocumentView struct {
	Document *Document
	Vars     string
	Result   EvalResult
	Traced   bool
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Get(r.PathValue("id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if doc == nil {
		http.Error(w, "document not found", http.StatusNotFound)
		return
	}

	vars := r.URL.Query().Get("vars")
	traced := r.URL.Query().Get("trace") != ""
	data := DocumentView{
		Document: doc,
		Vars:     vars,
		Result:   Evaluate(doc.Source, vars, traced),
		Traced:   traced,
	}
	s.render(w, "document.html", data)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	doc, err := s.store.Get(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if doc == nil {
		http.Error(w, "document not found", http.StatusNotFound)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data: "+err.Error(), http.StatusBadRequest)
		return
	}
	name := r.FormValue("name")
	if name == "" {
		name = doc.Name
	}
	if err := s.store.Update(id, name, r.FormValue("source")); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/documents/"+id, http.StatusSeeOther)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.PathValue("id")); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// EvalResult is the outcome of evaluating a document's source.
type EvalResult struct {
	OK    bool
	Value float64
	Err   string
	Trace string
}

// Evaluate parses source with the variables given as "name=value" pairs
// (comma or newline separated) and optionally records a parse trace.
func Evaluate(source, varsRaw string, traced bool) EvalResult {
	vars, err := parseVars(varsRaw)
	if err != nil {
		return EvalResult{Err: err.Error()}
	}

	opts := []comb.Option{comb.WithEnv(calc.Env{Vars: vars})}
	var trace strings.Builder
	if traced {
		opts = append(opts, comb.WithTracer(format.NewTraceWriter(&trace).WithWidth(40)))
	}

	res := calc.Expression().Parse(source, opts...)
	out := EvalResult{Trace: trace.String()}
	if !res.OK {
		out.Err = format.Message(source, res)
		return out
	}
	out.OK = true
	out.Value = res.Value.(float64)
	return out
}

func parseVars(raw string) (map[string]float64, error) {
	vars := map[string]float64{}
	for _, pair := range strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n'
	}) {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("variable %q is not of the form name=value", pair)
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", strings.TrimSpace(name), err)
		}
		vars[strings.TrimSpace(name)] = n
	}
	return vars, nil
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
