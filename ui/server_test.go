package ui

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
)

func newTestServer(t *testing.T) (*Server, *Store) {
	t.Helper()
	store, err := OpenStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	server, err := NewServer(store)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return server, store
}

func postForm(t *testing.T, server *Server, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	return w
}

func get(t *testing.T, server *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	server.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestCreateAndViewDocument(t *testing.T) {
	server, _ := newTestServer(t)

	w := postForm(t, server, "/documents", url.Values{
		"name":   {"sum"},
		"source": {"1 + 2"},
	})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("create status = %d, want %d", w.Code, http.StatusSeeOther)
	}
	location := w.Header().Get("Location")
	if !strings.HasPrefix(location, "/documents/") {
		t.Fatalf("create redirected to %q", location)
	}

	w = get(t, server, location)
	if w.Code != http.StatusOK {
		t.Fatalf("view status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "<strong>3</strong>") {
		t.Errorf("document page does not show the result:\n%s", w.Body.String())
	}
}

func TestDocumentWithVariables(t *testing.T) {
	server, store := newTestServer(t)

	doc := Document{Name: "scaled", Source: "x * 2"}
	if err := store.Create(&doc); err != nil {
		t.Fatalf("Create: %v", err)
	}

	w := get(t, server, "/documents/"+doc.ID+"?vars="+url.QueryEscape("x=4"))
	if !strings.Contains(w.Body.String(), "<strong>8</strong>") {
		t.Errorf("document page does not show the result:\n%s", w.Body.String())
	}

	w = get(t, server, "/documents/"+doc.ID)
	if !strings.Contains(w.Body.String(), "a defined variable") {
		t.Errorf("document page does not report the undefined variable:\n%s", w.Body.String())
	}
}

func TestDocumentParseFailure(t *testing.T) {
	server, store := newTestServer(t)

	doc := Document{Name: "broken", Source: "1 +"}
	if err := store.Create(&doc); err != nil {
		t.Fatalf("Create: %v", err)
	}

	w := get(t, server, "/documents/"+doc.ID)
	if !strings.Contains(w.Body.String(), "expected end of input") {
		t.Errorf("document page does not show the parse failure:\n%s", w.Body.String())
	}
}

func TestDocumentTrace(t *testing.T) {
	server, store := newTestServer(t)

	doc := Document{Name: "traced", Source: "1"}
	if err := store.Create(&doc); err != nil {
		t.Fatalf("Create: %v", err)
	}

	w := get(t, server, "/documents/"+doc.ID+"?trace=1")
	if !strings.Contains(w.Body.String(), "end of input ok @") {
		t.Errorf("document page does not include a trace:\n%s", w.Body.String())
	}
}

func TestUpdateDocument(t *testing.T) {
	server, store := newTestServer(t)

	doc := Document{Name: "draft", Source: "1"}
	if err := store.Create(&doc); err != nil {
		t.Fatalf("Create: %v", err)
	}

	w := postForm(t, server, "/documents/"+doc.ID, url.Values{
		"name":   {"final"},
		"source": {"2 * 3"},
	})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("update status = %d", w.Code)
	}

	updated, err := store.Get(doc.ID)
	if err != nil || updated == nil {
		t.Fatalf("Get after update: %v, %v", updated, err)
	}
	if updated.Name != "final" || updated.Source != "2 * 3" {
		t.Errorf("updated document = %+v", updated)
	}
}

func TestDeleteDocument(t *testing.T) {
	server, store := newTestServer(t)

	doc := Document{Name: "doomed", Source: "1"}
	if err := store.Create(&doc); err != nil {
		t.Fatalf("Create: %v", err)
	}

	w := postForm(t, server, "/documents/"+doc.ID+"/delete", nil)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("delete status = %d", w.Code)
	}

	gone, err := store.Get(doc.ID)
	if err != nil {
		t.Fatalf("Get after delete: %v", err)
	}
	if gone != nil {
		t.Errorf("document still present after delete: %+v", gone)
	}
}

func TestDocumentNotFound(t *testing.T) {
	server, _ := newTestServer(t)
	if w := get(t, server, "/documents/no-such-id"); w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestParseVars(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    map[string]float64
		wantErr bool
	}{
		{"empty", "", map[string]float64{}, false},
		{"single", "x=1", map[string]float64{"x": 1}, false},
		{"several with spaces", "x = 1, y = 2.5", map[string]float64{"x": 1, "y": 2.5}, false},
		{"newline separated", "x=1\ny=2", map[string]float64{"x": 1, "y": 2}, false},
		{"missing equals", "x", nil, true},
		{"bad number", "x=one", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseVars(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseVars(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("parseVars(%q) = %v, want %v", tt.raw, got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("parseVars(%q)[%s] = %v, want %v", tt.raw, k, got[k], v)
				}
			}
		})
	}
}
