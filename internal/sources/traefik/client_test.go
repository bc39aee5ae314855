package traefik

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/portico-home/portico/internal/logger"
)

func TestFetchRoutersObjectShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/http/routers" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{
			"omv@docker": {"rule": "Host(` + "`omv.local.dev`" + `)", "entryPoints": ["websecure"], "service": "omv"},
			"grafana@docker": {"rule": "Host(` + "`grafana.local.dev`" + `)", "entryPoints": ["web"], "service": "grafana"}
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 2*time.Second, logger.New("error", false))
	routers, err := client.FetchRouters(context.Background())
	if err != nil {
		t.Fatalf("FetchRouters() error = %v", err)
	}

	if len(routers) != 2 {
		t.Fatalf("FetchRouters() = %d routers, want 2", len(routers))
	}
	// Object keys come back sorted for determinism.
	if routers[0].ID != "grafana@docker" || routers[1].ID != "omv@docker" {
		t.Errorf("router IDs = [%s %s], want sorted [grafana@docker omv@docker]",
			routers[0].ID, routers[1].ID)
	}
	if routers[1].Router.Service != "omv" {
		t.Errorf("omv service = %q, want omv", routers[1].Router.Service)
	}
}

func TestFetchRoutersArrayShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"name": "omv@docker", "rule": "Host(` + "`omv.local.dev`" + `)", "service": "omv"},
			{"router": "pihole@file", "rule": "Host(` + "`pihole.local.dev`" + `)", "service": "pihole"}
		]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 2*time.Second, logger.New("error", false))
	routers, err := client.FetchRouters(context.Background())
	if err != nil {
		t.Fatalf("FetchRouters() error = %v", err)
	}

	if len(routers) != 2 {
		t.Fatalf("FetchRouters() = %d routers, want 2", len(routers))
	}
	if routers[0].ID != "omv@docker" {
		t.Errorf("routers[0].ID = %q, want name field", routers[0].ID)
	}
	if routers[1].ID != "pihole@file" {
		t.Errorf("routers[1].ID = %q, want router field fallback", routers[1].ID)
	}
}

func TestFetchRoutersLegacyEndpointFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/routers" {
			_, _ = w.Write([]byte(`{"omv@docker": {"rule": "Host(` + "`omv.local.dev`" + `)", "service": "omv"}}`))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 2*time.Second, logger.New("error", false))
	routers, err := client.FetchRouters(context.Background())
	if err != nil {
		t.Fatalf("FetchRouters() error = %v", err)
	}
	if len(routers) != 1 || routers[0].ID != "omv@docker" {
		t.Errorf("FetchRouters() = %+v, want the legacy endpoint payload", routers)
	}
}

func TestFetchRoutersAllEndpointsFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, 2*time.Second, logger.New("error", false))
	if _, err := client.FetchRouters(context.Background()); err == nil {
		t.Fatal("FetchRouters() error = nil, want error when every endpoint fails")
	}
}

func TestDecodeRoutersRejectsGarbage(t *testing.T) {
	for _, body := range []string{"", "  ", "nonsense", "42"} {
		if _, err := decodeRouters([]byte(body)); err == nil {
			t.Errorf("decodeRouters(%q) error = nil, want error", body)
		}
	}
}
