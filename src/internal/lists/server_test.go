package lists

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

// newListServer serves fixed list bodies by path plus a few failure routes:
//
//	/status/{code}  answers with the given status
//	/slow           blocks until the client gives up
func newListServer(t *testing.T, bodies map[string]string) *httptest.Server {
	t.Helper()

	r := chi.NewRouter()
	for path, body := range bodies {
		r.Get(path, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/plain")
			_, _ = w.Write([]byte(body))
		})
	}
	r.Get("/status/{code}", func(w http.ResponseWriter, r *http.Request) {
		switch chi.URLParam(r, "code") {
		case "404":
			http.NotFound(w, r)
		default:
			http.Error(w, "Server Error", http.StatusInternalServerError)
		}
	})
	r.Get("/slow", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	})
	r.Get("/user-agent", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(r.UserAgent()))
	})

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}
