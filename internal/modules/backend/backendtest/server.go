// Package backendtest provides a scripted fake of the shop API for tests.
package backendtest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"

	"github.com/Enthunya/mekgoro-tbos/internal/modules/backend"
)

// Call is one request received by the fake.
type Call struct {
	Method string
	Action backend.Action
	Params url.Values
	Body   map[string]any
}

type reply struct {
	status int
	body   string
}

// Server answers each action with a canned JSON body.
type Server struct {
	srv *httptest.Server

	mu      sync.Mutex
	calls   []Call
	replies map[backend.Action]reply
}

// New starts a fake that is closed when the test ends. Actions without a
// scripted reply answer {"error":"unknown action"}.
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{replies: map[backend.Action]reply{}}
	s.srv = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.srv.Close)
	return s
}

// On scripts a 200 reply for action.
func (s *Server) On(action backend.Action, body string) *Server {
	return s.OnStatus(action, http.StatusOK, body)
}

// OnStatus scripts a reply with an explicit status code.
func (s *Server) OnStatus(action backend.Action, status int, body string) *Server {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies[action] = reply{status: status, body: body}
	return s
}

// URL is the base endpoint of the fake.
func (s *Server) URL() string { return s.srv.URL }

// NewClient returns a backend client pointed at the fake.
func (s *Server) NewClient() *backend.Client {
	logg, _ := test.NewNullLogger()
	return backend.NewClient(s.srv.URL, 2*time.Second, logg, nil)
}

// Calls returns every request received so far.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// CallsFor returns the requests received for action.
func (s *Server) CallsFor(action backend.Action) []Call {
	var out []Call
	for _, c := range s.Calls() {
		if c.Action == action {
			out = append(out, c)
		}
	}
	return out
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	call := Call{Method: r.Method, Params: r.URL.Query()}
	if r.Method == http.MethodPost {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &call.Body)
		if a, ok := call.Body["action"].(string); ok {
			call.Action = backend.Action(a)
		}
	} else {
		call.Action = backend.Action(call.Params.Get("action"))
	}

	s.mu.Lock()
	s.calls = append(s.calls, call)
	rep, ok := s.replies[call.Action]
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.Write([]byte(`{"error":"unknown action"}`))
		return
	}
	w.WriteHeader(rep.status)
	w.Write([]byte(rep.body))
}
