package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/five82/ticklist/internal/todo"
)

func TestParseBaseURL_Normalizes(t *testing.T) {
	u, err := parseBaseURL("127.0.0.1:8484")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" || u.Host != "127.0.0.1:8484" {
		t.Fatalf("url = %q, want http://127.0.0.1:8484", u.String())
	}

	u, err = parseBaseURL("https://example.com/api/?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != "https://example.com/api" {
		t.Fatalf("url = %q, want https://example.com/api", u.String())
	}

	if _, err := parseBaseURL("   "); err == nil {
		t.Fatalf("parseBaseURL(blank) returned nil error")
	}
	if _, err := parseBaseURL("http://"); err == nil {
		t.Fatalf("parseBaseURL without host returned nil error")
	}
}

type recordedRequest struct {
	method string
	path   string
	body   string
}

func newTestServer(t *testing.T, handler http.HandlerFunc) (*Client, *[]recordedRequest) {
	t.Helper()
	var mu sync.Mutex
	var got []recordedRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		got = append(got, recordedRequest{method: r.Method, path: r.URL.Path, body: string(b)})
		mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, WithTimeout(2*time.Second))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return c, &got
}

func TestClient_CRUD(t *testing.T) {
	c, got := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/todo":
			_, _ = w.Write([]byte(`[{"id":1,"text":"a","completed":false},{"_id":"x2","text":"b","completed":true}]`))
		case r.Method == http.MethodPost && r.URL.Path == "/todo":
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":1,"text":"Pay bills","completed":false}`))
		case r.Method == http.MethodPut && r.URL.Path == "/todo/1":
			_, _ = w.Write([]byte(`{"id":1,"text":"Pay all bills","completed":true}`))
		case r.Method == http.MethodDelete && r.URL.Path == "/todo/1":
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	})
	ctx := context.Background()

	items, err := c.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	want := []todo.Item{{ID: "1", Text: "a"}, {ID: "x2", Text: "b", Completed: true}}
	if len(items) != 2 || items[0] != want[0] || items[1] != want[1] {
		t.Fatalf("List = %#v, want %#v", items, want)
	}

	created, err := c.Create(ctx, todo.Fields{Text: "Pay bills"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created != (todo.Item{ID: "1", Text: "Pay bills"}) {
		t.Fatalf("Create = %#v", created)
	}

	updated, err := c.Update(ctx, "1", todo.Fields{Text: "Pay all bills", Completed: true})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if !updated.Completed || updated.Text != "Pay all bills" {
		t.Fatalf("Update = %#v", updated)
	}

	if err := c.Delete(ctx, "1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	reqs := *got
	if len(reqs) != 4 {
		t.Fatalf("server saw %d requests, want 4", len(reqs))
	}
	var body todo.Fields
	if err := json.Unmarshal([]byte(reqs[1].body), &body); err != nil || body.Text != "Pay bills" || body.Completed {
		t.Fatalf("create body = %q, want text and completed=false", reqs[1].body)
	}
	if !strings.Contains(reqs[2].body, `"completed":true`) {
		t.Fatalf("update body = %q, want completed=true", reqs[2].body)
	}
	if reqs[3].body != "" {
		t.Fatalf("delete body = %q, want empty", reqs[3].body)
	}
}

func TestClient_ListAcceptsWrappedItems(t *testing.T) {
	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":[{"id":"abc","text":"x","completed":false}]}`))
	})

	items, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(items) != 1 || items[0].ID != "abc" {
		t.Fatalf("List = %#v, want one item id=abc", items)
	}
}

func TestClient_ResolvesBelowBasePath(t *testing.T) {
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL + "/api/v1/")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.List(context.Background()); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if path != "/api/v1/todo" {
		t.Fatalf("path = %q, want /api/v1/todo", path)
	}
}

func TestClient_FailuresMatchErrRequestFailed(t *testing.T) {
	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte("{not-json"))
		case http.MethodPost:
			http.Error(w, "nope", http.StatusInternalServerError)
		case http.MethodPut:
			http.NotFound(w, r)
		}
	})
	ctx := context.Background()

	_, err := c.List(ctx)
	if !errors.Is(err, ErrRequestFailed) || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("List error = %v, want decode failure", err)
	}

	_, err = c.Create(ctx, todo.Fields{Text: "x"})
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("Create error = %v, want *RequestError", err)
	}
	if reqErr.Status != http.StatusInternalServerError || reqErr.Op != "create" || reqErr.Method != http.MethodPost {
		t.Fatalf("RequestError = %#v", reqErr)
	}

	_, err = c.Update(ctx, "7", todo.Fields{Text: "x"})
	if !errors.Is(err, ErrRequestFailed) || !errors.As(err, &reqErr) || reqErr.Status != http.StatusNotFound {
		t.Fatalf("Update error = %v, want 404", err)
	}

	if err := c.Delete(ctx, ""); !errors.Is(err, ErrRequestFailed) {
		t.Fatalf("Delete without id error = %v, want ErrRequestFailed", err)
	}
}

func TestRequestError_MessageKeepsCause(t *testing.T) {
	cases := []struct {
		err  *RequestError
		want string
	}{
		{
			err:  &RequestError{Op: "list", Method: http.MethodGet, Path: "/todo", Status: 200, Err: errors.New("decode response: EOF")},
			want: "list GET /todo: status 200: decode response: EOF",
		},
		{
			err:  &RequestError{Op: "delete", Method: http.MethodDelete, Path: "/todo/3", Status: 410},
			want: "delete DELETE /todo/3: status 410",
		},
		{
			err:  &RequestError{Op: "create", Method: http.MethodPost, Path: "/todo", Err: errors.New("connection refused")},
			want: "create POST /todo: connection refused",
		},
	}
	for _, tc := range cases {
		if got := tc.err.Error(); got != tc.want {
			t.Fatalf("Error() = %q, want %q", got, tc.want)
		}
	}
}

func TestClient_EscapesReservedIDs(t *testing.T) {
	var mu sync.Mutex
	var escaped []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		escaped = append(escaped, r.URL.EscapedPath())
		mu.Unlock()
		if r.Method == http.MethodPut {
			_, _ = w.Write([]byte(`{"_id":"a b/c","text":"x","completed":false}`))
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL+"/api%20v1", WithTimeout(2*time.Second))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()

	if _, err := c.Update(ctx, "a b/c", todo.Fields{Text: "x"}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if err := c.Delete(ctx, "a b/c"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	want := "/api%20v1/todo/a%20b%2Fc"
	mu.Lock()
	defer mu.Unlock()
	if len(escaped) != 2 || escaped[0] != want || escaped[1] != want {
		t.Fatalf("escaped paths = %v, want both %q", escaped, want)
	}
}

func TestClient_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	c, err := NewClient(url)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.List(context.Background())
	var reqErr *RequestError
	if !errors.As(err, &reqErr) || reqErr.Status != 0 {
		t.Fatalf("List error = %v, want transport RequestError", err)
	}
	if !errors.Is(err, ErrRequestFailed) {
		t.Fatalf("List error = %v, want ErrRequestFailed", err)
	}
}

type countingObserver struct {
	mu       sync.Mutex
	started  int
	finished []error
}

func (o *countingObserver) RequestStarted() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.started++
}

func (o *countingObserver) RequestFinished(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.finished = append(o.finished, err)
}

func TestClient_NotifiesObserver(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			http.Error(w, "gone", http.StatusGone)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(server.Close)

	obs := &countingObserver{}
	c, err := NewClient(server.URL, WithObserver(obs))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, _ = c.List(context.Background())
	_ = c.Delete(context.Background(), "3")

	if obs.started != 2 || len(obs.finished) != 2 {
		t.Fatalf("observer saw %d starts / %d finishes, want 2/2", obs.started, len(obs.finished))
	}
	if obs.finished[0] != nil || !errors.Is(obs.finished[1], ErrRequestFailed) {
		t.Fatalf("observer errors = %v", obs.finished)
	}
}
