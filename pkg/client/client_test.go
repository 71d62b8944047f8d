package client

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aholstenson/gocurl/pkg/network"
	"github.com/aholstenson/gocurl/pkg/request"
)

func TestClientGet(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/get", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if got := r.Header.Get("X-Token"); got != "abc123" {
			t.Errorf("expected X-Token header, got %q", got)
		}
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, "hello")
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, err := NewClient(WithTimeout(2 * time.Second))
	if err != nil {
		t.Fatalf("could not create client: %v", err)
	}

	res, err := c.Do(context.Background(), &request.Spec{
		Method:  request.MethodGet,
		URL:     srv.URL + "/get",
		Headers: []request.Header{{Key: "X-Token", Value: "abc123"}},
	})
	if err != nil {
		t.Fatalf("expected request to succeed, got %v", err)
	}
	if !res.Success() {
		t.Fatalf("expected 2xx, got %d", res.StatusCode)
	}
	if string(res.Body) != "hello" {
		t.Fatalf("unexpected body: %q", res.Body)
	}
	if res.StatusPhrase != "OK" {
		t.Fatalf("unexpected status phrase: %q", res.StatusPhrase)
	}
}

func TestClientPostBody(t *testing.T) {
	payload := `{"id":"that"}`

	mux := http.NewServeMux()
	mux.HandleFunc("/post", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("expected json content type, got %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != payload {
			t.Errorf("expected body %q, got %q", payload, body)
		}
		w.WriteHeader(http.StatusCreated)
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, _ := NewClient(WithTimeout(2 * time.Second))
	res, err := c.Do(context.Background(), &request.Spec{
		Method: request.MethodPost,
		URL:    srv.URL + "/post",
		Body:   []byte(payload),
	})
	if err != nil {
		t.Fatalf("expected request to succeed, got %v", err)
	}
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}
}

func TestClientUserHeaderWinsOverContentType(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/put", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Content-Type"); got != "text/plain" {
			t.Errorf("expected user content type to win, got %q", got)
		}
		w.WriteHeader(http.StatusOK)
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, _ := NewClient(WithTimeout(2 * time.Second))
	_, err := c.Do(context.Background(), &request.Spec{
		Method:  request.MethodPut,
		URL:     srv.URL + "/put",
		Headers: []request.Header{{Key: "Content-Type", Value: "text/plain"}},
		Body:    []byte(`{}`),
	})
	if err != nil {
		t.Fatalf("expected request to succeed, got %v", err)
	}
}

func TestClientDuplicateHeaderKeys(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/get", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Values("X-Tag"); len(got) != 2 {
			t.Errorf("expected both X-Tag headers, got %v", got)
		}
		w.WriteHeader(http.StatusOK)
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, _ := NewClient(WithTimeout(2 * time.Second))
	_, err := c.Do(context.Background(), &request.Spec{
		Method: request.MethodGet,
		URL:    srv.URL + "/get",
		Headers: []request.Header{
			{Key: "X-Tag", Value: "one"},
			{Key: "X-Tag", Value: "two"},
		},
	})
	if err != nil {
		t.Fatalf("expected request to succeed, got %v", err)
	}
}

func TestClientNon2xxIsNotAnError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/missing", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, "nothing here")
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, _ := NewClient(WithTimeout(2 * time.Second))
	res, err := c.Do(context.Background(), &request.Spec{
		Method: request.MethodGet,
		URL:    srv.URL + "/missing",
	})
	if err != nil {
		t.Fatalf("a 404 is a response, not an error: %v", err)
	}
	if res.Success() {
		t.Fatal("expected Success() to be false for 404")
	}
	if string(res.Body) != "nothing here" {
		t.Fatalf("unexpected body: %q", res.Body)
	}
}

func TestClientNetworkError(t *testing.T) {
	// Unused local port to force a connection error
	ln, _ := net.Listen("tcp", "127.0.0.1:0")
	addr := ln.Addr().String()
	ln.Close()

	c, _ := NewClient(WithTimeout(time.Second))
	_, err := c.Do(context.Background(), &request.Spec{
		Method: request.MethodGet,
		URL:    "http://" + addr,
	})
	if err == nil {
		t.Fatal("expected a network error, got nil")
	}

	var nerr *NetworkError
	if !errors.As(err, &nerr) {
		t.Fatalf("expected *NetworkError, got %T: %v", err, err)
	}
}

func TestClientTimeout(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/slow", func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, _ := NewClient(WithTimeout(50 * time.Millisecond))
	_, err := c.Do(context.Background(), &request.Spec{
		Method: request.MethodGet,
		URL:    srv.URL + "/slow",
	})

	var nerr *NetworkError
	if !errors.As(err, &nerr) {
		t.Fatalf("expected a timeout as *NetworkError, got %v", err)
	}
}

type recordingReporter struct {
	requests  []*network.Request
	responses []*network.Response
}

func (r *recordingReporter) Close() error                { return nil }
func (r *recordingReporter) Action(msg string)           {}
func (r *recordingReporter) Info(msg string)             {}
func (r *recordingReporter) Debug(msg string)            {}
func (r *recordingReporter) Error(err error, msg string) {}

func (r *recordingReporter) Request(req *network.Request) {
	r.requests = append(r.requests, req)
}

func (r *recordingReporter) Response(res *network.Response) {
	r.responses = append(r.responses, res)
}

func TestClientNotifiesReporter(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/get", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, "hi")
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	reporter := &recordingReporter{}
	c, _ := NewClient(WithReporter(reporter), WithTimeout(2*time.Second))

	_, err := c.Do(context.Background(), &request.Spec{
		Method: request.MethodGet,
		URL:    srv.URL + "/get",
	})
	if err != nil {
		t.Fatalf("expected request to succeed, got %v", err)
	}

	if len(reporter.requests) != 1 || reporter.requests[0].Method != http.MethodGet {
		t.Fatalf("expected one reported request, got %+v", reporter.requests)
	}
	if len(reporter.responses) != 1 || string(reporter.responses[0].Body) != "hi" {
		t.Fatalf("expected one reported response, got %+v", reporter.responses)
	}
}
