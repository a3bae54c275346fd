/*
 * Directo XMLCore Client SDK for Go, (C) 2022 Directo OU.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package directo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestHTTPTransportPost(t *testing.T) {
	var gotForm url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parsing form: %v", err)
		}
		gotForm = r.PostForm
		w.Write([]byte(`<transport/>`))
	}))
	defer server.Close()

	cfg := Config{BaseURL: server.URL, Token: "secret-token-99"}
	transport := NewHTTPTransport(cfg)

	params := url.Values{}
	params.Set(paramGet, "1")
	params.Set(paramWhat, "item")
	body, err := transport.Post(context.Background(), params, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body != `<transport/>` {
		t.Errorf("unexpected body %q", body)
	}
	// The transport attaches the token itself.
	if got := gotForm.Get(paramToken); got != "secret-token-99" {
		t.Errorf("expected token form field, got %q", got)
	}
	if got := gotForm.Get(paramWhat); got != "item" {
		t.Errorf("expected what=item, got %q", got)
	}
	// The caller's params were not mutated.
	if params.Get(paramToken) != "" {
		t.Errorf("token written back into caller params")
	}
}

func TestHTTPTransportHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	transport := NewHTTPTransport(Config{BaseURL: server.URL, Token: "secret-token-99"})
	_, err := transport.Post(context.Background(), url.Values{}, map[string]string{"operation": "List"})
	httpErr, ok := err.(*HTTPError)
	if !ok {
		t.Fatalf("expected *HTTPError, got %T (%v)", err, err)
	}
	if httpErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", httpErr.StatusCode)
	}
	if !strings.Contains(httpErr.Body, "maintenance") {
		t.Errorf("expected error body, got %q", httpErr.Body)
	}
	if httpErr.Context["operation"] != "List" {
		t.Errorf("context not carried")
	}
}

func TestHTTPTransportNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // nothing listens anymore

	transport := NewHTTPTransport(Config{BaseURL: server.URL, Token: "secret-token-99"})
	_, err := transport.Post(context.Background(), url.Values{}, nil)
	terr, ok := err.(*TransportError)
	if !ok {
		t.Fatalf("expected *TransportError, got %T (%v)", err, err)
	}
	if terr.Unwrap() == nil {
		t.Errorf("expected wrapped cause")
	}
}

func TestHTTPTransportTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer func() {
		close(release)
		server.Close()
	}()

	transport := NewHTTPTransport(Config{
		BaseURL:        server.URL,
		Token:          "secret-token-99",
		RequestTimeout: 50 * time.Millisecond,
	})
	_, err := transport.Post(context.Background(), url.Values{}, nil)
	terr, ok := err.(*TransportError)
	if !ok {
		t.Fatalf("expected *TransportError, got %T (%v)", err, err)
	}
	if !terr.Timeout() {
		t.Errorf("expected a timeout, got %v", terr)
	}
}

func TestHTTPTransportContextCancel(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer func() {
		close(release)
		server.Close()
	}()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	transport := NewHTTPTransport(Config{BaseURL: server.URL, Token: "secret-token-99"})
	_, err := transport.Post(ctx, url.Values{}, nil)
	if _, ok := err.(*TransportError); !ok {
		t.Fatalf("expected *TransportError, got %T (%v)", err, err)
	}
}
