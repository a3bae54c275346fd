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
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Transport posts one form-encoded request to the XMLCore endpoint and
// returns the raw response body. Implementations attach the auth token,
// apply timeouts, and translate network and HTTP failures into
// *TransportError and *HTTPError; callers only ever see a body string or a
// failure. reqCtx carries per-call diagnostics for error values and must
// never contain the token.
type Transport interface {
	Post(ctx context.Context, params url.Values, reqCtx map[string]string) (string, error)
}

// httpTransport is the default Transport: a form POST over net/http with a
// connection pool sized for a client talking to a single host.
type httpTransport struct {
	endpoint string
	token    string
	client   *http.Client
}

// NewHTTPTransport returns the default HTTP transport for cfg. The returned
// transport is safe for concurrent use.
func NewHTTPTransport(cfg Config) Transport {
	return &httpTransport{
		endpoint: cfg.BaseURL,
		token:    cfg.Token,
		client: &http.Client{
			Timeout: cfg.requestTimeout(),
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   cfg.dialTimeout(),
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConnsPerHost:   16,
				IdleConnTimeout:       60 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
	}
}

func (t *httpTransport) Post(ctx context.Context, params url.Values, reqCtx map[string]string) (string, error) {
	// Copy before adding the token so the caller's params never carry it.
	form := url.Values{}
	for key, values := range params {
		form[key] = values
	}
	form.Set(paramToken, t.token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", &TransportError{URL: t.endpoint, Err: err, Context: reqCtx}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", &TransportError{URL: t.endpoint, Err: err, Context: reqCtx}
	}
	defer closeResponse(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Bounded read; error pages can be arbitrarily large.
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLength))
		return "", &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(body),
			Context:    reqCtx,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{
			URL:     t.endpoint,
			Err:     errors.Wrap(err, "reading response body"),
			Context: reqCtx,
		}
	}
	return string(body), nil
}

// closeResponse drains and closes the body so the underlying connection is
// reusable.
func closeResponse(resp *http.Response) {
	io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBodyLength))
	resp.Body.Close()
}
