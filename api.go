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

// Package directo is a client for the Directo XML-based ERP web API
// ("XMLCore"). It builds XML request bodies, posts them with token
// authentication, detects vendor-level errors embedded in HTTP 200
// responses, optionally validates bodies against XSD schemas, and converts
// the API's heterogeneous XML response shapes into generic ordered records.
package directo

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"sort"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/5dvision/directo/internal/logger"
)

// Client talks to one XMLCore endpoint. It is stateless apart from its
// immutable configuration and is safe for concurrent use.
type Client struct {
	cfg       Config
	transport Transport
	decoder   Decoder
	validator *SchemaValidator

	traceMu     sync.Mutex
	traceOutput io.Writer
}

// New returns a client for cfg using the default HTTP transport.
func New(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return NewWithTransport(cfg, NewHTTPTransport(cfg))
}

// NewWithTransport returns a client using a caller-supplied transport,
// mainly for tests and instrumented setups.
func NewWithTransport(cfg Config, transport Transport) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Client{
		cfg:       cfg,
		transport: transport,
		decoder: Decoder{
			KeepWhitespace:  cfg.KeepWhitespace,
			KeepEmptyValues: cfg.KeepEmptyValues,
		},
	}
	if cfg.ValidateSchemas && cfg.SchemaFS != nil {
		c.validator = NewSchemaValidator(cfg.SchemaFS)
	}
	return c, nil
}

// TraceOn enables wire-level tracing of each call to output: operation,
// resource, parameter names, byte counts and timing. The token is never
// traced. Passing nil disables tracing.
func (c *Client) TraceOn(output io.Writer) {
	c.traceMu.Lock()
	c.traceOutput = output
	c.traceMu.Unlock()
}

// TraceOff disables tracing.
func (c *Client) TraceOff() {
	c.TraceOn(nil)
}

func (c *Client) tracef(format string, args ...interface{}) {
	c.traceMu.Lock()
	output := c.traceOutput
	c.traceMu.Unlock()
	if output != nil {
		fmt.Fprintf(output, format, args...)
	}
}

// newReqContext allocates a request ID for one call and threads it both
// through the context (for the logger) and through the diagnostics map every
// error value carries. The reqCtx map is the single place call diagnostics
// are assembled, and the token deliberately has no way in.
func (c *Client) newReqContext(ctx context.Context, res Resource, operation string) (context.Context, map[string]string) {
	requestID := uuid.New().String()
	host := ""
	if u, err := url.Parse(c.cfg.BaseURL); err == nil {
		host = u.Host
	}
	ctx = logger.SetReqInfo(ctx, logger.NewReqInfo(host, res.Name(), operation, requestID))
	reqCtx := map[string]string{
		"host":      host,
		"resource":  res.Name(),
		"operation": operation,
		"requestId": requestID,
	}
	return ctx, reqCtx
}

// roundTrip runs the shared response pipeline: post, scan for embedded API
// errors, optionally validate against schemaFile, then decode into records.
func (c *Client) roundTrip(ctx context.Context, params url.Values, schemaFile string, reqCtx map[string]string) ([]*Record, error) {
	start := time.Now()
	body, err := c.transport.Post(ctx, params, reqCtx)
	elapsed := time.Since(start).Round(time.Millisecond)
	if err != nil {
		c.tracef("directo: %s %s failed after %s: %v\n",
			reqCtx["operation"], reqCtx["resource"], elapsed, err)
		return nil, err
	}
	c.tracef("directo: %s %s [%s] -> %s in %s\n",
		reqCtx["operation"], reqCtx["resource"], paramNames(params),
		humanize.Bytes(uint64(len(body))), elapsed)

	if err := DetectAPIError(body, reqCtx); err != nil {
		return nil, err
	}
	if c.validator != nil && schemaFile != "" {
		if err := c.validator.Validate(body, schemaFile, reqCtx); err != nil {
			return nil, err
		}
	}
	return c.decoder.Decode(body, reqCtx)
}

// filterParams validates filters against the resource's allow-list and
// renders them as form parameters. Unknown keys and values that cannot be
// rendered fail together in one *InvalidFilterError.
func filterParams(res Resource, filters map[string]interface{}, reqCtx map[string]string) (url.Values, error) {
	allowed := res.FilterKeys()
	allowedSet := make(map[string]bool, len(allowed))
	for _, key := range allowed {
		allowedSet[key] = true
	}

	keys := make([]string, 0, len(filters))
	for key := range filters {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	params := url.Values{}
	var invalid []string
	for _, key := range keys {
		if !allowedSet[key] {
			invalid = append(invalid, key)
			continue
		}
		text, ok := filterValueText(filters[key])
		if !ok {
			invalid = append(invalid, key)
			continue
		}
		params.Set(key, text)
	}
	if len(invalid) > 0 {
		return nil, &InvalidFilterError{
			Resource: res.Name(),
			Invalid:  invalid,
			Allowed:  allowed,
			Context:  reqCtx,
		}
	}
	return params, nil
}

// filterValueText renders a filter value as a form parameter. Only scalars
// and fmt.Stringer values are accepted; booleans encode as 1/0 like the
// request builder renders them.
func filterValueText(value interface{}) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case bool:
		if v {
			return "1", true
		}
		return "0", true
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return fmt.Sprintf("%v", v), true
	case fmt.Stringer:
		return v.String(), true
	default:
		return "", false
	}
}

func paramNames(params url.Values) string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	out := ""
	for i, name := range names {
		if i > 0 {
			out += ","
		}
		out += name
	}
	return out
}
