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
	"fmt"
	"strings"
)

// APIError is a vendor-level error the server embedded in an otherwise
// successful HTTP response. Messages holds every message extracted from the
// body, in document order, deduplicated. RawBody is the verbatim response
// text. Context carries per-call diagnostics and never contains the API
// token.
type APIError struct {
	Messages []string
	RawBody  string
	Context  map[string]string
}

func (e *APIError) Error() string {
	switch n := len(e.Messages); {
	case n == 1:
		return "Directo API error: " + e.Messages[0]
	case n > 1:
		shown := e.Messages
		suffix := ""
		if n > 3 {
			shown = shown[:3]
			suffix = "..."
		}
		return fmt.Sprintf("Directo API returned %d errors: %s%s", n, strings.Join(shown, "; "), suffix)
	default:
		return "Unknown API error"
	}
}

// MalformedXMLError reports input that is not well-formed XML. Err is the
// underlying parser diagnostic, including its position information.
type MalformedXMLError struct {
	Err     error
	RawBody string
	Context map[string]string
}

func (e *MalformedXMLError) Error() string {
	return fmt.Sprintf("malformed XML: %v", e.Err)
}

func (e *MalformedXMLError) Unwrap() error { return e.Err }

// InvalidFilterError reports a list call with filter keys the resource does
// not allow, or filter values that cannot be rendered as form parameters.
// This is a programmer error; it is raised before anything is sent and is
// never retried.
type InvalidFilterError struct {
	Resource string
	Invalid  []string
	Allowed  []string
	Context  map[string]string
}

func (e *InvalidFilterError) Error() string {
	return fmt.Sprintf("invalid filters [%s] for resource %q, allowed filters are [%s]",
		strings.Join(e.Invalid, ", "), e.Resource, strings.Join(e.Allowed, ", "))
}

// SchemaValidationError reports XML that did not conform to the resource's
// XSD schema. Violations holds one entry per schema violation.
type SchemaValidationError struct {
	SchemaFile string
	Violations []string
	Err        error
	Context    map[string]string
}

func (e *SchemaValidationError) Error() string {
	if len(e.Violations) > 0 {
		return fmt.Sprintf("XML does not conform to schema %s: %s",
			e.SchemaFile, strings.Join(e.Violations, "; "))
	}
	return fmt.Sprintf("XML does not conform to schema %s: %v", e.SchemaFile, e.Err)
}

func (e *SchemaValidationError) Unwrap() error { return e.Err }

// TransportError reports a network-level failure: dial, TLS, timeout or a
// broken response body. The HTTP exchange did not complete.
type TransportError struct {
	URL     string
	Err     error
	Context map[string]string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Timeout reports whether the failure was a timeout.
func (e *TransportError) Timeout() bool {
	t, ok := e.Err.(interface{ Timeout() bool })
	return ok && t.Timeout()
}

// HTTPError reports a completed HTTP exchange with a non-2xx status. Body
// holds up to maxErrorBodyLength bytes of the response body.
type HTTPError struct {
	StatusCode int
	Status     string
	Body       string
	Context    map[string]string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected HTTP status %s", e.Status)
}
