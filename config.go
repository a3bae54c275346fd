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
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"time"
	"unicode"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvURL       = "DIRECTO_URL"
	EnvToken     = "DIRECTO_TOKEN"
	EnvTimeout   = "DIRECTO_TIMEOUT"
	EnvValidate  = "DIRECTO_VALIDATE"
	EnvSchemaDir = "DIRECTO_SCHEMA_DIR"
)

// Config is the immutable client configuration, passed by value into New.
// There is no global instance; every collaborator receives the value it was
// constructed with and nothing can change it afterwards.
type Config struct {
	// BaseURL is the XMLCore endpoint, e.g.
	// "https://login.directo.ee/xmlcore/acme/xmlcore.asp".
	BaseURL string

	// Token authenticates every request. It is attached as a form
	// parameter by the transport and never appears in logs, traces or
	// error contexts.
	Token string

	// DialTimeout bounds connection establishment; RequestTimeout bounds
	// the whole request including reading the body. Zero means the
	// package defaults.
	DialTimeout    time.Duration
	RequestTimeout time.Duration

	// ValidateSchemas enables XSD validation of request and response
	// bodies for resources that define schema files. SchemaFS is where
	// the .xsd files are read from; required when validation is on.
	ValidateSchemas bool
	SchemaFS        fs.FS

	// KeepWhitespace and KeepEmptyValues are the decoder toggles: by
	// default values are trimmed and empty values decode as nil.
	KeepWhitespace  bool
	KeepEmptyValues bool
}

// Validate checks the configuration for the mistakes that otherwise surface
// as confusing mid-request failures.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL %q: %v", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid base URL %q: scheme must be http or https", c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid base URL %q: missing host", c.BaseURL)
	}
	if !isTokenValid(c.Token) {
		return fmt.Errorf("invalid API token: must be at least %d printable characters", minTokenLength)
	}
	if c.ValidateSchemas && c.SchemaFS == nil {
		return fmt.Errorf("schema validation enabled but no schema filesystem configured")
	}
	return nil
}

// isTokenValid checks the token's minimal shape: long enough and free of
// whitespace and control characters.
func isTokenValid(token string) bool {
	if len(token) < minTokenLength {
		return false
	}
	for _, r := range token {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return false
		}
	}
	return true
}

func (c Config) dialTimeout() time.Duration {
	if c.DialTimeout > 0 {
		return c.DialTimeout
	}
	return defaultDialTimeout
}

func (c Config) requestTimeout() time.Duration {
	if c.RequestTimeout > 0 {
		return c.RequestTimeout
	}
	return defaultRequestTimeout
}

// ConfigFromEnv builds a Config from the DIRECTO_* environment variables.
// DIRECTO_TIMEOUT takes a Go duration ("90s", "2m") or a plain number of
// seconds. DIRECTO_VALIDATE enables schema validation against the .xsd
// files under DIRECTO_SCHEMA_DIR.
func ConfigFromEnv() (Config, error) {
	cfg := Config{
		BaseURL: os.Getenv(EnvURL),
		Token:   os.Getenv(EnvToken),
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			secs, serr := strconv.Atoi(v)
			if serr != nil {
				return Config{}, fmt.Errorf("invalid %s value %q: %v", EnvTimeout, v, err)
			}
			d = time.Duration(secs) * time.Second
		}
		cfg.RequestTimeout = d
	}
	if v := os.Getenv(EnvValidate); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s value %q: %v", EnvValidate, v, err)
		}
		cfg.ValidateSchemas = enabled
	}
	if dir := os.Getenv(EnvSchemaDir); dir != "" {
		cfg.SchemaFS = os.DirFS(dir)
	}
	return cfg, cfg.Validate()
}
