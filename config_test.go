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
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	testCases := []struct {
		cfg     Config
		wantErr bool
	}{
		{Config{BaseURL: "https://login.directo.ee/xmlcore/acme/xmlcore.asp", Token: "abcdefgh"}, false},
		{Config{BaseURL: "http://localhost:8080/xmlcore", Token: "abcdefgh"}, false},
		{Config{BaseURL: "", Token: "abcdefgh"}, true},
		{Config{BaseURL: "://bad", Token: "abcdefgh"}, true},
		{Config{BaseURL: "ftp://example.com", Token: "abcdefgh"}, true},
		{Config{BaseURL: "https://", Token: "abcdefgh"}, true},
		{Config{BaseURL: "https://example.com", Token: ""}, true},
		{Config{BaseURL: "https://example.com", Token: "short"}, true},
		{Config{BaseURL: "https://example.com", Token: "with space"}, true},
		{Config{BaseURL: "https://example.com", Token: "with\ttab"}, true},
		{Config{BaseURL: "https://example.com", Token: "abcdefgh", ValidateSchemas: true}, true},
	}
	for i, testCase := range testCases {
		err := testCase.cfg.Validate()
		if (err != nil) != testCase.wantErr {
			t.Errorf("Test %d: Validate() = %v, wantErr %v", i, err, testCase.wantErr)
		}
	}
}

func TestConfigTimeoutDefaults(t *testing.T) {
	var cfg Config
	if got := cfg.dialTimeout(); got != defaultDialTimeout {
		t.Errorf("expected default dial timeout, got %v", got)
	}
	if got := cfg.requestTimeout(); got != defaultRequestTimeout {
		t.Errorf("expected default request timeout, got %v", got)
	}
	cfg = Config{DialTimeout: time.Second, RequestTimeout: time.Minute}
	if got := cfg.dialTimeout(); got != time.Second {
		t.Errorf("expected 1s, got %v", got)
	}
	if got := cfg.requestTimeout(); got != time.Minute {
		t.Errorf("expected 1m, got %v", got)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv(EnvURL, "https://login.directo.ee/xmlcore/acme/xmlcore.asp")
	t.Setenv(EnvToken, "env-token-1234")
	t.Setenv(EnvTimeout, "90s")
	t.Setenv(EnvValidate, "false")

	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Token != "env-token-1234" {
		t.Errorf("token not read from env")
	}
	if cfg.RequestTimeout != 90*time.Second {
		t.Errorf("expected 90s timeout, got %v", cfg.RequestTimeout)
	}

	// Plain seconds are accepted too.
	t.Setenv(EnvTimeout, "45")
	cfg, err = ConfigFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RequestTimeout != 45*time.Second {
		t.Errorf("expected 45s timeout, got %v", cfg.RequestTimeout)
	}

	t.Setenv(EnvTimeout, "soon")
	if _, err := ConfigFromEnv(); err == nil {
		t.Errorf("expected error for bad timeout")
	}

	t.Setenv(EnvTimeout, "")
	t.Setenv(EnvValidate, "maybe")
	if _, err := ConfigFromEnv(); err == nil {
		t.Errorf("expected error for bad validate flag")
	}
}
