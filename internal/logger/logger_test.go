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

package logger

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"
)

func TestLogIf(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	LogIf(context.Background(), nil)
	if buf.Len() != 0 {
		t.Errorf("nil error should not log, got %q", buf.String())
	}

	ctx := SetReqInfo(context.Background(), NewReqInfo("host", "item", "List", "req-9"))
	LogIf(ctx, errors.New("boom"))
	out := buf.String()
	if !strings.Contains(out, "boom") {
		t.Errorf("error text missing: %q", out)
	}
	if !strings.Contains(out, "requestId=req-9") {
		t.Errorf("request info missing: %q", out)
	}
}

func TestInfoError(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	Info("fetched %d records", 7)
	if !strings.Contains(buf.String(), "fetched 7 records") {
		t.Errorf("info output missing: %q", buf.String())
	}
	buf.Reset()
	Error("failed: %v", errors.New("boom"))
	if !strings.Contains(buf.String(), "failed: boom") {
		t.Errorf("error output missing: %q", buf.String())
	}
}
