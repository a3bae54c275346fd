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

// Package logger is the console logger for the SDK's command-line tooling.
// The library itself stays silent; request diagnostics travel in the
// context as a ReqInfo and are printed only when something goes wrong or
// when the caller asks.
package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

var (
	mu     sync.Mutex
	output io.Writer = os.Stderr
	quiet  bool
)

var (
	infoPrefix  = color.New(color.FgGreen, color.Bold).SprintFunc()
	errorPrefix = color.New(color.FgRed, color.Bold).SprintFunc()
	dimText     = color.New(color.Faint).SprintFunc()
)

// SetOutput redirects all log output, for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// EnableQuiet suppresses Info output; errors still print.
func EnableQuiet() {
	mu.Lock()
	defer mu.Unlock()
	quiet = true
}

// Info logs an informational message.
func Info(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if quiet {
		return
	}
	fmt.Fprintf(output, "%s %s\n", infoPrefix("INFO:"), fmt.Sprintf(format, args...))
}

// Error logs an error message.
func Error(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintf(output, "%s %s\n", errorPrefix("ERROR:"), fmt.Sprintf(format, args...))
}

// LogIf logs err unless it is nil, with the ReqInfo from ctx appended when
// present.
func LogIf(ctx context.Context, err error) {
	if err == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	line := fmt.Sprintf("%s %v", errorPrefix("ERROR:"), err)
	if reqInfo := GetReqInfo(ctx); reqInfo != nil {
		line += " " + dimText("("+reqInfo.String()+")")
	}
	fmt.Fprintln(output, line)
}

// FatalIf logs err and exits unless err is nil.
func FatalIf(ctx context.Context, err error) {
	if err == nil {
		return
	}
	LogIf(ctx, err)
	os.Exit(1)
}
