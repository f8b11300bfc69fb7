// Copyright 2025 The nodecrypto-go Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/nodecrypto/nodecrypto-go/internal/logging"
)

func TestLoggerWritesAttributes(t *testing.T) {
	var buf bytes.Buffer
	l := logging.New(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	l.With("component", "digest").Debug(context.Background(), "created", "algorithm", "sha256", logging.Redacted("key"))

	out := buf.String()
	for _, want := range []string{"component=digest", "algorithm=sha256", "key=[redacted]", "msg=created"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q does not contain %q", out, want)
		}
	}
}

func TestNewNilUsesDefault(t *testing.T) {
	if l := logging.New(nil); l == nil {
		t.Fatal("logging.New(nil) = nil, want logger")
	}
}
