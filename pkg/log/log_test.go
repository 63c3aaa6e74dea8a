// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/buildtemplate/pkg/status"
)

func TestLogger(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		op       func(t *testing.T, logger *Logger)
		wantLogs [][]string
	}{
		{
			name: "log_event",
			op: func(t *testing.T, logger *Logger) {
				logger.LogEvent(context.Background(), status.Event{
					Kind:  status.KindSubstituted,
					Path:  "template/pyproject.toml",
					Count: 2,
				})
			},
			wantLogs: [][]string{
				{"⟳", "template/pyproject.toml", "substituted", "x2"},
			},
		},
		{
			name: "log_stage",
			op: func(t *testing.T, logger *Logger) {
				logger.StartStage(context.Background(), "seed", "template")
				logger.EndStage(context.Background())
			},
			wantLogs: [][]string{
				{"◆", "seed", "•", "template"},
			},
		},
		{
			name: "log_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Warning("warning message")
				logger.Error("error message")
				logger.Success("success message")
			},
			wantLogs: [][]string{
				{"⚠️", "warning", "message"},
				{"❌", "error", "message"},
				{"✅", "success", "message"},
			},
		},
		{
			name: "log_formatted_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Warningf("warning %s", "test")
			},
			wantLogs: [][]string{
				{"⚠️", "warning", "test"},
			},
		},
		{
			name: "log_header",
			op: func(t *testing.T, logger *Logger) {
				logger.Header("building template")
			},
			wantLogs: [][]string{
				{"buildtemplate", "•", "building", "template"},
			},
		},
		{
			name: "log_newline",
			op: func(t *testing.T, logger *Logger) {
				logger.Success("first")
				logger.LogNewline()
				logger.Success("second")
			},
			wantLogs: [][]string{
				{"✅", "first"},
				{},
				{"✅", "second"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := NewWithZerolog(buf, zerolog.Nop())

			tt.op(t, logger)

			output := strings.TrimSpace(buf.String())
			lines := strings.Split(output, "\n")

			require.Equal(t, len(tt.wantLogs), len(lines), "number of log lines should match")
			for i, want := range tt.wantLogs {
				got := strings.Fields(lines[i])
				if len(want) == 0 {
					assert.Empty(t, got, "log line %d should be blank", i)
					continue
				}
				assert.Equal(t, want, got, "log line %d should match", i)
			}
		})
	}
}

func TestLoggerContext(t *testing.T) {
	logger := NewWithZerolog(io.Discard, zerolog.Nop())

	ctx := NewContext(context.Background(), logger)

	got := FromContext(ctx)
	assert.Same(t, logger, got, "logger from context should be the same instance")

	fallback := FromContext(context.Background())
	require.NotNil(t, fallback, "missing logger should fall back to a silent one")
	assert.NotPanics(t, func() {
		fallback.Success("dropped")
	})
}

func TestEndStageWithoutStart(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewWithZerolog(buf, zerolog.Nop())

	logger.EndStage(context.Background())

	assert.Empty(t, buf.String())
}
