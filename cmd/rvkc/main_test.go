// Copyright 2026 The rvkc Authors
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


package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/fachref/rvkc/core"
	"github.com/fachref/rvkc/rvk"
)

// testApp returns the real app with exit handling disabled so action
// errors come back from Run instead of terminating the test binary.
func testApp() *cli.App {
	app := newApp()
	app.ExitErrHandler = func(*cli.Context, error) {}
	return app
}

func findCommand(t *testing.T, app *cli.App, name string) *cli.Command {
	t.Helper()
	for _, cmd := range app.Commands {
		if cmd.Name == name {
			return cmd
		}
	}
	t.Fatalf("command %q not found", name)
	return nil
}

func stringFlag(t *testing.T, flags []cli.Flag, name string) *cli.StringFlag {
	t.Helper()
	for _, flag := range flags {
		if f, ok := flag.(*cli.StringFlag); ok && f.Name == name {
			return f
		}
	}
	t.Fatalf("string flag %q not found", name)
	return nil
}

func intFlag(t *testing.T, flags []cli.Flag, name string) *cli.IntFlag {
	t.Helper()
	for _, flag := range flags {
		if f, ok := flag.(*cli.IntFlag); ok && f.Name == name {
			return f
		}
	}
	t.Fatalf("int flag %q not found", name)
	return nil
}

func TestGlobalFlagDefaults(t *testing.T) {
	app := testApp()

	t.Run("log-level defaults to info", func(t *testing.T) {
		assert.Equal(t, "info", stringFlag(t, app.Flags, "log-level").Value)
	})

	t.Run("rvk-url defaults to the public API", func(t *testing.T) {
		assert.Equal(t, rvk.DefaultBaseURL, stringFlag(t, app.Flags, "rvk-url").Value)
	})

	t.Run("rate defaults to the client rate limit", func(t *testing.T) {
		for _, flag := range app.Flags {
			if f, ok := flag.(*cli.Float64Flag); ok && f.Name == "rate" {
				assert.Equal(t, rvk.DefaultRateLimit, f.Value)
				return
			}
		}
		t.Fatal("rate flag not found")
	})

	t.Run("db is not required", func(t *testing.T) {
		assert.False(t, stringFlag(t, app.Flags, "db").Required)
	})
}

func TestClassifyCommandFlags(t *testing.T) {
	cmd := findCommand(t, testApp(), "classify")

	t.Run("max-results has default value of 10", func(t *testing.T) {
		assert.Equal(t, 10, intFlag(t, cmd.Flags, "max-results").Value)
	})

	t.Run("ai-model has a default model", func(t *testing.T) {
		assert.Equal(t, "qwen2.5:3b", stringFlag(t, cmd.Flags, "ai-model").Value)
	})

	t.Run("ai-host has no default", func(t *testing.T) {
		assert.Empty(t, stringFlag(t, cmd.Flags, "ai-host").Value)
	})

	t.Run("timeout has default value of 60s", func(t *testing.T) {
		for _, flag := range cmd.Flags {
			if f, ok := flag.(*cli.DurationFlag); ok && f.Name == "timeout" {
				assert.Equal(t, 60*time.Second, f.Value)
				return
			}
		}
		t.Fatal("timeout flag not found")
	})
}

func TestBatchCommandFlags(t *testing.T) {
	cmd := findCommand(t, testApp(), "batch")

	t.Run("file is required", func(t *testing.T) {
		assert.True(t, stringFlag(t, cmd.Flags, "file").Required)
	})

	t.Run("report-interval has default value of 10", func(t *testing.T) {
		assert.Equal(t, 10, intFlag(t, cmd.Flags, "report-interval").Value)
	})

	t.Run("missing file flag is an error", func(t *testing.T) {
		err := testApp().Run([]string{"rvkc", "batch"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "file")
	})
}

func TestLookupRequiresNotation(t *testing.T) {
	err := testApp().Run([]string{"rvkc", "lookup"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NOTATION")
}

func TestHistoryRequiresDatabase(t *testing.T) {
	err := testApp().Run([]string{"rvkc", "history"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--db")
}

func TestSetupLoggerRejectsUnknownLevel(t *testing.T) {
	err := testApp().Run([]string{"rvkc", "--log-level", "verbose", "lookup", "NR"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestPrintRun(t *testing.T) {
	run := &core.ClassificationRun{
		Title: "Grundlagen der Chemie",
		Concepts: []core.Concept{
			{Text: "Chemie", Kind: core.KindDiscipline},
			{Text: "Chemnitz", Kind: core.KindPlace, Normalized: "Deutschland"},
		},
		Results: []core.ClassificationResult{
			{Notation: "VB 1000", Confidence: 0.85, Path: []string{"Chemie, Pharmazie", "Allgemeine Chemie"}},
		},
	}

	var buf bytes.Buffer
	printRun(&buf, run)

	out := buf.String()
	assert.Contains(t, out, "Title: Grundlagen der Chemie")
	assert.Contains(t, out, "Chemie (discipline)")
	assert.Contains(t, out, "Chemnitz -> Deutschland (place)")
	assert.Contains(t, out, "VB 1000")
	assert.Contains(t, out, "Chemie, Pharmazie / Allgemeine Chemie")
}

func TestPrintRunNoResults(t *testing.T) {
	var buf bytes.Buffer
	printRun(&buf, &core.ClassificationRun{Title: "Unbekanntes Werk"})
	assert.Contains(t, buf.String(), "No classification found.")
}

func TestRunPayloadFormatsID(t *testing.T) {
	run := &core.ClassificationRun{ID: core.ID(0xdeadbeef), Title: "T"}
	payload := runPayload(run)
	assert.Equal(t, "00000000deadbeef", payload.ID)
	assert.Empty(t, payload.Results)
}
