package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/orgb-protocol/orgb-go/pkg/log"
	"github.com/orgb-protocol/orgb-go/pkg/wire"
)

func createTestLogFile(t *testing.T, events []log.Event) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.orlog")

	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()

	return path
}

func TestExportToJSONL(t *testing.T) {
	ts := time.Date(2026, 2, 10, 10, 15, 32, 123456000, time.UTC)
	events := []log.Event{
		{
			Timestamp:    ts,
			ConnectionID: "abc12345",
			Direction:    log.DirectionOut,
			Layer:        log.LayerWire,
			Category:     log.CategoryMessage,
			Message: &log.MessageEvent{
				Tag:     wire.MessageTypeRequestControllerCount,
				Summary: "",
			},
		},
		{
			Timestamp:    ts.Add(time.Second),
			ConnectionID: "abc12345",
			Direction:    log.DirectionIn,
			Layer:        log.LayerWire,
			Category:     log.CategoryMessage,
			Message: &log.MessageEvent{
				Tag:      wire.MessageTypeRequestControllerCount,
				BodySize: 4,
				Summary:  "count=3",
			},
		},
	}

	path := createTestLogFile(t, events)

	outPath := filepath.Join(t.TempDir(), "out.jsonl")
	err := RunExport(path, "jsonl", outPath)
	if err != nil {
		t.Fatalf("RunExport failed: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Errorf("expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "abc12345") {
		t.Errorf("expected connection ID in first line, got: %s", lines[0])
	}
	if !strings.Contains(lines[1], "count=3") {
		t.Errorf("expected summary in second line, got: %s", lines[1])
	}
}

func TestExportToCSV(t *testing.T) {
	ts := time.Date(2026, 2, 10, 10, 15, 32, 0, time.UTC)
	events := []log.Event{
		{
			Timestamp:    ts,
			ConnectionID: "conn-1",
			Direction:    log.DirectionOut,
			Layer:        log.LayerWire,
			Category:     log.CategoryMessage,
			RemoteAddr:   "127.0.0.1:6742",
			Message: &log.MessageEvent{
				Tag:         wire.MessageTypeUpdateLEDs,
				DeviceIndex: 2,
				BodySize:    38,
				Summary:     "leds=8",
			},
		},
		{
			Timestamp:    ts.Add(time.Second),
			ConnectionID: "conn-1",
			Direction:    log.DirectionOut,
			Layer:        log.LayerTransport,
			Category:     log.CategoryMessage,
			Frame:        &log.FrameEvent{Size: 54},
		},
	}

	path := createTestLogFile(t, events)

	outPath := filepath.Join(t.TempDir(), "out.csv")
	err := RunExport(path, "csv", outPath)
	if err != nil {
		t.Fatalf("RunExport failed: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 { // header + 2 rows
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "timestamp,connection_id,direction") {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if !strings.Contains(lines[1], "RGBCONTROLLER_UPDATELEDS") {
		t.Errorf("expected message tag in row, got: %s", lines[1])
	}
	if !strings.Contains(lines[1], "leds=8") {
		t.Errorf("expected summary in row, got: %s", lines[1])
	}
	if !strings.Contains(lines[2], "frame") {
		t.Errorf("expected frame row, got: %s", lines[2])
	}
}

func TestExportUnknownFormat(t *testing.T) {
	path := createTestLogFile(t, []log.Event{
		{Timestamp: time.Now(), Category: log.CategoryMessage},
	})

	err := RunExport(path, "xml", "")
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
	if !strings.Contains(err.Error(), "unknown format") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestExportMissingFile(t *testing.T) {
	err := RunExport(filepath.Join(t.TempDir(), "missing.orlog"), "jsonl", "")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
