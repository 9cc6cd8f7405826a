package main

import (
	"testing"

	"github.com/atomicstack/orgverse/internal/app"
	"github.com/atomicstack/orgverse/internal/config"
)

func TestCollectTTYDetailsIncludesStandardDescriptors(t *testing.T) {
	info := collectTTYDetails()
	if len(info.Probes) != 3 {
		t.Fatalf("expected 3 probe entries, got %d", len(info.Probes))
	}
	expected := []string{"stdin", "stdout", "stderr"}
	for i, name := range expected {
		if info.Probes[i].Name != name {
			t.Fatalf("expected probe %d name %q, got %q", i, name, info.Probes[i].Name)
		}
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			StatsPath:  "stats.json",
			Width:      80,
			Height:     24,
			ShowFooter: true,
			Verbose:    true,
			FPS:        30,
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		Flags: map[string]string{
			"stats":   "stats.json",
			"width":   "80",
			"height":  "24",
			"footer":  "true",
			"verbose": "true",
		},
		Args: []string{"--stats", "stats.json"},
	}

	payload := startupTracePayload(cfg)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flagsValue["stats"] != "stats.json" {
		t.Fatalf("expected stats flag %q, got %v", "stats.json", flagsValue["stats"])
	}
	if flagsValue["width"] != "80" {
		t.Fatalf("expected width 80, got %v", flagsValue["width"])
	}
	if flagsValue["height"] != "24" {
		t.Fatalf("expected height 24, got %v", flagsValue["height"])
	}
	if flagsValue["footer"] != "true" {
		t.Fatalf("expected footer flag true, got %v", flagsValue["footer"])
	}
	if flagsValue["trace"] != true {
		t.Fatalf("expected trace flag true, got %v", flagsValue["trace"])
	}
	if flagsValue["verbose"] != "true" {
		t.Fatalf("expected verbose flag true, got %v", flagsValue["verbose"])
	}
	if flagsValue["logFile"] != "trace.log" {
		t.Fatalf("expected log file trace.log, got %v", flagsValue["logFile"])
	}

	if _, ok := payload["tty"].(ttyDetails); !ok {
		t.Fatalf("expected tty details in payload")
	}
	cfgValue, ok := payload["config"].(config.Config)
	if !ok {
		t.Fatalf("expected config in payload")
	}
	if cfgValue.App.StatsPath != cfg.App.StatsPath || cfgValue.App.Width != cfg.App.Width || cfgValue.App.FPS != cfg.App.FPS {
		t.Fatalf("expected app config %#v, got %#v", cfg.App, cfgValue.App)
	}
}

func TestStartupTracePayloadRedactsToken(t *testing.T) {
	cfg := config.Config{
		Command: config.CommandFetch,
		Fetch:   app.FetchConfig{Org: "acme", Repo: "rocket", Token: "secret"},
		Args:    []string{"fetch", "--token", "secret", "--token=secret", "acme", "rocket"},
	}
	payload := startupTracePayload(cfg)
	cfgValue := payload["config"].(config.Config)
	if cfgValue.Fetch.Token != "<set>" {
		t.Fatalf("expected token redacted in config, got %q", cfgValue.Fetch.Token)
	}
	argv := payload["argv"].([]string)
	for _, arg := range argv {
		if arg == "secret" || arg == "--token=secret" {
			t.Fatalf("expected token redacted in argv, got %v", argv)
		}
	}
	if cfg.Fetch.Token != "secret" || cfg.Args[2] != "secret" {
		t.Fatalf("expected caller config untouched")
	}
}
