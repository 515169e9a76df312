package schedule

import (
	"os"
	"path/filepath"
	"testing"
)

func writeVenueFile(t *testing.T, dir, key, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, key+".yml"), []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write venue file: %v", err)
	}
}

func TestVenueCache_Run_LoadsConfigs(t *testing.T) {
	dir := t.TempDir()
	writeVenueFile(t, dir, "arena", `
id: "abc-123"
name: "Арена"
settings:
  enabled: true
windows:
  weekday:
    from: "19:00"
    to: "22:00"
`)

	cache := NewVenueCache(dir)
	if err := cache.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if cache.GetConfigCount() != 1 {
		t.Fatalf("Expected 1 config, got %d", cache.GetConfigCount())
	}

	venueConfig, err := cache.GetConfig("arena")
	if err != nil {
		t.Fatalf("GetConfig failed: %v", err)
	}

	if venueConfig.Key != "arena" {
		t.Errorf("Expected key 'arena', got %q", venueConfig.Key)
	}
	if venueConfig.ID != "abc-123" {
		t.Errorf("Expected id 'abc-123', got %q", venueConfig.ID)
	}
	if venueConfig.Name != "Арена" {
		t.Errorf("Expected name 'Арена', got %q", venueConfig.Name)
	}

	weekday := venueConfig.WindowFor(0)
	if weekday.FromMinutes != 19*60 || weekday.ToMinutes != 22*60 {
		t.Errorf("Expected weekday window 1140-1320, got %d-%d", weekday.FromMinutes, weekday.ToMinutes)
	}
}

func TestVenueCache_DefaultWindows(t *testing.T) {
	dir := t.TempDir()
	writeVenueFile(t, dir, "arena", `
id: "abc-123"
name: "Арена"
settings:
  enabled: true
`)

	cache := NewVenueCache(dir)
	if err := cache.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	venueConfig, err := cache.GetConfig("arena")
	if err != nil {
		t.Fatalf("GetConfig failed: %v", err)
	}

	weekday := venueConfig.WindowFor(4)
	if weekday.FromMinutes != 18*60+30 || weekday.ToMinutes != 22*60+30 {
		t.Errorf("Expected default weekday window 1110-1350, got %d-%d", weekday.FromMinutes, weekday.ToMinutes)
	}

	weekend := venueConfig.WindowFor(5)
	if weekend.FromMinutes != 8*60+30 || weekend.ToMinutes != 21*60+30 {
		t.Errorf("Expected default weekend window 510-1290, got %d-%d", weekend.FromMinutes, weekend.ToMinutes)
	}
}

func TestVenueCache_RejectsInvalidConfigs(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"missing id", "name: \"Арена\"\n"},
		{"missing name", "id: \"abc\"\n"},
		{"bad clock", "id: \"abc\"\nname: \"Арена\"\nwindows:\n  weekday:\n    from: \"25:00\"\n    to: \"26:00\"\n"},
		{"inverted window", "id: \"abc\"\nname: \"Арена\"\nwindows:\n  weekday:\n    from: \"20:00\"\n    to: \"19:00\"\n"},
		{"not yaml", "{{{{\n"},
	}

	for _, tc := range cases {
		dir := t.TempDir()
		writeVenueFile(t, dir, "bad", tc.content)

		cache := NewVenueCache(dir)
		if _, err := cache.LoadConfig("bad"); err == nil {
			t.Errorf("%s: expected LoadConfig to fail", tc.name)
		}
	}
}

func TestVenueCache_GetEnabledConfigs(t *testing.T) {
	dir := t.TempDir()
	writeVenueFile(t, dir, "open", "id: \"a\"\nname: \"Open\"\nsettings:\n  enabled: true\n")
	writeVenueFile(t, dir, "closed", "id: \"b\"\nname: \"Closed\"\nsettings:\n  enabled: false\n")

	cache := NewVenueCache(dir)
	if err := cache.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	enabled := cache.GetEnabledConfigs()
	if len(enabled) != 1 {
		t.Fatalf("Expected 1 enabled config, got %d", len(enabled))
	}
	if _, ok := enabled["open"]; !ok {
		t.Error("Expected 'open' venue in enabled configs")
	}
}

func TestVenueCache_MissingDirectory(t *testing.T) {
	cache := NewVenueCache(filepath.Join(t.TempDir(), "does-not-exist"))

	if err := cache.Run(); err != nil {
		t.Errorf("Expected missing directory to be tolerated, got %v", err)
	}
	if cache.GetConfigCount() != 0 {
		t.Errorf("Expected 0 configs, got %d", cache.GetConfigCount())
	}
}

func TestVenueCache_GetConfigUnknownKey(t *testing.T) {
	cache := NewVenueCache(t.TempDir())

	if _, err := cache.GetConfig("nope"); err == nil {
		t.Error("Expected error for unknown venue key")
	}
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		value    string
		expected int
		ok       bool
	}{
		{"18:30", 1110, true},
		{"00:00", 0, true},
		{"23:59", 1439, true},
		{"24:00", 0, false},
		{"18:60", 0, false},
		{"1830", 0, false},
		{"", 0, false},
	}

	for _, tc := range cases {
		got, err := parseClock(tc.value)
		if tc.ok && (err != nil || got != tc.expected) {
			t.Errorf("parseClock(%q) = %d, %v; expected %d", tc.value, got, err, tc.expected)
		}
		if !tc.ok && err == nil {
			t.Errorf("parseClock(%q) should fail", tc.value)
		}
	}
}
