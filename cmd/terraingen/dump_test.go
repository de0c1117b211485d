package main

import (
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/ironvale/internal/engine/terrain"
)

func testTerrain() *terrain.Terrain {
	cfg := terrain.DefaultConfig()
	cfg.Width, cfg.Height = 20, 20
	cfg.WidthSegments, cfg.HeightSegments = 8, 8
	t := terrain.New(cfg, terrain.DefaultTreeConfig())
	t.Generate(0)
	return t
}

func TestBuildDump(t *testing.T) {
	tr := testTerrain()

	tests := []struct {
		every    int
		wantRows int
		wantCols int
	}{
		{0, 0, 0},
		{1, 9, 9},
		{4, 3, 3},
		{3, 3, 3},
	}
	for _, tt := range tests {
		d := buildDump(tr, tt.every)
		if len(d.Trees) != len(tr.Trees()) {
			t.Errorf("every=%d: trees = %d, want %d", tt.every, len(d.Trees), len(tr.Trees()))
		}
		if tt.every == 0 {
			if d.Heights != nil {
				t.Errorf("every=0: heights = %v, want nil", d.Heights)
			}
			continue
		}
		if len(d.Heights.Rows) != tt.wantRows {
			t.Fatalf("every=%d: rows = %d, want %d", tt.every, len(d.Heights.Rows), tt.wantRows)
		}
		if len(d.Heights.Rows[0]) != tt.wantCols {
			t.Errorf("every=%d: cols = %d, want %d", tt.every, len(d.Heights.Rows[0]), tt.wantCols)
		}
	}
}

func TestBuildDumpEncodes(t *testing.T) {
	d := buildDump(testTerrain(), 4)

	data, err := yaml.Marshal(d)
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}
	var back dump
	if err := yaml.Unmarshal(data, &back); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	if back.Seed != 42 || back.Width != 20 {
		t.Errorf("decoded seed %d width %v, want 42 and 20", back.Seed, back.Width)
	}
}

func TestParseXZ(t *testing.T) {
	tests := []struct {
		in      string
		x, z    float32
		wantErr bool
	}{
		{"1,2", 1, 2, false},
		{" -40.5 , 12 ", -40.5, 12, false},
		{"1", 0, 0, true},
		{"1,2,3", 0, 0, true},
		{"a,2", 0, 0, true},
		{"1,b", 0, 0, true},
	}
	for _, tt := range tests {
		p, err := parseXZ(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseXZ(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && (p.X != tt.x || p.Z != tt.z || p.Y != 0) {
			t.Errorf("parseXZ(%q) = %v, want (%v, 0, %v)", tt.in, p, tt.x, tt.z)
		}
	}
}
