package scripting

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSellValue(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		ctx    SellContext
		want   int64
		wantOK bool
	}{
		{
			name:   "no function falls back",
			src:    "x = 1",
			ctx:    SellContext{Price: 30, Default: 15},
			want:   15,
			wantOK: false,
		},
		{
			name:   "flat bonus",
			src:    "function sell_value(c) return c.default + 10 end",
			ctx:    SellContext{Price: 30, Default: 15},
			want:   25,
			wantOK: true,
		},
		{
			name:   "species aware",
			src:    `function sell_value(c) if c.species == "dolphin" then return c.price end return c.default end`,
			ctx:    SellContext{Species: "dolphin", Price: 150, Level: 2, Default: 125},
			want:   150,
			wantOK: true,
		},
		{
			name:   "feeds and level visible",
			src:    "function sell_value(c) return c.level * 100 + c.feeds end",
			ctx:    SellContext{Level: 3, FeedCount: 9, Default: 1},
			want:   309,
			wantOK: true,
		},
		{
			name:   "negative rejected",
			src:    "function sell_value(c) return -5 end",
			ctx:    SellContext{Default: 15},
			want:   15,
			wantOK: false,
		},
		{
			name:   "non number rejected",
			src:    `function sell_value(c) return "lots" end`,
			ctx:    SellContext{Default: 15},
			want:   15,
			wantOK: false,
		},
		{
			name:   "runtime error rejected",
			src:    "function sell_value(c) error('boom') end",
			ctx:    SellContext{Default: 15},
			want:   15,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewEngineFromString(tt.src)
			if err != nil {
				t.Fatalf("NewEngineFromString: %v", err)
			}
			defer e.Close()

			got, ok := e.SellValue(tt.ctx)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("SellValue = (%d, %v), want (%d, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNilEngineFallsBack(t *testing.T) {
	var e *Engine
	got, ok := e.SellValue(SellContext{Default: 42})
	if got != 42 || ok {
		t.Errorf("got (%d, %v), want (42, false)", got, ok)
	}
}

func TestNewEngineFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "economy.lua")
	if err := os.WriteFile(path, []byte("function sell_value(c) return c.default * 2 end\n"), 0644); err != nil {
		t.Fatal(err)
	}
	e, err := NewEngine(path)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	defer e.Close()

	if got, ok := e.SellValue(SellContext{Default: 15}); got != 30 || !ok {
		t.Errorf("got (%d, %v), want (30, true)", got, ok)
	}
}

func TestNewEngineSyntaxError(t *testing.T) {
	if _, err := NewEngineFromString("function ("); err == nil {
		t.Error("expected syntax error")
	}
}
