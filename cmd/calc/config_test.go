package main

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want *config
		err  bool
	}{
		{"empty", "", &config{}, false},
		{
			"full",
			"format: '%.3f'\nmax_depth: 32\nconsts:\n  g: 9.81\n  c: 299792458\ndefs:\n  - sq(x) = x^2\n  - h = 6.626e-34\n",
			&config{
				Format:   "%.3f",
				MaxDepth: 32,
				Consts:   map[string]float64{"g": 9.81, "c": 299792458},
				Defs:     []string{"sq(x) = x^2", "h = 6.626e-34"},
			},
			false,
		},
		{"unknown", "precision: 64\n", nil, true},
		{"negdepth", "max_depth: -1\n", nil, true},
		{"badtype", "consts:\n  g: fast\n", nil, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := loadConfig(strings.NewReader(c.src))
			if c.err {
				if err == nil {
					t.Errorf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, c.want) {
				t.Errorf("wrong config:\n\twant %+v\n\tgot  %+v", c.want, got)
			}
		})
	}
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "calc.yaml")
	if err := os.WriteFile(name, []byte("format: '%.2f'\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := readConfig(name)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Format != "%.2f" {
		t.Errorf("wrong format: want %%.2f, got %q", cfg.Format)
	}
	if _, err := readConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Errorf("no error reading missing file")
	}
}
