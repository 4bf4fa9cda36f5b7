package loader

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "usctree.yaml")
	yamlDoc := `
title: 18
sources:
  - year: 2022
    filename: testdata/xml/2022.xml
    format: xml
  - year: 2020
    filename: testdata/xhtml/2020.xhtml
    format: xhtml
`
	if err := os.WriteFile(path, []byte(yamlDoc), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Title != 18 {
		t.Errorf("cfg.Title = %d, want 18", cfg.Title)
	}
	if len(cfg.Sources) != 2 {
		t.Fatalf("len(cfg.Sources) = %d, want 2", len(cfg.Sources))
	}
	if cfg.Sources[0].Format != FormatXML {
		t.Errorf("cfg.Sources[0].Format = %q, want xml", cfg.Sources[0].Format)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}
