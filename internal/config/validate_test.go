package config

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestValidateVersionRequired(t *testing.T) {
	cfg := &Config{Modules: map[string]yaml.Node{}}
	err := Validate(cfg)
	if err == nil {
		t.Fatal("Validate() should fail without version")
	}
	if !strings.Contains(err.Error(), "version") {
		t.Errorf("error should mention version, got: %v", err)
	}
}

func TestValidateUnsupportedVersion(t *testing.T) {
	cfg := &Config{Version: "2"}
	if err := Validate(cfg); err == nil {
		t.Fatal("Validate() should reject version 2")
	}
}

func TestValidateNoModules(t *testing.T) {
	cfg := &Config{Version: "1"}
	if err := Validate(cfg); err == nil {
		t.Fatal("Validate() should require at least one module")
	}
}

func TestValidateUnknownModule(t *testing.T) {
	cfg := &Config{
		Version: "1",
		Modules: map[string]yaml.Node{"no.such.module": {}},
	}
	err := Validate(cfg)
	if err == nil {
		t.Fatal("Validate() should reject unknown module IDs")
	}
	if !strings.Contains(err.Error(), "no.such.module") {
		t.Errorf("error should name the unknown module, got: %v", err)
	}
}
