package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tolka.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("TOLKA_TEST_TOKEN", "12345:abcdef")

	path := writeConfig(t, `
version: "1"
modules:
  channel.telegram:
    token: ${TOLKA_TEST_TOKEN}
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	node := cfg.Modules["channel.telegram"]
	var decoded struct {
		Token string `yaml:"token"`
	}
	if err := node.Decode(&decoded); err != nil {
		t.Fatalf("decode module config: %v", err)
	}
	if decoded.Token != "12345:abcdef" {
		t.Errorf("token = %q, want %q", decoded.Token, "12345:abcdef")
	}
}

func TestLoadDefaultValue(t *testing.T) {
	path := writeConfig(t, `
version: "1"
modules:
  gateway.http:
    bind: "0.0.0.0:${TOLKA_TEST_UNSET_PORT:-5000}"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	node := cfg.Modules["gateway.http"]
	var decoded struct {
		Bind string `yaml:"bind"`
	}
	if err := node.Decode(&decoded); err != nil {
		t.Fatalf("decode module config: %v", err)
	}
	if decoded.Bind != "0.0.0.0:5000" {
		t.Errorf("bind = %q, want %q", decoded.Bind, "0.0.0.0:5000")
	}
}

func TestLoadUnresolvedVariable(t *testing.T) {
	path := writeConfig(t, `
version: "1"
modules:
  channel.telegram:
    token: ${TOLKA_TEST_DEFINITELY_UNSET}
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() should fail on unresolved variable")
	}
	if !strings.Contains(err.Error(), "TOLKA_TEST_DEFINITELY_UNSET") {
		t.Errorf("error should name the unresolved variable, got: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Load() should fail for missing file")
	}
}

func TestResolveSortsIDs(t *testing.T) {
	path := writeConfig(t, `
version: "1"
modules:
  translator.engine: {}
  channel.telegram: {}
  provider.openai: {}
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	ids := Resolve(cfg)
	want := []string{"channel.telegram", "provider.openai", "translator.engine"}
	if len(ids) != len(want) {
		t.Fatalf("ids = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
}
