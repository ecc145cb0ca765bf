package core

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"gopkg.in/yaml.v3"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeModule records lifecycle calls in order.
type fakeModule struct {
	id    ModuleID
	calls *[]string
	fail  string // lifecycle step that should fail, if any
}

func (f *fakeModule) ModuleInfo() ModuleInfo {
	return ModuleInfo{ID: f.id, New: func() Module { return f }}
}

func (f *fakeModule) record(step string) error {
	*f.calls = append(*f.calls, string(f.id)+":"+step)
	if f.fail == step {
		return errTest
	}
	return nil
}

func (f *fakeModule) Configure(_ *yaml.Node) error  { return f.record("configure") }
func (f *fakeModule) Provision(_ *AppContext) error { return f.record("provision") }
func (f *fakeModule) Validate() error               { return f.record("validate") }
func (f *fakeModule) Start() error                  { return f.record("start") }
func (f *fakeModule) Stop(_ context.Context) error  { return f.record("stop") }

var errTest = errTestType{}

type errTestType struct{}

func (errTestType) Error() string { return "test failure" }

func TestRegisterModuleDuplicatePanics(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	var calls []string
	RegisterModule(&fakeModule{id: "test.a", calls: &calls})

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate registration")
		}
	}()
	RegisterModule(&fakeModule{id: "test.a", calls: &calls})
}

func TestLoadModuleLifecycleOrder(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	var calls []string
	RegisterModule(&fakeModule{id: "test.a", calls: &calls})

	ctx := NewAppContext(discardLogger(), t.TempDir())
	ctx = ctx.WithModuleConfigs(map[string]yaml.Node{"test.a": {}})

	if _, err := ctx.LoadModule("test.a"); err != nil {
		t.Fatalf("LoadModule() error: %v", err)
	}

	want := []string{"test.a:configure", "test.a:provision", "test.a:validate"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("calls[%d] = %q, want %q", i, calls[i], want[i])
		}
	}
}

func TestLoadModuleUnknown(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	ctx := NewAppContext(discardLogger(), t.TempDir())
	if _, err := ctx.LoadModule("does.not.exist"); err == nil {
		t.Fatal("LoadModule() should error for unknown module")
	}
}

func TestAppStartStopOrder(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	var calls []string
	RegisterModule(&fakeModule{id: "test.a", calls: &calls})
	RegisterModule(&fakeModule{id: "test.b", calls: &calls})

	ctx := NewAppContext(discardLogger(), t.TempDir())
	app := NewApp(ctx)
	if err := app.LoadModules([]string{"test.a", "test.b"}); err != nil {
		t.Fatalf("LoadModules() error: %v", err)
	}

	calls = calls[:0]
	if err := app.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	app.Stop()

	want := []string{"test.a:start", "test.b:start", "test.b:stop", "test.a:stop"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("calls[%d] = %q, want %q", i, calls[i], want[i])
		}
	}
}

func TestAppStartFailureRollsBack(t *testing.T) {
	resetRegistry()
	defer resetRegistry()

	var calls []string
	RegisterModule(&fakeModule{id: "test.a", calls: &calls})
	RegisterModule(&fakeModule{id: "test.b", calls: &calls, fail: "start"})

	ctx := NewAppContext(discardLogger(), t.TempDir())
	app := NewApp(ctx)
	if err := app.LoadModules([]string{"test.a", "test.b"}); err != nil {
		t.Fatalf("LoadModules() error: %v", err)
	}

	calls = calls[:0]
	if err := app.Start(); err == nil {
		t.Fatal("Start() should propagate module failure")
	}

	want := []string{"test.a:start", "test.b:start", "test.a:stop"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("calls[%d] = %q, want %q", i, calls[i], want[i])
		}
	}
}

func TestServiceRegistrySharedAcrossScopes(t *testing.T) {
	ctx := NewAppContext(discardLogger(), t.TempDir())

	scoped := ctx.ForModule("test.a")
	scoped.RegisterService("test.value", 42)

	svc, ok := ctx.Service("test.value")
	if !ok {
		t.Fatal("service registered in module scope should be visible globally")
	}
	if svc.(int) != 42 {
		t.Errorf("service = %v, want 42", svc)
	}

	if _, ok := ctx.Service("missing"); ok {
		t.Error("unregistered service should not be found")
	}
}

func TestModuleIDNamespace(t *testing.T) {
	tests := []struct {
		id   ModuleID
		want string
	}{
		{"channel.telegram", "channel"},
		{"provider.openai", "provider"},
		{"gateway", "gateway"},
	}
	for _, tc := range tests {
		if got := tc.id.Namespace(); got != tc.want {
			t.Errorf("Namespace(%q) = %q, want %q", tc.id, got, tc.want)
		}
	}
}
