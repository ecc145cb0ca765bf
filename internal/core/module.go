// Package core provides the module system foundation for tolka.
package core

// ModuleID uniquely identifies a module, namespaced by dots
// (e.g. "channel.telegram", "provider.openai").
type ModuleID string

// Namespace returns the part of the ID before the first dot,
// or the whole ID if it contains no dot.
func (id ModuleID) Namespace() string {
	for i := 0; i < len(id); i++ {
		if id[i] == '.' {
			return string(id[:i])
		}
	}
	return string(id)
}

// Module is the minimal interface every tolka module implements.
// Lifecycle behaviour is added through the optional interfaces in
// lifecycle.go.
type Module interface {
	ModuleInfo() ModuleInfo
}

// ModuleInfo describes a module to the registry.
type ModuleInfo struct {
	// ID is the unique module identifier.
	ID ModuleID

	// New returns a fresh, unconfigured instance of the module.
	New func() Module
}
