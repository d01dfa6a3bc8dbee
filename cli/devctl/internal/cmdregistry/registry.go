package cmdregistry

import (
	"fmt"
	"strings"
)

// InternalPrefix marks helper tasks that stay invocable but are not listed.
const InternalPrefix = "_"

// Handler executes a task given the shared context.
type Handler func(*Context) error

// Descriptor is the listing entry recorded for each registered task.
type Descriptor struct {
	Name     string
	Summary  string
	Internal bool
}

// Registry maps task names to handlers. It is filled once at startup and
// sealed before dispatch.
type Registry struct {
	order    []Descriptor
	handlers map[string]Handler
	sealed   bool
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register adds a task. It panics on an empty or duplicate name, a nil
// handler, or a sealed registry; all of these are programming errors.
func (r *Registry) Register(name, summary string, h Handler) {
	if r.sealed {
		panic(fmt.Sprintf("task %s registered after seal", name))
	}
	if strings.TrimSpace(name) == "" {
		panic("task name must not be empty")
	}
	if h == nil {
		panic(fmt.Sprintf("task %s has nil handler", name))
	}
	if _, exists := r.handlers[name]; exists {
		panic(fmt.Sprintf("task %s already registered", name))
	}
	r.handlers[name] = h
	r.order = append(r.order, Descriptor{
		Name:     name,
		Summary:  summary,
		Internal: strings.HasPrefix(name, InternalPrefix),
	})
}

// Seal freezes the table.
func (r *Registry) Seal() { r.sealed = true }

// Sealed reports whether Seal was called.
func (r *Registry) Sealed() bool { return r.sealed }

// Lookup returns the handler for an exact name match.
func (r *Registry) Lookup(name string) (Handler, bool) {
	h, ok := r.handlers[name]
	return h, ok
}

// Tasks returns every descriptor in registration order.
func (r *Registry) Tasks() []Descriptor {
	return append([]Descriptor(nil), r.order...)
}

// Public returns the non-internal descriptors in registration order.
func (r *Registry) Public() []Descriptor {
	out := make([]Descriptor, 0, len(r.order))
	for _, d := range r.order {
		if !d.Internal {
			out = append(out, d)
		}
	}
	return out
}

// UnknownTaskError reports a task name missing from the registry.
type UnknownTaskError struct {
	Name string
}

func (e *UnknownTaskError) Error() string { return "unknown task: " + e.Name }

// ExitCode mirrors a shell's "command not found".
func (e *UnknownTaskError) ExitCode() int { return 127 }
