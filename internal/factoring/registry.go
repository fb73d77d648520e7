package factoring

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// Builder constructs a bare algorithm instance from a configuration.
// Instrumentation is applied by the factory, not the builder.
type Builder func(cfg Config) Algorithm

// Factory is an interface for creating Algorithm instances by name.
// It allows flexible instantiation and registration, enabling dependency
// injection and easier testing.
type Factory interface {
	// Create builds a new, instrumented Algorithm instance by name.
	// Returns an error if the name is not registered or cfg is invalid.
	Create(name string, cfg Config) (Algorithm, error)

	// List returns a sorted list of registered algorithm names.
	List() []string

	// Register adds a new algorithm type to the factory.
	Register(name string, builder Builder) error

	// Has checks whether an algorithm with the given name is registered.
	Has(name string) bool
}

// DefaultFactory is the default implementation of Factory. It maintains a
// thread-safe registry of algorithm builders.
type DefaultFactory struct {
	mu       sync.RWMutex
	builders map[string]Builder
}

// NewDefaultFactory creates a DefaultFactory with the standard algorithm
// implementations pre-registered.
//
// Pre-registered algorithms:
//   - "classical": trial division + Pollard's rho baseline
//   - "shor": period-finding controller over the simulator oracle
//
// Returns:
//   - *DefaultFactory: A new factory with default algorithms registered.
func NewDefaultFactory() *DefaultFactory {
	f := &DefaultFactory{builders: make(map[string]Builder)}

	_ = f.Register("classical", func(cfg Config) Algorithm {
		return NewClassical(cfg)
	})
	_ = f.Register("shor", func(cfg Config) Algorithm {
		return NewShor(cfg, NewSimulatorOracle(time.Now().UnixNano()))
	})

	return f
}

// Register adds a new algorithm type to the factory. If an algorithm with
// the same name already exists, it is replaced.
//
// Parameters:
//   - name: The unique identifier for the algorithm type.
//   - builder: A function constructing a bare Algorithm from a Config.
func (f *DefaultFactory) Register(name string, builder Builder) error {
	if builder == nil {
		return fmt.Errorf("factoring: nil builder for algorithm %q", name)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.builders[name] = builder
	return nil
}

// Create builds a new Algorithm instance by name, validates its
// configuration, and wraps it with metrics/tracing instrumentation.
//
// Parameters:
//   - name: The registered algorithm name.
//   - cfg: The algorithm configuration; zero fields take defaults.
//
// Returns:
//   - Algorithm: The instrumented algorithm instance.
//   - error: An error if the name is unknown or cfg is invalid.
func (f *DefaultFactory) Create(name string, cfg Config) (Algorithm, error) {
	f.mu.RLock()
	builder, ok := f.builders[name]
	f.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown algorithm: %s", name)
	}
	cfg = normalizeConfig(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return NewInstrumented(builder(cfg)), nil
}

// List returns a sorted list of all registered algorithm names.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	names := make([]string, 0, len(f.builders))
	for name := range f.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has checks if an algorithm with the given name is registered.
func (f *DefaultFactory) Has(name string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, exists := f.builders[name]
	return exists
}

// MustCreate is like Create but panics on failure. This is useful in
// initialization code where a missing algorithm is a programming error.
func (f *DefaultFactory) MustCreate(name string, cfg Config) Algorithm {
	alg, err := f.Create(name, cfg)
	if err != nil {
		panic(fmt.Sprintf("factoring: required algorithm not available: %v", err))
	}
	return alg
}

// globalFactory is the default global factory instance.
var globalFactory = NewDefaultFactory()

// GlobalFactory returns the global factory instance. This is a convenience
// for applications that don't need multiple factory instances.
func GlobalFactory() *DefaultFactory {
	return globalFactory
}

// RegisterAlgorithm registers an algorithm in the global factory.
func RegisterAlgorithm(name string, builder Builder) error {
	return globalFactory.Register(name, builder)
}
