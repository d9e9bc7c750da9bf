package automap

import (
	"reflect"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Result describes the outcome of an Automapper run.
type Result struct {
	// Registrations are the bindings added to the container during the run.
	Registrations []Registration
	// Failed holds the mappings that are not bound in the container after the
	// run. A mapping whose binding landed before a later step failed is listed
	// in Registrations instead.
	Failed []TypeMapping
}

// Automapper couples discovery, the registration engine and a tracker.
type Automapper struct {
	cfg    *Config
	engine *Engine
	opts   options
}

// NewAutomapper creates an Automapper driven by cfg. A nil cfg behaves like DefaultConfig.
func NewAutomapper(cfg *Config, opts ...Option) *Automapper {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Automapper{
		cfg:    cfg,
		engine: NewEngineFromConfig(cfg, opts...),
		opts:   newOptions(opts),
	}
}

// Map registers mappings into c and returns the bindings that are new to c.
// Without WithContinueOnError it stops at the first failing mapping; the
// bindings added before the failure are still reported.
func (a *Automapper) Map(c Container, mappings []TypeMapping) (*Result, error) {
	tracker, err := NewRegistrationTracker(c)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	var errs error
	for i, mapping := range mappings {
		if _, err := a.engine.PerformRegistrations(c, []TypeMapping{mapping}); err != nil {
			if !a.opts.continueOnError {
				errs = err
				result.Failed = append(result.Failed, mappings[i:]...)
				break
			}
			a.opts.logger.Warn("skipping mapping", zap.Stringer("mapping", mapping), zap.Error(err))
			result.Failed = append(result.Failed, mapping)
			errs = multierr.Append(errs, err)
		}
	}

	added, err := tracker.NewRegistrations()
	if err != nil {
		return nil, multierr.Append(errs, err)
	}
	result.Registrations = added
	result.Failed = unbound(result.Failed, added)

	a.opts.logger.Info("automapping complete",
		zap.Int("mappings", len(mappings)),
		zap.Int("added", len(added)),
		zap.Int("failed", len(result.Failed)),
	)
	return result, errs
}

func unbound(failed []TypeMapping, added []Registration) []TypeMapping {
	if len(failed) == 0 || len(added) == 0 {
		return failed
	}
	bound := make(map[TypeMapping]struct{}, len(added))
	for _, r := range added {
		bound[TypeMapping{From: r.RegisteredType, To: r.MappedToType}] = struct{}{}
	}
	out := failed[:0]
	for _, m := range failed {
		if _, ok := bound[m]; !ok {
			out = append(out, m)
		}
	}
	return out
}

// MapTypes discovers mappings between interfaces and concretes and registers them into c.
func (a *Automapper) MapTypes(c Container, interfaces, concretes []reflect.Type) (*Result, error) {
	mappings, err := DiscoverMappings(a.cfg, interfaces, concretes)
	if err != nil {
		return nil, err
	}
	return a.Map(c, mappings)
}
