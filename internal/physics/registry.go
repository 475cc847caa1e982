package physics

import (
	"fmt"
	"sort"

	"github.com/rainsdm/atmotraj/internal/aero"
)

// Configurable is implemented by models whose parameters can be set from
// configuration.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// Registry maps force-model names to constructors. The CLI selects a
// variant here at model-construction time.
type Registry struct {
	models map[string]func() aero.ForceModel
}

func NewRegistry() *Registry {
	r := &Registry{models: make(map[string]func() aero.ForceModel)}
	r.models["newtonian"] = func() aero.ForceModel { return NewNewtonian() }
	r.models["machdrag"] = func() aero.ForceModel { return NewMachDrag() }
	return r
}

func (r *Registry) Get(name string) (aero.ForceModel, error) {
	fn, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("unknown force model: %s", name)
	}
	return fn(), nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
