package engine

import (
	"log"

	"github.com/ningg/checkstyle/pkg/checks"
	"github.com/ningg/checkstyle/pkg/checks/modifier"
)

// DefaultRegistry returns the registry with every built-in check.
func DefaultRegistry() *checks.Registry {
	registry := checks.NewRegistry()

	factories := []checks.Factory{
		func() checks.Check { return modifier.NewClassMemberImpliedModifier() },
		func() checks.Check { return modifier.NewInterfaceMemberImpliedModifier() },
		func() checks.Check { return modifier.NewModifierOrder() },
	}

	for _, factory := range factories {
		if err := registry.Register(factory); err != nil {
			log.Panicf("register built-in check: %v", err)
		}
	}

	return registry
}
