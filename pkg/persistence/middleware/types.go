package middleware

import "github.com/GNINE11/ProjAutomata-TC/pkg/registry"

// Middleware allows wrapping a registry.Store to add behavior.
type Middleware func(registry.Store) registry.Store
