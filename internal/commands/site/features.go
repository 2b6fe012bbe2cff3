package sitecmd

// FeatureGates exposes runtime feature toggles required by site command
// handlers. Callers should supply closures that read from the runtime config
// so handlers stay decoupled from configuration while honouring feature flags.
type FeatureGates struct {
	ContentEnabled   func() bool
	GeneratorEnabled func() bool
}

func (g FeatureGates) contentEnabled() bool {
	if g.ContentEnabled == nil {
		return true
	}
	return g.ContentEnabled()
}

func (g FeatureGates) generatorEnabled() bool {
	if g.GeneratorEnabled == nil {
		return true
	}
	return g.GeneratorEnabled()
}
