package automap

// ConfigValidator rejects mappings that are excluded by configuration or
// whose target does not satisfy the source.
type ConfigValidator struct {
	Config *Config
}

// Validate returns ValidationError when the mapping cannot be registered.
func (v ConfigValidator) Validate(mapping TypeMapping) error {
	if mapping.From == nil || mapping.To == nil {
		return &InvalidArgumentError{Argument: "mapping", Reason: "type is nil"}
	}

	from, to := TypeName(mapping.From), TypeName(mapping.To)
	if !v.Config.IsMappable(mapping.To) {
		return &ValidationError{From: from, To: to, Reason: "target is excluded from automapping"}
	}
	if !v.Config.IsMappable(mapping.From) {
		return &ValidationError{From: from, To: to, Reason: "source is excluded from automapping"}
	}
	if !satisfies(mapping.From, mapping.To) {
		return &ValidationError{From: from, To: to, Reason: "target does not satisfy source"}
	}
	return nil
}
