package format

// =============================================================================
// Scale Types
// =============================================================================

// ScaleFamily selects the normalization strategy for a color scale.
type ScaleFamily string

const (
	// ScaleSequential maps values one-directionally across the dataset range.
	ScaleSequential ScaleFamily = "sequential"

	// ScaleDiverging maps values as a signed ratio around a pivot,
	// typically zero. Normalized positions may be negative.
	ScaleDiverging ScaleFamily = "diverging"
)

// Interpolation names the blending strategy between scale stops.
type Interpolation string

// InterpolationLinear is piecewise-linear blending in sRGB component space.
const InterpolationLinear Interpolation = "linear"

// ColorScale describes a piecewise color mapping. Domain must be
// monotonically non-decreasing and Range should have the same length as
// Domain. Caller-supplied scales are not validated: mismatched lengths
// degrade to the nearest edge color in the interpolator rather than
// failing. A scale is treated as immutable once selected as current.
type ColorScale struct {
	Family        ScaleFamily   `json:"family" toml:"family"`
	Domain        []float64     `json:"domain" toml:"domain"`
	Range         []string      `json:"range" toml:"range"`
	Interpolation Interpolation `json:"interpolation,omitempty" toml:"interpolation,omitempty"`
}

// =============================================================================
// Built-in Presets
// =============================================================================

// Built-in color scale names.
const (
	// ScaleProfitLoss is a diverging red -> amber -> green scale for
	// signed values such as gains and losses.
	ScaleProfitLoss = "profit-loss"

	// ScaleBlues is a sequential pale -> saturated blue scale.
	ScaleBlues = "blues"

	// ScalePerformance is a diverging scale tuned for performance deltas.
	ScalePerformance = "performance"

	// ScaleHeat is a four-stop sequential warm scale.
	ScaleHeat = "heat"
)

// builtinScales returns the preset scales in registration order. Each
// engine gets its own copies so one instance cannot mutate another's
// presets through shared slices.
func builtinScales() []ScaleEntry {
	return []ScaleEntry{
		{Name: ScaleProfitLoss, Scale: ColorScale{
			Family:        ScaleDiverging,
			Domain:        []float64{-1, 0, 1},
			Range:         []string{"#e74c3c", "#f39c12", "#2ecc71"},
			Interpolation: InterpolationLinear,
		}},
		{Name: ScaleBlues, Scale: ColorScale{
			Family:        ScaleSequential,
			Domain:        []float64{0, 1},
			Range:         []string{"#eaf2f8", "#2874a6"},
			Interpolation: InterpolationLinear,
		}},
		{Name: ScalePerformance, Scale: ColorScale{
			Family:        ScaleDiverging,
			Domain:        []float64{-1, 0, 1},
			Range:         []string{"#c0392b", "#f4d03f", "#229954"},
			Interpolation: InterpolationLinear,
		}},
		{Name: ScaleHeat, Scale: ColorScale{
			Family:        ScaleSequential,
			Domain:        []float64{0, 0.33, 0.66, 1},
			Range:         []string{"#fef9e7", "#f8c471", "#eb984e", "#ba4a00"},
			Interpolation: InterpolationLinear,
		}},
	}
}

// =============================================================================
// Registry Operations
// =============================================================================

// RegisterScale adds or replaces a named scale in the engine's registry.
// Re-registering a name keeps its original position in export order.
func (e *Engine) RegisterScale(name string, scale ColorScale) {
	e.scales.set(name, scale)
}

// Scale looks up a registered scale by name.
func (e *Engine) Scale(name string) (ColorScale, bool) {
	return e.scales.get(name)
}

// SetColorScale selects the current scale. It accepts a preset name
// (string), a ColorScale, or a *ColorScale. An unknown name clears the
// current scale. Caller-supplied scales are used as-is, without validation.
func (e *Engine) SetColorScale(v any) {
	switch s := v.(type) {
	case string:
		if scale, ok := e.scales.get(s); ok {
			e.current = &scale
		} else {
			e.current = nil
		}
	case ColorScale:
		e.current = &s
	case *ColorScale:
		e.current = s
	case nil:
		e.current = nil
	}
}

// CurrentScale returns the scale used to compute item colors, if one is set.
func (e *Engine) CurrentScale() (ColorScale, bool) {
	if e.current == nil {
		return ColorScale{}, false
	}
	return *e.current, true
}
