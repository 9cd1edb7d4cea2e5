package schema

// FeatureSpec declares one model input: its identity, unit, inclusive bounds
// and the typical value the UI uses to pre-fill the form. Typical values are
// never substituted server-side; a request must carry every required feature.
type FeatureSpec struct {
	Key      string  `json:"key"`
	Name     string  `json:"name"`
	Unit     string  `json:"unit"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Typical  float64 `json:"typical"`
	Required bool    `json:"required"`
}

// featureSpecs is the canonical KOI feature catalog, defined once at process
// start and immutable thereafter. Bounds mirror the ranges the models were
// trained on.
var featureSpecs = []FeatureSpec{
	{Key: "koi_prad", Name: "Planetary Radius", Unit: "Earth radii", Min: 0.1, Max: 30, Typical: 2.0, Required: true},
	{Key: "koi_depth", Name: "Transit Depth", Unit: "ppm", Min: 0, Max: 10000, Typical: 100, Required: true},
	{Key: "koi_period", Name: "Orbital Period", Unit: "days", Min: 0.1, Max: 1000, Typical: 50, Required: true},
	{Key: "koi_srad", Name: "Stellar Radius", Unit: "Solar radii", Min: 0.1, Max: 10, Typical: 1.0, Required: true},
	{Key: "koi_steff", Name: "Stellar Effective Temperature", Unit: "Kelvin", Min: 2500, Max: 10000, Typical: 5778, Required: true},
	{Key: "koi_smass", Name: "Stellar Mass", Unit: "Solar masses", Min: 0.1, Max: 5, Typical: 1.0, Required: true},
	{Key: "koi_slogg", Name: "Stellar Surface Gravity", Unit: "log(g)", Min: 1, Max: 5, Typical: 4.5, Required: true},
	{Key: "koi_lum", Name: "Stellar Luminosity", Unit: "log(L)", Min: -3, Max: 5, Typical: 0, Required: true},
	{Key: "koi_impact", Name: "Impact Parameter", Unit: "", Min: 0, Max: 2, Typical: 0.5, Required: true},
	{Key: "koi_duration", Name: "Transit Duration", Unit: "hours", Min: 0.1, Max: 50, Typical: 3, Required: true},
	{Key: "koi_dor", Name: "Planet-Star Distance Ratio", Unit: "", Min: 1, Max: 200, Typical: 20, Required: true},
	{Key: "koi_model_snr", Name: "Model Signal-to-Noise Ratio", Unit: "", Min: 0, Max: 500, Typical: 20, Required: true},
	{Key: "koi_kepmag", Name: "Kepler Magnitude", Unit: "mag", Min: 5, Max: 20, Typical: 14, Required: true},
	{Key: "koi_score", Name: "Disposition Score", Unit: "", Min: 0, Max: 1, Typical: 0.5, Required: true},
	{Key: "koi_qof", Name: "Quality Flag", Unit: "", Min: 0, Max: 1, Typical: 0.9, Required: true},
}

var specIndex = buildIndex()

func buildIndex() map[string]FeatureSpec {
	index := make(map[string]FeatureSpec, len(featureSpecs))
	for _, spec := range featureSpecs {
		index[spec.Key] = spec
	}
	return index
}

// Specs returns the feature catalog in declaration order.
func Specs() []FeatureSpec {
	specs := make([]FeatureSpec, len(featureSpecs))
	copy(specs, featureSpecs)
	return specs
}

// Spec looks up a single feature by key.
func Spec(key string) (FeatureSpec, bool) {
	spec, ok := specIndex[key]
	return spec, ok
}

// Keys returns the feature keys in declaration order.
func Keys() []string {
	keys := make([]string, 0, len(featureSpecs))
	for _, spec := range featureSpecs {
		keys = append(keys, spec.Key)
	}
	return keys
}
