package config

// BodyPresets are the bundled celestial-body constants selectable with
// --body. Angular velocity is derived from RotationPeriod.
var BodyPresets = map[string]BodyConfig{
	"kerbin": {
		Name: "kerbin", Radius: 600000, HasAtmosphere: true, AtmosphereDepth: 70000,
		HasOcean: true, MaxTerrainHeight: 6764.9, RotationPeriod: 21549.425, GravParameter: 3.5316e12,
	},
	"duna": {
		Name: "duna", Radius: 320000, HasAtmosphere: true, AtmosphereDepth: 50000,
		HasOcean: false, MaxTerrainHeight: 8264, RotationPeriod: 65517.859, GravParameter: 3.0136321e11,
	},
	"eve": {
		Name: "eve", Radius: 700000, HasAtmosphere: true, AtmosphereDepth: 90000,
		HasOcean: true, MaxTerrainHeight: 7540, RotationPeriod: 80500, GravParameter: 8.1717302e12,
	},
	"mun": {
		Name: "mun", Radius: 200000, HasAtmosphere: false, AtmosphereDepth: 0,
		HasOcean: false, MaxTerrainHeight: 7061, RotationPeriod: 138984.38, GravParameter: 6.5138398e10,
	},
	"earth": {
		Name: "earth", Radius: 6371000, HasAtmosphere: true, AtmosphereDepth: 140000,
		HasOcean: true, MaxTerrainHeight: 8848, RotationPeriod: 86164.1, GravParameter: 3.986004418e14,
	},
}

// GetBodyPreset returns the named preset, or nil when unknown.
func GetBodyPreset(name string) *BodyConfig {
	b, ok := BodyPresets[name]
	if !ok {
		return nil
	}
	return &b
}
