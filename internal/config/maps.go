package config

type MapsConfig struct {
	GoogleMapsAPIKey string `yaml:"google_maps_api_key"`
	Region           string `yaml:"region"`
}

// Enabled reports whether address geocoding is available.
func (m *MapsConfig) Enabled() bool {
	return m.GoogleMapsAPIKey != ""
}

func loadMapsConfig() *MapsConfig {
	return &MapsConfig{
		GoogleMapsAPIKey: getEnv("GOOGLE_MAPS_API_KEY", ""),
		Region:           getEnv("GOOGLE_MAPS_REGION", "sa"),
	}
}
