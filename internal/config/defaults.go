package config

// Public USGS summary feeds (no authentication).
const (
	USGSHourURL = "https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/all_hour.geojson"
	USGSDayURL  = "https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/all_day.geojson"
)

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		Storage: StorageConfig{
			SQLitePath: "dashboard.db",
			ExportDir:  "exports",
		},
		Fetch: FetchConfig{
			TimeoutSeconds:  10,
			CacheTTLSeconds: 60,
		},
		Sessions: SessionsConfig{
			IdleTTLMinutes: 30,
		},
		Feeds: FeedsConfig{
			QuakeHourURL: USGSHourURL,
			QuakeDayURL:  USGSDayURL,
		},
		Analysis: AnalysisConfig{
			StrongMagnitude: 5.0,
		},
	}
}
