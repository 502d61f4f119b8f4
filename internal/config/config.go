package config

import (
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/parking-zones/internal/model"
)

// Default map center (Zrenjanin city center) used by the CLI flags.
const (
	DefaultCenterLat = 45.38096
	DefaultCenterLon = 20.39373
	DefaultOutput    = "parking_map.html"
	DefaultTile      = "openstreetmap"
)

// Config holds the full application configuration.
type Config struct {
	Map       MapConfig        `yaml:"map" mapstructure:"map"`
	Zones     []model.Zone     `yaml:"zones" mapstructure:"zones"`
	ZonesFile string           `yaml:"zones_file" mapstructure:"zones_file"`
	Locations []model.Location `yaml:"locations" mapstructure:"locations"`
	OSM       OSMConfig        `yaml:"osm" mapstructure:"osm"`
	Server    ServerConfig     `yaml:"server" mapstructure:"server"`
	Log       LogConfig        `yaml:"log" mapstructure:"log"`
}

// MapConfig configures the generated map.
type MapConfig struct {
	CenterLat    float64 `yaml:"center_lat" mapstructure:"center_lat"`
	CenterLon    float64 `yaml:"center_lon" mapstructure:"center_lon"`
	RadiusMeters int     `yaml:"radius_meters" mapstructure:"radius_meters"`
	Output       string  `yaml:"output" mapstructure:"output"`
	TileProvider string  `yaml:"tile_provider" mapstructure:"tile_provider"`
	ZoomStart    int     `yaml:"zoom_start" mapstructure:"zoom_start"`
	Title        string  `yaml:"title" mapstructure:"title"`
	LegendTitle  string  `yaml:"legend_title" mapstructure:"legend_title"`
	MarkerPopup  string  `yaml:"marker_popup" mapstructure:"marker_popup"`
	LineWeight   float64 `yaml:"line_weight" mapstructure:"line_weight"`
	LineOpacity  float64 `yaml:"line_opacity" mapstructure:"line_opacity"`
}

// Center returns the configured map center.
func (m MapConfig) Center() model.Point {
	return model.Point{Lat: m.CenterLat, Lon: m.CenterLon}
}

// OSMConfig configures the Nominatim and Overpass endpoints.
type OSMConfig struct {
	NominatimURL string  `yaml:"nominatim_url" mapstructure:"nominatim_url"`
	OverpassURL  string  `yaml:"overpass_url" mapstructure:"overpass_url"`
	UserAgent    string  `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs  int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RateLimit    float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
}

// ServerConfig configures the web form server.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// DefaultZones returns the built-in Zrenjanin parking zones.
func DefaultZones() []model.Zone {
	return []model.Zone{
		{
			ID:    "red",
			Label: "Црвена зона",
			Color: "#FF0000",
			Streets: []string{
				"Пупинова", "Светосавска", "Јеврејска", "Гимназијска",
				"Краља Александра Првог Карађорђевића", "Краља Петра Првог",
				"Сарајлијина", "Немањина", "Др Славка Жупанског",
			},
		},
		{
			ID:    "yellow",
			Label: "Жута зона",
			Color: "#FFFF00",
			Streets: []string{
				"Слободана Бурсаћа", "Савезничка", "Цара Душана", "Мирослава Тирша",
			},
		},
		{
			ID:    "green",
			Label: "Зелена зона",
			Color: "#00FF00",
			Streets: []string{
				"Кеј другог октобра", "Обала Соње Маринковић", "Обилићева",
				"Петефијева", "Даничићева", "Марка Орешковића", "Иве Лоле Рибара",
				"Косте Абрашевића", "20. октобра", "Југ Богдана", "Саве Текелије",
			},
		},
	}
}

// DefaultLocations returns the predefined centers offered by the web form.
func DefaultLocations() []model.Location {
	return []model.Location{
		{Name: "Зрењанин - Центар", Lat: DefaultCenterLat, Lon: DefaultCenterLon},
	}
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("PARKZONES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("map.center_lat", DefaultCenterLat)
	v.SetDefault("map.center_lon", DefaultCenterLon)
	v.SetDefault("map.radius_meters", 5000)
	v.SetDefault("map.output", DefaultOutput)
	v.SetDefault("map.tile_provider", DefaultTile)
	v.SetDefault("map.zoom_start", 14)
	v.SetDefault("map.title", "Паркинг зоне")
	v.SetDefault("map.legend_title", "Легенда (Зоне)")
	v.SetDefault("map.marker_popup", "Центар")
	v.SetDefault("map.line_weight", 5)
	v.SetDefault("map.line_opacity", 0.8)
	v.SetDefault("zones_file", "")
	v.SetDefault("osm.nominatim_url", "https://nominatim.openstreetmap.org")
	v.SetDefault("osm.overpass_url", "https://overpass-api.de/api/interpreter")
	v.SetDefault("osm.user_agent", "parking-zones/1.0")
	v.SetDefault("osm.timeout_secs", 60)
	v.SetDefault("osm.rate_limit", 1.0)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	if len(cfg.Zones) == 0 {
		cfg.Zones = DefaultZones()
	}
	if len(cfg.Locations) == 0 {
		cfg.Locations = DefaultLocations()
	}

	if cfg.ZonesFile != "" {
		zones, err := LoadZonesFile(cfg.ZonesFile)
		if err != nil {
			return nil, err
		}
		cfg.Zones = zones
	}

	return &cfg, nil
}

// LoadZonesFile reads zone definitions from a YAML file with a top-level
// "zones" list.
func LoadZonesFile(path string) ([]model.Zone, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "config: read zones file %s", path)
	}

	var wrapper struct {
		Zones []model.Zone `yaml:"zones"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, eris.Wrapf(err, "config: parse zones file %s", path)
	}
	if len(wrapper.Zones) == 0 {
		return nil, eris.Errorf("config: zones file %s defines no zones", path)
	}

	return wrapper.Zones, nil
}

// Validate checks the zone definitions and map settings for values the
// generator cannot work with.
func (c *Config) Validate() error {
	if len(c.Zones) == 0 {
		return eris.New("config: no zones configured")
	}

	seen := make(map[string]bool, len(c.Zones))
	for i, z := range c.Zones {
		if strings.TrimSpace(z.ID) == "" {
			return eris.Errorf("config: zone %d has no id", i)
		}
		if seen[z.ID] {
			return eris.Errorf("config: duplicate zone id %q", z.ID)
		}
		seen[z.ID] = true
		if strings.TrimSpace(z.Color) == "" {
			return eris.Errorf("config: zone %q has no color", z.ID)
		}
		if len(z.Streets) == 0 {
			return eris.Errorf("config: zone %q lists no streets", z.ID)
		}
	}

	if c.Map.ZoomStart < 0 || c.Map.ZoomStart > 19 {
		return eris.Errorf("config: zoom_start %d out of range 0-19", c.Map.ZoomStart)
	}

	return nil
}

// LocationByName returns the predefined location with the given name.
func (c *Config) LocationByName(name string) (model.Location, bool) {
	for _, l := range c.Locations {
		if l.Name == name {
			return l, true
		}
	}
	return model.Location{}, false
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
