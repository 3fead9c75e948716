package config

const (
	SourceArcGIS = "arcgis"
	SourceGTFSRT = "gtfsrt"

	DefaultPort             = 16181
	DefaultRankingCapacity  = 10
	DefaultReconnectMaxMS   = 60000
	DefaultReadLimitBytes   = 1 << 20
	DefaultPongWaitMS       = 60000
	DefaultGTFSRTIntervalMS = 15000
)

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `yaml:"port" validate:"gt=0,lte=65535"`
}

// RankingConfig bounds the leaderboard
type RankingConfig struct {
	Capacity int `yaml:"capacity" validate:"gt=0,lte=1000"`
}

// StreamConfig contains the websocket stream service configuration
type StreamConfig struct {
	URL            string `yaml:"url" validate:"omitempty,url"`
	Reconnect      bool   `yaml:"reconnect"`
	ReconnectMaxMS int    `yaml:"reconnectMaxMS" validate:"gte=0"`
	ReadLimitBytes int64  `yaml:"readLimitBytes" validate:"gte=0"`
	PongWaitMS     int    `yaml:"pongWaitMS" validate:"gte=0"`
}

// GTFSRTConfig contains GTFS-Realtime vehicle positions configuration
type GTFSRTConfig struct {
	VehiclePositionsURL string `yaml:"vehiclePositionsURL"`
	ReadIntervalMS      int    `yaml:"readIntervalMS" validate:"gte=0"`
	TimeoutMS           int    `yaml:"timeoutMS" validate:"gte=0"`
	ScoreField          string `yaml:"scoreField" validate:"omitempty,oneof=odometer speed"`
}

// Feed represents a single named update source
type Feed struct {
	Name   string       `yaml:"name" validate:"required"`
	Source string       `yaml:"source" validate:"required,oneof=arcgis gtfsrt"`
	Stream StreamConfig `yaml:"stream"`
	GTFSRT GTFSRTConfig `yaml:"gtfsrt"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server  ServerConfig  `yaml:"server"`
	Ranking RankingConfig `yaml:"ranking"`
	Source  string        `yaml:"source" validate:"omitempty,oneof=arcgis gtfsrt"`
	Stream  StreamConfig  `yaml:"stream"`
	GTFSRT  GTFSRTConfig  `yaml:"gtfsrt"`
	Feeds   []Feed        `yaml:"feeds" validate:"dive"`
}

// envOverrides lists the settings that can be replaced from the environment.
type envOverrides struct {
	Port                int    `env:"PORT"`
	RankingCapacity     int    `env:"RANKING_CAPACITY"`
	Source              string `env:"SOURCE"`
	StreamURL           string `env:"STREAM_URL"`
	VehiclePositionsURL string `env:"GTFSRT_VEHICLE_POSITIONS_URL"`
}
