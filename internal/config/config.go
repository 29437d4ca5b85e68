package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort         string `mapstructure:"SERVER_PORT"`
	RedisAddr          string `mapstructure:"REDIS_ADDR"`
	RedisPassword      string `mapstructure:"REDIS_PASSWORD"`
	POISources         string `mapstructure:"POI_SOURCES"`
	POIFetchTimeoutSec int    `mapstructure:"POI_FETCH_TIMEOUT_SEC"`
}

func Load() Config {
	viper.AutomaticEnv()
	viper.SetDefault("SERVER_PORT", ":8080")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("POI_SOURCES", "")
	viper.SetDefault("POI_FETCH_TIMEOUT_SEC", 15)

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}

// POISourceURLs splits the comma-separated POI_SOURCES value, dropping empty
// entries.
func (c Config) POISourceURLs() []string {
	var urls []string
	for _, s := range strings.Split(c.POISources, ",") {
		if s = strings.TrimSpace(s); s != "" {
			urls = append(urls, s)
		}
	}
	return urls
}
