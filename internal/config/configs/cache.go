package configs

import "time"

// Cache sizes the read-through caches in front of reference data.
type Cache struct {
	CitySize   int           `env:"CITY_SIZE" envDefault:"64"`
	KeywordTTL time.Duration `env:"KEYWORD_TTL" envDefault:"5m"`
}
