package configs

// Redis configures the search rate limiter. An empty Addr disables it.
type Redis struct {
	Addr     string `env:"ADDRESS"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
	// SearchLimit is the number of location searches a client may issue
	// per minute.
	SearchLimit int `env:"SEARCH_LIMIT" envDefault:"120"`
}

// Enabled reports whether a Redis address was configured.
func (c Redis) Enabled() bool {
	return c.Addr != ""
}
