package configs

// Admin describes the administrator account ensured at startup. An empty
// Password skips it.
type Admin struct {
	Username string `env:"USERNAME" envDefault:"admin"`
	Email    string `env:"EMAIL" envDefault:"admin@local-ads.dev"`
	Password string `env:"PASSWORD"`
}
