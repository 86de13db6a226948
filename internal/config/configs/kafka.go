package configs

// Kafka configures campaign event publishing. No brokers disables it.
type Kafka struct {
	Brokers []string `env:"BROKERS" envSeparator:","`
	Topic   string   `env:"TOPIC" envDefault:"campaign-events"`
}

// Enabled reports whether at least one broker was configured.
func (c Kafka) Enabled() bool {
	return len(c.Brokers) > 0
}
