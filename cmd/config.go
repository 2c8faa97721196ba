package cmd

// Config is read from the environment (optionally seeded from .env).
type Config struct {
	HTTPPort string
	LogLevel string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// StatusDecoding is "lenient" (unknown text becomes PENDING) or "strict".
	StatusDecoding string
	// FilamentSufficiency is "per_unit" or "order_total".
	FilamentSufficiency string
	// StockAuditSchedule is a cron spec with a seconds field.
	StockAuditSchedule string

	KafkaHost              string
	KafkaOrderChangedTopic string
	KafkaStockChangedTopic string

	OTLPEndpoint   string
	OTelSampleRate float64
}
