package cmd

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RedisHost     string
	RedisPort     int
	RedisPassword string
	RedisDB       int
	EventChannel  string
	AlertChannel  string

	StorageEndpoint  string
	StorageRegion    string
	StorageBucket    string
	StorageAccessKey string
	StorageSecretKey string
	StorageUseSSL    bool

	// Urgency windows for task prioritisation, in days before the deadline.
	HighPriorityDays   int
	MediumPriorityDays int
}
