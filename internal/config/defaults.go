package config

import "time"

const defaultPort = 8080

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "myuser",
	Pass: "mypassword",
	Name: "assignment_db",
}

var defaultKafka = Kafka{
	Topic:   "order-events",
	GroupID: "service-assignment",
}

var defaultAMQP = AMQP{
	Exchange: "notifications",
}

var defaultAssignment = Assignment{
	Window:        5 * time.Minute,
	MaxAttempts:   3,
	SweepInterval: 30 * time.Second,
}

var defaultRateLimit = RateLimit{
	Enabled:    false,
	Rate:       20,
	Burst:      40,
	TTL:        10 * time.Minute,
	MaxBuckets: 10000,
}

var defaultStore = Store{
	MaxAttempts: 4,
	BaseDelay:   150 * time.Millisecond,
	MaxDelay:    2 * time.Second,
}

// DefaultPort returns the default port.
func DefaultPort() int { return defaultPort }

// DefaultDB returns the default database settings.
func DefaultDB() DB { return defaultDB }

// DefaultKafka returns the default Kafka intake settings.
func DefaultKafka() Kafka { return defaultKafka }

// DefaultAMQP returns the default notification gateway settings.
func DefaultAMQP() AMQP { return defaultAMQP }

// DefaultAssignment returns the default assignment policy.
func DefaultAssignment() Assignment { return defaultAssignment }

// DefaultRateLimit returns the default rate limiter settings.
func DefaultRateLimit() RateLimit { return defaultRateLimit }

// DefaultStore returns the default store retry policy.
func DefaultStore() Store { return defaultStore }
