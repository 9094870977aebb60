package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Settings is the process configuration read from the environment.
type Settings struct {
	Port             string
	DSN              string
	CORSOrigin       string
	SampleQueryLimit int
	KafkaBrokers     []string
	KafkaAlertTopic  string
	MQTTBroker       string
	MQTTTopic        string
	MQTTClientID     string
	GCSBucket        string
	APIKeys          []string
}

// Load reads .env when present, then the environment.
func Load() Settings {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	return Settings{
		Port:             getEnv("PORT", "8080"),
		DSN:              os.Getenv("DB_DSN"),
		CORSOrigin:       getEnv("CORS_ORIGIN", "*"),
		SampleQueryLimit: getEnvInt("SAMPLE_QUERY_LIMIT", 1000),
		KafkaBrokers:     splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaAlertTopic:  getEnv("KAFKA_ALERT_TOPIC", "water-quality-alerts"),
		MQTTBroker:       os.Getenv("MQTT_BROKER"),
		MQTTTopic:        getEnv("MQTT_TOPIC", "aquasure/samples"),
		MQTTClientID:     getEnv("MQTT_CLIENT_ID", "aquasure-ingest"),
		GCSBucket:        os.Getenv("GCS_BUCKET"),
		APIKeys:          splitList(os.Getenv("API_KEYS")),
	}
}

// Connect opens the Postgres connection into DB.
func Connect(s Settings) {
	var err error
	DB, err = gorm.Open(postgres.Open(s.DSN), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	log.Println("✅ Connected to database")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("⚠️  Invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
