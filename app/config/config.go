package config

import (
	"database/sql"
	"log"
	"os"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type Config struct {
	DB       *sql.DB
	Port     string
	Location *time.Location
	DataDir  string
	Auth     AuthConfig
	Kafka    KafkaConfig
	Billing  BillingConfig
}

type AuthConfig struct {
	JWTSecret string
}

type KafkaConfig struct {
	Brokers      []string
	InvoiceTopic string
}

// Enabled reports whether invoice events should be published.
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

type BillingConfig struct {
	DefaultOverheadPct decimal.Decimal
}

var AppConfig *Config

const localDSN = "host=localhost port=5432 user=postgres dbname=nfm sslmode=disable"

// Load reads settings from the environment (after a .env file, if any) without touching the database.
func Load() *Config {
	if err := LoadDotEnv(".env"); err != nil {
		log.Printf("Warning: could not read .env: %v", err)
	}

	cfg := &Config{
		Port:    getEnv("PORT", "8080"),
		DataDir: getEnv("DATA_DIR", "./data"),
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", "nfm-dev-secret-change-me"),
		},
		Kafka: KafkaConfig{
			Brokers:      splitList(os.Getenv("KAFKA_BROKERS")),
			InvoiceTopic: getEnv("KAFKA_INVOICE_TOPIC", "nfm.invoices"),
		},
		Billing: BillingConfig{
			DefaultOverheadPct: decimal.NewFromInt(15),
		},
	}

	tz := getEnv("APP_TIMEZONE", "Asia/Baghdad")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("Warning: unknown timezone %q, using UTC: %v", tz, err)
		loc = time.UTC
	}
	cfg.Location = loc

	if raw := os.Getenv("DEFAULT_OVERHEAD_PCT"); raw != "" {
		pct, err := decimal.NewFromString(raw)
		if err != nil || pct.IsNegative() {
			log.Printf("Warning: invalid DEFAULT_OVERHEAD_PCT %q, using 15", raw)
		} else {
			cfg.Billing.DefaultOverheadPct = pct
		}
	}
	return cfg
}

// DatabaseURL picks the connection string: LOCAL_DB=true forces a local server,
// otherwise DATABASE_URL then NEON_DB_URL.
func DatabaseURL() string {
	if os.Getenv("LOCAL_DB") == "true" {
		return localDSN
	}
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn
	}
	return os.Getenv("NEON_DB_URL")
}

func InitDB() {
	cfg := Load()

	psqlInfo := DatabaseURL()
	if psqlInfo == "" {
		log.Fatal("No database configured: set DATABASE_URL, NEON_DB_URL or LOCAL_DB=true")
	}
	if psqlInfo == localDSN {
		log.Println("Using local PostgreSQL database")
	} else {
		log.Println("Attempting to connect to remote database")
	}

	db, err := sql.Open("postgres", psqlInfo)
	if err != nil {
		log.Fatal("Failed to open database connection:", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	log.Println("Testing database connection...")
	if err = db.Ping(); err != nil {
		log.Printf("Database connection failed: %v", err)

		if os.Getenv("LOCAL_DB") != "true" {
			log.Println("\n=== DATABASE CONNECTION FAILED ===")
			log.Println("The remote database server is unreachable.")
			log.Println("\nTo use a local PostgreSQL database instead:")
			log.Println("1. Install PostgreSQL locally")
			log.Println("2. Create database: createdb nfm")
			log.Println("3. Run migrations: go run ./cmd/migrate")
			log.Println("4. Set environment variable: export LOCAL_DB=true")
			log.Println("5. Run the application again")
			log.Println("\nOr check DATABASE_URL / NEON_DB_URL and network connectivity")
		}

		log.Fatal("Cannot establish database connection")
	}

	cfg.DB = db
	AppConfig = cfg
	log.Println("Database connected successfully")
	if cfg.Kafka.Enabled() {
		log.Printf("Invoice events will be published to %s", cfg.Kafka.InvoiceTopic)
	}
}

func GetDB() *sql.DB {
	return AppConfig.DB
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
