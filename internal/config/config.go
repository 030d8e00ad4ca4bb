package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
)

// DefaultMailFrom is the sandbox sender used when MAIL_FROM is unset.
// Sending from any other address requires the domain to be verified with
// the SMTP relay.
const DefaultMailFrom = "ComedyUO <onboarding@sandbox.comedyuo.dev>"

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  SMTP settings are optional: an empty SMTPHost
// puts the service in preview mode where emails are only written to the
// audit log.
type Config struct {
	Env          string // application environment (e.g. "dev", "prod")
	Port         string // HTTP port to listen on
	DBUser       string // database username
	DBPass       string // database password (optional)
	DBHost       string // database host address
	DBPort       string // database port number
	DBName       string // database name
	ShowTable    string // logical table name for shows
	SMTPHost     string // SMTP relay host; empty means mail is unconfigured
	SMTPPort     int    // SMTP relay port
	SMTPUser     string // SMTP username
	SMTPPass     string // SMTP password
	MailFrom     string // sender address for outbound mail
	AdminEmail   string // admin address: reply-to target and inquiry copies
	EmailLogPath string // path of the append-only audit log
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:          envStr("APP_ENV", "dev"),
		Port:         envStr("APP_PORT", "8000"),
		DBUser:       must("DB_USER"),
		DBPass:       os.Getenv("DB_PASS"),
		DBHost:       must("DB_HOST"),
		DBPort:       must("DB_PORT"),
		DBName:       must("DB_NAME"),
		ShowTable:    envStr("SHOW_TABLE", "shows"),
		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     envInt("SMTP_PORT", 587),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPass:     os.Getenv("SMTP_PASS"),
		MailFrom:     envStr("MAIL_FROM", DefaultMailFrom),
		AdminEmail:   envStr("ADMIN_EMAIL", "fomondi@vassar.edu"),
		EmailLogPath: envStr("EMAIL_LOG_PATH", "sent_emails.log"),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}
