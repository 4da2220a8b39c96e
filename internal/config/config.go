package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration. It is built once in main and
// passed down explicitly; nothing else in the tree reads the
// environment.
type Config struct {
	Port     string
	Env      string
	LogLevel string

	CRMBaseURL string
	CRMToken   string

	// Fixed two-cabinet, two-doctor topology. The second doctor is
	// optional.
	Room1ID     string
	Room2ID     string
	Provider1ID string
	Provider2ID string

	WorkStartHour       int
	WorkEndHour         int
	AppointmentDuration int // minutes

	CORSAllowedOrigins []string
}

// Load reads configuration from environment variables.
func Load() *Config {
	provider1 := getEnv("DOCTOR_ID_1", getEnv("DEFAULT_DOCTOR_ID", "11111"))
	return &Config{
		Port:                getEnv("PORT", "3000"),
		Env:                 getEnv("ENV", "development"),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		CRMBaseURL:          getEnv("CRM_API_BASE_URL", "https://cliniccards.com/api"),
		CRMToken:            getEnv("CRM_API_TOKEN", ""),
		Room1ID:             getEnv("CABINET_1_ID", "10000"),
		Room2ID:             getEnv("CABINET_2_ID", "20000"),
		Provider1ID:         provider1,
		Provider2ID:         getEnv("DOCTOR_ID_2", ""),
		WorkStartHour:       getEnvAsInt("WORK_START_HOUR", 9),
		WorkEndHour:         getEnvAsInt("WORK_END_HOUR", 19),
		AppointmentDuration: getEnvAsInt("APPOINTMENT_DURATION_MINUTES", 30),
		CORSAllowedOrigins:  splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}
}

// Providers returns the configured provider ids in priority order,
// omitting the optional second doctor when unset.
func (c *Config) Providers() []string {
	providers := []string{c.Provider1ID}
	if c.Provider2ID != "" {
		providers = append(providers, c.Provider2ID)
	}
	return providers
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns
// a default value.
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
