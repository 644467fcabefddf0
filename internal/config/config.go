package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/username/factorial-shifts/pkg/dateutil"
)

// Config represents application configuration
type Config struct {
	Factorial   FactorialConfig   `mapstructure:"factorial" yaml:"factorial"`
	Attendance  AttendanceConfig  `mapstructure:"attendance" yaml:"attendance"`
	Shift       ShiftConfig       `mapstructure:"shift" yaml:"shift"`
	HTTP        HTTPConfig        `mapstructure:"http" yaml:"http"`
	Log         LogConfig         `mapstructure:"log" yaml:"log"`
	Credentials CredentialsConfig `mapstructure:"credentials" yaml:"credentials"`
}

// FactorialConfig holds the endpoints and browser headers used against Factorial
type FactorialConfig struct {
	LoginURL     string `mapstructure:"login_url" yaml:"login_url"`
	GraphQLURL   string `mapstructure:"graphql_url" yaml:"graphql_url"`
	UserAgent    string `mapstructure:"user_agent" yaml:"user_agent"`
	ReturnHost   string `mapstructure:"return_host" yaml:"return_host"`
	ReturnTo     string `mapstructure:"return_to" yaml:"return_to"`
	APIOrigin    string `mapstructure:"api_origin" yaml:"api_origin"` // Origin of the login form
	AppOrigin    string `mapstructure:"app_origin" yaml:"app_origin"` // Origin of the web app issuing mutations
	LoginReferer string `mapstructure:"login_referer" yaml:"login_referer"`
}

// AttendanceConfig holds the tenant-specific variables of the shift mutation
type AttendanceConfig struct {
	LocationType         string `mapstructure:"location_type" yaml:"location_type"`
	Source               string `mapstructure:"source" yaml:"source"`
	BreakConfigurationID int    `mapstructure:"break_configuration_id" yaml:"break_configuration_id"`
	Workable             bool   `mapstructure:"workable" yaml:"workable"`
	FetchDependencies    bool   `mapstructure:"fetch_dependencies" yaml:"fetch_dependencies"`
}

// ShiftConfig describes the shape of the working day
type ShiftConfig struct {
	MorningStart     string `mapstructure:"morning_start" yaml:"morning_start"`     // HH:MM, before random offset
	MorningEnd       string `mapstructure:"morning_end" yaml:"morning_end"`         // HH:MM
	AfternoonStart   string `mapstructure:"afternoon_start" yaml:"afternoon_start"` // HH:MM
	MaxOffsetMinutes int    `mapstructure:"max_offset_minutes" yaml:"max_offset_minutes"`
	WorkdayMinutes   int    `mapstructure:"workday_minutes" yaml:"workday_minutes"`
	UTCOffset        string `mapstructure:"utc_offset" yaml:"utc_offset"` // ±HH:MM
}

// HTTPConfig holds transport settings
type HTTPConfig struct {
	Timeout string `mapstructure:"timeout" yaml:"timeout"` // empty or "0" disables the timeout
}

// LogConfig holds logging settings
type LogConfig struct {
	File  string `mapstructure:"file" yaml:"file"`
	Level string `mapstructure:"level" yaml:"level"`
}

// CredentialsConfig holds login input that may come from env or config instead of flags
type CredentialsConfig struct {
	Email      string `mapstructure:"email" yaml:"email"`
	Password   string `mapstructure:"password" yaml:"password"`
	EmployeeID int    `mapstructure:"employee_id" yaml:"employee_id"`
}

// Load loads configuration from file, .env files and environment.
// A missing config file is not an error unless configPath names it explicitly.
func Load(configPath string) (*Config, error) {
	// Load .env files (fails silently if files don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	v := viper.New()
	setDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.factorial-shifts")
		v.AddConfigPath("/etc/factorial-shifts")
	}

	// Read environment variables
	v.SetEnvPrefix("FACTORIAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("credentials.email", "FACTORIAL_EMAIL")
	_ = v.BindEnv("credentials.password", "FACTORIAL_PASSWORD")
	_ = v.BindEnv("credentials.employee_id", "FACTORIAL_EMPLOYEE_ID")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("factorial.login_url", "https://api.factorialhr.com/en-US/users/sign_in")
	v.SetDefault("factorial.graphql_url", "https://api.factorialhr.com/graphql?CreateAttendanceShift")
	v.SetDefault("factorial.user_agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10.15; rv:135.0) Gecko/20100101 Firefox/135.0")
	v.SetDefault("factorial.return_host", "factorialhr.com")
	v.SetDefault("factorial.return_to", "https://app.factorialhr.com/")
	v.SetDefault("factorial.api_origin", "https://api.factorialhr.com")
	v.SetDefault("factorial.app_origin", "https://app.factorialhr.com")
	v.SetDefault("factorial.login_referer", "https://api.factorialhr.com/en/users/sign_in?&return_to=https%3A%2F%2Fapp.factorialhr.com%2F")

	v.SetDefault("attendance.location_type", "office")
	v.SetDefault("attendance.source", "desktop")
	v.SetDefault("attendance.break_configuration_id", 11959)
	v.SetDefault("attendance.workable", true)
	v.SetDefault("attendance.fetch_dependencies", true)

	v.SetDefault("shift.morning_start", "08:30")
	v.SetDefault("shift.morning_end", "13:00")
	v.SetDefault("shift.afternoon_start", "14:00")
	v.SetDefault("shift.max_offset_minutes", 60)
	v.SetDefault("shift.workday_minutes", 480)
	v.SetDefault("shift.utc_offset", "+01:00")

	v.SetDefault("http.timeout", "")

	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")

	v.SetDefault("credentials.email", "")
	v.SetDefault("credentials.password", "")
	v.SetDefault("credentials.employee_id", 0)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	// Validate Factorial config
	for name, raw := range map[string]string{
		"factorial.login_url":   c.Factorial.LoginURL,
		"factorial.graphql_url": c.Factorial.GraphQLURL,
	} {
		if raw == "" {
			return fmt.Errorf("%s is required", name)
		}
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%s must be an absolute URL, got %q", name, raw)
		}
	}

	// Validate Attendance config
	if c.Attendance.LocationType == "" {
		return fmt.Errorf("attendance.location_type is required")
	}
	if c.Attendance.Source == "" {
		return fmt.Errorf("attendance.source is required")
	}
	if c.Attendance.BreakConfigurationID <= 0 {
		return fmt.Errorf("attendance.break_configuration_id must be positive")
	}

	if err := c.Shift.Validate(); err != nil {
		return err
	}

	if _, err := c.HTTP.GetTimeout(); err != nil {
		return err
	}

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}

	return nil
}

// Validate checks that every plan built from this shape has two non-empty windows
func (s *ShiftConfig) Validate() error {
	if _, err := s.Location(); err != nil {
		return fmt.Errorf("shift.utc_offset: %w", err)
	}

	clocks := map[string]string{
		"shift.morning_start":   s.MorningStart,
		"shift.morning_end":     s.MorningEnd,
		"shift.afternoon_start": s.AfternoonStart,
	}
	minutes := make(map[string]int, len(clocks))
	for name, clock := range clocks {
		h, m, err := dateutil.ParseClock(clock)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		minutes[name] = h*60 + m
	}

	if s.MaxOffsetMinutes < 0 {
		return fmt.Errorf("shift.max_offset_minutes must not be negative")
	}
	if s.WorkdayMinutes <= 0 {
		return fmt.Errorf("shift.workday_minutes must be positive")
	}

	latestClockIn := minutes["shift.morning_start"] + s.MaxOffsetMinutes
	if latestClockIn >= minutes["shift.morning_end"] {
		return fmt.Errorf("shift.morning_start + shift.max_offset_minutes must be before shift.morning_end")
	}
	if minutes["shift.afternoon_start"] < minutes["shift.morning_end"] {
		return fmt.Errorf("shift.afternoon_start must not be before shift.morning_end")
	}

	longestMorning := minutes["shift.morning_end"] - minutes["shift.morning_start"]
	if s.WorkdayMinutes <= longestMorning {
		return fmt.Errorf("shift.workday_minutes must exceed the longest morning (%d minutes)", longestMorning)
	}

	return nil
}

// Location returns the fixed zone all shift timestamps are expressed in
func (s *ShiftConfig) Location() (*time.Location, error) {
	return dateutil.ParseUTCOffset(s.UTCOffset)
}

// GetTimeout returns the per-request timeout; zero means wait indefinitely
func (h *HTTPConfig) GetTimeout() (time.Duration, error) {
	if h.Timeout == "" || h.Timeout == "0" {
		return 0, nil
	}
	duration, err := time.ParseDuration(h.Timeout)
	if err != nil {
		return 0, fmt.Errorf("http.timeout: %w", err)
	}
	if duration < 0 {
		return 0, fmt.Errorf("http.timeout must not be negative")
	}
	return duration, nil
}

// Redacted returns a copy safe to print or log
func (c Config) Redacted() Config {
	if c.Credentials.Password != "" {
		c.Credentials.Password = "********"
	}
	return c
}

// Default returns the built-in configuration without consulting files or environment
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &config
}
