// Package config loads the database connection coordinates from the
// environment. Variable names are matched case-insensitively.
package config

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/transitflow/transitflow/pkg/util"
)

type Environment string

const (
	EnvironmentLocal   Environment = "local"
	EnvironmentDev     Environment = "dev"
	EnvironmentTest    Environment = "test"
	EnvironmentStaging Environment = "staging"
	EnvironmentUAT     Environment = "uat"
	EnvironmentProd    Environment = "prod"
)

type Config struct {
	Host     string `validate:"required"`
	Port     int    `validate:"required,min=1,max=65535"`
	Database string `validate:"required"`
	User     string `validate:"required"`

	// Password is only permitted for local development; every other
	// environment authenticates with a short-lived IAM token.
	Password string `validate:"excluded_unless=ProjectEnv local"`

	ProjectEnv Environment `validate:"required,oneof=local dev test staging uat prod"`

	AWSRegion          string `validate:"required_unless=ProjectEnv local"`
	LambdaFunctionName string
}

// Load reads configuration from a .env file (if present) and the process
// environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	return FromEnvironment(util.GetEnvironmentVariables())
}

func FromEnvironment(env map[string]string) (*Config, error) {
	config := &Config{
		Host:               util.LookupEnv(env, "POSTGRES_HOST"),
		Database:           util.LookupEnv(env, "POSTGRES_DB"),
		User:               util.LookupEnv(env, "POSTGRES_USER"),
		Password:           util.LookupEnv(env, "POSTGRES_PASSWORD"),
		ProjectEnv:         Environment(util.LookupEnv(env, "PROJECT_ENV")),
		AWSRegion:          util.LookupEnv(env, "AWS_REGION"),
		LambdaFunctionName: util.LookupEnv(env, "AWS_LAMBDA_FUNCTION_NAME"),
	}

	portValue := util.LookupEnv(env, "POSTGRES_PORT")
	if portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil {
			return nil, fmt.Errorf("POSTGRES_PORT is not numeric: %w", err)
		}
		config.Port = port
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) IsLocal() bool {
	return c.ProjectEnv == EnvironmentLocal
}

// ConnectionURL builds the postgresql:// URL. For non-local environments the
// password argument carries the issued IAM token; for local it is ignored in
// favour of the configured password.
func (c *Config) ConnectionURL(password string) string {
	sslMode := "require"
	if c.IsLocal() {
		sslMode = "disable"
		password = c.Password
	}

	connectionURL := url.URL{
		Scheme: "postgresql",
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   "/" + c.Database,
	}

	if password == "" {
		connectionURL.User = url.User(c.User)
	} else {
		connectionURL.User = url.UserPassword(c.User, password)
	}

	query := url.Values{}
	query.Set("sslmode", sslMode)
	if c.LambdaFunctionName != "" {
		query.Set("application_name", c.LambdaFunctionName)
	}
	connectionURL.RawQuery = query.Encode()

	return connectionURL.String()
}
