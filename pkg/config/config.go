// Copyright 2025 Costline Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config provides configuration management for the costline job.
//
// The job requires configuration for:
//   - The AWS region and (optionally) an IAM role to assume for billing reads
//   - The Cost Explorer metric to report
//   - The DynamoDB settings table holding LINE credentials
//   - The LINE Messaging API endpoint
//
// Configuration can be loaded from a YAML file or environment variables.
// Uses Viper for robust configuration management with automatic env binding.
package config

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete job configuration.
type Config struct {
	// DefaultRegion is the AWS region for API calls.
	// Cost Explorer itself is a global API served out of us-east-1, but the
	// DynamoDB settings table is regional.
	DefaultRegion string `yaml:"defaultRegion,omitempty"`

	// AssumeRoleARN is an optional IAM role to assume before reading billing
	// data. Cost data usually lives in the management account, so running
	// the job from a member account needs a cross-account role.
	// Format: arn:aws:iam::ACCOUNT_ID:role/ROLE_NAME
	AssumeRoleARN string `yaml:"assumeRoleArn,omitempty"`

	// CostMetric is the Cost Explorer metric to report.
	// Valid values: AmortizedCost, BlendedCost, NetAmortizedCost,
	// NetUnblendedCost, UnblendedCost.
	// Default: UnblendedCost
	CostMetric string `yaml:"costMetric,omitempty"`

	// SettingsTable is the DynamoDB table holding the LINE channel id and
	// access token. Required.
	SettingsTable string `yaml:"settingsTable"`

	// LineAPIURL is the LINE Messaging API push endpoint.
	// Default: https://api.line.me/v2/bot/message/push
	LineAPIURL string `yaml:"lineApiUrl,omitempty"`

	// RequestTimeout is the timeout applied to the outbound LINE request.
	// Format: Go duration string (e.g., "10s", "30s")
	// Default: 10s
	RequestTimeout string `yaml:"requestTimeout,omitempty"`

	// LogLevel controls the verbosity of logs.
	// Valid values: debug, info, warn, error
	// Default: info
	LogLevel string `yaml:"logLevel,omitempty"`
}

// Load loads configuration from a YAML file and validates it.
//
// Configuration precedence (highest to lowest):
//  1. Environment variables (COSTLINE_* prefix)
//  2. Configuration file values
//  3. Default values
//
// Environment variables can override any configuration value by converting
// the field name to uppercase with COSTLINE_ prefix. For example:
//   - COSTLINE_SETTINGS_TABLE overrides settingsTable
//   - COSTLINE_COST_METRIC overrides costMetric
//   - COSTLINE_LOG_LEVEL overrides logLevel
func Load(path string) (*Config, error) {
	v := viper.New()

	// Set configuration file
	v.SetConfigFile(path)

	// Set default values
	v.SetDefault("defaultRegion", DefaultRegion)
	v.SetDefault("costMetric", DefaultCostMetric)
	v.SetDefault("lineApiUrl", DefaultLineAPIURL)
	v.SetDefault("requestTimeout", DefaultRequestTimeout.String())
	v.SetDefault("logLevel", "info")

	// Enable environment variable overrides with COSTLINE_ prefix
	// Manually bind each config key to its environment variable
	// Viper's automatic mapping doesn't handle camelCase to SCREAMING_SNAKE_CASE well
	v.SetEnvPrefix("COSTLINE")
	_ = v.BindEnv("defaultRegion", "COSTLINE_DEFAULT_REGION")
	_ = v.BindEnv("assumeRoleArn", "COSTLINE_ASSUME_ROLE_ARN")
	_ = v.BindEnv("costMetric", "COSTLINE_COST_METRIC")
	_ = v.BindEnv("settingsTable", "COSTLINE_SETTINGS_TABLE")
	_ = v.BindEnv("lineApiUrl", "COSTLINE_LINE_API_URL")
	_ = v.BindEnv("requestTimeout", "COSTLINE_REQUEST_TIMEOUT")
	_ = v.BindEnv("logLevel", "COSTLINE_LOG_LEVEL")

	// Read configuration file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	// Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration is valid and returns an error if not.
func (c *Config) Validate() error {
	// The settings table is the one field without a sensible default
	if strings.TrimSpace(c.SettingsTable) == "" {
		return fmt.Errorf("settingsTable must be configured")
	}

	// Validate AssumeRole ARN format when set
	if c.AssumeRoleARN != "" && !isValidIAMRoleARN(c.AssumeRoleARN) {
		return fmt.Errorf(
			"invalid AssumeRole ARN %q: must be in format arn:aws:iam::ACCOUNT_ID:role/ROLE_NAME",
			c.AssumeRoleARN,
		)
	}

	// Validate cost metric
	if c.CostMetric != "" && !validCostMetrics[c.CostMetric] {
		return fmt.Errorf(
			"invalid cost metric %q, must be one of: AmortizedCost, BlendedCost, NetAmortizedCost, NetUnblendedCost, UnblendedCost",
			c.CostMetric,
		)
	}

	// Validate LINE API URL
	if c.LineAPIURL != "" {
		u, err := url.Parse(c.LineAPIURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("invalid LINE API URL %q: must be an absolute http(s) URL", c.LineAPIURL)
		}
	}

	// Validate request timeout
	if c.RequestTimeout != "" {
		if _, err := time.ParseDuration(c.RequestTimeout); err != nil {
			return fmt.Errorf("invalid request timeout %q: %w", c.RequestTimeout, err)
		}
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if c.LogLevel != "" && !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level %q, must be one of: debug, info, warn, error", c.LogLevel)
	}

	return nil
}

// validCostMetrics is the set of Cost Explorer cost metrics the job accepts.
// Usage metrics (UsageQuantity, NormalizedUsageAmount) are excluded because
// the notification renders a USD amount.
var validCostMetrics = map[string]bool{
	"AmortizedCost":    true,
	"BlendedCost":      true,
	"NetAmortizedCost": true,
	"NetUnblendedCost": true,
	"UnblendedCost":    true,
}

// isValidIAMRoleARN checks if a string is a valid IAM role ARN.
// Valid format: arn:aws:iam::123456789012:role/RoleName
// Also accepts: arn:aws-us-gov:iam::... for GovCloud
func isValidIAMRoleARN(arn string) bool {
	// Basic IAM role ARN pattern
	// Partition can be "aws" or "aws-us-gov" or "aws-cn"
	matched, _ := regexp.MatchString(`^arn:(aws|aws-us-gov|aws-cn):iam::\d{12}:role/[a-zA-Z0-9+=,.@\-_/]+$`, arn)
	return matched
}

// GetRequestTimeout returns the parsed request timeout duration.
// Returns the default if not configured.
func (c *Config) GetRequestTimeout() time.Duration {
	if c.RequestTimeout == "" {
		return DefaultRequestTimeout
	}
	duration, err := time.ParseDuration(c.RequestTimeout)
	if err != nil {
		// Should never happen since Validate() checks this
		return DefaultRequestTimeout
	}
	return duration
}
