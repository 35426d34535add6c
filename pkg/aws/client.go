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

package aws

import (
	"context"
	"time"
)

// Client is the main interface for interacting with AWS services.
// It provides access to the Cost Explorer and DynamoDB APIs with built-in
// support for cross-account AssumeRole operations.
type Client interface {
	// CostExplorer returns a CostExplorerClient.
	// If ClientConfig.AssumeRoleARN is set, the client operates with the
	// assumed role's credentials; otherwise it uses the default chain.
	CostExplorer(ctx context.Context) (CostExplorerClient, error)

	// DynamoDB returns a DynamoDBClient using the default credential chain.
	// The settings table lives in the account the job runs in, so no role
	// assumption is involved even when billing reads assume one.
	DynamoDB(ctx context.Context) (DynamoDBClient, error)
}

// CostExplorerClient provides access to the Cost Explorer API operations
// needed for the billing notification.
type CostExplorerClient interface {
	// GetCostAndUsage returns the cost accrued over [start, end) for the
	// given metric. Dates are canonical YYYY-MM-DD strings and end is an
	// exclusive upper bound, matching the Cost Explorer DateInterval
	// convention. The returned CostResult carries the dates exactly as the
	// API echoed them back.
	GetCostAndUsage(ctx context.Context, start, end, metric string) (*CostResult, error)
}

// DynamoDBClient provides access to the DynamoDB operations needed for the
// settings table.
type DynamoDBClient interface {
	// GetSettingValue reads the "value" attribute of the item keyed by
	// type=key in the given table. Returns an error if the item or the
	// attribute is missing.
	GetSettingValue(ctx context.Context, table, key string) (string, error)
}

// ClientConfig configures the AWS client creation.
type ClientConfig struct {
	// DefaultRegion is the default AWS region for API calls
	DefaultRegion string

	// AssumeRoleARN is an optional IAM role to assume for Cost Explorer
	// calls. Empty means the default credential chain is used directly.
	AssumeRoleARN string

	// MaxRetries is the maximum number of retry attempts for AWS API calls.
	// Zero keeps the SDK default.
	MaxRetries int

	// HTTPTimeout is the timeout for HTTP requests to AWS APIs.
	// Zero keeps the SDK default.
	HTTPTimeout time.Duration
}

// NewClient creates a new AWS client with the specified configuration.
// The client handles credential management, AssumeRole operations, and
// retries automatically.
//
// For production use, this creates a RealClient that connects to actual AWS APIs.
// For testing with LocalStack, use NewClientWithEndpoint instead.
func NewClient(ctx context.Context, config ClientConfig) (Client, error) {
	// Create a real AWS client with no custom endpoint (production use)
	return NewClientWithEndpoint(ctx, config, "")
}

// NewClientWithEndpoint creates a new AWS client with a custom endpoint URL.
// This is primarily used for testing with LocalStack.
//
// For production use, pass an empty endpointURL or use NewClient instead.
// For LocalStack testing, pass "http://localhost:4566" as endpointURL.
func NewClientWithEndpoint(ctx context.Context, config ClientConfig, endpointURL string) (Client, error) {
	return NewRealClient(ctx, config, endpointURL)
}
