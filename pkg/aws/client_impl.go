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
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// RealClient is a production implementation of the Client interface that
// makes real calls to AWS APIs using the AWS SDK v2.
//
// This implementation handles:
//   - Credential management using AWS SDK default credential chain
//   - STS AssumeRole for cross-account Cost Explorer reads
//   - Automatic retries and exponential backoff
//
// For testing, use MockClient instead.
type RealClient struct {
	config      ClientConfig
	awsCfg      aws.Config
	stsClient   *sts.Client
	ceClient    *RealCostExplorerClient // Cached Cost Explorer client
	ddbClient   *RealDynamoDBClient     // Cached DynamoDB client
	endpointURL string                  // Optional endpoint URL (for LocalStack testing)
}

// NewRealClient creates a new RealClient with the specified configuration.
// The client uses the AWS SDK default credential chain for authentication.
//
// For LocalStack testing, set endpointURL to "http://localhost:4566".
func NewRealClient(ctx context.Context, cfg ClientConfig, endpointURL string) (*RealClient, error) {
	// Load AWS configuration using default credential chain
	// This will automatically use:
	// 1. Environment variables (AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY)
	// 2. Shared credentials file (~/.aws/credentials)
	// 3. IAM role (if running on EC2, ECS, or Lambda)
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.DefaultRegion),
	}
	if cfg.MaxRetries > 0 {
		loadOpts = append(loadOpts, awsconfig.WithRetryMaxAttempts(cfg.MaxRetries))
	}
	if cfg.HTTPTimeout > 0 {
		loadOpts = append(loadOpts, awsconfig.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}

	// Create STS client for AssumeRole operations
	stsOpts := []func(*sts.Options){}
	if endpointURL != "" {
		// Override endpoint for LocalStack testing
		stsOpts = append(stsOpts, func(o *sts.Options) {
			o.BaseEndpoint = &endpointURL
		})
	}
	stsClient := sts.NewFromConfig(awsCfg, stsOpts...)

	return &RealClient{
		config:      cfg,
		awsCfg:      awsCfg,
		stsClient:   stsClient,
		endpointURL: endpointURL,
	}, nil
}

// CostExplorer returns a CostExplorerClient. If ClientConfig.AssumeRoleARN
// is set, the client is built on credentials from an STS AssumeRole call.
// The client is cached so repeated calls do not repeat the AssumeRole.
func (c *RealClient) CostExplorer(ctx context.Context) (CostExplorerClient, error) {
	if c.ceClient != nil {
		return c.ceClient, nil
	}

	// Get credentials (potentially via AssumeRole)
	creds, err := c.getCredentials(ctx)
	if err != nil {
		return nil, err
	}

	client := NewRealCostExplorerClient(c.awsCfg, creds, c.endpointURL)
	c.ceClient = client
	return client, nil
}

// DynamoDB returns a DynamoDBClient on the default credential chain.
// The settings table is local to the job's own account, so AssumeRoleARN
// does not apply here.
func (c *RealClient) DynamoDB(_ context.Context) (DynamoDBClient, error) {
	if c.ddbClient != nil {
		return c.ddbClient, nil
	}

	client := NewRealDynamoDBClient(c.awsCfg, c.endpointURL)
	c.ddbClient = client
	return client, nil
}

// getCredentials returns a credentials provider for Cost Explorer calls.
// If AssumeRoleARN is set, it performs an STS AssumeRole operation and
// returns the assumed role's static credentials. Otherwise it returns nil,
// meaning the default chain already loaded into awsCfg is used as-is.
func (c *RealClient) getCredentials(ctx context.Context) (aws.CredentialsProvider, error) {
	if c.config.AssumeRoleARN == "" {
		return nil, nil
	}

	// Perform AssumeRole
	result, err := c.stsClient.AssumeRole(ctx, &sts.AssumeRoleInput{
		RoleArn:         &c.config.AssumeRoleARN,
		RoleSessionName: ptrString("costline-billing"),
	})
	if err != nil {
		return nil, err
	}

	// Return static credentials from the assumed role
	return credentials.StaticCredentialsProvider{
		Value: aws.Credentials{
			AccessKeyID:     *result.Credentials.AccessKeyId,
			SecretAccessKey: *result.Credentials.SecretAccessKey,
			SessionToken:    *result.Credentials.SessionToken,
		},
	}, nil
}

// ptrString returns a pointer to the given string.
func ptrString(s string) *string {
	return &s
}
