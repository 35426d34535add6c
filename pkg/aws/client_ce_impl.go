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
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	cetypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
)

// RealCostExplorerClient is a production implementation of CostExplorerClient
// that makes real API calls to AWS Cost Explorer using the AWS SDK v2.
type RealCostExplorerClient struct {
	client *costexplorer.Client
}

// NewRealCostExplorerClient creates a new Cost Explorer client. If creds is
// non-nil (an assumed role), it overrides the credentials loaded into cfg.
func NewRealCostExplorerClient(cfg aws.Config, creds aws.CredentialsProvider, endpointURL string) *RealCostExplorerClient {
	ceOpts := []func(*costexplorer.Options){}
	if creds != nil {
		ceOpts = append(ceOpts, func(o *costexplorer.Options) {
			o.Credentials = creds
		})
	}
	if endpointURL != "" {
		// Override endpoint for LocalStack testing
		ceOpts = append(ceOpts, func(o *costexplorer.Options) {
			o.BaseEndpoint = &endpointURL
		})
	}

	return &RealCostExplorerClient{
		client: costexplorer.NewFromConfig(cfg, ceOpts...),
	}
}

// GetCostAndUsage returns the cost accrued over [start, end) for the given
// metric, at monthly granularity. The month-to-date range always fits a
// single ResultsByTime bucket, so only the first entry is read.
func (c *RealCostExplorerClient) GetCostAndUsage(ctx context.Context, start, end, metric string) (*CostResult, error) {
	out, err := c.client.GetCostAndUsage(ctx, &costexplorer.GetCostAndUsageInput{
		TimePeriod: &cetypes.DateInterval{
			Start: aws.String(start),
			End:   aws.String(end),
		},
		Granularity: cetypes.GranularityMonthly,
		Metrics:     []string{metric},
	})
	if err != nil {
		return nil, fmt.Errorf("cost explorer GetCostAndUsage: %w", err)
	}

	return costResultFromOutput(out, metric)
}

// costResultFromOutput reduces a GetCostAndUsage response to a CostResult.
// Split out from the API call so response handling is unit-testable.
func costResultFromOutput(out *costexplorer.GetCostAndUsageOutput, metric string) (*CostResult, error) {
	if out == nil || len(out.ResultsByTime) == 0 {
		return nil, fmt.Errorf("cost explorer returned no results for metric %s", metric)
	}

	result := out.ResultsByTime[0]
	if result.TimePeriod == nil {
		return nil, fmt.Errorf("cost explorer result has no time period")
	}

	value, ok := result.Total[metric]
	if !ok || value.Amount == nil {
		return nil, fmt.Errorf("cost explorer result has no total for metric %s", metric)
	}

	amount, err := strconv.ParseFloat(*value.Amount, 64)
	if err != nil {
		return nil, fmt.Errorf("unparseable amount %q for metric %s: %w", *value.Amount, metric, err)
	}

	return &CostResult{
		Start:  aws.ToString(result.TimePeriod.Start),
		End:    aws.ToString(result.TimePeriod.End),
		Amount: amount,
	}, nil
}
