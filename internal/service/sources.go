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

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/nextdoor/costline/internal/notify"
	"github.com/nextdoor/costline/pkg/aws"
	"github.com/nextdoor/costline/pkg/billing"
)

// Settings-table keys for the LINE credentials. The table schema is a
// "type" partition key with a "value" payload attribute.
const (
	settingKeyChannelID   = "line_channel_id"
	settingKeyAccessToken = "line_access_token"
)

// CostExplorerSource implements BillingSource on top of the Cost Explorer
// API. It derives the reporting range from the current date and carries the
// dates the API echoes back, not the ones it asked for.
type CostExplorerSource struct {
	// Client is the AWS client abstraction
	Client aws.Client

	// Metric is the Cost Explorer metric to query (e.g. UnblendedCost)
	Metric string
}

// GetBillingPeriod queries the month-to-date cost as of now.
func (s *CostExplorerSource) GetBillingPeriod(ctx context.Context, now time.Time) (*billing.Period, error) {
	start, end := billing.DateRange(now)

	ce, err := s.Client.CostExplorer(ctx)
	if err != nil {
		return nil, fmt.Errorf("create cost explorer client: %w", err)
	}

	result, err := ce.GetCostAndUsage(ctx, start, end, s.Metric)
	if err != nil {
		return nil, err
	}

	return &billing.Period{
		Start:  result.Start,
		End:    result.End,
		Amount: result.Amount,
	}, nil
}

// DynamoTokenStore implements CredentialStore on top of the DynamoDB
// settings table.
type DynamoTokenStore struct {
	// Client is the AWS client abstraction
	Client aws.Client

	// Table is the settings table name
	Table string
}

// GetCredentials reads the LINE channel id and access token. Both settings
// must be present; a missing one fails the run before any send.
func (s *DynamoTokenStore) GetCredentials(ctx context.Context) (*notify.Credentials, error) {
	ddb, err := s.Client.DynamoDB(ctx)
	if err != nil {
		return nil, fmt.Errorf("create dynamodb client: %w", err)
	}

	channelID, err := ddb.GetSettingValue(ctx, s.Table, settingKeyChannelID)
	if err != nil {
		return nil, err
	}

	accessToken, err := ddb.GetSettingValue(ctx, s.Table, settingKeyAccessToken)
	if err != nil {
		return nil, err
	}

	return &notify.Credentials{
		ChannelID:   channelID,
		AccessToken: accessToken,
	}, nil
}
