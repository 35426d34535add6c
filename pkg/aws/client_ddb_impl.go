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

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// RealDynamoDBClient is a production implementation of DynamoDBClient that
// makes real API calls to AWS DynamoDB using the AWS SDK v2.
type RealDynamoDBClient struct {
	client *dynamodb.Client
}

// NewRealDynamoDBClient creates a new DynamoDB client on the provided config.
func NewRealDynamoDBClient(cfg aws.Config, endpointURL string) *RealDynamoDBClient {
	ddbOpts := []func(*dynamodb.Options){}
	if endpointURL != "" {
		// Override endpoint for LocalStack testing
		ddbOpts = append(ddbOpts, func(o *dynamodb.Options) {
			o.BaseEndpoint = &endpointURL
		})
	}

	return &RealDynamoDBClient{
		client: dynamodb.NewFromConfig(cfg, ddbOpts...),
	}
}

// settingItem is the shape of one row in the settings table: items are keyed
// by a "type" partition key and carry the payload in a "value" attribute.
type settingItem struct {
	Type  string `dynamodbav:"type"`
	Value string `dynamodbav:"value"`
}

// GetSettingValue reads the "value" attribute of the item keyed by type=key.
func (c *RealDynamoDBClient) GetSettingValue(ctx context.Context, table, key string) (string, error) {
	out, err := c.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key: map[string]ddbtypes.AttributeValue{
			"type": &ddbtypes.AttributeValueMemberS{Value: key},
		},
	})
	if err != nil {
		return "", fmt.Errorf("dynamodb GetItem %s/%s: %w", table, key, err)
	}

	return settingFromItem(out.Item, table, key)
}

// settingFromItem unmarshals a settings-table item and extracts its value.
// Split out from the API call so response handling is unit-testable.
func settingFromItem(item map[string]ddbtypes.AttributeValue, table, key string) (string, error) {
	if len(item) == 0 {
		return "", fmt.Errorf("setting %s not found in table %s", key, table)
	}

	var setting settingItem
	if err := attributevalue.UnmarshalMap(item, &setting); err != nil {
		return "", fmt.Errorf("unmarshal setting %s from table %s: %w", key, table, err)
	}

	if setting.Value == "" {
		return "", fmt.Errorf("setting %s in table %s has no value", key, table)
	}

	return setting.Value, nil
}
