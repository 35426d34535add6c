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
	"sync"
)

// MockClient is a mock implementation of the Client interface for testing.
// It provides configurable responses and tracks method calls.
type MockClient struct {
	mu sync.RWMutex

	// CostExplorerClientInstance is the mock Cost Explorer client
	CostExplorerClientInstance *MockCostExplorerClient

	// DynamoDBClientInstance is the mock DynamoDB client
	DynamoDBClientInstance *MockDynamoDBClient

	// Errors can be set to simulate client construction failures
	CostExplorerError error
	DynamoDBError     error
}

// NewMockClient creates a new MockClient with initialized service mocks.
func NewMockClient() *MockClient {
	return &MockClient{
		CostExplorerClientInstance: NewMockCostExplorerClient(),
		DynamoDBClientInstance:     NewMockDynamoDBClient(),
	}
}

// CostExplorer returns the mock Cost Explorer client.
func (m *MockClient) CostExplorer(_ context.Context) (CostExplorerClient, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.CostExplorerError != nil {
		return nil, m.CostExplorerError
	}
	return m.CostExplorerClientInstance, nil
}

// DynamoDB returns the mock DynamoDB client.
func (m *MockClient) DynamoDB(_ context.Context) (DynamoDBClient, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.DynamoDBError != nil {
		return nil, m.DynamoDBError
	}
	return m.DynamoDBClientInstance, nil
}

// GetCostAndUsageCall records one GetCostAndUsage invocation for testing.
type GetCostAndUsageCall struct {
	Start  string
	End    string
	Metric string
}

// MockCostExplorerClient is a mock implementation of CostExplorerClient.
type MockCostExplorerClient struct {
	mu sync.Mutex

	// Result is returned from GetCostAndUsage when Err is nil
	Result *CostResult

	// Err is returned from GetCostAndUsage when set
	Err error

	// Calls tracks all GetCostAndUsage invocations
	Calls []GetCostAndUsageCall
}

// NewMockCostExplorerClient creates a new MockCostExplorerClient.
func NewMockCostExplorerClient() *MockCostExplorerClient {
	return &MockCostExplorerClient{}
}

// GetCostAndUsage returns the configured result or error and records the call.
func (m *MockCostExplorerClient) GetCostAndUsage(_ context.Context, start, end, metric string) (*CostResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, GetCostAndUsageCall{Start: start, End: end, Metric: metric})

	if m.Err != nil {
		return nil, m.Err
	}
	if m.Result == nil {
		return nil, fmt.Errorf("mock cost explorer has no result configured")
	}
	return m.Result, nil
}

// CallCount returns the number of GetCostAndUsage invocations so far.
func (m *MockCostExplorerClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// GetSettingValueCall records one GetSettingValue invocation for testing.
type GetSettingValueCall struct {
	Table string
	Key   string
}

// MockDynamoDBClient is a mock implementation of DynamoDBClient backed by
// an in-memory map of setting keys to values.
type MockDynamoDBClient struct {
	mu sync.Mutex

	// Values maps setting keys to their stored values
	Values map[string]string

	// Err is returned from GetSettingValue when set
	Err error

	// Calls tracks all GetSettingValue invocations
	Calls []GetSettingValueCall
}

// NewMockDynamoDBClient creates a new MockDynamoDBClient with an empty store.
func NewMockDynamoDBClient() *MockDynamoDBClient {
	return &MockDynamoDBClient{
		Values: make(map[string]string),
	}
}

// GetSettingValue returns the stored value for key and records the call.
// Missing keys produce an error, matching the real client's contract.
func (m *MockDynamoDBClient) GetSettingValue(_ context.Context, table, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, GetSettingValueCall{Table: table, Key: key})

	if m.Err != nil {
		return "", m.Err
	}
	value, ok := m.Values[key]
	if !ok || value == "" {
		return "", fmt.Errorf("setting %s not found in table %s", key, table)
	}
	return value, nil
}
