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

package config

import "time"

// DefaultRegion is the fallback AWS region when none is configured.
// Cost Explorer is served out of us-east-1, so it doubles as a safe default
// for the DynamoDB settings table in single-region deployments.
const DefaultRegion = "us-east-1"

// DefaultCostMetric is the Cost Explorer metric reported when none is
// configured. UnblendedCost is what the Billing console shows by default.
const DefaultCostMetric = "UnblendedCost"

// DefaultLineAPIURL is the LINE Messaging API push endpoint.
const DefaultLineAPIURL = "https://api.line.me/v2/bot/message/push"

// DefaultRequestTimeout bounds the outbound LINE push request.
const DefaultRequestTimeout = 10 * time.Second
