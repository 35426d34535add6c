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

// Package notify delivers notification messages over the LINE Messaging API.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Credentials identifies the LINE channel to push to and authorizes the push.
// Constructed once per run from the settings table and used to build exactly
// one outbound request.
type Credentials struct {
	// ChannelID is the LINE user or group the message is pushed to.
	ChannelID string

	// AccessToken is the channel access token used as a Bearer token.
	AccessToken string
}

// LineNotifier sends text messages through the LINE Messaging API push
// endpoint.
type LineNotifier struct {
	apiURL     string
	httpClient *http.Client
}

// NewLineNotifier creates a LineNotifier for the given push endpoint.
// The timeout bounds each Send call end to end; zero keeps the client's
// default of no timeout, so callers should always pass one.
func NewLineNotifier(apiURL string, timeout time.Duration) *LineNotifier {
	return &LineNotifier{
		apiURL: apiURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// pushRequest is the LINE Messaging API push payload.
type pushRequest struct {
	To       string        `json:"to"`
	Messages []textMessage `json:"messages"`
}

// textMessage is a single text-type message object.
type textMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Send pushes a single text message to the channel named in creds.
// Any response other than 200 OK is an error; the first part of the response
// body is included since LINE returns a JSON error description.
func (n *LineNotifier) Send(ctx context.Context, message string, creds Credentials) error {
	payload, err := json.Marshal(pushRequest{
		To: creds.ChannelID,
		Messages: []textMessage{
			{Type: "text", Text: message},
		},
	})
	if err != nil {
		return fmt.Errorf("marshal LINE push payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.apiURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build LINE push request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+creds.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send LINE push request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("LINE push returned status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	return nil
}
