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

// Package service wires the billing notification pipeline together: fetch
// the month-to-date cost, format the message, load LINE credentials, push.
// Each collaborator is a one-method interface so the whole pipeline runs
// against fakes in tests.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-logr/logr"

	"github.com/nextdoor/costline/internal/notify"
	"github.com/nextdoor/costline/pkg/billing"
)

// ErrEmptyMessage is returned when the formatter produced the empty
// sentinel, meaning the billing period's dates could not be displayed.
var ErrEmptyMessage = errors.New("formatted billing message is empty")

// BillingSource fetches the billing period to report as of now.
type BillingSource interface {
	GetBillingPeriod(ctx context.Context, now time.Time) (*billing.Period, error)
}

// CredentialStore fetches the LINE credentials for the outbound push.
type CredentialStore interface {
	GetCredentials(ctx context.Context) (*notify.Credentials, error)
}

// Notifier delivers one text message using the given credentials.
type Notifier interface {
	Send(ctx context.Context, message string, creds notify.Credentials) error
}

// Service runs one billing notification: billing fetch, formatting,
// credential fetch, send, short-circuiting at the first failure. At most
// one outbound send happens per run, and nothing is retried here — the
// job is rerun by its scheduler, not by itself.
type Service struct {
	// Billing provides the month-to-date cost data
	Billing BillingSource

	// Credentials provides the LINE channel id and access token
	Credentials CredentialStore

	// Notifier delivers the formatted message
	Notifier Notifier

	// Log records progress at the orchestration boundary; the computation
	// underneath stays silent
	Log logr.Logger

	// Now supplies the current date; defaults to time.Now when nil.
	// Injected so tests can pin the billing period.
	Now func() time.Time
}

// Notify executes one notification run. A nil return means the message was
// delivered; a non-nil error names the stage that failed.
func (s *Service) Notify(ctx context.Context) error {
	nowFn := s.Now
	if nowFn == nil {
		nowFn = time.Now
	}

	period, err := s.Billing.GetBillingPeriod(ctx, nowFn())
	if err != nil {
		s.Log.Error(err, "failed to get billing info")
		return fmt.Errorf("get billing info: %w", err)
	}
	s.Log.Info("fetched billing info",
		"start", period.Start,
		"end", period.End,
		"amount", period.Amount)

	message := billing.FormatMessage(*period)
	if message == "" {
		s.Log.Error(ErrEmptyMessage, "failed to format message",
			"start", period.Start,
			"end", period.End)
		return ErrEmptyMessage
	}
	s.Log.Info("formatted message", "message", message)

	creds, err := s.Credentials.GetCredentials(ctx)
	if err != nil {
		s.Log.Error(err, "failed to get credentials")
		return fmt.Errorf("get credentials: %w", err)
	}

	if err := s.Notifier.Send(ctx, message, *creds); err != nil {
		s.Log.Error(err, "failed to send notification")
		return fmt.Errorf("send notification: %w", err)
	}

	s.Log.Info("notification sent", "channel", creds.ChannelID)
	return nil
}
