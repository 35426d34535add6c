/*
Copyright 2025 Costline Contributors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package e2e

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/go-logr/logr"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nextdoor/costline/internal/notify"
	"github.com/nextdoor/costline/internal/service"
	"github.com/nextdoor/costline/pkg/aws"
)

// linePush is one request captured by the fake LINE endpoint.
type linePush struct {
	Auth string
	To   string
	Text string
}

// fakeLineServer records pushes and answers with a configurable status.
type fakeLineServer struct {
	mu     sync.Mutex
	status int
	pushes []linePush
	server *httptest.Server
}

func newFakeLineServer() *fakeLineServer {
	f := &fakeLineServer{status: http.StatusOK}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			To       string `json:"to"`
			Messages []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"messages"`
		}
		Expect(json.NewDecoder(r.Body).Decode(&body)).To(Succeed())

		f.mu.Lock()
		push := linePush{Auth: r.Header.Get("Authorization"), To: body.To}
		if len(body.Messages) > 0 {
			push.Text = body.Messages[0].Text
		}
		f.pushes = append(f.pushes, push)
		status := f.status
		f.mu.Unlock()

		w.WriteHeader(status)
		_, _ = w.Write([]byte("{}"))
	}))
	return f
}

func (f *fakeLineServer) Pushes() []linePush {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]linePush(nil), f.pushes...)
}

var _ = Describe("Billing Notification", func() {
	var (
		mockAWS  *aws.MockClient
		lineAPI  *fakeLineServer
		svc      *service.Service
		fixedNow time.Time
	)

	BeforeEach(func() {
		mockAWS = aws.NewMockClient()
		lineAPI = newFakeLineServer()
		fixedNow = time.Date(2025, time.November, 22, 9, 0, 0, 0, time.UTC)

		mockAWS.CostExplorerClientInstance.Result = &aws.CostResult{
			Start:  "2025-11-01",
			End:    "2025-11-22",
			Amount: 123.456,
		}
		mockAWS.DynamoDBClientInstance.Values["line_channel_id"] = "U4af4980629"
		mockAWS.DynamoDBClientInstance.Values["line_access_token"] = "channel-token"

		svc = &service.Service{
			Billing:     &service.CostExplorerSource{Client: mockAWS, Metric: "UnblendedCost"},
			Credentials: &service.DynamoTokenStore{Client: mockAWS, Table: "costline-settings"},
			Notifier:    notify.NewLineNotifier(lineAPI.server.URL, 5*time.Second),
			Log:         logr.Discard(),
			Now:         func() time.Time { return fixedNow },
		}
	})

	AfterEach(func() {
		lineAPI.server.Close()
	})

	Context("happy path", func() {
		It("pushes the formatted month-to-date message to LINE", func() {
			Expect(svc.Notify(context.Background())).To(Succeed())

			pushes := lineAPI.Pushes()
			Expect(pushes).To(HaveLen(1))
			Expect(pushes[0].Auth).To(Equal("Bearer channel-token"))
			Expect(pushes[0].To).To(Equal("U4af4980629"))
			Expect(pushes[0].Text).To(Equal("11/01～11/21の請求額は、123.456 USDです。"))
		})

		It("queries Cost Explorer with the range derived from today", func() {
			Expect(svc.Notify(context.Background())).To(Succeed())

			calls := mockAWS.CostExplorerClientInstance.Calls
			Expect(calls).To(HaveLen(1))
			Expect(calls[0].Start).To(Equal("2025-11-01"))
			Expect(calls[0].End).To(Equal("2025-11-22"))
			Expect(calls[0].Metric).To(Equal("UnblendedCost"))
		})

		It("reports the previous full month on the first of a month", func() {
			fixedNow = time.Date(2025, time.January, 1, 9, 0, 0, 0, time.UTC)
			mockAWS.CostExplorerClientInstance.Result = &aws.CostResult{
				Start:  "2024-12-01",
				End:    "2025-01-01",
				Amount: 100.0,
			}

			Expect(svc.Notify(context.Background())).To(Succeed())

			calls := mockAWS.CostExplorerClientInstance.Calls
			Expect(calls).To(HaveLen(1))
			Expect(calls[0].Start).To(Equal("2024-12-01"))
			Expect(calls[0].End).To(Equal("2025-01-01"))

			pushes := lineAPI.Pushes()
			Expect(pushes).To(HaveLen(1))
			Expect(pushes[0].Text).To(Equal("12/01～12/31の請求額は、100.000 USDです。"))
		})
	})

	Context("failure short-circuits", func() {
		It("sends nothing when the billing fetch fails", func() {
			mockAWS.CostExplorerClientInstance.Err = errors.New("throttled")

			Expect(svc.Notify(context.Background())).NotTo(Succeed())
			Expect(lineAPI.Pushes()).To(BeEmpty())
		})

		It("sends nothing when the billing period cannot be formatted", func() {
			mockAWS.CostExplorerClientInstance.Result = &aws.CostResult{
				Start:  "invalid-date",
				End:    "2025-11-22",
				Amount: 100.0,
			}

			err := svc.Notify(context.Background())
			Expect(err).To(MatchError(service.ErrEmptyMessage))
			Expect(lineAPI.Pushes()).To(BeEmpty())
		})

		It("sends nothing when credentials are missing", func() {
			delete(mockAWS.DynamoDBClientInstance.Values, "line_access_token")

			Expect(svc.Notify(context.Background())).NotTo(Succeed())
			Expect(lineAPI.Pushes()).To(BeEmpty())
		})

		It("surfaces a LINE delivery failure without retrying", func() {
			lineAPI.status = http.StatusInternalServerError

			Expect(svc.Notify(context.Background())).NotTo(Succeed())
			// Exactly one attempt reached the endpoint
			Expect(lineAPI.Pushes()).To(HaveLen(1))
		})
	})
})
