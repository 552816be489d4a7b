package menu

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"banquet-admin/model"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
)

// HTTPFetcher calls one booking API endpoint. The endpoint is a template where
// {id} is the booking id and {ref} the customer reference (or the id).
type HTTPFetcher struct {
	endpoint string
	timeout  time.Duration
}

func NewHTTPFetcher(endpoint string, timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{endpoint: endpoint, timeout: timeout}
}

func (f *HTTPFetcher) Name() string {
	return "http:" + f.endpoint
}

func (f *HTTPFetcher) URL(booking *model.Booking) string {
	return strings.NewReplacer(
		"{id}", url.PathEscape(booking.Id.Hex()),
		"{ref}", url.PathEscape(booking.Ref()),
	).Replace(f.endpoint)
}

type agentResult struct {
	code int
	body []byte
	errs []error
}

func (f *HTTPFetcher) Fetch(ctx context.Context, booking *model.Booking, token string) (bson.Raw, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	target := f.URL(booking)
	done := make(chan agentResult, 1)

	go func() {
		agent := fiber.Get(target)
		agent.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
		// a failed attempt falls through to the next candidate
		agent.RetryIf(func(*fiber.Request) bool { return false })
		if token != "" {
			agent.Set(fiber.HeaderAuthorization, "Bearer "+token)
		}
		if f.timeout > 0 {
			agent.Timeout(f.timeout)
		}
		code, body, errs := agent.Bytes()
		done <- agentResult{code: code, body: body, errs: errs}
	}()

	var res agentResult
	select {
	case <-ctx.Done():
		reason := "abandoned"
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			reason = "timed out"
		}
		return nil, &FetchError{Fetcher: f.Name(), Reason: reason, Cause: ctx.Err()}
	case res = <-done:
	}

	if len(res.errs) > 0 {
		return nil, &FetchError{Fetcher: f.Name(), Reason: "request failed", Cause: res.errs[0]}
	}
	if res.code < fiber.StatusOK || res.code >= fiber.StatusMultipleChoices {
		return nil, &FetchError{Fetcher: f.Name(), Reason: "unexpected response", Status: res.code}
	}

	payload, err := DecodePayload(res.body)
	if err != nil {
		return nil, &FetchError{Fetcher: f.Name(), Reason: "undecodable body", Status: res.code, Cause: err}
	}
	return payload, nil
}
