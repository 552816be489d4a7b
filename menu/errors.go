package menu

import "fmt"

// FetchError describes why a single fetcher produced no payload.
type FetchError struct {
	Fetcher string
	Reason  string
	Status  int
	Cause   error
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Fetcher, e.Reason)
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

type panicError struct {
	value any
}

func (p panicError) Error() string {
	return fmt.Sprint(p.value)
}
