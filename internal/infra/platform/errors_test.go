package platform

import (
	"errors"
	"fmt"
	"strconv"
	"testing"
	"time"
)

func TestResetAfter(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		header string
		want   time.Duration
		wantOK bool
	}{
		{"future timestamp", strconv.FormatInt(now.Add(300*time.Second).Unix(), 10), 300 * time.Second, true},
		{"past timestamp", strconv.FormatInt(now.Add(-60*time.Second).Unix(), 10), 0, false},
		{"exactly now", strconv.FormatInt(now.Unix(), 10), 0, false},
		{"not a number", "soon", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Error{Kind: KindRateLimited}
			if tt.header != "" {
				e.Headers = map[string]string{"x-rate-limit-reset": tt.header}
			}
			got, ok := e.ResetAfter(now)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ResetAfter = (%v, %v), want (%v, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestResetAfterMissingHeaders(t *testing.T) {
	e := &Error{Kind: KindRateLimited}
	if _, ok := e.ResetAfter(time.Now()); ok {
		t.Error("ResetAfter ok = true with no headers")
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		err  error
		want ErrorKind
	}{
		{&Error{Kind: KindRateLimited}, KindRateLimited},
		{fmt.Errorf("wrapped: %w", &Error{Kind: KindForbidden}), KindForbidden},
		{NetworkError(errors.New("dial tcp: timeout")), KindNetwork},
		{errors.New("plain"), KindUnknown},
		{nil, KindUnknown},
	}

	for _, tt := range tests {
		if got := KindOf(tt.err); got != tt.want {
			t.Errorf("KindOf(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestNetworkErrorUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	if !errors.Is(NetworkError(cause), cause) {
		t.Error("NetworkError must wrap its cause")
	}
}
