package fetcher

import (
	"errors"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/diogo/advicedice/internal/api"
	apierrors "github.com/diogo/advicedice/internal/errors"
	"github.com/diogo/advicedice/internal/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const (
	priorID     = "117"
	priorAdvice = "prior advice"
)

// newObservedLogger returns a logger recording every entry at Debug and above
func newObservedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

// stubDoer answers every request with a fixed status and body
type stubDoer struct {
	status int
	body   string
	err    error
	calls  atomic.Int32
}

func (d *stubDoer) Do(req *fhttp.Request) (*fhttp.Response, error) {
	d.calls.Add(1)
	if d.err != nil {
		return nil, d.err
	}
	return &fhttp.Response{
		StatusCode: d.status,
		Body:       io.NopCloser(strings.NewReader(d.body)),
	}, nil
}

func newFixture(t *testing.T, source Source) (*AdviceFetcher, *TextRegion, *TextRegion, *observer.ObservedLogs) {
	t.Helper()
	logger, logs := newObservedLogger()
	idRegion := NewTextRegion(priorID)
	adviceRegion := NewTextRegion(priorAdvice)
	f := New(source, idRegion, adviceRegion, WithLogger(logger))
	return f, idRegion, adviceRegion, logs
}

func TestFormatAdvice(t *testing.T) {
	tests := []struct {
		advice string
		want   string
	}{
		{"Be kind.", ` " Be kind. " `},
		{"Test", ` " Test " `},
		{"", ` "  " `},
	}

	for _, tt := range tests {
		t.Run(tt.advice, func(t *testing.T) {
			if got := FormatAdvice(tt.advice); got != tt.want {
				t.Errorf("FormatAdvice(%q) = %q, want %q", tt.advice, got, tt.want)
			}
		})
	}
}

func TestFormatID(t *testing.T) {
	if got := FormatID(5); got != "5" {
		t.Errorf("FormatID(5) = %q", got)
	}
}

func TestFetch_Success(t *testing.T) {
	mock := &api.MockAdviceClient{
		FetchAdviceVal: &models.AdviceSlip{ID: 5, Advice: "Be kind."},
	}
	f, idRegion, adviceRegion, logs := newFixture(t, mock)

	if !f.Fetch() {
		t.Fatal("Fetch() should report success")
	}

	if idRegion.Text() != "5" {
		t.Errorf("id region = %q, want %q", idRegion.Text(), "5")
	}
	if adviceRegion.Text() != QuoteToken+"Be kind."+QuoteToken {
		t.Errorf("advice region = %q", adviceRegion.Text())
	}
	if n := logs.FilterLevelExact(zapcore.ErrorLevel).Len(); n != 0 {
		t.Errorf("expected no error entries, got %d", n)
	}
}

func TestFetch_FailuresLeaveDisplayUnchanged(t *testing.T) {
	tests := []struct {
		name     string
		doer     *stubDoer
		wantKind apierrors.Kind
	}{
		{
			name:     "status 500",
			doer:     &stubDoer{status: 500, body: "oops"},
			wantKind: apierrors.KindRequestFailed,
		},
		{
			name:     "body not JSON",
			doer:     &stubDoer{status: 200, body: "definitely not json"},
			wantKind: apierrors.KindMalformedResponse,
		},
		{
			name:     "missing slip",
			doer:     &stubDoer{status: 200, body: `{"message": {"type": "error", "text": "nope"}}`},
			wantKind: apierrors.KindMalformedResponse,
		},
		{
			name:     "network failure",
			doer:     &stubDoer{err: errors.New("no such host")},
			wantKind: apierrors.KindNetwork,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := api.NewClient(api.WithHTTPClient(tt.doer))
			if err != nil {
				t.Fatalf("NewClient() error = %v", err)
			}
			f, idRegion, adviceRegion, logs := newFixture(t, client)

			if f.Fetch() {
				t.Error("Fetch() should report failure")
			}

			if idRegion.Text() != priorID {
				t.Errorf("id region changed to %q", idRegion.Text())
			}
			if adviceRegion.Text() != priorAdvice {
				t.Errorf("advice region changed to %q", adviceRegion.Text())
			}

			errorLogs := logs.FilterLevelExact(zapcore.ErrorLevel).All()
			if len(errorLogs) != 1 {
				t.Fatalf("expected one diagnostic entry, got %d", len(errorLogs))
			}
			ctx := errorLogs[0].ContextMap()
			if ctx["kind"] != string(tt.wantKind) {
				t.Errorf("kind = %v, want %s", ctx["kind"], tt.wantKind)
			}
			if _, ok := ctx["trigger"]; !ok {
				t.Error("diagnostic entry should carry the trigger id")
			}
		})
	}
}

func TestFetch_StatusIsLogged(t *testing.T) {
	client, _ := api.NewClient(api.WithHTTPClient(&stubDoer{status: 500, body: "service down"}))
	f, _, _, logs := newFixture(t, client)

	f.Fetch()

	entries := logs.FilterLevelExact(zapcore.ErrorLevel).All()
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	ctx := entries[0].ContextMap()
	if status := ctx["status"]; status != int64(500) {
		t.Errorf("status field = %v, want 500", status)
	}
	if body := ctx["body"]; body != "service down" {
		t.Errorf("body field = %v, want response excerpt", body)
	}
}

func TestFetch_OverlappingCompletionsKeepPairsTogether(t *testing.T) {
	slips := []*models.AdviceSlip{
		{ID: 1, Advice: "one"},
		{ID: 2, Advice: "two"},
	}
	var next atomic.Int32
	secondFetched := make(chan struct{})
	source := &api.MockAdviceClient{
		FetchFunc: func() (*models.AdviceSlip, error) {
			n := next.Add(1)
			if n == 2 {
				close(secondFetched)
			}
			return slips[n-1], nil
		},
	}

	idRegion := NewTextRegion(priorID)
	adviceRegion := NewTextRegion(priorAdvice)

	// The first advice write stalls until the second activation has its slip.
	paused := make(chan struct{})
	release := make(chan struct{})
	var stalled atomic.Bool
	stallingAdvice := RegionFunc(func(text string) {
		if stalled.CompareAndSwap(false, true) {
			close(paused)
			<-release
		}
		adviceRegion.SetText(text)
	})

	f := New(source, idRegion, stallingAdvice)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		f.Fetch()
	}()
	<-paused

	go func() {
		defer wg.Done()
		f.Fetch()
	}()
	<-secondFetched
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	id, advice := idRegion.Text(), adviceRegion.Text()
	pairs := map[string]string{
		"1": FormatAdvice("one"),
		"2": FormatAdvice("two"),
	}
	if pairs[id] != advice {
		t.Errorf("id %q shown with advice %q", id, advice)
	}
}

func TestFetch_NilSlipIsMalformed(t *testing.T) {
	f, idRegion, _, logs := newFixture(t, &api.MockAdviceClient{})

	if f.Fetch() {
		t.Error("Fetch() should fail on a nil slip")
	}
	if idRegion.Text() != priorID {
		t.Error("id region should be unchanged")
	}
	if logs.FilterLevelExact(zapcore.ErrorLevel).Len() != 1 {
		t.Error("expected one diagnostic entry")
	}
}

func TestOnTrigger_TwoIndependentRequests(t *testing.T) {
	doer := &stubDoer{status: 200, body: `{"slip": {"id": 8, "advice": "Sleep."}}`}
	client, _ := api.NewClient(api.WithHTTPClient(doer))
	f, idRegion, adviceRegion, _ := newFixture(t, client)

	f.OnTrigger()
	f.OnTrigger()
	f.Wait()

	if got := doer.calls.Load(); got != 2 {
		t.Errorf("expected 2 requests, got %d", got)
	}
	if idRegion.Text() != "8" || adviceRegion.Text() != FormatAdvice("Sleep.") {
		t.Errorf("regions = %q / %q", idRegion.Text(), adviceRegion.Text())
	}
}

func TestOnTrigger_DoesNotBlock(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 2)
	mock := &api.MockAdviceClient{
		FetchFunc: func() (*models.AdviceSlip, error) {
			started <- struct{}{}
			<-release
			return &models.AdviceSlip{ID: 1, Advice: "Wait."}, nil
		},
	}
	f, _, _, _ := newFixture(t, mock)

	f.OnTrigger()
	f.OnTrigger()

	// Both activations are in flight at once; neither waits for the other.
	<-started
	<-started

	close(release)
	f.Wait()

	if mock.Calls() != 2 {
		t.Errorf("expected 2 calls, got %d", mock.Calls())
	}
}

func TestOnTrigger_FailureDoesNotStopLaterTriggers(t *testing.T) {
	var n atomic.Int32
	mock := &api.MockAdviceClient{
		FetchFunc: func() (*models.AdviceSlip, error) {
			if n.Add(1) == 1 {
				return nil, apierrors.NewRequestFailedError(500, models.EndpointAdvice)
			}
			return &models.AdviceSlip{ID: 2, Advice: "Try again."}, nil
		},
	}
	f, idRegion, _, logs := newFixture(t, mock)

	f.OnTrigger()
	f.Wait()
	if idRegion.Text() != priorID {
		t.Error("failed activation must not touch the display")
	}

	f.OnTrigger()
	f.Wait()
	if idRegion.Text() != "2" {
		t.Errorf("id region = %q, want 2", idRegion.Text())
	}
	if logs.FilterLevelExact(zapcore.ErrorLevel).Len() != 1 {
		t.Error("expected exactly one diagnostic entry")
	}
}

func TestTriggerIDs(t *testing.T) {
	var mu sync.Mutex
	seen := map[string]bool{}
	logger, logs := newObservedLogger()
	mock := &api.MockAdviceClient{FetchAdviceErr: errors.New("boom")}

	i := 0
	f := New(mock, NewTextRegion(""), NewTextRegion(""),
		WithLogger(logger),
		WithTriggerIDs(func() string {
			mu.Lock()
			defer mu.Unlock()
			i++
			return "t" + FormatID(i)
		}),
	)

	f.Fetch()
	f.Fetch()

	for _, entry := range logs.FilterLevelExact(zapcore.ErrorLevel).All() {
		seen[entry.ContextMap()["trigger"].(string)] = true
	}
	if !seen["t1"] || !seen["t2"] {
		t.Errorf("expected distinct trigger ids, got %v", seen)
	}
}

func TestEndToEnd_MockEndpoint(t *testing.T) {
	doer := &stubDoer{status: 200, body: `{"slip":{"id":42,"advice":"Test"}}`}
	client, err := api.NewClient(
		api.WithHTTPClient(doer),
		api.WithEndpoint("http://advice.test/advice"),
	)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	idRegion := NewTextRegion("")
	adviceRegion := NewTextRegion("")
	f := New(client, idRegion, adviceRegion)

	f.OnTrigger()
	f.Wait()

	if idRegion.Text() != "42" {
		t.Errorf("id region = %q, want 42", idRegion.Text())
	}
	if adviceRegion.Text() != ` " Test " ` {
		t.Errorf("advice region = %q", adviceRegion.Text())
	}
}
