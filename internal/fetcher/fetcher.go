// Package fetcher renders advice slips into two display regions.
//
// One activation issues one request. Activations are independent: there is
// no de-duplication, queuing or cancellation, and overlapping activations
// may complete in any order. Failures are logged and swallowed; the
// display is only written on success.
package fetcher

import (
	"strconv"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apierrors "github.com/diogo/advicedice/internal/errors"
	"github.com/diogo/advicedice/internal/models"
)

// QuoteToken is written before and after the advice text
const QuoteToken = ` " `

// Source supplies advice slips
type Source interface {
	FetchAdvice() (*models.AdviceSlip, error)
}

// AdviceFetcher connects a trigger to a Source and two display regions
type AdviceFetcher struct {
	source       Source
	idRegion     Region
	adviceRegion Region
	logger       *zap.Logger
	newTriggerID func() string

	// renderMu keeps each id+advice pair together on the display
	renderMu sync.Mutex
	wg       sync.WaitGroup
}

// Option configures an AdviceFetcher
type Option func(*AdviceFetcher)

// WithLogger sets the diagnostic logger
func WithLogger(logger *zap.Logger) Option {
	return func(f *AdviceFetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithTriggerIDs overrides how activation ids are generated
func WithTriggerIDs(gen func() string) Option {
	return func(f *AdviceFetcher) {
		if gen != nil {
			f.newTriggerID = gen
		}
	}
}

// New creates an AdviceFetcher writing to idRegion and adviceRegion
func New(source Source, idRegion, adviceRegion Region, opts ...Option) *AdviceFetcher {
	f := &AdviceFetcher{
		source:       source,
		idRegion:     idRegion,
		adviceRegion: adviceRegion,
		logger:       zap.NewNop(),
		newTriggerID: uuid.NewString,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// OnTrigger starts one activation and returns immediately
func (f *AdviceFetcher) OnTrigger() {
	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		f.Fetch()
	}()
}

// Wait blocks until every activation started by OnTrigger has finished
func (f *AdviceFetcher) Wait() {
	f.wg.Wait()
}

// Fetch runs one activation synchronously and reports whether the
// display was updated. Errors never leave this method.
func (f *AdviceFetcher) Fetch() bool {
	triggerID := f.newTriggerID()
	log := f.logger.With(zap.String("trigger", triggerID))

	log.Debug("fetching advice")

	slip, err := f.source.FetchAdvice()
	if err == nil && slip == nil {
		err = apierrors.NewParseError("no slip returned", "slip")
	}
	if err != nil {
		fields := []zap.Field{
			zap.Error(err),
			zap.String("kind", string(apierrors.KindOf(err))),
		}
		if status := apierrors.GetHTTPStatus(err); status > 0 {
			fields = append(fields, zap.Int("status", status))
		}
		if endpoint := apierrors.GetEndpoint(err); endpoint != "" {
			fields = append(fields, zap.String("endpoint", endpoint))
		}
		if body := apierrors.GetResponseBody(err); body != "" {
			fields = append(fields, zap.String("body", body))
		}
		log.Error("error fetching advice", fields...)
		return false
	}

	f.render(slip)

	log.Debug("advice rendered", zap.Int("id", slip.ID))
	return true
}

// render writes both regions as one step. Completions may still land out
// of order, but never as a mixed pair.
func (f *AdviceFetcher) render(slip *models.AdviceSlip) {
	f.renderMu.Lock()
	defer f.renderMu.Unlock()
	f.idRegion.SetText(FormatID(slip.ID))
	f.adviceRegion.SetText(FormatAdvice(slip.Advice))
}

// FormatID renders an advice id for the id region
func FormatID(id int) string {
	return strconv.Itoa(id)
}

// FormatAdvice renders advice text for the advice region
func FormatAdvice(advice string) string {
	return QuoteToken + advice + QuoteToken
}
