package queue

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// DefaultTab is the worksheet the request form writes to.
const DefaultTab = "Requests"

// Source supplies the current rows of a worksheet. Implementations must
// return errors matching ErrSourceUnavailable when the sheet cannot be read.
type Source interface {
	Fetch(ctx context.Context, sheetID, tab string) (Sheet, error)
}

// Runner produces a board for a set of view options. *Pipeline is the local
// implementation; a running dashboard can also serve as one.
type Runner interface {
	Run(ctx context.Context, opts Options) (*Board, error)
}

// Settings is everything a pipeline needs to know about the event. Tab,
// Location and Aliases default when empty. Cutoff does not: its zero value
// is a valid cutoff at midnight, so callers pass DefaultCutoff (18:30) or a
// configured value.
type Settings struct {
	SheetID string
	Tab     string
	// Cutoff is the time of day, in Location, that separates pre-requests
	// from on-demand requests. The zero value means 00:00.
	Cutoff   TimeOfDay
	Location *time.Location
	Aliases  Aliases
}

// Pipeline runs fetch, normalize, classify, filter and sort. It holds no
// state between runs and is safe for concurrent use.
type Pipeline struct {
	source   Source
	settings Settings
	logger   *zap.Logger
	now      func() time.Time
}

type PipelineOption func(*Pipeline)

// WithLogger sets the logger. Rows with unparseable timestamps are logged
// at debug level.
func WithLogger(l *zap.Logger) PipelineOption {
	return func(p *Pipeline) { p.logger = l }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) PipelineOption {
	return func(p *Pipeline) { p.now = now }
}

func NewPipeline(source Source, settings Settings, opts ...PipelineOption) *Pipeline {
	if settings.Tab == "" {
		settings.Tab = DefaultTab
	}
	if settings.Location == nil {
		settings.Location = time.Local
	}
	if settings.Aliases == nil {
		settings.Aliases = DefaultAliases()
	}
	p := &Pipeline{
		source:   source,
		settings: settings,
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Settings returns the settings the pipeline was built with.
func (p *Pipeline) Settings() Settings {
	return p.settings
}

// Run executes one pass. Fatal conditions return before any board is built.
func (p *Pipeline) Run(ctx context.Context, opts Options) (*Board, error) {
	s := p.settings
	at := p.now().In(s.Location)

	sheet, err := p.source.Fetch(ctx, s.SheetID, s.Tab)
	if err != nil {
		if !errors.Is(err, ErrSourceUnavailable) {
			err = Unavailable(s.SheetID, s.Tab, err)
		}
		p.logger.Error("sync failed", zap.String("tab", s.Tab), zap.Error(err))
		return nil, err
	}

	records, schema, err := Normalize(sheet, s.Aliases)
	if err != nil {
		p.logger.Error("sheet schema rejected", zap.String("tab", s.Tab), zap.Error(err))
		return nil, err
	}

	classifier := NewClassifier(at, s.Cutoff)
	unparsed := 0
	for i := range records {
		if w := classifier.Classify(&records[i]); w != nil {
			unparsed++
			p.logger.Debug("timestamp not parsed, request treated as on-demand",
				zap.Int("row", w.Position), zap.String("raw", w.Raw))
		}
	}

	shown := Apply(records, opts)
	if opts.Sort == "" {
		opts.Sort = SortNone
	}
	board := &Board{
		Records:    shown,
		Columns:    schema.Columns(),
		Submitters: Submitters(records),
		Options:    opts,
		Fetched:    len(records),
		NoMatches:  len(shown) == 0,
		SyncedAt:   p.now().In(s.Location),
		Cutoff:     classifier.Cutoff,
	}

	p.logger.Debug("queue synced",
		zap.String("tab", s.Tab),
		zap.Int("fetched", board.Fetched),
		zap.Int("shown", len(shown)),
		zap.Int("unparsed", unparsed),
		zap.Time("cutoff", board.Cutoff),
	)
	return board, nil
}
