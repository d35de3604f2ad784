package tfidx

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/relevantsearch/tfidx/internal/index"
	"github.com/relevantsearch/tfidx/internal/query"
	"github.com/relevantsearch/tfidx/internal/ranker"
	"github.com/relevantsearch/tfidx/internal/scorer"
	"github.com/relevantsearch/tfidx/internal/stopwords"
	"github.com/relevantsearch/tfidx/pkg/config"
	tfidxerrors "github.com/relevantsearch/tfidx/pkg/errors"
	"github.com/relevantsearch/tfidx/pkg/logger"
	"github.com/relevantsearch/tfidx/pkg/metrics"
	"github.com/relevantsearch/tfidx/pkg/tracing"
)

// MaxResult is the default maximum number of documents FindTop* returns;
// NewSearchEngineFromConfig replaces it with a positive cfg.Engine.MaxResult.
const MaxResult = 5

// RelevanceEpsilon is the absolute-difference threshold below which two
// relevance scores are considered tied for ranking purposes.
const RelevanceEpsilon = 1e-6

// DefaultShardCount is the ConcurrentAccumulator shard count used when an
// engine is built with NewSearchEngine rather than NewSearchEngineWithShards.
const DefaultShardCount = 32

// SearchEngine is the public façade over the inverted index: it owns all
// document and term state. Mutating operations (AddDocument,
// RemoveDocument*, and the package-level RemoveDuplicates) require
// exclusive access to the engine, enforced by the caller — the engine
// holds no internal lock of its own. Read-only operations may run
// concurrently with each other but not with a mutation.
type SearchEngine struct {
	idx        *index.InvertedIndex
	stop       *stopwords.Set
	shardCount int
	maxResult  int
	epsilon    float64
	log        *slog.Logger
	metrics    *metrics.Metrics
}

// NewSearchEngine returns an empty SearchEngine using stopWords (nil means
// no stop-words), DefaultShardCount accumulator shards, MaxResult, and
// ranker.DefaultEpsilon.
func NewSearchEngine(stopWords *StopWordSet) *SearchEngine {
	return NewSearchEngineWithShards(stopWords, DefaultShardCount)
}

// NewSearchEngineWithShards is like NewSearchEngine but lets the caller
// size the ConcurrentAccumulator used by the parallel FindTop* variants —
// see pkg/config's AccumulatorConfig.ShardCount.
func NewSearchEngineWithShards(stopWords *StopWordSet, shardCount int) *SearchEngine {
	set := stopwords.Empty()
	if stopWords != nil {
		set = stopWords.set
	}
	if shardCount < 1 {
		shardCount = DefaultShardCount
	}
	return &SearchEngine{
		idx:        index.New(),
		stop:       set,
		shardCount: shardCount,
		maxResult:  MaxResult,
		epsilon:    RelevanceEpsilon,
		log:        logger.WithComponent("engine"),
	}
}

// NewSearchEngineFromConfig builds a SearchEngine from a loaded
// pkg/config.Config: cfg.Engine.StopWords, cfg.Engine.MaxResult,
// cfg.Engine.RelevanceEps, and cfg.Accumulator.ShardCount all apply. It also
// installs cfg.Logging as the process-wide default logger and, when
// cfg.Metrics.Enabled, registers the engine's Prometheus collectors against
// prometheus.DefaultRegisterer.
func NewSearchEngineFromConfig(cfg *config.Config) (*SearchEngine, error) {
	logger.Setup(cfg.Logging.Level, cfg.Logging.Format)

	stopWords, err := NewStopWordSet(cfg.Engine.StopWords)
	if err != nil {
		return nil, err
	}
	e := NewSearchEngineWithShards(stopWords, cfg.Accumulator.ShardCount)
	if cfg.Engine.MaxResult > 0 {
		e.maxResult = cfg.Engine.MaxResult
	}
	if cfg.Engine.RelevanceEps > 0 {
		e.epsilon = cfg.Engine.RelevanceEps
	}
	if cfg.Metrics.Enabled {
		e.metrics = metrics.NewDefault()
	}
	return e, nil
}

// AddDocument indexes a new document. See InvertedIndex.Add for the
// validation and tokenization rules; a failed AddDocument leaves the
// engine unchanged.
func (e *SearchEngine) AddDocument(id int, text string, status Status, ratings []int) error {
	if err := e.idx.Add(id, text, status, ratings, e.stop); err != nil {
		e.log.Debug("add document failed", "id", id, "error", err)
		return err
	}
	if e.metrics != nil {
		e.metrics.DocumentsIndexedTotal.Inc()
	}
	return nil
}

// RemoveDocument deletes id from the engine. Removing an absent id is a
// no-op.
func (e *SearchEngine) RemoveDocument(id int) {
	if !e.idx.Has(id) {
		return
	}
	e.idx.Remove(id)
	if e.metrics != nil {
		e.metrics.DocumentsRemovedTotal.Inc()
	}
}

// RemoveDocumentParallel is like RemoveDocument but erases id from each of
// its terms' posting lists concurrently, via an errgroup worker per term.
func (e *SearchEngine) RemoveDocumentParallel(ctx context.Context, id int) error {
	terms := e.idx.TermsOf(id)
	if terms == nil {
		return nil
	}
	g, _ := errgroup.WithContext(ctx)
	for _, t := range terms {
		t := t
		g.Go(func() error {
			e.idx.EraseFromTerm(t, id)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	e.idx.FinishRemove(id)
	if e.metrics != nil {
		e.metrics.DocumentsRemovedTotal.Inc()
	}
	return nil
}

// FindTop runs rawQuery against documents with StatusActual and returns up
// to the engine's result limit (MaxResult unless configured otherwise) of
// ranked Documents.
func (e *SearchEngine) FindTop(rawQuery string) ([]Document, error) {
	return e.FindTopStatus(rawQuery, StatusActual)
}

// FindTopStatus is like FindTop but restricts candidates to the given
// status.
func (e *SearchEngine) FindTopStatus(rawQuery string, status Status) ([]Document, error) {
	return e.FindTopFunc(rawQuery, func(_ int, docStatus Status, _ int) bool {
		return docStatus == status
	})
}

// FindTopFunc is like FindTop but accepts a candidate iff predicate(id,
// status, rating) reports true.
func (e *SearchEngine) FindTopFunc(rawQuery string, predicate func(id int, status Status, rating int) bool) ([]Document, error) {
	start := time.Now()
	q, err := query.Parse(rawQuery, query.ModeOrdered, e.stop)
	if err != nil {
		e.observeQuery("sequential", start, nil, err)
		return nil, err
	}
	candidates := scorer.Score(e.idx, q, scorer.Filter(predicate))
	results := toDocuments(ranker.Rank(candidates, e.maxResult, e.epsilon))
	e.observeQuery("sequential", start, results, nil)
	return results, nil
}

// FindTopParallel is the parallel counterpart of FindTop: it fans scoring
// out over the query's plus-terms via a ConcurrentAccumulator.
func (e *SearchEngine) FindTopParallel(ctx context.Context, rawQuery string) ([]Document, error) {
	return e.FindTopStatusParallel(ctx, rawQuery, StatusActual)
}

// FindTopStatusParallel is the parallel counterpart of FindTopStatus.
func (e *SearchEngine) FindTopStatusParallel(ctx context.Context, rawQuery string, status Status) ([]Document, error) {
	return e.FindTopFuncParallel(ctx, rawQuery, func(_ int, docStatus Status, _ int) bool {
		return docStatus == status
	})
}

// FindTopFuncParallel is the parallel counterpart of FindTopFunc.
func (e *SearchEngine) FindTopFuncParallel(ctx context.Context, rawQuery string, predicate func(id int, status Status, rating int) bool) ([]Document, error) {
	start := time.Now()
	ctx, span := tracing.StartSpan(ctx, "find_top_parallel", rawQuery)
	defer func() {
		span.End()
		span.Log()
	}()

	_, parseSpan := tracing.StartChildSpan(ctx, "parse_query")
	q, err := query.Parse(rawQuery, query.ModeUnordered, e.stop)
	parseSpan.End()
	if err != nil {
		span.SetAttr("error", err.Error())
		e.observeQuery("parallel", start, nil, err)
		return nil, err
	}

	scoreCtx, scoreSpan := tracing.StartChildSpan(ctx, "score_parallel")
	scoreSpan.SetAttr("plus_terms", len(q.Plus))
	scoreSpan.SetAttr("minus_terms", len(q.Minus))
	candidates, err := scorer.ScoreParallel(scoreCtx, e.idx, q, scorer.Filter(predicate), e.shardCount, e.metrics)
	scoreSpan.End()
	if err != nil {
		span.SetAttr("error", err.Error())
		e.observeQuery("parallel", start, nil, err)
		return nil, err
	}

	results := toDocuments(ranker.Rank(candidates, e.maxResult, e.epsilon))
	span.SetAttr("result_count", len(results))
	e.observeQuery("parallel", start, results, nil)
	return results, nil
}

// MatchDocument reports which plus-terms of rawQuery hit document id, and
// id's status. Returns (nil, status) if any minus-term hits the document.
func (e *SearchEngine) MatchDocument(rawQuery string, id int) ([]string, Status, error) {
	status, ok := e.idx.DocStatus(id)
	if id < 0 || !ok {
		return nil, 0, tfidxerrors.Newf(tfidxerrors.ErrInvalidID, "%d", id)
	}

	q, err := query.Parse(rawQuery, query.ModeOrdered, e.stop)
	if err != nil {
		return nil, status, err
	}

	freq := e.idx.WordFrequencies(id)
	for _, t := range q.Minus {
		if _, hit := freq[t]; hit {
			return nil, status, nil
		}
	}

	var matched []string
	for _, t := range q.Plus {
		if _, hit := freq[t]; hit {
			matched = append(matched, t)
		}
	}
	return matched, status, nil
}

// MatchDocumentParallel is the parallel counterpart of MatchDocument: it
// parses under ModeUnordered and deduplicates the matched plus-terms
// before returning, mirroring the sequential variant's set semantics.
func (e *SearchEngine) MatchDocumentParallel(ctx context.Context, rawQuery string, id int) ([]string, Status, error) {
	status, ok := e.idx.DocStatus(id)
	if id < 0 || !ok {
		return nil, 0, tfidxerrors.Newf(tfidxerrors.ErrInvalidID, "%d", id)
	}

	q, err := query.Parse(rawQuery, query.ModeUnordered, e.stop)
	if err != nil {
		return nil, status, err
	}

	freq := e.idx.WordFrequencies(id)
	for _, t := range q.Minus {
		if _, hit := freq[t]; hit {
			return nil, status, nil
		}
	}

	seen := make(map[string]struct{})
	var matched []string
	for _, t := range q.Plus {
		if _, hit := freq[t]; !hit {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		matched = append(matched, t)
	}
	sort.Strings(matched)
	return matched, status, nil
}

// WordFrequencies returns the per-term frequency table for id, or an empty
// map if id is absent. Never fails.
func (e *SearchEngine) WordFrequencies(id int) map[string]float64 {
	return e.idx.WordFrequencies(id)
}

// DocumentCount returns the number of documents currently indexed.
func (e *SearchEngine) DocumentCount() int {
	return e.idx.Count()
}

// IterIDs returns document ids in ascending order.
func (e *SearchEngine) IterIDs() []int {
	return e.idx.IterIDs()
}

// observeQuery records a FindTop*/FindTopFunc* run against e.metrics, a
// no-op when metrics are disabled. result is "error" if err is non-nil,
// "empty" if the query matched nothing, otherwise "ok".
func (e *SearchEngine) observeQuery(mode string, start time.Time, results []Document, err error) {
	if e.metrics == nil {
		return
	}
	e.metrics.QueryLatency.WithLabelValues(mode).Observe(time.Since(start).Seconds())

	result := "ok"
	switch {
	case err != nil:
		result = "error"
	case len(results) == 0:
		result = "empty"
	}
	e.metrics.QueriesTotal.WithLabelValues(result).Inc()
	if err == nil {
		e.metrics.RankedResultsCount.Observe(float64(len(results)))
	}
}

func toDocuments(candidates []ranker.Candidate) []Document {
	out := make([]Document, len(candidates))
	for i, c := range candidates {
		out[i] = Document{ID: c.ID, Relevance: c.Relevance, Rating: c.Rating}
	}
	return out
}

