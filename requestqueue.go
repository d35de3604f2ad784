package tfidx

// minInDay bounds the number of query results RequestQueue retains.
const minInDay = 1440

// RequestQueue wraps a *SearchEngine and keeps a sliding window of the last
// minInDay query results, tracking how many of them came back empty. It is
// built entirely on the engine's public methods and does not touch the
// engine's unexported fields.
type RequestQueue struct {
	engine     *SearchEngine
	window     []bool // true where the corresponding result was empty
	emptyCount int
}

// NewRequestQueue returns a RequestQueue backed by engine.
func NewRequestQueue(engine *SearchEngine) *RequestQueue {
	return &RequestQueue{
		engine: engine,
		window: make([]bool, 0, minInDay),
	}
}

// Add runs rawQuery through the engine's FindTop, records the result, and
// returns it.
func (q *RequestQueue) Add(rawQuery string) ([]Document, error) {
	results, err := q.engine.FindTop(rawQuery)
	if err != nil {
		return nil, err
	}
	q.record(len(results) == 0)
	return results, nil
}

// AddStatus is like Add but runs FindTopStatus.
func (q *RequestQueue) AddStatus(rawQuery string, status Status) ([]Document, error) {
	results, err := q.engine.FindTopStatus(rawQuery, status)
	if err != nil {
		return nil, err
	}
	q.record(len(results) == 0)
	return results, nil
}

// AddFunc is like Add but runs FindTopFunc.
func (q *RequestQueue) AddFunc(rawQuery string, predicate func(id int, status Status, rating int) bool) ([]Document, error) {
	results, err := q.engine.FindTopFunc(rawQuery, predicate)
	if err != nil {
		return nil, err
	}
	q.record(len(results) == 0)
	return results, nil
}

// EmptyCount returns how many of the results currently held in the window
// were empty.
func (q *RequestQueue) EmptyCount() int {
	return q.emptyCount
}

func (q *RequestQueue) record(empty bool) {
	if len(q.window) == minInDay {
		if q.window[0] {
			q.emptyCount--
		}
		q.window = q.window[1:]
	}
	q.window = append(q.window, empty)
	if empty {
		q.emptyCount++
	}
}
