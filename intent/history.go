package intent

import (
	"math"
	"sync"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
)

// defaultWindow bounds how many trailing history entries prediction reads.
// Older entries are retained but never consulted.
const defaultWindow = 10

// HistoryStore owns the per-user intent history: an append-only,
// arrival-ordered sequence of Vectors per user id. Access is serialized per
// user key — appends and reads for one user never interleave, while distinct
// users only contend on the short map lookup.
type HistoryStore struct {
	mu    sync.RWMutex
	users map[string]*userHistory
}

type userHistory struct {
	mu      sync.Mutex
	vectors []Vector
}

// NewHistoryStore creates an empty store. It grows for the lifetime of the
// process; there is no eviction.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{users: make(map[string]*userHistory)}
}

func (s *HistoryStore) user(id string) *userHistory {
	s.mu.RLock()
	u, ok := s.users[id]
	s.mu.RUnlock()
	if ok {
		return u
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok = s.users[id]; !ok {
		u = &userHistory{}
		s.users[id] = u
	}
	return u
}

// Append records v as the newest entry for the user.
func (s *HistoryStore) Append(id string, v Vector) {
	u := s.user(id)
	u.mu.Lock()
	u.vectors = append(u.vectors, v)
	u.mu.Unlock()
}

// Snapshot returns a copy of the user's full history in arrival order.
func (s *HistoryStore) Snapshot(id string) []Vector {
	s.mu.RLock()
	u, ok := s.users[id]
	s.mu.RUnlock()
	if !ok {
		return nil
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]Vector, len(u.vectors))
	copy(out, u.vectors)
	return out
}

// Size returns how many entries have been recorded for the user.
func (s *HistoryStore) Size(id string) int {
	s.mu.RLock()
	u, ok := s.users[id]
	s.mu.RUnlock()
	if !ok {
		return 0
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.vectors)
}

// Tracker learns per-user intent patterns and predicts the next Vector a
// user is likely to want. It is a deterministic recency-weighted averager,
// not a trained model.
type Tracker struct {
	store  *HistoryStore
	window int
}

// NewTracker creates a Tracker over an injected store.
func NewTracker(store *HistoryStore) *Tracker {
	return &Tracker{store: store, window: defaultWindow}
}

// Learn appends v, stamped with userID, to the user's history.
func (t *Tracker) Learn(userID string, v Vector) {
	v.UserID = userID
	t.store.Append(userID, v)
	logrus.Debugf("tracker: learned %v (history size %d)", v, t.store.Size(userID))
}

// Predict forecasts the user's next Vector as the linearly recency-weighted
// mean of the trailing window: oldest-in-window weight 1, newest weight W.
// A user with no history gets DefaultVector.
func (t *Tracker) Predict(userID string) Vector {
	history := t.store.Snapshot(userID)
	if len(history) == 0 {
		logrus.Debugf("tracker: no history for %q, returning default", userID)
		return DefaultVector()
	}

	start := len(history) - t.window
	if start < 0 {
		start = 0
	}
	recent := history[start:]

	weights := make([]float64, len(recent))
	costs := make([]float64, len(recent))
	latencies := make([]float64, len(recent))
	securities := make([]float64, len(recent))
	carbons := make([]float64, len(recent))
	for i, v := range recent {
		weights[i] = float64(i + 1)
		costs[i] = v.Cost
		latencies[i] = v.Latency
		securities[i] = v.Security
		carbons[i] = v.Carbon
	}

	p := NewVector(
		stat.Mean(costs, weights),
		stat.Mean(latencies, weights),
		stat.Mean(securities, weights),
		stat.Mean(carbons, weights),
	)
	p.UserID = userID
	return p
}

// ConsistencyScore measures how predictable a user is: 1 minus the mean
// squared deviation of each historical entry's cost and latency from the
// current prediction, floored at 0. Fewer than two entries returns exactly
// 0.0 — a degenerate-case contract, not an error.
func (t *Tracker) ConsistencyScore(userID string) float64 {
	history := t.store.Snapshot(userID)
	if len(history) < 2 {
		return 0.0
	}
	predicted := t.Predict(userID)

	devs := make([]float64, len(history))
	for i, v := range history {
		dc := v.Cost - predicted.Cost
		dl := v.Latency - predicted.Latency
		devs[i] = dc*dc + dl*dl
	}
	return math.Max(0, 1.0-stat.Mean(devs, nil))
}

// HistorySize reports how many Vectors have been learned for the user.
func (t *Tracker) HistorySize(userID string) int {
	return t.store.Size(userID)
}
