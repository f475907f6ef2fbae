package phrase

import (
	"hash/fnv"
	"math/rand/v2"
	"sort"
	"sync"
)

// State is the mutable per-channel state: the trigger counter and the
// random source every draw for the channel uses. Callers hold the lock for
// the whole handling of one message.
type State struct {
	sync.Mutex
	Channel string
	Counter *Counter
	Rand    Rand
}

// Snapshot is a point-in-time copy of a channel's counter.
type Snapshot struct {
	Channel     string
	Count       int
	NextTrigger int
}

// RandFactory returns the random source for a newly seen channel.
type RandFactory func(channel string) Rand

// SeededRand returns a factory producing PCG sources derived from seed and
// the channel name, so a fixed seed replays the same draws per channel.
func SeededRand(seed uint64) RandFactory {
	return func(channel string) Rand {
		h := fnv.New64a()
		h.Write([]byte(channel))
		return rand.New(rand.NewPCG(seed, h.Sum64()))
	}
}

// States holds one State per channel.
type States struct {
	mu       sync.Mutex
	min, max int
	newRand  RandFactory
	byName   map[string]*State
}

// NewStates creates an empty registry. Thresholds are drawn from
// [minMessages, maxMessages].
func NewStates(minMessages, maxMessages int, newRand RandFactory) *States {
	return &States{
		min:     minMessages,
		max:     maxMessages,
		newRand: newRand,
		byName:  make(map[string]*State),
	}
}

// Get returns the state for channel, creating it on first use.
func (s *States) Get(channel string) (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st, ok := s.byName[channel]; ok {
		return st, nil
	}
	rnd := s.newRand(channel)
	counter, err := NewCounter(s.min, s.max, rnd)
	if err != nil {
		return nil, err
	}
	st := &State{Channel: channel, Counter: counter, Rand: rnd}
	s.byName[channel] = st
	return st, nil
}

// Snapshots returns the counters of every known channel, sorted by name.
func (s *States) Snapshots() []Snapshot {
	s.mu.Lock()
	states := make([]*State, 0, len(s.byName))
	for _, st := range s.byName {
		states = append(states, st)
	}
	s.mu.Unlock()

	out := make([]Snapshot, 0, len(states))
	for _, st := range states {
		st.Lock()
		out = append(out, Snapshot{Channel: st.Channel, Count: st.Counter.Count(), NextTrigger: st.Counter.Next()})
		st.Unlock()
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Channel < out[j].Channel })
	return out
}
