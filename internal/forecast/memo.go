package forecast

import (
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/mmynk/cashflow/internal/models"
)

// Fingerprint hashes everything a projection depends on. Two snapshots with
// the same fingerprint produce the same Projection. Event order is part of the
// hash; sources return events in a stable order.
func Fingerprint(s Snapshot, opts Options) uint64 {
	h := xxhash.New()
	w := func(parts ...string) {
		for _, p := range parts {
			_, _ = h.WriteString(p)
			_, _ = h.WriteString("\x1f")
		}
	}

	w(s.Today.String())
	if s.StartingBalance != nil {
		w("balance", s.StartingBalance.String())
	} else {
		w("balance", "<nil>")
	}
	w(s.TotalAvailableCredit.String())

	opts = opts.withDefaults()
	w(strconv.Itoa(opts.HorizonMonths), strconv.FormatBool(opts.ExcludeToday),
		strconv.Itoa(opts.OpportunityHorizonMonths), opts.Reserve.String())

	w(strconv.Itoa(len(s.Events)))
	for _, e := range s.Events {
		writeEvent(w, e)
	}
	return h.Sum64()
}

func writeEvent(w func(...string), e models.CashFlowEvent) {
	amount := "<nil>"
	if e.Amount.Valid {
		amount = e.Amount.Decimal.String()
	}
	impact := ""
	if e.BalanceImpactDate != nil {
		impact = e.BalanceImpactDate.String()
	}
	w(e.ID, string(e.Type), amount, e.CreditCardID, e.Date.String(), impact)
}

// Memo caches the most recent projection and its opportunities, keyed by
// snapshot fingerprint. It is safe for concurrent use; the cached values are
// shared, so callers must treat them as read-only.
type Memo struct {
	mu    sync.Mutex
	key   uint64
	valid bool
	proj  *Projection
	ops   []BuyingOpportunity
	hits  uint64
}

// Result is a cached projection and the opportunities extracted from it.
type Result struct {
	Projection    *Projection
	Opportunities []BuyingOpportunity
	Fingerprint   uint64
	Cached        bool
}

// Get returns the cached result for the snapshot, recomputing on a miss.
func (m *Memo) Get(s Snapshot, opts Options) (Result, error) {
	key := Fingerprint(s, opts)

	m.mu.Lock()
	if m.valid && m.key == key {
		m.hits++
		r := Result{Projection: m.proj, Opportunities: m.ops, Fingerprint: key, Cached: true}
		m.mu.Unlock()
		return r, nil
	}
	m.mu.Unlock()

	// Compute outside the lock; concurrent misses may both compute, the last
	// one to finish wins, and both results are correct for their snapshot.
	p, err := Project(s, opts)
	if err != nil {
		return Result{}, err
	}
	opts = opts.withDefaults()
	ops := OpportunitiesFrom(p, s.Today, opts.OpportunityHorizonMonths)

	m.mu.Lock()
	m.key, m.valid, m.proj, m.ops = key, true, p, ops
	m.mu.Unlock()

	return Result{Projection: p, Opportunities: ops, Fingerprint: key}, nil
}

// Hits returns the number of cache hits so far.
func (m *Memo) Hits() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hits
}

// Reset drops the cached entry.
func (m *Memo) Reset() {
	m.mu.Lock()
	m.valid, m.proj, m.ops = false, nil, nil
	m.mu.Unlock()
}
