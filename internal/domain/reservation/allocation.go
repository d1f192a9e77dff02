package reservation

import (
	"math/rand"
	"time"

	"github.com/BruksfildServices01/table-reservations/internal/models"
)

// MinBudgetFactor is the smallest attempts-per-target ratio Plan accepts.
const MinBudgetFactor = 3

// AllocateSlot draws random starts from pool for a single table until one
// fits without overlapping existing, or attempts run out.
func AllocateSlot(
	pool []time.Time,
	duration time.Duration,
	existing []Interval,
	attempts int,
	rnd *rand.Rand,
) (time.Time, bool) {
	if len(pool) == 0 {
		return time.Time{}, false
	}

	for i := 0; i < attempts; i++ {
		start := pool[rnd.Intn(len(pool))]
		overlap, err := HasOverlap(existing, start, start.Add(duration))
		if err != nil || overlap {
			continue
		}
		return start, true
	}
	return time.Time{}, false
}

// Placement is one slot chosen by a DayPlanner.
type Placement struct {
	Table    models.Table
	Interval Interval
}

type slotKey struct {
	tableID uint
	start   int64
}

// DayPlanner allocates (table, start) pairs for a single day. A pair is
// accepted only when it was not used before and its interval does not
// overlap any live reservation already on that table.
type DayPlanner struct {
	tables   []models.Table
	starts   []time.Time
	duration time.Duration
	rnd      *rand.Rand

	used      map[slotKey]struct{}
	intervals map[uint][]Interval
}

func NewDayPlanner(
	tables []models.Table,
	starts []time.Time,
	duration time.Duration,
	existing []models.Reservation,
	rnd *rand.Rand,
) *DayPlanner {
	p := &DayPlanner{
		tables:    tables,
		starts:    starts,
		duration:  duration,
		rnd:       rnd,
		used:      make(map[slotKey]struct{}),
		intervals: make(map[uint][]Interval),
	}

	for i := range existing {
		r := &existing[i]
		if !IsVisible(r) || !Status(r.Status).IsLive() {
			continue
		}
		p.mark(r.TableID, Interval{Start: r.StartTime, End: r.EndTime})
	}
	return p
}

func (p *DayPlanner) mark(tableID uint, iv Interval) {
	p.used[slotKey{tableID: tableID, start: iv.Start.Unix()}] = struct{}{}
	p.intervals[tableID] = append(p.intervals[tableID], iv)
}

// Allocate makes up to attempts random draws and records the first fit.
func (p *DayPlanner) Allocate(attempts int) (Placement, bool) {
	if len(p.tables) == 0 || len(p.starts) == 0 {
		return Placement{}, false
	}

	for i := 0; i < attempts; i++ {
		table := p.tables[p.rnd.Intn(len(p.tables))]
		start := p.starts[p.rnd.Intn(len(p.starts))]

		if _, taken := p.used[slotKey{tableID: table.ID, start: start.Unix()}]; taken {
			continue
		}

		end := start.Add(p.duration)
		overlap, err := HasOverlap(p.intervals[table.ID], start, end)
		if err != nil || overlap {
			continue
		}

		iv := Interval{Start: start, End: end}
		p.mark(table.ID, iv)
		return Placement{Table: table, Interval: iv}, true
	}
	return Placement{}, false
}

// Plan tries to place target reservations with a total attempt budget of
// budgetFactor*target draws. It never loops past the budget; the returned
// shortfall is the number of placements it could not make.
func (p *DayPlanner) Plan(target, budgetFactor int) ([]Placement, int) {
	if target <= 0 {
		return nil, 0
	}
	if budgetFactor < MinBudgetFactor {
		budgetFactor = MinBudgetFactor
	}

	budget := target * budgetFactor
	out := make([]Placement, 0, target)

	for budget > 0 && len(out) < target {
		budget--
		pl, ok := p.Allocate(1)
		if !ok {
			continue
		}
		out = append(out, pl)
	}
	return out, target - len(out)
}
