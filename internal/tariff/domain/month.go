package tariff

import (
	"fmt"
	"sort"
	"time"
)

// MonthKey identifies a calendar month. Grouping uses the UTC calendar date
// of the timestamp everywhere, so every hour belongs to exactly one month
// bucket.
type MonthKey struct {
	Year  int
	Month time.Month
}

func monthKeyOf(t time.Time) MonthKey {
	u := t.UTC()
	return MonthKey{Year: u.Year(), Month: u.Month()}
}

// String renders the key as "2006-01".
func (k MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", k.Year, int(k.Month))
}

func (k MonthKey) before(other MonthKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Month < other.Month
}

// monthGroup accumulates one calendar month of priced hours by simple
// running sums. No windowing, no reordering.
type monthGroup struct {
	key   MonthKey
	hours []PricedHour

	kwhTotal  float64
	kwhByBand map[Band]float64

	bstCost  float64
	dvCost   float64
	tuosCost float64
}

func (g *monthGroup) add(h PricedHour) {
	g.hours = append(g.hours, h)
	g.kwhTotal += h.Reading.KWh
	g.kwhByBand[h.Band] += h.Reading.KWh
	g.bstCost += h.BSTCost
	g.dvCost += h.DVCost
	g.tuosCost += h.TUOSCost
}

// groupByMonth groups priced hours by (year, month) and returns the groups
// in ascending month order. Input order is not assumed.
func groupByMonth(hours []PricedHour) []*monthGroup {
	byKey := make(map[MonthKey]*monthGroup)
	for _, h := range hours {
		key := monthKeyOf(h.Reading.Timestamp)
		group, ok := byKey[key]
		if !ok {
			group = &monthGroup{key: key, kwhByBand: make(map[Band]float64)}
			byKey[key] = group
		}
		group.add(h)
	}

	groups := make([]*monthGroup, 0, len(byKey))
	for _, group := range byKey {
		groups = append(groups, group)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].key.before(groups[j].key)
	})
	return groups
}
