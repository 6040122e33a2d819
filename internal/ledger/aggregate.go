package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"mally-backend/internal/models"
)

// AggregateGroups rolls ledger balances up through the group tree and returns
// the total signed balance per group id: a group's total is its own ledgers'
// balances plus all descendant groups' totals, to arbitrary depth.
//
// Orphan ledgers (group id referencing a missing group) and cycles in the
// parent relation abort the rollup with an IntegrityError; they are never
// silently dropped.
func AggregateGroups(groups []models.Group, ledgers []models.Ledger, ledgerBalances map[uint]decimal.Decimal) (map[uint]decimal.Decimal, error) {
	direct := make(map[uint]decimal.Decimal, len(groups)) // own-ledger contribution
	children := make(map[uint][]uint)
	for _, g := range groups {
		direct[g.ID] = decimal.Zero
	}
	for _, g := range groups {
		if g.ParentID != nil {
			children[*g.ParentID] = append(children[*g.ParentID], g.ID)
		}
	}

	for _, l := range ledgers {
		if _, ok := direct[l.GroupID]; !ok {
			return nil, &IntegrityError{
				Kind:     "orphan_ledger",
				LedgerID: l.ID,
				GroupID:  l.GroupID,
				Msg:      fmt.Sprintf("ledger %d (%s) references missing group %d", l.ID, l.Name, l.GroupID),
			}
		}
		direct[l.GroupID] = direct[l.GroupID].Add(ledgerBalances[l.ID])
	}

	const (
		unvisited = iota
		visiting
		done
	)
	totals := make(map[uint]decimal.Decimal, len(groups))
	state := make(map[uint]int, len(groups))

	var roll func(id uint) (decimal.Decimal, error)
	roll = func(id uint) (decimal.Decimal, error) {
		switch state[id] {
		case done:
			return totals[id], nil
		case visiting:
			return decimal.Zero, &IntegrityError{
				Kind:    "group_cycle",
				GroupID: id,
				Msg:     fmt.Sprintf("group %d participates in a parent/child cycle", id),
			}
		}
		state[id] = visiting
		sum := direct[id]
		for _, childID := range children[id] {
			sub, err := roll(childID)
			if err != nil {
				return decimal.Zero, err
			}
			sum = sum.Add(sub)
		}
		state[id] = done
		totals[id] = sum
		return sum, nil
	}

	for _, g := range groups {
		if _, err := roll(g.ID); err != nil {
			return nil, err
		}
	}
	return totals, nil
}
