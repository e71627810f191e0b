package types

import (
	"maps"
	"slices"
)

// ItemList is the id set used for base/filtered set algebra during one
// aggregation request.
type ItemList map[ItemId]struct{}

func NewItemList(ids ...ItemId) ItemList {
	l := make(ItemList, len(ids))
	for _, id := range ids {
		l[id] = struct{}{}
	}
	return l
}

func (l ItemList) Add(id ItemId) {
	l[id] = struct{}{}
}

func (l ItemList) Has(id ItemId) bool {
	_, ok := l[id]
	return ok
}

func (l ItemList) Merge(other ItemList) {
	maps.Copy(l, other)
}

// Intersect removes every id not present in other.
func (l ItemList) Intersect(other ItemList) {
	for id := range l {
		if _, ok := other[id]; !ok {
			delete(l, id)
		}
	}
}

func (l ItemList) HasIntersection(other ItemList) bool {
	for id := range l {
		if _, ok := other[id]; ok {
			return true
		}
	}
	return false
}

// Ids returns the members in ascending order. Deterministic output keeps
// fetches and responses stable between identical requests.
func (l ItemList) Ids() []ItemId {
	ids := make([]ItemId, 0, len(l))
	for id := range l {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
