package analytics

import "sort"

// The aggregation primitives restate the reporting queries as plain
// functions over in-memory rows, so every tie-break and null rule is
// pinned down instead of inherited from a storage engine.

// Number covers the numeric columns the raw aggregates operate on.
type Number interface {
	~int | ~int64 | ~float64
}

// GroupBy partitions rows by key. Keys with no rows are simply absent;
// callers needing left-join semantics iterate the full key set themselves.
func GroupBy[T any, K comparable](rows []T, key func(T) K) map[K][]T {
	groups := make(map[K][]T)
	for _, r := range rows {
		k := key(r)
		groups[k] = append(groups[k], r)
	}
	return groups
}

// DistinctCount counts distinct keys among rows.
func DistinctCount[T any, K comparable](rows []T, key func(T) K) int {
	seen := make(map[K]struct{}, len(rows))
	for _, r := range rows {
		seen[key(r)] = struct{}{}
	}
	return len(seen)
}

// Filter returns the rows satisfying pred, in input order.
func Filter[T any](rows []T, pred func(T) bool) []T {
	var out []T
	for _, r := range rows {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

type Ranked[T any] struct {
	Row   T
	Score float64
	Rank  int
}

// RankWithTies orders rows by score descending and assigns standard RANK
// semantics: rank = 1 + count of rows with a strictly greater score, so
// ties share a rank and the next distinct score skips ranks (5,5,3 ->
// 1,1,3). Rows with equal scores keep their relative input order.
func RankWithTies[T any](rows []T, score func(T) float64) []Ranked[T] {
	ranked := make([]Ranked[T], len(rows))
	for i, r := range rows {
		ranked[i] = Ranked[T]{Row: r, Score: score(r)}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	for i := range ranked {
		if i > 0 && ranked[i].Score == ranked[i-1].Score {
			ranked[i].Rank = ranked[i-1].Rank
		} else {
			ranked[i].Rank = i + 1
		}
	}

	return ranked
}

// TopNPerPartition keeps, within each partition, the rows whose 1-based
// position under less is <= n. The caller's less must embed a total
// tie-break (e.g. id) so the boundary is deterministic.
func TopNPerPartition[T any, K comparable](rows []T, partition func(T) K, less func(a, b T) bool, n int) map[K][]T {
	parts := GroupBy(rows, partition)

	for k, part := range parts {
		sort.SliceStable(part, func(i, j int) bool {
			return less(part[i], part[j])
		})
		if len(part) > n {
			part = part[:n]
		}
		parts[k] = part
	}

	return parts
}

// ScalarLookup is the correlated-subquery equivalent: filter the inner
// rows, order them by less, and take the first row's value. Nil when
// nothing matches.
func ScalarLookup[R, V any](inner []R, match func(R) bool, less func(a, b R) bool, value func(R) V) *V {
	var best *R
	for i := range inner {
		if !match(inner[i]) {
			continue
		}
		if best == nil || less(inner[i], *best) {
			r := inner[i]
			best = &r
		}
	}

	if best == nil {
		return nil
	}
	v := value(*best)
	return &v
}

// Exists reports whether any row satisfies pred.
func Exists[T any](rows []T, pred func(T) bool) bool {
	for _, r := range rows {
		if pred(r) {
			return true
		}
	}
	return false
}

// Union merges two row sets removing exact-value duplicates. Row identity
// is the full tuple; the operands need not be disjoint. First-seen order
// is preserved.
func Union[T comparable](a, b []T) []T {
	seen := make(map[T]struct{}, len(a)+len(b))
	out := make([]T, 0, len(a)+len(b))

	for _, rows := range [][]T{a, b} {
		for _, r := range rows {
			if _, ok := seen[r]; ok {
				continue
			}
			seen[r] = struct{}{}
			out = append(out, r)
		}
	}

	return out
}

// Classify maps a row through a single-branch conditional.
func Classify[T, V any](row T, pred func(T) bool, then, els V) V {
	if pred(row) {
		return then
	}
	return els
}

// --- raw numeric aggregates ---

func SumOf[T Number](vals []T) T {
	var total T
	for _, v := range vals {
		total += v
	}
	return total
}

func MinOf[T Number](vals []T) *T {
	if len(vals) == 0 {
		return nil
	}
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return &m
}

func MaxOf[T Number](vals []T) *T {
	if len(vals) == 0 {
		return nil
	}
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return &m
}

// AvgOf yields nil over an empty column, never zero.
func AvgOf[T Number](vals []T) *float64 {
	if len(vals) == 0 {
		return nil
	}
	avg := float64(SumOf(vals)) / float64(len(vals))
	return &avg
}
