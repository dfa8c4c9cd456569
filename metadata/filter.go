package metadata

type filterOp int

const (
	opEqual filterOp = iota
	opIn
	opPredicate
)

// Filter is a single predicate over one metadata key. Construct filters
// with Eq, In, or Where; the zero Filter matches nothing.
type Filter struct {
	Key string

	op     filterOp
	value  any
	values []any
	pred   func(value any) bool
}

// Eq matches records whose metadata value for key equals value.
func Eq(key string, value any) Filter {
	return Filter{Key: key, op: opEqual, value: value}
}

// In matches records whose metadata value for key equals any of values.
func In(key string, values ...any) Filter {
	return Filter{Key: key, op: opIn, values: values}
}

// Where matches records whose metadata value for key satisfies pred.
// A pred that panics counts as a non-match rather than propagating.
func Where(key string, pred func(value any) bool) Filter {
	return Filter{Key: key, op: opPredicate, pred: pred}
}

// Matches checks if the provided metadata matches this filter.
// A missing key is never a match.
func (f Filter) Matches(doc Metadata) bool {
	value, ok := doc[f.Key]
	if !ok {
		return false
	}

	switch f.op {
	case opEqual:
		return ValueEqual(value, f.value)
	case opIn:
		for _, candidate := range f.values {
			if ValueEqual(value, candidate) {
				return true
			}
		}
		return false
	case opPredicate:
		if f.pred == nil {
			return false
		}
		return f.safePred(value)
	default:
		return false
	}
}

func (f Filter) safePred(value any) (matched bool) {
	defer func() {
		if recover() != nil {
			matched = false
		}
	}()
	return f.pred(value)
}

// Indexable reports whether the filter can be served by an inverted
// index. Predicate filters cannot; they require evaluation per record.
func (f Filter) Indexable() bool {
	return f.op == opEqual || f.op == opIn
}

// EqualValues returns the set of values the filter accepts for its key,
// with ok=false for predicate filters.
func (f Filter) EqualValues() (values []any, ok bool) {
	switch f.op {
	case opEqual:
		return []any{f.value}, true
	case opIn:
		return f.values, true
	default:
		return nil, false
	}
}

// FilterSet combines filters with AND semantics.
type FilterSet struct {
	Filters []Filter
}

// NewFilterSet creates a filter set from the given filters.
func NewFilterSet(filters ...Filter) *FilterSet {
	return &FilterSet{Filters: filters}
}

// Matches checks if the provided metadata matches all filters in the set.
// An empty set matches everything.
func (fs *FilterSet) Matches(doc Metadata) bool {
	for _, f := range fs.Filters {
		if !f.Matches(doc) {
			return false
		}
	}
	return true
}

// Indexable reports whether every filter in the set can be served by an
// inverted index.
func (fs *FilterSet) Indexable() bool {
	for _, f := range fs.Filters {
		if !f.Indexable() {
			return false
		}
	}
	return true
}
