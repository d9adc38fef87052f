package runtime

// dictKey is the comparable identity of a dictionary key. Scalars compare by
// kind and value; collections and callables compare by identity.
type dictKey struct {
	kind Kind
	num  float64
	str  string
	ref  any
}

func keyOf(v Value) dictKey {
	switch val := v.(type) {
	case Number:
		return dictKey{kind: KindNumber, num: val.Val}
	case Boolean:
		return dictKey{kind: KindBoolean, num: val.Number().Val}
	case String:
		return dictKey{kind: KindString, str: val.Val}
	case Null:
		return dictKey{kind: KindNull}
	case List:
		return dictKey{kind: KindList, ref: val.store}
	case Dictionary:
		return dictKey{kind: KindDictionary, ref: val.store}
	default:
		return dictKey{kind: v.Kind(), ref: v}
	}
}

type dictStore struct {
	keys   []Value
	values []Value
	index  map[dictKey]int
}

// Dictionary is an insertion-ordered mapping. Copies share storage.
type Dictionary struct {
	Meta
	store *dictStore
}

func (Dictionary) Kind() Kind { return KindDictionary }
func (v Dictionary) withMeta(m Meta) Value { v.Meta = m; return v }

// NewDictionary returns an empty dictionary with its own storage.
func NewDictionary() Dictionary {
	return Dictionary{store: &dictStore{index: make(map[dictKey]int)}}
}

func (v Dictionary) Len() int {
	if v.store == nil {
		return 0
	}
	return len(v.store.keys)
}

// Get looks up key.
func (v Dictionary) Get(key Value) (Value, bool) {
	if v.store == nil {
		return nil, false
	}
	idx, ok := v.store.index[keyOf(key)]
	if !ok {
		return nil, false
	}
	return v.store.values[idx], true
}

// Set inserts or replaces key in place. Replacing keeps the original
// insertion slot.
func (v Dictionary) Set(key, value Value) {
	k := keyOf(key)
	if idx, ok := v.store.index[k]; ok {
		v.store.values[idx] = value
		return
	}
	v.store.index[k] = len(v.store.keys)
	v.store.keys = append(v.store.keys, key)
	v.store.values = append(v.store.values, value)
}

// Keys returns the keys in insertion order.
func (v Dictionary) Keys() []Value {
	if v.store == nil {
		return nil
	}
	return append([]Value(nil), v.store.keys...)
}

// Each visits entries in insertion order until fn returns false.
func (v Dictionary) Each(fn func(key, value Value) bool) {
	if v.store == nil {
		return
	}
	for i, key := range v.store.keys {
		if !fn(key, v.store.values[i]) {
			return
		}
	}
}

// SameStorage reports whether v and other alias the same entries.
func (v Dictionary) SameStorage(other Dictionary) bool {
	return v.store != nil && v.store == other.store
}
