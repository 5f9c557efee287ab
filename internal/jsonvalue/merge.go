package jsonvalue

// DeepMerge combines override onto base without modifying either input.
//
//   - A nil or null override returns base.
//   - Two arrays merge by index. Positions where both elements are composite
//     merge recursively; otherwise the override element wins where present,
//     so a longer override extends the result and a shorter one leaves the
//     trailing base elements in place.
//   - Two objects start from a shallow copy of base; every override key is
//     merged recursively when both values are composite, otherwise it
//     replaces the base value.
//   - In every other case override wins.
func DeepMerge(base, override Value) Value {
	if IsNull(override) {
		return base
	}

	switch o := override.(type) {
	case Array:
		if b, ok := base.(Array); ok {
			return mergeArrays(b, o)
		}
	case *Object:
		if b, ok := base.(*Object); ok {
			return mergeObjects(b, o)
		}
	}
	return override
}

func mergeArrays(base, override Array) Array {
	n := len(base)
	if len(override) > n {
		n = len(override)
	}

	out := make(Array, n)
	for i := range out {
		switch {
		case i >= len(override):
			out[i] = base[i]
		case i >= len(base):
			out[i] = override[i]
		case IsComposite(base[i]) && IsComposite(override[i]):
			out[i] = DeepMerge(base[i], override[i])
		default:
			out[i] = override[i]
		}
	}
	return out
}

func mergeObjects(base, override *Object) *Object {
	out := base.Clone()
	for _, key := range override.keys {
		ov := override.fields[key]
		if bv, ok := base.fields[key]; ok && IsComposite(bv) && IsComposite(ov) {
			out.Set(key, DeepMerge(bv, ov))
			continue
		}
		out.Set(key, ov)
	}
	return out
}

// ID returns the identity key of an item: its "id" field when that is a
// non-empty string or a non-zero number. Items without an identity are never
// matched by MergeByID.
func ID(v Value) (string, bool) {
	obj, ok := v.(*Object)
	if !ok {
		return "", false
	}
	raw, ok := obj.Get("id")
	if !ok {
		return "", false
	}

	switch id := raw.(type) {
	case String:
		return string(id), id != ""
	case Number:
		f, err := id.Float64()
		if err != nil || f == 0 {
			return "", false
		}
		return string(id), true
	}
	return "", false
}

// MergeByID applies translation items to base items with the same id. The
// result has base's length and order. When several translations share an id
// the last one wins; translations without a base counterpart are dropped.
func MergeByID(base, translations Array) Array {
	byID := make(map[string]Value, len(translations))
	for _, item := range translations {
		if id, ok := ID(item); ok {
			byID[id] = item
		}
	}

	out := make(Array, len(base))
	for i, item := range base {
		out[i] = item
		id, ok := ID(item)
		if !ok {
			continue
		}
		if tr, ok := byID[id]; ok {
			out[i] = DeepMerge(item, tr)
		}
	}
	return out
}
