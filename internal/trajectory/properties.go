package trajectory

import "time"

// PropertyKind tags the variant held by a Property value.
type PropertyKind int

const (
	PropertyReal PropertyKind = iota
	PropertyInteger
	PropertyString
	PropertyTimestamp
	PropertyNull
)

func (k PropertyKind) String() string {
	switch k {
	case PropertyReal:
		return "real"
	case PropertyInteger:
		return "integer"
	case PropertyString:
		return "string"
	case PropertyTimestamp:
		return "timestamp"
	case PropertyNull:
		return "null"
	default:
		return "unknown"
	}
}

// Property is a tagged-union value: exactly one of the typed fields is
// meaningful, selected by Kind. Null is first-class — a known key whose
// value is absent, not a sentinel pointer.
type Property struct {
	Kind      PropertyKind
	RealVal   float64
	IntVal    int64
	StringVal string
	TimeVal   time.Time
}

// RealProperty constructs a real-valued property.
func RealProperty(v float64) Property { return Property{Kind: PropertyReal, RealVal: v} }

// IntegerProperty constructs an integer-valued property.
func IntegerProperty(v int64) Property { return Property{Kind: PropertyInteger, IntVal: v} }

// StringProperty constructs a string-valued property.
func StringProperty(v string) Property { return Property{Kind: PropertyString, StringVal: v} }

// TimestampProperty constructs a timestamp-valued property.
func TimestampProperty(v time.Time) Property { return Property{Kind: PropertyTimestamp, TimeVal: v} }

// NullProperty constructs a null property: present, but without a value.
func NullProperty() Property { return Property{Kind: PropertyNull} }

// PropertyMap is a mapping from string key to tagged Property value. The
// zero value is not usable; construct with NewPropertyMap.
type PropertyMap struct {
	values map[string]Property
}

// NewPropertyMap returns an empty, ready-to-use property map.
func NewPropertyMap() PropertyMap {
	return PropertyMap{values: make(map[string]Property)}
}

// Clone returns a deep copy; the returned map shares no mutable state with
// the receiver (strings and times are themselves immutable, so a shallow
// copy of the underlying map suffices).
func (m PropertyMap) Clone() PropertyMap {
	out := NewPropertyMap()
	for k, v := range m.values {
		out.values[k] = v
	}
	return out
}

// Set assigns key to v, overwriting any existing value (including the
// variant tag).
func (m PropertyMap) Set(key string, v Property) {
	m.values[key] = v
}

// Remove deletes key from the map. A no-op if key is absent.
func (m PropertyMap) Remove(key string) {
	delete(m.values, key)
}

// Keys returns the set of keys present in the map, in no particular order.
func (m PropertyMap) Keys() []string {
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	return keys
}

// IsNull reports whether key is present with the null variant. Returns
// false (not an error) when key is absent entirely.
func (m PropertyMap) IsNull(key string) bool {
	v, ok := m.values[key]
	return ok && v.Kind == PropertyNull
}

func (m PropertyMap) get(key string, want PropertyKind) (Property, error) {
	v, ok := m.values[key]
	if !ok {
		return Property{}, &PropertyError{Kind: PropertyDoesNotExist, Key: key}
	}
	if v.Kind != want {
		return Property{}, &PropertyError{Kind: PropertyTypeMismatch, Key: key, Want: want, Got: v.Kind}
	}
	return v, nil
}

// GetReal returns the real value stored at key.
func (m PropertyMap) GetReal(key string) (float64, error) {
	v, err := m.get(key, PropertyReal)
	if err != nil {
		return 0, err
	}
	return v.RealVal, nil
}

// GetInteger returns the integer value stored at key.
func (m PropertyMap) GetInteger(key string) (int64, error) {
	v, err := m.get(key, PropertyInteger)
	if err != nil {
		return 0, err
	}
	return v.IntVal, nil
}

// GetString returns the string value stored at key.
func (m PropertyMap) GetString(key string) (string, error) {
	v, err := m.get(key, PropertyString)
	if err != nil {
		return "", err
	}
	return v.StringVal, nil
}

// GetTimestamp returns the timestamp value stored at key.
func (m PropertyMap) GetTimestamp(key string) (time.Time, error) {
	v, err := m.get(key, PropertyTimestamp)
	if err != nil {
		return time.Time{}, err
	}
	return v.TimeVal, nil
}
