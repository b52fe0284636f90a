package rating

import (
	"encoding/json"
	"maps"
)

// Accessor reads and writes a Record on an entity of type E.
// Set and Clear must return a new entity and leave the argument untouched.
type Accessor[E any] interface {
	Get(e E) (Record, bool)
	Set(e E, r Record) E
	Clear(e E) E
}

// Entity is a free-form entity. Keys other than the record key are
// carried along unchanged.
type Entity = map[string]any

// MapAccessor stores the record under a fixed key of an Entity.
type MapAccessor string

var _ Accessor[Entity] = MapAccessor(DefaultRecordKey)

// Get returns the record stored under the key, if any. Besides Record
// values it accepts the decoded JSON form of a Record, so entities survive
// a marshal/unmarshal round trip.
func (k MapAccessor) Get(e Entity) (Record, bool) {
	switch v := e[string(k)].(type) {
	case Record:
		return v, true
	case *Record:
		if v != nil {
			return *v, true
		}
	case map[string]any:
		return decodeRecord(v)
	}
	return Record{}, false
}

// decodeRecord converts a generic JSON object into a Record. Objects without
// a rating field are not records.
func decodeRecord(m map[string]any) (Record, bool) {
	if _, ok := m["elo"]; !ok {
		return Record{}, false
	}
	b, err := json.Marshal(m)
	if err != nil {
		return Record{}, false
	}
	var r Record
	if err := json.Unmarshal(b, &r); err != nil {
		return Record{}, false
	}
	return r, true
}

// Set returns a copy of e with r stored under the key.
func (k MapAccessor) Set(e Entity, r Record) Entity {
	out := maps.Clone(e)
	if out == nil {
		out = make(Entity, 1)
	}
	out[string(k)] = r
	return out
}

// Clear returns a copy of e without the record key.
func (k MapAccessor) Clear(e Entity) Entity {
	out := maps.Clone(e)
	delete(out, string(k))
	return out
}
