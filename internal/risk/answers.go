package risk

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

var ErrInvalidAnswers = errors.New("answers must be an object of scalar values")

// Answer is a single question-key/token pair
type Answer struct {
	Key   string
	Value string
}

// Answers is an immutable questionnaire answer set. It remembers the order
// in which keys were supplied; suggestion output follows that order.
type Answers struct {
	keys   []string
	values map[string]string
}

// NewAnswers builds an answer set in the given order. A repeated key keeps
// its first position and takes the last value.
func NewAnswers(entries ...Answer) Answers {
	a := Answers{values: make(map[string]string, len(entries))}
	for _, e := range entries {
		a.set(e.Key, e.Value)
	}
	return a
}

// AnswersFromMap builds an answer set ordered by key
func AnswersFromMap(m map[string]string) Answers {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]Answer, len(keys))
	for i, k := range keys {
		entries[i] = Answer{Key: k, Value: m[k]}
	}
	return NewAnswers(entries...)
}

func (a *Answers) set(key, value string) {
	if a.values == nil {
		a.values = make(map[string]string)
	}
	if _, ok := a.values[key]; !ok {
		a.keys = append(a.keys, key)
	}
	a.values[key] = value
}

// Get returns the raw token for key
func (a Answers) Get(key string) (string, bool) {
	v, ok := a.values[key]
	return v, ok
}

// GetOr returns the token for key or def when the key is absent
func (a Answers) GetOr(key, def string) string {
	if v, ok := a.values[key]; ok {
		return v
	}
	return def
}

func (a Answers) Len() int {
	return len(a.keys)
}

// Keys returns the answered keys in insertion order
func (a Answers) Keys() []string {
	return append([]string(nil), a.keys...)
}

// Entries returns the answers in insertion order
func (a Answers) Entries() []Answer {
	out := make([]Answer, len(a.keys))
	for i, k := range a.keys {
		out[i] = Answer{Key: k, Value: a.values[k]}
	}
	return out
}

// Map returns an unordered copy
func (a Answers) Map() map[string]string {
	out := make(map[string]string, len(a.values))
	for k, v := range a.values {
		out[k] = v
	}
	return out
}

func (a Answers) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range a.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(a.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object in document order. Numbers and booleans are
// kept in their textual form, nulls are treated as unanswered.
func (a *Answers) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return ErrInvalidAnswers
	}

	out := Answers{values: make(map[string]string)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return ErrInvalidAnswers
		}

		tok, err = dec.Token()
		if err != nil {
			return err
		}
		switch v := tok.(type) {
		case string:
			out.set(key, v)
		case json.Number:
			out.set(key, v.String())
		case bool:
			out.set(key, strconv.FormatBool(v))
		case nil:
		default:
			return fmt.Errorf("%w: key %q", ErrInvalidAnswers, key)
		}
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*a = out
	return nil
}

func (a Answers) MarshalBSON() ([]byte, error) {
	d := make(bson.D, 0, len(a.keys))
	for _, k := range a.keys {
		d = append(d, bson.E{Key: k, Value: a.values[k]})
	}
	return bson.Marshal(d)
}

func (a *Answers) UnmarshalBSON(data []byte) error {
	elems, err := bson.Raw(data).Elements()
	if err != nil {
		return err
	}

	out := Answers{values: make(map[string]string, len(elems))}
	for _, e := range elems {
		key := e.Key()
		v := e.Value()
		switch v.Type {
		case bsontype.String:
			out.set(key, v.StringValue())
		case bsontype.Int32:
			out.set(key, strconv.FormatInt(int64(v.Int32()), 10))
		case bsontype.Int64:
			out.set(key, strconv.FormatInt(v.Int64(), 10))
		case bsontype.Double:
			out.set(key, strconv.FormatFloat(v.Double(), 'g', -1, 64))
		case bsontype.Boolean:
			out.set(key, strconv.FormatBool(v.Boolean()))
		case bsontype.Null, bsontype.Undefined:
		default:
			return fmt.Errorf("%w: key %q has bson type %s", ErrInvalidAnswers, key, v.Type)
		}
	}

	*a = out
	return nil
}
