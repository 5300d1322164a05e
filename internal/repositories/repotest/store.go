// Package repotest provides an in-memory repositories.Store for tests.
package repotest

import (
	"context"
	"reflect"
	"regexp"
	"sort"
	"sync"
	"time"

	"github.com/cypheredvortex/mern-social-media-sub000/internal/models"
	"github.com/cypheredvortex/mern-social-media-sub000/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store keeps documents as BSON maps so filters and updates address the same field
// names as the MongoDB store. Every stamped insert advances an internal clock by one
// second, which keeps newest-first ordering deterministic.
type Store[T any] struct {
	mu     sync.Mutex
	docs   []bson.M
	clock  time.Time
	unique [][]string
	fail   map[string]error
	before map[string]func()
}

var (
	_ repositories.SearchStore[models.User]  = (*Store[models.User])(nil)
	_ repositories.CounterStore[models.Post] = (*Store[models.Post])(nil)
)

// NewStore returns a store seeded with docs. Seeded documents are stamped like inserts.
func NewStore[T any](docs ...T) *Store[T] {
	s := &Store[T]{
		clock:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		fail:   map[string]error{},
		before: map[string]func(){},
	}
	for i := range docs {
		if err := s.Create(context.Background(), &docs[i]); err != nil {
			panic(err)
		}
	}
	return s
}

// Unique emulates a unique index over the given fields.
func (s *Store[T]) Unique(fields ...string) *Store[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unique = append(s.unique, fields)
	return s
}

// FailOn makes the named method return err until cleared with a nil err.
func (s *Store[T]) FailOn(method string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.fail, method)
		return
	}
	s.fail[method] = err
}

// Before runs fn at the start of every call to the named method, outside the store lock,
// so tests can interleave concurrent callers. A nil fn removes the hook.
func (s *Store[T]) Before(method string, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fn == nil {
		delete(s.before, method)
		return
	}
	s.before[method] = fn
}

func (s *Store[T]) runBefore(method string) {
	s.mu.Lock()
	fn := s.before[method]
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// All returns every document in insertion order.
func (s *Store[T]) All() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, 0, len(s.docs))
	for _, m := range s.docs {
		out = append(out, mustDecode[T](m))
	}
	return out
}

func (s *Store[T]) List(ctx context.Context, opts repositories.ListOptions) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail["List"]; err != nil {
		return nil, err
	}

	matched := s.matching(opts.Filter)
	sort.SliceStable(matched, func(i, j int) bool {
		a, b := created(matched[i]), created(matched[j])
		if opts.OldestFirst {
			return a < b
		}
		return a > b
	})
	if opts.Limit > 0 {
		start := min(int(opts.Skip), len(matched))
		end := min(start+int(opts.Limit), len(matched))
		matched = matched[start:end]
	}

	out := make([]T, 0, len(matched))
	for _, m := range matched {
		out = append(out, mustDecode[T](m))
	}
	return out, nil
}

func (s *Store[T]) FindOne(ctx context.Context, filter repositories.Filter) (*T, error) {
	s.runBefore("FindOne")
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail["FindOne"]; err != nil {
		return nil, err
	}
	matched := s.matching(filter)
	if len(matched) == 0 {
		return nil, repositories.ErrNotFound
	}
	doc := mustDecode[T](matched[0])
	return &doc, nil
}

func (s *Store[T]) GetByID(ctx context.Context, id string) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail["GetByID"]; err != nil {
		return nil, err
	}
	i := s.indexOf(id)
	if i < 0 {
		return nil, repositories.ErrNotFound
	}
	doc := mustDecode[T](s.docs[i])
	return &doc, nil
}

func (s *Store[T]) Create(ctx context.Context, doc *T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail["Create"]; err != nil {
		return err
	}
	if st, ok := any(doc).(models.Stampable); ok {
		s.clock = s.clock.Add(time.Second)
		st.Stamp(s.clock)
	}
	m := mustEncode(doc)
	if s.violatesUnique(m, -1) {
		return repositories.ErrDuplicate
	}
	s.docs = append(s.docs, m)
	return nil
}

func (s *Store[T]) Update(ctx context.Context, id string, fields repositories.Fields) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail["Update"]; err != nil {
		return nil, err
	}
	i := s.indexOf(id)
	if i < 0 {
		return nil, repositories.ErrNotFound
	}
	next := s.apply(s.docs[i], fields)
	if s.violatesUnique(next, i) {
		return nil, repositories.ErrDuplicate
	}
	s.docs[i] = next
	doc := mustDecode[T](next)
	return &doc, nil
}

func (s *Store[T]) UpdateWhere(ctx context.Context, filter repositories.Filter, fields repositories.Fields) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail["UpdateWhere"]; err != nil {
		return 0, err
	}
	var n int64
	for i, m := range s.docs {
		if match(m, filter) {
			s.docs[i] = s.apply(m, fields)
			n++
		}
	}
	return n, nil
}

func (s *Store[T]) Delete(ctx context.Context, id string) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail["Delete"]; err != nil {
		return nil, err
	}
	i := s.indexOf(id)
	if i < 0 {
		return nil, repositories.ErrNotFound
	}
	doc := mustDecode[T](s.docs[i])
	s.docs = append(s.docs[:i], s.docs[i+1:]...)
	return &doc, nil
}

func (s *Store[T]) DeleteKeys(ctx context.Context, keys []string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail["DeleteKeys"]; err != nil {
		return 0, err
	}
	drop := make(map[string]bool, len(keys))
	for _, k := range keys {
		drop[k] = true
	}
	kept := s.docs[:0]
	var n int64
	for _, m := range s.docs {
		if drop[keyOf(m)] {
			n++
			continue
		}
		kept = append(kept, m)
	}
	s.docs = kept
	return n, nil
}

func (s *Store[T]) Restore(ctx context.Context, docs []T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail["Restore"]; err != nil {
		return err
	}
	for i := range docs {
		m := mustEncode(&docs[i])
		if s.indexOf(keyOf(m)) >= 0 {
			continue
		}
		s.docs = append(s.docs, m)
	}
	return nil
}

func (s *Store[T]) Count(ctx context.Context, filter repositories.Filter) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail["Count"]; err != nil {
		return 0, err
	}
	return int64(len(s.matching(filter))), nil
}

func (s *Store[T]) Increment(ctx context.Context, id string, field string, delta int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail["Increment"]; err != nil {
		return false, err
	}
	i := s.indexOf(id)
	if i < 0 {
		if delta > 0 {
			return false, repositories.ErrNotFound
		}
		return false, nil
	}
	current, _ := asInt64(s.docs[i][field])
	if current+int64(delta) < 0 {
		return false, nil
	}
	s.docs[i][field] = int32(current + int64(delta))
	return delta != 0, nil
}

func (s *Store[T]) Search(ctx context.Context, query string, fields ...string) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.fail["Search"]; err != nil {
		return nil, err
	}
	re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(query))
	out := make([]T, 0)
	for i := len(s.docs) - 1; i >= 0; i-- {
		for _, f := range fields {
			if v, ok := s.docs[i][f].(string); ok && re.MatchString(v) {
				out = append(out, mustDecode[T](s.docs[i]))
				break
			}
		}
	}
	return out, nil
}

func (s *Store[T]) matching(filter repositories.Filter) []bson.M {
	out := make([]bson.M, 0)
	for _, m := range s.docs {
		if match(m, filter) {
			out = append(out, m)
		}
	}
	return out
}

func (s *Store[T]) indexOf(id string) int {
	for i, m := range s.docs {
		if keyOf(m) == id {
			return i
		}
	}
	return -1
}

func (s *Store[T]) apply(m bson.M, fields repositories.Fields) bson.M {
	next := bson.M{}
	for k, v := range m {
		next[k] = v
	}
	for k, v := range fields {
		next[k] = v
	}
	s.clock = s.clock.Add(time.Second)
	next["updated_at"] = s.clock
	return normalize(next)
}

func (s *Store[T]) violatesUnique(m bson.M, self int) bool {
	for _, fields := range s.unique {
		for i, other := range s.docs {
			if i == self {
				continue
			}
			same := true
			for _, f := range fields {
				if !reflect.DeepEqual(other[f], m[f]) {
					same = false
					break
				}
			}
			if same {
				return true
			}
		}
	}
	return false
}

func match(m bson.M, filter repositories.Filter) bool {
	for key, want := range filter {
		switch w := want.(type) {
		case repositories.In:
			found := false
			for _, v := range w {
				if equal(m[key], v) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		case []repositories.Filter:
			found := false
			for _, clause := range w {
				if match(m, clause) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		default:
			if !equal(m[key], want) {
				return false
			}
		}
	}
	return true
}

func equal(got, want any) bool {
	switch w := want.(type) {
	case nil:
		return got == nil
	case *primitive.ObjectID:
		if w == nil {
			return got == nil
		}
		return got == any(*w)
	case int:
		n, ok := asInt64(got)
		return ok && n == int64(w)
	}
	return reflect.DeepEqual(got, want)
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	case float64:
		return int64(n), true
	}
	return 0, false
}

func created(m bson.M) int64 {
	if dt, ok := m["created_at"].(primitive.DateTime); ok {
		return int64(dt)
	}
	return 0
}

func keyOf(m bson.M) string {
	if id, ok := m["_id"].(primitive.ObjectID); ok {
		return id.Hex()
	}
	return ""
}

func mustEncode(doc any) bson.M {
	raw, err := bson.Marshal(doc)
	if err != nil {
		panic(err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		panic(err)
	}
	return m
}

func normalize(m bson.M) bson.M {
	return mustEncode(m)
}

func mustDecode[T any](m bson.M) T {
	raw, err := bson.Marshal(m)
	if err != nil {
		panic(err)
	}
	var doc T
	if err := bson.Unmarshal(raw, &doc); err != nil {
		panic(err)
	}
	return doc
}
