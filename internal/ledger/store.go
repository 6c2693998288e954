package ledger

import (
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
)

// Draft is the session-local edit state for one pickup record: display
// strings pending numeric coercion, keyed by line-item id, plus an
// independent discount field.
type Draft struct {
	Units    map[int64]string
	Totals   map[int64]string
	Discount string
}

func newDraft() *Draft {
	return &Draft{
		Units:  make(map[int64]string),
		Totals: make(map[int64]string),
	}
}

func (d *Draft) clone() *Draft {
	c := newDraft()
	for k, v := range d.Units {
		c.Units[k] = v
	}
	for k, v := range d.Totals {
		c.Totals[k] = v
	}
	c.Discount = d.Discount
	return c
}

// DraftStore is the durable-for-session draft store. Entries survive
// re-renders and background refreshes but expire with the session TTL;
// they are never cleared implicitly by a data refresh.
type DraftStore struct {
	cache *cache.Cache
}

// NewDraftStore creates a store whose entries live for ttl.
func NewDraftStore(ttl time.Duration) *DraftStore {
	return &DraftStore{cache: cache.New(ttl, 2*ttl)}
}

func draftKey(recordID int64) string {
	return strconv.FormatInt(recordID, 10)
}

// Get returns a copy of the stored draft for a record, if present.
func (s *DraftStore) Get(recordID int64) (*Draft, bool) {
	v, found := s.cache.Get(draftKey(recordID))
	if !found {
		return nil, false
	}
	return v.(*Draft).clone(), true
}

// Put stores a copy of the draft, refreshing its TTL.
func (s *DraftStore) Put(recordID int64, d *Draft) {
	s.cache.SetDefault(draftKey(recordID), d.clone())
}

// Delete removes a record's draft.
func (s *DraftStore) Delete(recordID int64) {
	s.cache.Delete(draftKey(recordID))
}
