// Package block implements quote block declarations: parsing the
// key/value source of an embedded block, the per-block refresh policy
// (a lazy TTL cache keyed by block id), one-time blocks, and rendering
// through the configurable format template.
package block

// Metadata is the persisted state of one rendered block instance. It is
// created the first time a block id is seen and mutated in place on
// every refresh; records are only removed by an explicit bulk clear.
type Metadata struct {
	ID             string `json:"id"`
	Author         string `json:"author"`
	CustomClass    string `json:"custom_class,omitempty"`
	ReloadInterval int64  `json:"reload_interval"`
	LastUpdate     int64  `json:"last_update"`
	Text           string `json:"text"`
}

// NeedsRefresh decides whether the cached selection is stale. A nil
// record always refreshes; so does a zero interval, which means "never
// cache". Expiry is checked lazily at render time, there is no
// background eviction.
func NeedsRefresh(md *Metadata, now int64) bool {
	if md == nil {
		return true
	}
	return now-md.LastUpdate >= md.ReloadInterval
}

// OneTimeBlock is the persisted state of a one-time block: resolved
// exactly once per note file and frozen afterwards. Files under the
// template folder are exempt so templates keep producing fresh quotes.
type OneTimeBlock struct {
	Filename string `json:"filename"`
	Search   string `json:"search"`
	Author   string `json:"author"`
	Content  string `json:"content"`
}
