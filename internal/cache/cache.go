// Package cache keeps a local copy of the record mirror and master data on
// disk so read views work between syncs and offline.
package cache

import (
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/peterbourgon/diskv/v3"

	"studyrec/internal/record"
)

const masterKey = "masterdata"

// Cache is a diskv-backed store keyed per user.
type Cache struct {
	d *diskv.Diskv
}

// New opens a cache rooted at basePath.
func New(basePath string) *Cache {
	return &Cache{
		d: diskv.New(diskv.Options{
			BasePath:     basePath,
			CacheSizeMax: 1024 * 1024,
		}),
	}
}

// DefaultPath returns the cache directory under the user config dir,
// creating it if needed.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(configDir, "studyrec", "cache")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// User names are free text, so the key is base64 encoded to stay
// filesystem safe.
func recordsKey(userName string) string {
	return "records-" + base64.RawURLEncoding.EncodeToString([]byte(userName))
}

// SaveRecords stores a user's record mirror.
func (c *Cache) SaveRecords(userName string, recs []record.Record) error {
	data, err := json.Marshal(recs)
	if err != nil {
		return err
	}
	return c.d.Write(recordsKey(userName), data)
}

// LoadRecords returns the cached mirror for a user, or nil when absent.
func (c *Cache) LoadRecords(userName string) ([]record.Record, error) {
	key := recordsKey(userName)
	if !c.d.Has(key) {
		return nil, nil
	}
	data, err := c.d.Read(key)
	if err != nil {
		return nil, err
	}
	var recs []record.Record
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

// SaveMasterData stores the suggestion vocabularies.
func (c *Cache) SaveMasterData(m record.MasterData) error {
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return c.d.Write(masterKey, data)
}

// LoadMasterData returns the cached master data, or nil when absent.
func (c *Cache) LoadMasterData() (*record.MasterData, error) {
	if !c.d.Has(masterKey) {
		return nil, nil
	}
	data, err := c.d.Read(masterKey)
	if err != nil {
		return nil, err
	}
	var m record.MasterData
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
