package cache

import (
	"fmt"
	"io/ioutil"
	"os"
	"sync"

	jsoniter "github.com/json-iterator/go"

	"github.com/edgebt/bredr"
)

type identityCache struct {
	filename string
	lock     sync.RWMutex
}

// New returns a file-backed identity cache.
func New(filename string) bredr.IdentityCache {
	ic := identityCache{
		filename: filename,
	}

	return &ic
}

func (ic *identityCache) Store(mac bredr.Addr, id bredr.Identity, replace bool) error {
	ic.lock.Lock()
	defer ic.lock.Unlock()

	cache, err := ic.loadExisting()
	if err != nil {
		return err
	}

	_, ok := cache[mac.String()]
	if ok && !replace {
		return fmt.Errorf("cache already contains identity for %s", mac.String())
	}

	cache[mac.String()] = id

	return ic.storeCache(cache)
}

func (ic *identityCache) Load(mac bredr.Addr) (bredr.Identity, error) {
	ic.lock.RLock()
	defer ic.lock.RUnlock()

	cache, err := ic.loadExisting()
	if err != nil {
		return bredr.Identity{}, err
	}

	id, ok := cache[mac.String()]
	if !ok {
		return bredr.Identity{}, fmt.Errorf("identity for %s not found in cache", mac.String())
	}

	return id, nil
}

func (ic *identityCache) Clear() error {
	ic.lock.Lock()
	defer ic.lock.Unlock()

	return os.Remove(ic.filename)
}

func (ic *identityCache) loadExisting() (map[string]bredr.Identity, error) {
	_, err := os.Stat(ic.filename)
	if os.IsNotExist(err) {
		return map[string]bredr.Identity{}, nil
	}

	in, err := ioutil.ReadFile(ic.filename)
	if err != nil {
		return nil, err
	}

	var cache map[string]bredr.Identity
	err = jsoniter.Unmarshal(in, &cache)
	if err != nil {
		return nil, err
	}

	return cache, nil
}

func (ic *identityCache) storeCache(cache map[string]bredr.Identity) error {
	out, err := jsoniter.Marshal(cache)
	if err != nil {
		return err
	}

	return ioutil.WriteFile(ic.filename, out, 0644)
}
