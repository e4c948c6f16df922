package token

import (
	"fmt"
	"sort"
	"sync"
)

const (
	PrimarySize   = 512
	SecondarySize = 256

	// DefaultDictionaryName is dictionary used when stream has no explicit signature.
	DefaultDictionaryName = "1/com.sprintpcs/1"
)

// DefaultSignature is signature of DefaultDictionaryName.
var DefaultSignature = SignatureOf([]byte(DefaultDictionaryName))

// SignatureOf returns CRC-16/CCITT-FALSE of name:
// poly 0x1021, init 0xFFFF, no reflection, no final xor.
func SignatureOf(name []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range name {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

// StaticDictionary is immutable named string table selected by signature.
// Empty slot means no entry.
type StaticDictionary struct {
	Signature uint16
	Name      string
	Primary   [PrimarySize]string
	Secondary [SecondarySize]string
}

// NewStaticDictionary builds dictionary from ordered entries.
func NewStaticDictionary(name string, primary, secondary []string) (*StaticDictionary, error) {
	if name == "" {
		return nil, fmt.Errorf("dictionary name is empty")
	}
	if len(primary) > PrimarySize {
		return nil, fmt.Errorf("dictionary %q: %d primary entries, max %d", name, len(primary), PrimarySize)
	}
	if len(secondary) > SecondarySize {
		return nil, fmt.Errorf("dictionary %q: %d secondary entries, max %d", name, len(secondary), SecondarySize)
	}

	d := &StaticDictionary{
		Signature: SignatureOf([]byte(name)),
		Name:      name,
	}
	copy(d.Primary[:], primary)
	copy(d.Secondary[:], secondary)
	return d, nil
}

// PrimaryEntry returns primary table entry.
func (d *StaticDictionary) PrimaryEntry(idx int) (string, bool) {
	if idx < 0 || idx >= PrimarySize || d.Primary[idx] == "" {
		return "", false
	}
	return d.Primary[idx], true
}

// SecondaryEntry returns secondary table entry.
func (d *StaticDictionary) SecondaryEntry(idx int) (string, bool) {
	if idx < 0 || idx >= SecondarySize || d.Secondary[idx] == "" {
		return "", false
	}
	return d.Secondary[idx], true
}

// Len returns number of defined entries in both tables.
func (d *StaticDictionary) Len() int {
	n := 0
	for _, e := range d.Primary {
		if e != "" {
			n++
		}
	}
	for _, e := range d.Secondary {
		if e != "" {
			n++
		}
	}
	return n
}

// Registry maps signatures to dictionaries.
// It is filled at startup and frozen before decoding starts.
type Registry struct {
	mu     sync.RWMutex
	dicts  map[uint16]*StaticDictionary
	frozen bool
}

func NewRegistry() *Registry {
	return &Registry{
		dicts: make(map[uint16]*StaticDictionary),
	}
}

// Register adds dictionary. Fails after Freeze or on signature collision.
func (r *Registry) Register(d *StaticDictionary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return ErrRegistryFrozen
	}
	if old, exists := r.dicts[d.Signature]; exists {
		return fmt.Errorf("%w: %q and %q both 0x%04x", ErrDuplicateSignature, old.Name, d.Name, d.Signature)
	}
	r.dicts[d.Signature] = d
	return nil
}

// Freeze makes registry read only.
func (r *Registry) Freeze() {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()
}

func (r *Registry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}

// Lookup returns dictionary registered under signature.
func (r *Registry) Lookup(signature uint16) (*StaticDictionary, error) {
	r.mu.RLock()
	d, ok := r.dicts[signature]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: 0x%04x", ErrUnknownDictionarySignature, signature)
	}
	return d, nil
}

// Dictionaries returns registered dictionaries sorted by name.
func (r *Registry) Dictionaries() []*StaticDictionary {
	r.mu.RLock()
	list := make([]*StaticDictionary, 0, len(r.dicts))
	for _, d := range r.dicts {
		list = append(list, d)
	}
	r.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	return list
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns process registry holding built-in dictionary.
// More dictionaries can be registered until first decoder freezes it.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
		if err := defaultRegistry.Register(DefaultDictionary()); err != nil {
			panic(err)
		}
	})
	return defaultRegistry
}
