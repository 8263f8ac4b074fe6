// Package registry resolves characteristic metadata: canonical UUIDs,
// display names, units, and declared value kinds.
//
// The database is embedded at build time and parsed lazily on first
// lookup; after that every lookup is a read-only map access, so the
// registry is safe for concurrent use. The codecs never consult the
// registry during decode; callers attach the resolved Descriptor to a
// decoded value as an opaque companion.
package registry

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/gattkit/gattkit/characteristic"
	"github.com/gattkit/gattkit/format"
	"github.com/gattkit/gattkit/internal/hash"
	uuid "github.com/satori/go.uuid"
	"gopkg.in/yaml.v3"
)

//go:embed db.yaml
var dbYAML []byte

// baseUUIDSuffix is the tail of the Bluetooth base UUID. A 16-bit
// assigned number XXXX expands to 0000XXXX-0000-1000-8000-00805F9B34FB.
const baseUUIDSuffix = "-0000-1000-8000-00805f9b34fb"

// Descriptor is the resolved metadata for one characteristic type.
type Descriptor struct {
	// Type is the 16-bit assigned number.
	Type characteristic.Type
	// UUID is the full 128-bit UUID under the Bluetooth base UUID.
	UUID uuid.UUID
	// Name is the SIG display name.
	Name string
	// Unit is the display unit, empty for unitless characteristics.
	Unit string
	// Kind is the declared logical value category.
	Kind format.ValueKind
	// NameID is the interned xxHash64 of Name.
	NameID uint64
}

type dbEntry struct {
	UUID uint16 `yaml:"uuid"`
	Name string `yaml:"name"`
	Unit string `yaml:"unit"`
	Kind string `yaml:"kind"`
}

type dbFile struct {
	Characteristics []dbEntry `yaml:"characteristics"`
}

var (
	loadOnce sync.Once
	loadErr  error

	byType   map[characteristic.Type]*Descriptor
	byNameID map[uint64]*Descriptor
)

func kindOf(s string) (format.ValueKind, error) {
	switch strings.ToLower(s) {
	case "numeric":
		return format.KindNumeric, nil
	case "enum":
		return format.KindEnum, nil
	case "composite":
		return format.KindComposite, nil
	case "utf8":
		return format.KindUTF8, nil
	default:
		return 0, fmt.Errorf("unknown value kind %q", s)
	}
}

// ExpandUUID expands a 16-bit assigned number to its full 128-bit UUID
// under the Bluetooth base UUID.
func ExpandUUID(t characteristic.Type) uuid.UUID {
	return uuid.Must(uuid.FromString(
		fmt.Sprintf("0000%04x%s", t.UUID16(), baseUUIDSuffix)))
}

// ShortUUID extracts the 16-bit assigned number from a full UUID, if the
// UUID lies under the Bluetooth base UUID.
func ShortUUID(u uuid.UUID) (characteristic.Type, bool) {
	s := u.String()
	if !strings.HasPrefix(s, "0000") || !strings.HasSuffix(s, baseUUIDSuffix) {
		return 0, false
	}

	var short uint16
	if _, err := fmt.Sscanf(s[4:8], "%04x", &short); err != nil {
		return 0, false
	}

	return characteristic.Type(short), true
}

func load() {
	var db dbFile
	if loadErr = yaml.Unmarshal(dbYAML, &db); loadErr != nil {
		loadErr = fmt.Errorf("parse embedded metadata: %w", loadErr)
		return
	}

	byType = make(map[characteristic.Type]*Descriptor, len(db.Characteristics))
	byNameID = make(map[uint64]*Descriptor, len(db.Characteristics))

	for _, e := range db.Characteristics {
		kind, err := kindOf(e.Kind)
		if err != nil {
			loadErr = fmt.Errorf("entry 0x%04X: %w", e.UUID, err)
			return
		}

		t := characteristic.Type(e.UUID)
		d := &Descriptor{
			Type:   t,
			UUID:   ExpandUUID(t),
			Name:   e.Name,
			Unit:   e.Unit,
			Kind:   kind,
			NameID: hash.ID(e.Name),
		}
		byType[t] = d
		byNameID[d.NameID] = d
	}
}

func ensure() error {
	loadOnce.Do(load)
	return loadErr
}

// Lookup returns the descriptor for a characteristic type.
func Lookup(t characteristic.Type) (*Descriptor, bool) {
	if ensure() != nil {
		return nil, false
	}

	d, ok := byType[t]

	return d, ok
}

// LookupName returns the descriptor with the given display name.
func LookupName(name string) (*Descriptor, bool) {
	if ensure() != nil {
		return nil, false
	}

	d, ok := byNameID[hash.ID(name)]

	return d, ok
}

// LookupUUID returns the descriptor for a full 128-bit UUID under the
// Bluetooth base UUID.
func LookupUUID(u uuid.UUID) (*Descriptor, bool) {
	t, ok := ShortUUID(u)
	if !ok {
		return nil, false
	}

	return Lookup(t)
}

// All returns every registered descriptor. The slice is freshly
// allocated; the descriptors are shared and read-only.
func All() []*Descriptor {
	if ensure() != nil {
		return nil
	}

	out := make([]*Descriptor, 0, len(byType))
	for _, t := range characteristic.Types() {
		if d, ok := byType[t]; ok {
			out = append(out, d)
		}
	}

	return out
}
