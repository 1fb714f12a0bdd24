package progress

import "sync/atomic"

// Catalog holds the human-readable status strings emitted through progress
// reports. Callers may install a translated catalog with SetMessages; the
// swap is atomic, but replacing the catalog while a parse is running gives
// no guarantee about which messages that parse emits.
type Catalog struct {
	DecodeStart    string
	DecodeFinished string
	Decompressing  string
	EncodeStart    string
	EncodeFinished string
	RegionReading  string
	RegionWriting  string
}

var defaultCatalog = Catalog{
	DecodeStart:    "Parsing NBT file to NBT node tree.",
	DecodeFinished: "Parsing finished!",
	Decompressing:  "Decompressing NBT payload.",
	EncodeStart:    "Writing NBT node tree to bytes.",
	EncodeFinished: "Writing finished!",
	RegionReading:  "Reading region file chunks.",
	RegionWriting:  "Writing region file chunks.",
}

var catalog atomic.Pointer[Catalog]

func init() {
	catalog.Store(&defaultCatalog)
}

// Messages returns the currently installed message catalog.
func Messages() *Catalog {
	return catalog.Load()
}

// SetMessages installs a replacement message catalog. Passing nil restores
// the built-in English catalog.
func SetMessages(c *Catalog) {
	if c == nil {
		catalog.Store(&defaultCatalog)
		return
	}

	catalog.Store(c)
}
