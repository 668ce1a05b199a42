package model

// Item is the per-identity tracking state. It is stored by value: readers get
// a copy and writers replace the whole record.
type Item struct {
	AddedAt      uint64 // logical time of admission
	LastAccessAt uint64 // logical time of the last admit or touch
	AccessCount  uint64 // touches since admission
	Tag          Policy // policy that was active on admission

	// S3-FIFO
	Freq   uint8 // saturating at 3
	InMain bool

	// LHD-Simple
	LastHitAge uint64
}

// NewItem builds metadata for an item admitted at now under policy p.
func NewItem(now uint64, p Policy) Item {
	return Item{AddedAt: now, LastAccessAt: now, Tag: p}
}

// IsOneTime reports whether the item was touched at most once during its life.
func (it Item) IsOneTime() bool { return it.AccessCount <= 1 }

// InSmall reports whether the item sits in the S3-FIFO probationary segment.
func (it Item) InSmall() bool { return it.Tag == PolicyS3FIFO && !it.InMain }
