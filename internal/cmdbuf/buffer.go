package cmdbuf

// MaxCommands is the number of records one frame can hold.
const MaxCommands = 10000

// Buffer is the per-frame command buffer. Storage is allocated once and
// reused across frames; Reset only rewinds the count.
//
// A Buffer is not safe for concurrent use.
type Buffer struct {
	records []Record
	count   int

	// dropped counts calls that overwrote the last slot because the buffer
	// was full.
	dropped int

	// staging is reused by Encode.
	staging []byte
}

// NewBuffer allocates a buffer for MaxCommands records.
func NewBuffer() *Buffer {
	return &Buffer{records: make([]Record, MaxCommands)}
}

// Reset rewinds the buffer to zero records.
func (b *Buffer) Reset() {
	b.count = 0
	b.dropped = 0
}

// Next returns the next free record, initialised with a copy of state and
// zero shape fields, and advances the count.
//
// When the buffer is full the count stays at MaxCommands and the last record
// is returned again, so every further call in the frame overwrites it. This
// is a capacity ceiling, not an error: the overflowing shapes are lost.
func (b *Buffer) Next(state State) *Record {
	i := b.count
	if i < MaxCommands {
		b.count++
	} else {
		i = MaxCommands - 1
		b.dropped++
	}
	r := &b.records[i]
	*r = Record{State: state}
	return r
}

// Len returns the number of records encoded since the last Reset.
func (b *Buffer) Len() int {
	return b.count
}

// Dropped returns how many calls since the last Reset overwrote the last
// record because the buffer was full.
func (b *Buffer) Dropped() int {
	return b.dropped
}

// Records returns the encoded records. The slice aliases the buffer and is
// only valid until the next Reset.
func (b *Buffer) Records() []Record {
	return b.records[:b.count]
}

// Encode serialises the used prefix of the buffer, RecordStride bytes per
// record. The returned slice aliases internal storage and is only valid until
// the next Encode.
func (b *Buffer) Encode() []byte {
	needed := b.count * RecordStride
	if cap(b.staging) < needed {
		b.staging = make([]byte, needed)
	}
	b.staging = b.staging[:needed]
	for i := 0; i < b.count; i++ {
		b.records[i].put(b.staging[i*RecordStride:])
	}
	return b.staging
}
