package core

const AVG_COUNT uint8 = 30

// FlushReason says what forced pending GPU commands to be submitted.
type FlushReason uint8

const (
	FLUSH_REASON_EXPLICIT FlushReason = iota
	FLUSH_REASON_ARENA
	FLUSH_REASON_BATCH
	FLUSH_REASON_MAX
)

func (r FlushReason) String() string {
	switch r {
	case FLUSH_REASON_EXPLICIT:
		return "explicit"
	case FLUSH_REASON_ARENA:
		return "arena"
	case FLUSH_REASON_BATCH:
		return "batch"
	default:
		return "unknown"
	}
}

// Metrics collects per-session drawing statistics. The epoch timings keep
// a rolling average over the last AVG_COUNT epochs.
type Metrics struct {
	DrawsSubmitted uint64
	DrawsDropped   uint64
	Flushes        [FLUSH_REASON_MAX]uint64
	BytesStaged    uint64
	// Largest arena cursor observed in any epoch.
	HighWater uint32

	epochAVGCounter uint8
	epochMStimes    [AVG_COUNT]float64
	epochMSavg      float64
	clock           *Clock
}

func NewMetrics() *Metrics {
	m := &Metrics{
		clock: NewClock(),
	}
	m.clock.Start()
	return m
}

func (m *Metrics) RecordDraw() {
	m.DrawsSubmitted++
}

func (m *Metrics) RecordDrop() {
	m.DrawsDropped++
}

// RecordStaged accounts n bytes copied into the arena, leaving its cursor at
// cursor.
func (m *Metrics) RecordStaged(n, cursor uint32) {
	m.BytesStaged += uint64(n)
	if cursor > m.HighWater {
		m.HighWater = cursor
	}
}

// RecordFlush closes the current epoch.
func (m *Metrics) RecordFlush(reason FlushReason) {
	if reason < FLUSH_REASON_MAX {
		m.Flushes[reason]++
	}

	m.clock.Update()
	epochMS := m.clock.ElapsedSeconds() * 1000.0
	m.epochMStimes[m.epochAVGCounter] = epochMS
	if m.epochAVGCounter == AVG_COUNT-1 {
		m.epochMSavg = 0
		for i := uint8(0); i < AVG_COUNT; i++ {
			m.epochMSavg += m.epochMStimes[i]
		}
		m.epochMSavg /= float64(AVG_COUNT)
	}
	m.epochAVGCounter++
	m.epochAVGCounter %= AVG_COUNT
	m.clock.Start()
}

// TotalFlushes sums the flushes of every reason.
func (m *Metrics) TotalFlushes() uint64 {
	var n uint64
	for _, f := range m.Flushes {
		n += f
	}
	return n
}

// EpochTime returns the rolling average epoch duration in milliseconds. It
// stays 0 until AVG_COUNT epochs have completed.
func (m *Metrics) EpochTime() float64 {
	return m.epochMSavg
}
