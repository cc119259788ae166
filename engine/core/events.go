package core

type EventContext struct {
	// 64 bytes of payload plus a couple of strings
	Data struct {
		I64 [2]int64
		U64 [2]uint64
		F64 [2]float64

		I32 [4]int32
		U32 [4]uint32
		F32 [4]float32

		C [2]string
	}
}

// Event codes raised by the drawing front-end. Applications should use codes beyond 255.
type SystemEventCode int

const (
	// All pending commands were submitted and the staging arena was reset.
	/* Context usage:
	 * u32 reason = data.U32[0];
	 * u32 draws = data.U32[1];
	 * u64 staged_bytes = data.U64[0];
	 * string session = data.C[0];
	 */
	EVENT_CODE_FLUSH SystemEventCode = 0x01

	// A draw call degraded into a no-op.
	/* Context usage:
	 * u32 status = data.U32[0];
	 * u32 mode = data.U32[1];
	 */
	EVENT_CODE_DRAW_DROPPED SystemEventCode = 0x02

	// A bind call named an element type the array kind does not accept.
	/* Context usage:
	 * u32 kind = data.U32[0];
	 * u32 type = data.U32[1];
	 */
	EVENT_CODE_UNSUPPORTED_TYPE SystemEventCode = 0x03

	MAX_EVENT_CODE SystemEventCode = 0xFF
)

const MAX_MESSAGE_CODES = 16384

type registeredEvent struct {
	listener interface{}
	callback FnOnEvent
}

// Should return true if handled.
type FnOnEvent func(code SystemEventCode, sender interface{}, listener_inst interface{}, data EventContext) bool

// EventSystem dispatches events to registered listeners. It is owned by
// whoever creates it; there is no process-wide instance.
type EventSystem struct {
	registered map[SystemEventCode][]*registeredEvent
}

func NewEventSystem() *EventSystem {
	return &EventSystem{
		registered: make(map[SystemEventCode][]*registeredEvent),
	}
}

func (es *EventSystem) Shutdown() {
	// The listeners themselves are owned by their creators.
	clear(es.registered)
}

/**
 * Register to listen for when events are sent with the provided code. Events with duplicate
 * listeners will not be registered again and will cause this to return FALSE.
 * @param code The event code to listen for.
 * @param listener A pointer to a listener instance. Can be nil.
 * @param on_event The callback function to be invoked when the event code is fired.
 * @returns TRUE if the event is successfully registered; otherwise false.
 */
func (es *EventSystem) Register(code SystemEventCode, listener interface{}, onEvent FnOnEvent) bool {
	if code < 0 || code >= MAX_MESSAGE_CODES || onEvent == nil {
		return false
	}
	for _, e := range es.registered[code] {
		if e.listener == listener {
			LogWarn("listener already registered for event code %d", code)
			return false
		}
	}
	es.registered[code] = append(es.registered[code], &registeredEvent{
		listener: listener,
		callback: onEvent,
	})
	return true
}

/**
 * Unregister from listening for when events are sent with the provided code. If no matching
 * registration is found, this function returns FALSE.
 */
func (es *EventSystem) Unregister(code SystemEventCode, listener interface{}) bool {
	events := es.registered[code]
	for i, e := range events {
		if e.listener == listener {
			es.registered[code] = append(events[:i], events[i+1:]...)
			return true
		}
	}
	// Not found.
	return false
}

/**
 * Fires an event to listeners of the given code. If an event handler returns
 * TRUE, the event is considered handled and is not passed on to any more listeners.
 * @returns TRUE if handled, otherwise FALSE.
 */
func (es *EventSystem) Fire(code SystemEventCode, sender interface{}, context EventContext) bool {
	if es == nil {
		return false
	}
	for _, e := range es.registered[code] {
		if e.callback(code, sender, e.listener, context) {
			// Message has been handled, do not send to other listeners.
			return true
		}
	}
	return false
}
