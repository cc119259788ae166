package gpu

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spaghettifunk/tilegl/engine/containers"
	"github.com/spaghettifunk/tilegl/engine/core"
)

// Command header layout: bits 0-15 register, 16-19 byte-enable mask,
// 20-27 number of extra parameters, 31 consecutive-register flag.
const (
	CMD_MASK_SHIFT        = 16
	CMD_EXTRA_SHIFT       = 20
	CMD_CONSECUTIVE uint32 = 1 << 31
	CMD_MAX_EXTRA          = 0xFF
)

// SubmitFunc receives a finished command list. The words are owned by the
// callee.
type SubmitFunc func(s Submission) error

// Submission is one command list handed to the GPU.
type Submission struct {
	ID    uuid.UUID
	Words []uint32
	Draws int
}

// Recorder implements CommandQueue by encoding commands into a word stream,
// the same way the hardware command processor reads them: every command is
// a parameter word followed by its header, then any extra parameters, padded
// to an even number of words.
type Recorder struct {
	buf     []uint32
	draws   int
	submit  SubmitFunc
	history *containers.RingQueue[Submission]
}

// NewRecorder returns a Recorder that remembers the last historyDepth
// submissions. submit may be nil.
func NewRecorder(historyDepth int, submit SubmitFunc) *Recorder {
	return &Recorder{
		buf:     make([]uint32, 0, 1024),
		submit:  submit,
		history: containers.NewRingQueue[Submission](historyDepth),
	}
}

// Words returns the commands recorded since the last Submit.
func (r *Recorder) Words() []uint32 {
	return r.buf
}

// History returns the retained submissions, oldest first.
func (r *Recorder) History() []Submission {
	return r.history.Items()
}

func (r *Recorder) header(reg Register, mask uint32, extra int, consecutive bool) uint32 {
	h := uint32(reg) | (mask&0xF)<<CMD_MASK_SHIFT | uint32(extra)<<CMD_EXTRA_SHIFT
	if consecutive {
		h |= CMD_CONSECUTIVE
	}
	return h
}

func (r *Recorder) pad() {
	if len(r.buf)%2 != 0 {
		r.buf = append(r.buf, 0)
	}
}

// AddMaskedWrite writes the bytes of reg selected by mask.
func (r *Recorder) AddMaskedWrite(reg Register, mask uint32, word uint32) {
	r.buf = append(r.buf, word, r.header(reg, mask, 0, false))
}

func (r *Recorder) AddWrite(reg Register, word uint32) {
	r.AddMaskedWrite(reg, 0xF, word)
}

func (r *Recorder) AddIncrementalWrites(reg Register, words []uint32) {
	for len(words) > 0 {
		n := min(len(words), CMD_MAX_EXTRA+1)
		r.buf = append(r.buf, words[0], r.header(reg, 0xF, n-1, true))
		r.buf = append(r.buf, words[1:n]...)
		r.pad()
		reg += Register(n)
		words = words[n:]
	}
}

func (r *Recorder) FixedAttribute(index uint8, x, y, z, w float32) {
	r.AddWrite(GPUREG_FIXEDATTRIB_INDEX, uint32(index))
	data := PackF24x4(x, y, z, w)
	r.AddIncrementalWrites(GPUREG_FIXEDATTRIB_DATA0, data[:])
}

func (r *Recorder) beginDraw(prim Primitive, indexConfig, count, offset uint32) {
	r.AddMaskedWrite(GPUREG_PRIMITIVE_CONFIG, 0x2, uint32(prim))
	r.AddWrite(GPUREG_RESTART_PRIMITIVE, 1)
	r.AddWrite(GPUREG_INDEXBUFFER_CONFIG, indexConfig)
	r.AddWrite(GPUREG_NUMVERTICES, count)
	r.AddWrite(GPUREG_VERTEX_OFFSET, offset)
	r.AddMaskedWrite(GPUREG_START_DRAW_FUNC0, 0x1, 0)
}

func (r *Recorder) endDraw() {
	r.AddMaskedWrite(GPUREG_START_DRAW_FUNC0, 0x1, 1)
	r.AddWrite(GPUREG_VTX_FUNC, 1)
	r.draws++
}

func (r *Recorder) DrawArrays(prim Primitive, first, count uint32) {
	// Bit 31 selects 16-bit indices; the address is unused for array draws.
	r.beginDraw(prim, 0x80000000, count, first)
	r.AddMaskedWrite(GPUREG_GEOSTAGE_CONFIG2, 0x1, 1)
	r.AddWrite(GPUREG_DRAWARRAYS, 1)
	r.AddMaskedWrite(GPUREG_GEOSTAGE_CONFIG2, 0x1, 0)
	r.endDraw()
}

func (r *Recorder) DrawElements(prim Primitive, indexAddr, count uint32) {
	r.beginDraw(prim, 0x80000000|(indexAddr&0x0FFFFFFF), count, 0)
	r.AddMaskedWrite(GPUREG_GEOSTAGE_CONFIG, 0x2, 0x100)
	r.AddWrite(GPUREG_DRAWELEMENTS, 1)
	r.AddMaskedWrite(GPUREG_GEOSTAGE_CONFIG, 0x2, 0)
	r.endDraw()
}

// Submit finalizes the current list, hands it to the submit callback and
// starts a new one. An empty list is not submitted.
func (r *Recorder) Submit() error {
	if len(r.buf) == 0 {
		return nil
	}
	r.AddWrite(GPUREG_FINALIZE, 0x12345678)

	s := Submission{
		ID:    uuid.New(),
		Words: append([]uint32(nil), r.buf...),
		Draws: r.draws,
	}
	r.buf = r.buf[:0]
	r.draws = 0
	r.history.Push(s)

	core.LogDebug("submitting command list %s: %d words, %d draws", s.ID, len(s.Words), s.Draws)
	if r.submit == nil {
		return nil
	}
	if err := r.submit(s); err != nil {
		return fmt.Errorf("submit %s: %w", s.ID, err)
	}
	return nil
}

// Command is one decoded register write.
type Command struct {
	Reg    Register
	Mask   uint32
	Params []uint32
	// Consecutive is set when Params target successive registers.
	Consecutive bool
}

// Decode splits a command list into its register writes.
func Decode(words []uint32) ([]Command, error) {
	var cmds []Command
	for i := 0; i < len(words); {
		if i+1 >= len(words) {
			return cmds, fmt.Errorf("truncated command at word %d", i)
		}
		h := words[i+1]
		extra := int(h>>CMD_EXTRA_SHIFT) & CMD_MAX_EXTRA
		if i+2+extra > len(words) {
			return cmds, fmt.Errorf("truncated parameters at word %d", i)
		}
		params := make([]uint32, 0, extra+1)
		params = append(params, words[i])
		params = append(params, words[i+2:i+2+extra]...)
		cmds = append(cmds, Command{
			Reg:         Register(h & 0xFFFF),
			Mask:        (h >> CMD_MASK_SHIFT) & 0xF,
			Params:      params,
			Consecutive: h&CMD_CONSECUTIVE != 0,
		})
		i += 2 + extra
		if i%2 != 0 {
			i++
		}
	}
	return cmds, nil
}
