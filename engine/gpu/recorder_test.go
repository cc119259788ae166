package gpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderSingleWrite(t *testing.T) {
	r := NewRecorder(1, nil)
	r.AddWrite(GPUREG_NUMVERTICES, 3)

	assert.Equal(t, []uint32{3, uint32(GPUREG_NUMVERTICES) | 0xF<<16}, r.Words())
}

func TestRecorderIncrementalWritesArePadded(t *testing.T) {
	r := NewRecorder(1, nil)
	r.AddIncrementalWrites(GPUREG_ATTRIBBUFFER0_CONFIG1, []uint32{1, 2})
	// param, header, extra param, padding
	require.Len(t, r.Words(), 4)
	assert.Equal(t, uint32(GPUREG_ATTRIBBUFFER0_CONFIG1)|0xF<<16|1<<20|CMD_CONSECUTIVE, r.Words()[1])

	r.AddIncrementalWrites(GPUREG_FIXEDATTRIB_DATA0, []uint32{7, 8, 9})
	assert.Len(t, r.Words(), 8)

	cmds, err := Decode(r.Words())
	require.NoError(t, err)
	require.Len(t, cmds, 2)
	assert.Equal(t, []uint32{1, 2}, cmds[0].Params)
	assert.Equal(t, GPUREG_FIXEDATTRIB_DATA0, cmds[1].Reg)
	assert.Equal(t, []uint32{7, 8, 9}, cmds[1].Params)
}

func TestRecorderFixedAttribute(t *testing.T) {
	r := NewRecorder(1, nil)
	r.FixedAttribute(2, 1, 1, 0, 0)

	cmds, err := Decode(r.Words())
	require.NoError(t, err)
	require.Len(t, cmds, 2)
	assert.Equal(t, GPUREG_FIXEDATTRIB_INDEX, cmds[0].Reg)
	assert.Equal(t, []uint32{2}, cmds[0].Params)
	data := PackF24x4(1, 1, 0, 0)
	assert.Equal(t, data[:], cmds[1].Params)
}

func findWrites(cmds []Command, reg Register) []Command {
	var out []Command
	for _, c := range cmds {
		if c.Reg == reg {
			out = append(out, c)
		}
	}
	return out
}

func TestRecorderDraws(t *testing.T) {
	r := NewRecorder(1, nil)
	r.DrawArrays(PRIMITIVE_TRIANGLE_FAN, 4, 6)
	r.DrawElements(PRIMITIVE_TRIANGLES, 0x2000, 9)

	cmds, err := Decode(r.Words())
	require.NoError(t, err)

	prims := findWrites(cmds, GPUREG_PRIMITIVE_CONFIG)
	require.Len(t, prims, 2)
	assert.Equal(t, uint32(PRIMITIVE_TRIANGLE_FAN), prims[0].Params[0])
	assert.Equal(t, uint32(0x2), prims[0].Mask)

	counts := findWrites(cmds, GPUREG_NUMVERTICES)
	require.Len(t, counts, 2)
	assert.Equal(t, uint32(6), counts[0].Params[0])
	assert.Equal(t, uint32(9), counts[1].Params[0])

	offsets := findWrites(cmds, GPUREG_VERTEX_OFFSET)
	assert.Equal(t, uint32(4), offsets[0].Params[0])

	index := findWrites(cmds, GPUREG_INDEXBUFFER_CONFIG)
	assert.Equal(t, uint32(0x80002000), index[1].Params[0])

	assert.Len(t, findWrites(cmds, GPUREG_DRAWARRAYS), 1)
	assert.Len(t, findWrites(cmds, GPUREG_DRAWELEMENTS), 1)
}

func TestRecorderSubmit(t *testing.T) {
	var got []Submission
	r := NewRecorder(2, func(s Submission) error {
		got = append(got, s)
		return nil
	})

	// Nothing recorded, nothing submitted.
	require.NoError(t, r.Submit())
	assert.Empty(t, got)

	for i := 0; i < 3; i++ {
		r.DrawArrays(PRIMITIVE_TRIANGLES, 0, 3)
		require.NoError(t, r.Submit())
	}
	require.Len(t, got, 3)
	assert.Empty(t, r.Words())
	assert.Equal(t, 1, got[0].Draws)
	assert.NotEqual(t, got[0].ID, got[1].ID)

	cmds, err := Decode(got[0].Words)
	require.NoError(t, err)
	assert.Equal(t, GPUREG_FINALIZE, cmds[len(cmds)-1].Reg)

	history := r.History()
	require.Len(t, history, 2)
	assert.Equal(t, got[1].ID, history[0].ID)
	assert.Equal(t, got[2].ID, history[1].ID)
}

func TestRecorderSubmitError(t *testing.T) {
	boom := errors.New("boom")
	r := NewRecorder(1, func(Submission) error { return boom })
	r.AddWrite(GPUREG_VTX_FUNC, 1)
	assert.ErrorIs(t, r.Submit(), boom)
	assert.Empty(t, r.Words(), "a failed submission still starts a new list")
}

func TestDecodeTruncated(t *testing.T) {
	_, err := Decode([]uint32{1})
	assert.Error(t, err)
	_, err = Decode([]uint32{1, uint32(GPUREG_FIXEDATTRIB_DATA0) | 2<<20})
	assert.Error(t, err)
}
