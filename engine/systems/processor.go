package systems

import (
	"fmt"
	"sync/atomic"

	"github.com/spaghettifunk/tilegl/engine/gpu"
)

// ProcessorStats summarizes the command lists a CommandProcessor consumed.
type ProcessorStats struct {
	Lists    uint64
	Words    uint64
	Draws    uint64
	Failures uint64
}

// CommandProcessor consumes submitted command lists in the background, in
// submission order, the way the GPU front-end would: every list must decode
// cleanly, end with a finalize write and kick as many draws as it claims.
type CommandProcessor struct {
	jobs *JobSystem

	lists    atomic.Uint64
	words    atomic.Uint64
	draws    atomic.Uint64
	failures atomic.Uint64
}

// NewCommandProcessor returns a processor holding up to queueDepth lists
// that have been submitted but not consumed yet.
func NewCommandProcessor(queueDepth int) (*CommandProcessor, error) {
	// A single worker keeps lists in order.
	jobs, err := NewJobSystem(1, queueDepth)
	if err != nil {
		return nil, err
	}
	return &CommandProcessor{jobs: jobs}, nil
}

// Submit queues s. It has the signature of gpu.SubmitFunc.
func (p *CommandProcessor) Submit(s gpu.Submission) error {
	return p.jobs.Submit(JobTask{
		OnStart: func() error {
			return p.execute(s)
		},
		OnComplete: func() {
			p.lists.Add(1)
			p.words.Add(uint64(len(s.Words)))
			p.draws.Add(uint64(s.Draws))
		},
		OnFailure: func(err error) {
			p.failures.Add(1)
		},
	})
}

func (p *CommandProcessor) execute(s gpu.Submission) error {
	cmds, err := gpu.Decode(s.Words)
	if err != nil {
		return fmt.Errorf("command list %s: %w", s.ID, err)
	}
	if len(cmds) == 0 || cmds[len(cmds)-1].Reg != gpu.GPUREG_FINALIZE {
		return fmt.Errorf("command list %s is not finalized", s.ID)
	}

	var kicks int
	for _, c := range cmds {
		if c.Reg == gpu.GPUREG_DRAWARRAYS || c.Reg == gpu.GPUREG_DRAWELEMENTS {
			kicks++
		}
	}
	if kicks != s.Draws {
		return fmt.Errorf("command list %s: %d draws kicked, %d recorded", s.ID, kicks, s.Draws)
	}
	return nil
}

// Shutdown waits for every queued list to be consumed.
func (p *CommandProcessor) Shutdown() error {
	return p.jobs.Shutdown()
}

func (p *CommandProcessor) Stats() ProcessorStats {
	return ProcessorStats{
		Lists:    p.lists.Load(),
		Words:    p.words.Load(),
		Draws:    p.draws.Load(),
		Failures: p.failures.Load(),
	}
}
