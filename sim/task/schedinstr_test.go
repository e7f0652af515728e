package task

import (
	"testing"

	"github.com/rtsim/rtsim/sim"
	"github.com/stretchr/testify/assert"
)

// tickProbe records the simulation tick at which its event fired.
type tickProbe struct{ times *[]sim.Tick }

func (p tickProbe) Notify(e *sim.Event) { *p.times = append(*p.times, e.LastTime()) }

// TestSchedInstr_OnEndCallOrder is spec.md Scenario S5: task T with kernel
// K, instruction I with duration 5, posted at time=0. At time=5, onEnd
// fires; call order must be T.onInstrEnd -> K.disableThreshold ->
// K.dispatch -> threEvt.process, observed at trace timestamps all equal to
// 5, and threEvt's own probe must see dispatch already completed.
func TestSchedInstr_OnEndCallOrder(t *testing.T) {
	s := sim.NewSimulation(1)
	var order []string
	tk := NewTask(s, "T", nil)
	k := &fakeKernel{callOrder: &order}
	tk.SetKernel(k)

	si := NewSchedInstr(s, tk, 5)
	tk.AddInstr(si)

	var threTimes []sim.Tick
	dispatchedBeforeThreEvt := false
	si.ThresholdEvent().AddTrace(tickProbe{&threTimes})
	si.ThresholdEvent().AddStat(probeFunc(func(e *sim.Event) {
		dispatchedBeforeThreEvt = k.dispatchCalls == 1
	}))

	tk.Start(0)
	_, err := s.RunTo(100)
	assert.NoError(t, err)

	assert.Equal(t, 1, k.disableCalls)
	assert.Equal(t, 1, k.dispatchCalls)
	assert.Equal(t, []string{"disableThreshold", "dispatch"}, order)
	assert.Equal(t, []sim.Tick{5}, threTimes)
	assert.True(t, dispatchedBeforeThreEvt)
	assert.True(t, tk.Done())
}

type probeFunc func(e *sim.Event)

func (f probeFunc) Notify(e *sim.Event) { f(e) }

func TestSchedInstr_MissingKernelIsKernelMismatchError(t *testing.T) {
	s := sim.NewSimulation(1)
	tk := NewTask(s, "T2", nil)
	si := NewSchedInstr(s, tk, 5)
	tk.AddInstr(si)

	tk.Start(0)
	_, err := s.RunTo(100)
	assert.Error(t, err)
	var km *sim.KernelMismatchError
	assert.ErrorAs(t, err, &km)
}

func TestSchedInstr_DescheduleDropsBothEndAndThresholdEvents(t *testing.T) {
	s := sim.NewSimulation(1)
	tk := NewTask(s, "T3", nil)
	k := &fakeKernel{}
	tk.SetKernel(k)
	si := NewSchedInstr(s, tk, 5)
	tk.AddInstr(si)

	tk.Start(0)
	si.Deschedule()

	_, err := s.RunTo(100)
	assert.NoError(t, err)
	assert.Equal(t, 0, k.dispatchCalls)
	assert.False(t, tk.Done())
}

func TestSchedInstr_FactoryParsesDuration(t *testing.T) {
	s := sim.NewSimulation(1)
	tk := NewTask(s, "T4", nil)
	instr, err := CreateInstr(s, tk, "SchedInstr", []string{"9"})
	assert.NoError(t, err)
	si, ok := instr.(*SchedInstr)
	assert.True(t, ok)
	assert.Equal(t, sim.Tick(9), si.Duration)
}
