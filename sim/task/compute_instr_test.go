package task

import (
	"testing"

	"github.com/rtsim/rtsim/sim"
	"github.com/stretchr/testify/assert"
)

func TestComputeInstr_SchedulePostsEndEventAfterDuration(t *testing.T) {
	s := sim.NewSimulation(1)
	tk := NewTask(s, "compute-task", nil)
	c := NewComputeInstr(s, tk, 7)
	tk.AddInstr(c)

	tk.Start(3)
	got, err := s.RunTo(100)
	assert.NoError(t, err)
	assert.Equal(t, sim.Tick(100), got) // RunTo clamps time up to its stop tick
	assert.Equal(t, sim.Tick(10), c.EndEvent().LastTime())
	assert.True(t, tk.Done())
}

func TestComputeInstr_DoitAdvancesTaskProgram(t *testing.T) {
	s := sim.NewSimulation(1)
	first := NewTask(s, "ct2", nil)
	c1 := NewComputeInstr(s, first, 5)
	c2 := NewComputeInstr(s, first, 5)
	first.AddInstr(c1)
	first.AddInstr(c2)

	first.Start(0)
	_, err := s.RunTo(4)
	assert.NoError(t, err)
	assert.Same(t, c1, first.Current())

	_, err = s.RunTo(100)
	assert.NoError(t, err)
	assert.True(t, first.Done())
}

func TestComputeInstr_FactoryParsesDuration(t *testing.T) {
	s := sim.NewSimulation(1)
	tk := NewTask(s, "ct3", nil)
	instr, err := CreateInstr(s, tk, "ComputeInstr", []string{"15"})
	assert.NoError(t, err)
	ci, ok := instr.(*ComputeInstr)
	assert.True(t, ok)
	assert.Equal(t, sim.Tick(15), ci.Duration)
}

func TestComputeInstr_FactoryRejectsWrongArity(t *testing.T) {
	s := sim.NewSimulation(1)
	tk := NewTask(s, "ct4", nil)
	_, err := CreateInstr(s, tk, "ComputeInstr", nil)
	assert.Error(t, err)
	var pe *sim.ParseExc
	assert.ErrorAs(t, err, &pe)
}

func TestComputeInstr_FactoryRejectsMalformedDuration(t *testing.T) {
	s := sim.NewSimulation(1)
	tk := NewTask(s, "ct5", nil)
	_, err := CreateInstr(s, tk, "ComputeInstr", []string{"not-a-number"})
	assert.Error(t, err)
}

func TestComputeInstr_DeschedulePreventsEndFromFiring(t *testing.T) {
	s := sim.NewSimulation(1)
	tk := NewTask(s, "ct6", nil)
	c := NewComputeInstr(s, tk, 10)
	tk.AddInstr(c)

	tk.Start(0)
	c.Deschedule()

	_, err := s.RunTo(100)
	assert.NoError(t, err)
	assert.False(t, tk.Done())
}
