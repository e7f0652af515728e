package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rtsim/rtsim/sim"
	"github.com/stretchr/testify/assert"
)

const sampleScenario = `
seed: 1
length: 100
nRuns: 1
tasks:
  - name: worker
    instrs:
      - class: ComputeInstr
        params: ["5"]
      - class: ComputeInstr
        params: ["10"]
`

func writeScenario(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	assert.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadScenario_ParsesTasksAndInstrs(t *testing.T) {
	path := writeScenario(t, sampleScenario)
	cfg, err := LoadScenario(path)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), cfg.Seed)
	assert.Equal(t, int64(100), cfg.Length)
	assert.Equal(t, 1, cfg.NRuns)
	assert.Len(t, cfg.Tasks, 1)
	assert.Equal(t, "worker", cfg.Tasks[0].Name)
	assert.Len(t, cfg.Tasks[0].Instrs, 2)
	assert.Equal(t, "ComputeInstr", cfg.Tasks[0].Instrs[0].Class)
	assert.Equal(t, []string{"5"}, cfg.Tasks[0].Instrs[0].Params)
}

func TestLoadScenario_MissingFileIsIoExc(t *testing.T) {
	_, err := LoadScenario("/nonexistent/scenario.yaml")
	assert.Error(t, err)
	var ioErr *sim.IoExc
	assert.ErrorAs(t, err, &ioErr)
}

func TestLoadScenario_UnknownFieldIsParseExc(t *testing.T) {
	path := writeScenario(t, "seed: 1\nbogusField: true\n")
	_, err := LoadScenario(path)
	assert.Error(t, err)
	var pe *sim.ParseExc
	assert.ErrorAs(t, err, &pe)
}

func TestBuildTasks_InstantiatesAndRegistersEachTask(t *testing.T) {
	path := writeScenario(t, sampleScenario)
	cfg, err := LoadScenario(path)
	assert.NoError(t, err)

	s := sim.NewSimulation(cfg.Seed)
	tasks, err := BuildTasks(s, cfg)
	assert.NoError(t, err)
	assert.Len(t, tasks, 1)
	assert.Equal(t, "worker", tasks[0].Name())

	found, err := s.Registry().Find("worker")
	assert.NoError(t, err)
	assert.Same(t, tasks[0], found)
}

func TestBuildTasks_RunsToCompletion(t *testing.T) {
	path := writeScenario(t, sampleScenario)
	cfg, err := LoadScenario(path)
	assert.NoError(t, err)

	s := sim.NewSimulation(cfg.Seed)
	tasks, err := BuildTasks(s, cfg)
	assert.NoError(t, err)
	for _, tk := range tasks {
		tk.Start(0)
	}

	assert.NoError(t, s.Run(sim.Tick(cfg.Length), cfg.NRuns))
	assert.True(t, tasks[0].Done())
}

func TestBuildTasks_UnknownInstrClassIsError(t *testing.T) {
	path := writeScenario(t, `
seed: 1
length: 10
nRuns: 1
tasks:
  - name: worker
    instrs:
      - class: NoSuchInstr
        params: []
`)
	cfg, err := LoadScenario(path)
	assert.NoError(t, err)

	s := sim.NewSimulation(cfg.Seed)
	_, err = BuildTasks(s, cfg)
	assert.Error(t, err)
}
