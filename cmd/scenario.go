package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rtsim/rtsim/sim"
	"github.com/rtsim/rtsim/sim/task"
)

// InstrConfig names one instruction in a task's program: Class feeds
// task.CreateInstr's factory lookup, and Params its scripted string
// parameters.
type InstrConfig struct {
	Class  string   `yaml:"class"`
	Params []string `yaml:"params"`
}

// TaskConfig names one task and its instruction program.
type TaskConfig struct {
	Name   string        `yaml:"name"`
	Instrs []InstrConfig `yaml:"instrs"`
}

// ScenarioConfig is the top-level shape of a scenario YAML file: a seed, a
// run horizon and replica count, the tasks to build, and any standalone
// inter-arrival generators. An unrecognized key is a config error, not
// silently ignored, per the strict decoder below.
type ScenarioConfig struct {
	Seed     int64           `yaml:"seed"`
	Length   int64           `yaml:"length"`
	NRuns    int             `yaml:"nRuns"`
	Tasks    []TaskConfig    `yaml:"tasks"`
	Arrivals []ArrivalConfig `yaml:"arrivals"`
}

// LoadScenario parses a scenario file at path with strict field checking:
// an unrecognized YAML key is a *sim.ParseExc, not a silently-dropped
// field.
func LoadScenario(path string) (*ScenarioConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &sim.IoExc{Path: path, Err: err}
	}

	var cfg ScenarioConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, &sim.ParseExc{ClassName: "ScenarioConfig", Reason: err.Error()}
	}
	return &cfg, nil
}

// BuildTasks instantiates every task.Task named in cfg, wiring each
// instruction through task.CreateInstr. It does not start the tasks;
// callers drive that separately (e.g. looping t.Start(0)) so a caller can
// stagger start times or otherwise customize the launch. It returns the
// built tasks in file order.
func BuildTasks(s *sim.Simulation, cfg *ScenarioConfig) ([]*task.Task, error) {
	tasks := make([]*task.Task, 0, len(cfg.Tasks))
	for _, tc := range cfg.Tasks {
		t := task.NewTask(s, tc.Name, nil)
		for _, ic := range tc.Instrs {
			instr, err := task.CreateInstr(s, t, ic.Class, ic.Params)
			if err != nil {
				return nil, fmt.Errorf("task %q: %w", tc.Name, err)
			}
			t.AddInstr(instr)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}
