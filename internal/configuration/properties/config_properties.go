package properties

type ApplicationConfigProperties struct {
	Profile           string `yaml:"profile"`
	LogLevel          string `yaml:"log-level"`
	DeadlockDetection bool   `yaml:"deadlock-detection"`
}

type LinkConfigProperties struct {
	From          uint64 `yaml:"from"`
	To            uint64 `yaml:"to"`
	Bidirectional bool   `yaml:"bidirectional"`
}

type TopologyConfigProperties struct {
	Nodes    []uint64               `yaml:"nodes"`
	FullMesh bool                   `yaml:"full-mesh"`
	Links    []LinkConfigProperties `yaml:"links"`
}

type StepConfigProperties struct {
	Action string   `yaml:"action"`
	Node   uint64   `yaml:"node"`
	Value  int64    `yaml:"value"`
	Name   string   `yaml:"name"`
	Nodes  []uint64 `yaml:"nodes"`
}

type ScenarioConfigProperties struct {
	Steps []StepConfigProperties `yaml:"steps"`
}

type JournalConfigProperties struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
	NoSync  bool   `yaml:"no-sync"`
}

type MetricsConfigProperties struct {
	Enabled bool   `yaml:"enabled"`
	Address string `yaml:"address"`
}

type Config struct {
	Application ApplicationConfigProperties `yaml:"app"`
	Topology    TopologyConfigProperties    `yaml:"topology"`
	Scenario    ScenarioConfigProperties    `yaml:"scenario"`
	Journal     JournalConfigProperties     `yaml:"journal"`
	Metrics     MetricsConfigProperties     `yaml:"metrics"`
}
