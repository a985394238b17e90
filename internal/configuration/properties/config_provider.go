package properties

type ConfigProvider interface {
	GetApplication() *ApplicationConfigProperties
	GetTopology() *TopologyConfigProperties
	GetScenario() *ScenarioConfigProperties
	GetJournal() *JournalConfigProperties
	GetMetrics() *MetricsConfigProperties
}

type AppConfigProvider struct {
	config *Config
}

func NewProvider(cfg *Config) *AppConfigProvider {
	return &AppConfigProvider{config: cfg}
}

func (c *AppConfigProvider) GetApplication() *ApplicationConfigProperties {
	return &c.config.Application
}

func (c *AppConfigProvider) GetTopology() *TopologyConfigProperties {
	return &c.config.Topology
}

func (c *AppConfigProvider) GetScenario() *ScenarioConfigProperties {
	return &c.config.Scenario
}

func (c *AppConfigProvider) GetJournal() *JournalConfigProperties {
	return &c.config.Journal
}

func (c *AppConfigProvider) GetMetrics() *MetricsConfigProperties {
	return &c.config.Metrics
}
