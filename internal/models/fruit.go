package models

// Fruit represents a single entry in the fruit catalog.
// Records are addressed by their position in the catalog, so ordering matters.
type Fruit struct {
	Name       string `yaml:"name"`
	Color      string `yaml:"color"`
	ReadyToEat bool   `yaml:"readyToEat"`
}
