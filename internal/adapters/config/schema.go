package config

// FileConfig represents the structure of the dmc.yaml configuration file.
// Unset fields keep their lower precedence value.
type FileConfig struct {
	Compiler     string `yaml:"compiler"`
	Linker       string `yaml:"linker"`
	Jobs         *int   `yaml:"jobs"`
	Debug        *bool  `yaml:"debug"`
	Dev          *bool  `yaml:"dev"`
	SingleThread *bool  `yaml:"singleThread"`
	Timeout      string `yaml:"timeout"`
	Schedule     string `yaml:"schedule"`
	Output       string `yaml:"output"`
	ObjExt       string `yaml:"objExt"`
}
