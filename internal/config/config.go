package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Extensions lists filename suffixes recognized as source files.
	Extensions []string `yaml:"extensions"`
	// SkipSuffixes excludes sidecar files (Unity .meta and friends).
	SkipSuffixes []string `yaml:"skip_suffixes"`
	// SkipNames excludes entries by exact name at any depth.
	SkipNames []string `yaml:"skip_names"`

	OutputFile string `yaml:"output_file"`
	Title      string `yaml:"title"`
	Subtitle   string `yaml:"subtitle"`
	// RootLabel is the first line inside the code fence. Empty means the
	// scanned directory path is used.
	RootLabel string `yaml:"root_label"`
	// FileLabel is the noun used in the 总计 footer.
	FileLabel string `yaml:"file_label"`
}

func DefaultConfig() *Config {
	return &Config{
		Extensions:   []string{".cs"},
		SkipSuffixes: []string{".meta"},
		SkipNames:    []string{".git"},
		Title:        "Framework框架类文件树状结构",
		Subtitle:     "自动生成的类文件位置与功能说明",
		FileLabel:    "C#",
	}
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Unmarshal on top of the defaults so absent keys keep them.
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	return cfg, nil
}
