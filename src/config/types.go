package config

import "fmt"

type MashinkaConfig struct {
	DraftPath        string   `yaml:"draft_path"`
	PostsPath        string   `yaml:"posts_path"`
	TranslationsPath string   `yaml:"translations_path"`
	IndexPath        string   `yaml:"index_path"`
	BuildPath        string   `yaml:"build_path"`
	Langs            []string `yaml:"langs"`
	LogLevel         string   `yaml:"log_level"`

	Deploy DeployConfig `yaml:"deploy"`
}

// DeployConfig describes the S3-compatible bucket the site is uploaded to.
type DeployConfig struct {
	Endpoint       string `yaml:"endpoint"`
	Region         string `yaml:"region"`
	Bucket         string `yaml:"bucket"`
	AccessKey      string `yaml:"access_key"`
	SecretKey      string `yaml:"secret_key"`
	Key            string `yaml:"key"`
	ExtractArchive bool   `yaml:"extract_archive"`
}

// MissingValueError reports a setting a command needs that was not given by
// flag, environment or config file.
type MissingValueError struct {
	Name string
}

func (e *MissingValueError) Error() string {
	return fmt.Sprintf("no value for %s", e.Name)
}
