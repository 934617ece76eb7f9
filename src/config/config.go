// Package config resolves mashinka settings. Later sources win: built-in
// defaults, then the YAML config file, then .env files, then the environment.
// Command line flags are applied on top by each command.
package config

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"git.handmade.network/hmn/mashinka/src/oops"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables read by ApplyEnv.
const (
	EnvDraftPath        = "ABS_POST_DRAFT_FILE"
	EnvPostsPath        = "ABS_POSTS_PATH"
	EnvTranslationsPath = "ABS_TRANSLATIONS_PATH"
	EnvIndexPath        = "ABS_INDEX_FILE"
	EnvBuildPath        = "ABS_BUILD_PATH"
	EnvLangs            = "MASHINKA_LANGS"
	EnvLogLevel         = "MASHINKA_LOG_LEVEL"

	EnvDeployEndpoint       = "DEPLOY_ENDPOINT"
	EnvDeployRegion         = "DEPLOY_REGION"
	EnvDeployBucket         = "DEPLOY_BUCKET"
	EnvDeployAccessKey      = "DEPLOY_ACCESS_KEY"
	EnvDeploySecretKey      = "DEPLOY_SECRET_KEY"
	EnvDeployKey            = "DEPLOY_KEY"
	EnvDeployExtractArchive = "DEPLOY_EXTRACT_ARCHIVE"
)

// Config is the resolved configuration, filled in by the root command before
// any subcommand runs.
var Config = Default()

func Default() MashinkaConfig {
	return MashinkaConfig{
		Langs:    []string{"ru", "en"},
		LogLevel: "info",
		Deploy: DeployConfig{
			Region:         "us-east-1",
			Key:            "build.tar.gz",
			ExtractArchive: true,
		},
	}
}

// Load resolves the configuration from every source. configPath may be empty.
func Load(configPath string) (MashinkaConfig, error) {
	cfg := Default()
	if configPath != "" {
		f, err := os.Open(configPath)
		if err != nil {
			return cfg, oops.New(err, "failed to open config file")
		}
		defer f.Close()
		if err := Decode(f, &cfg); err != nil {
			return cfg, oops.New(err, "failed to read config file %s", configPath)
		}
	}

	if err := LoadDotEnv(DotEnvPaths()...); err != nil {
		return cfg, err
	}
	if err := ApplyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Decode reads YAML settings over the values already in cfg. Unknown keys are
// an error so typos don't go unnoticed.
func Decode(r io.Reader, cfg *MashinkaConfig) error {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// DotEnvPaths lists the .env files mashinka reads: one in the home directory,
// then one in the working directory.
func DotEnvPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".env"))
	}
	return append(paths, ".env")
}

// LoadDotEnv loads the files that exist into the process environment. Values
// already set in the environment are never overridden.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return oops.New(err, "failed to load env file %s", path)
		}
	}
	return nil
}

// ApplyEnv overrides cfg with the variables lookup knows about.
func ApplyEnv(cfg *MashinkaConfig, lookup func(key string) (string, bool)) error {
	strs := []struct {
		key string
		dst *string
	}{
		{EnvDraftPath, &cfg.DraftPath},
		{EnvPostsPath, &cfg.PostsPath},
		{EnvTranslationsPath, &cfg.TranslationsPath},
		{EnvIndexPath, &cfg.IndexPath},
		{EnvBuildPath, &cfg.BuildPath},
		{EnvLogLevel, &cfg.LogLevel},
		{EnvDeployEndpoint, &cfg.Deploy.Endpoint},
		{EnvDeployRegion, &cfg.Deploy.Region},
		{EnvDeployBucket, &cfg.Deploy.Bucket},
		{EnvDeployAccessKey, &cfg.Deploy.AccessKey},
		{EnvDeploySecretKey, &cfg.Deploy.SecretKey},
		{EnvDeployKey, &cfg.Deploy.Key},
	}
	for _, s := range strs {
		if value, ok := lookup(s.key); ok && value != "" {
			*s.dst = value
		}
	}

	if value, ok := lookup(EnvLangs); ok && value != "" {
		cfg.Langs = nil
		for _, code := range strings.Split(value, ",") {
			if code = strings.TrimSpace(code); code != "" {
				cfg.Langs = append(cfg.Langs, code)
			}
		}
	}
	if value, ok := lookup(EnvDeployExtractArchive); ok && value != "" {
		extract, err := strconv.ParseBool(value)
		if err != nil {
			return oops.New(err, "%s must be true or false", EnvDeployExtractArchive)
		}
		cfg.Deploy.ExtractArchive = extract
	}

	return nil
}

// Require returns value, or a MissingValueError naming where it should have
// come from.
func Require(value string, name string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return "", &MissingValueError{Name: name}
	}
	return value, nil
}
