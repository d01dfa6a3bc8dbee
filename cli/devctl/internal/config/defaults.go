package config

const (
	defaultComposeBinary   = "docker compose"
	defaultEngine          = "docker"
	defaultAppService      = "web"
	defaultAssetsService   = "js"
	defaultDatabaseService = "postgres"
	defaultCacheService    = "redis"
	defaultEnvFile         = ".env"
	defaultEnvExample      = ".env.example"
	defaultAttempts        = 60
	defaultInterval        = "1s"
	defaultDockerfile      = "Dockerfile"
	defaultHadolintConfig  = ".hadolint.yaml"
	defaultHadolintImage   = "hadolint/hadolint"
	defaultShellcheckImage = "koalaman/shellcheck:stable"
	defaultDocs            = "README.md"
	defaultMode            = "exec"
	defaultLogLevel        = "warn"
)

// Default returns the settings used when no config file is present.
func Default() Config {
	return Config{
		Compose: Compose{Binary: defaultComposeBinary, Engine: defaultEngine},
		Services: Services{
			App:      defaultAppService,
			Assets:   defaultAssetsService,
			Database: defaultDatabaseService,
			Cache:    defaultCacheService,
		},
		Env:       Env{File: defaultEnvFile, Example: defaultEnvExample},
		Readiness: Readiness{Attempts: defaultAttempts, Interval: defaultInterval},
		Lint: Lint{
			Dockerfile:     defaultDockerfile,
			HadolintConfig: defaultHadolintConfig,
			HadolintImage:  defaultHadolintImage,
			ShellcheckImg:  defaultShellcheckImage,
			ShellExcludes:  defaultShellExcludes(),
		},
		Clean: Clean{Paths: defaultCleanPaths(), Keep: defaultCleanKeep()},
		Docs:  defaultDocs,
		Runtime: Runtime{
			Mode:     defaultMode,
			LogLevel: defaultLogLevel,
		},
	}
}

func defaultShellExcludes() []string {
	return []string{".git", ".ruff_cache", ".pytest_cache", "assets", "public", "public_collected", "node_modules"}
}

func defaultCleanPaths() []string {
	return []string{
		"public/*.*", "public/admin", "public/js", "public/css", "public/images", "public/fonts",
		"public_collected/*.*", "public_collected/admin", "public_collected/js",
		"public_collected/css", "public_collected/images", "public_collected/fonts",
		".ruff_cache", ".pytest_cache", ".coverage", "celerybeat-schedule",
	}
}

func defaultCleanKeep() []string {
	return []string{"public/.keep", "public_collected/.keep"}
}
