package config

import (
	"fmt"
	"strings"
	"time"
)

func (c *Config) normalize() error {
	c.normalizeStrings()
	if _, err := time.ParseDuration(c.Readiness.Interval); err != nil {
		return fmt.Errorf("readiness.interval: %w", err)
	}
	return nil
}

func (c *Config) normalizeStrings() {
	def := Default()
	fill := func(v *string, fallback string) {
		*v = strings.TrimSpace(*v)
		if *v == "" {
			*v = fallback
		}
	}
	fill(&c.Compose.Binary, def.Compose.Binary)
	fill(&c.Compose.Engine, def.Compose.Engine)
	c.Compose.Project = strings.TrimSpace(c.Compose.Project)
	fill(&c.Services.App, def.Services.App)
	fill(&c.Services.Assets, def.Services.Assets)
	fill(&c.Services.Database, def.Services.Database)
	fill(&c.Services.Cache, def.Services.Cache)
	fill(&c.Env.File, def.Env.File)
	fill(&c.Env.Example, def.Env.Example)
	fill(&c.Readiness.Interval, def.Readiness.Interval)
	fill(&c.Lint.Dockerfile, def.Lint.Dockerfile)
	fill(&c.Lint.HadolintConfig, def.Lint.HadolintConfig)
	fill(&c.Lint.HadolintImage, def.Lint.HadolintImage)
	fill(&c.Lint.ShellcheckImg, def.Lint.ShellcheckImg)
	fill(&c.Docs, def.Docs)
	fill(&c.Runtime.Mode, def.Runtime.Mode)
	fill(&c.Runtime.LogLevel, def.Runtime.LogLevel)
	c.Compose.Files = trimList(c.Compose.Files)
	c.Lint.ShellExcludes = trimList(c.Lint.ShellExcludes)
}

// IntervalDuration is the parsed readiness interval; Load guarantees it parses.
func (r Readiness) IntervalDuration() time.Duration {
	d, err := time.ParseDuration(r.Interval)
	if err != nil {
		return time.Second
	}
	return d
}

func trimList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
