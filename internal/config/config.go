// Package config loads the runtime configuration from the environment and
// the optional policy file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/naka-gawa/w3c-ie-stats/internal/domain"
	"github.com/naka-gawa/w3c-ie-stats/internal/gateway"
	"gopkg.in/yaml.v3"
)

// Config is the runtime configuration shared by every command.
type Config struct {
	Source           string `env:"IESTATS_SOURCE" envDefault:"."`
	RolesFile        string `env:"IESTATS_ROLES_FILE" envDefault:"invited-expert-roles.json"`
	ContributorsFile string `env:"IESTATS_CONTRIBUTORS_FILE" envDefault:"pr-contributors.json"`
	ReviewsFile      string `env:"IESTATS_REVIEWS_FILE" envDefault:"hr-reviewers.json"`
	GitHubToken      string `env:"GITHUB_TOKEN"`

	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	HTTPAddr        string        `env:"IESTATS_HTTP_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"IESTATS_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	FetchTimeout    time.Duration `env:"IESTATS_FETCH_TIMEOUT" envDefault:"30s"`
	OTelEndpoint    string        `env:"IESTATS_OTEL_ENDPOINT"`

	PolicyFile          string `env:"IESTATS_POLICY_FILE"`
	ExpertReviewGroups  []int  `env:"IESTATS_EXPERT_REVIEW_GROUPS" envSeparator:","`
	SummaryReviewGroups []int  `env:"IESTATS_SUMMARY_REVIEW_GROUPS" envSeparator:","`
	TopReviewers        int    `env:"IESTATS_TOP_REVIEWERS"`

	// Policy is resolved by Load from the defaults, the policy file and the
	// three overrides above.
	Policy domain.Policy
}

// Files returns the source file names as the gateway expects them.
func (c Config) Files() gateway.Files {
	return gateway.Files{
		Roles:        c.RolesFile,
		Contributors: c.ContributorsFile,
		Reviews:      c.ReviewsFile,
	}
}

// Load reads the environment, then resolves the policy. Precedence, lowest
// first: built-in defaults, the policy file, environment overrides.
// policyFile, when non-empty, replaces IESTATS_POLICY_FILE.
func Load(policyFile string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if policyFile != "" {
		cfg.PolicyFile = policyFile
	}

	cfg.Policy = domain.DefaultPolicy()
	if cfg.PolicyFile != "" {
		p, err := ReadPolicy(cfg.PolicyFile, cfg.Policy)
		if err != nil {
			return Config{}, err
		}
		cfg.Policy = p
	}
	if len(cfg.ExpertReviewGroups) > 0 {
		cfg.Policy.ExpertReviewGroups = cfg.ExpertReviewGroups
	}
	if len(cfg.SummaryReviewGroups) > 0 {
		cfg.Policy.SummaryReviewGroups = cfg.SummaryReviewGroups
	}
	if cfg.TopReviewers != 0 {
		cfg.Policy.TopReviewers = cfg.TopReviewers
	}

	if err := validate(cfg.Policy); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ReadPolicy overlays the YAML policy file at path onto base. Keys absent
// from the file keep their base value; unknown keys are rejected.
func ReadPolicy(path string, base domain.Policy) (domain.Policy, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Policy{}, fmt.Errorf("failed to open policy file: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	p := base
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return domain.Policy{}, fmt.Errorf("failed to parse policy file %s: %w", path, err)
	}
	return p, nil
}

func validate(p domain.Policy) error {
	if p.TopReviewers <= 0 {
		return fmt.Errorf("top reviewers must be positive, got %d", p.TopReviewers)
	}
	for _, id := range append(append([]int(nil), p.ExpertReviewGroups...), p.SummaryReviewGroups...) {
		if id <= 0 {
			return fmt.Errorf("invalid review group id %d", id)
		}
	}
	return nil
}
