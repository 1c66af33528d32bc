package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/naka-gawa/w3c-ie-stats/internal/domain"
	"github.com/naka-gawa/w3c-ie-stats/internal/gateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePolicy(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.Source)
	assert.Equal(t, gateway.DefaultFiles, cfg.Files())
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 30*time.Second, cfg.FetchTimeout)
	assert.Equal(t, domain.DefaultPolicy(), cfg.Policy)
}

func TestLoad_Precedence(t *testing.T) {
	testCases := []struct {
		name     string
		policy   string
		env      map[string]string
		expected domain.Policy
	}{
		{
			name:   "policy file overrides defaults",
			policy: "expert_review_groups: [1, 2]\ntop_reviewers: 3\n",
			expected: domain.Policy{
				ExpertReviewGroups:  []int{1, 2},
				SummaryReviewGroups: []int{160680, 32113, 83907, 49310},
				TopReviewers:        3,
			},
		},
		{
			name:   "environment overrides policy file",
			policy: "expert_review_groups: [1, 2]\ntop_reviewers: 3\n",
			env: map[string]string{
				"IESTATS_EXPERT_REVIEW_GROUPS":  "7",
				"IESTATS_SUMMARY_REVIEW_GROUPS": "7,8",
				"IESTATS_TOP_REVIEWERS":         "10",
			},
			expected: domain.Policy{
				ExpertReviewGroups:  []int{7},
				SummaryReviewGroups: []int{7, 8},
				TopReviewers:        10,
			},
		},
		{
			name:     "empty policy file keeps defaults",
			policy:   "",
			expected: domain.DefaultPolicy(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			cfg, err := Load(writePolicy(t, tc.policy))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, cfg.Policy)
		})
	}
}

func TestLoad_PolicyFileFromEnv(t *testing.T) {
	t.Setenv("IESTATS_POLICY_FILE", writePolicy(t, "top_reviewers: 2\n"))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Policy.TopReviewers)
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name          string
		policy        string
		env           map[string]string
		expectedError string
	}{
		{
			name:          "unknown policy key",
			policy:        "review_groups: [1]\n",
			expectedError: "failed to parse policy file",
		},
		{
			name:          "negative top reviewers",
			policy:        "top_reviewers: -1\n",
			expectedError: "top reviewers must be positive",
		},
		{
			name:          "invalid group id",
			policy:        "summary_review_groups: [0]\n",
			expectedError: "invalid review group id 0",
		},
		{
			name:          "malformed duration",
			env:           map[string]string{"IESTATS_FETCH_TIMEOUT": "soon"},
			expectedError: "parse env:",
		},
		{
			name:          "malformed group list",
			env:           map[string]string{"IESTATS_EXPERT_REVIEW_GROUPS": "a,b"},
			expectedError: "parse env:",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			policy := ""
			if tc.policy != "" {
				policy = writePolicy(t, tc.policy)
			}
			_, err := Load(policy)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.expectedError)
		})
	}
}

func TestLoad_MissingPolicyFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open policy file")
}
