package params

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseEnvFile(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		expected    map[string]string
		expectError bool
		errorMsg    string
	}{
		{
			name: "Simple key-value pairs",
			content: `build.host=ci-01
build.branch=main`,
			expected: map[string]string{
				"build.host":   "ci-01",
				"build.branch": "main",
			},
		},
		{
			name: "Quoted values",
			content: `build.agent="Build Agent 7"
build.owner='release team'`,
			expected: map[string]string{
				"build.agent": "Build Agent 7",
				"build.owner": "release team",
			},
		},
		{
			name: "Comments and empty lines",
			content: `# Build host
build.host=ci-01

# Branch
build.branch=main

`,
			expected: map[string]string{
				"build.host":   "ci-01",
				"build.branch": "main",
			},
		},
		{
			name:     "Whitespace around equals",
			content:  `build.host = ci-01`,
			expected: map[string]string{"build.host": "ci-01"},
		},
		{
			name:     "Export prefix",
			content:  `export build_host=ci-01`,
			expected: map[string]string{"build_host": "ci-01"},
		},
		{
			name:     "Empty value",
			content:  `build.host=`,
			expected: map[string]string{"build.host": ""},
		},
		{
			name:        "Invalid key character",
			content:     `build-host=ci-01`,
			expectError: true,
			errorMsg:    "unexpected character",
		},
		{
			name:        "Empty key",
			content:     `=value`,
			expectError: true,
			errorMsg:    "empty key",
		},
		{
			name:     "Empty file",
			content:  "",
			expected: map[string]string{},
		},
		{
			name: "Only comments",
			content: `# Comment 1
# Comment 2`,
			expected: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseEnvFile([]byte(tt.content))

			if tt.expectError {
				require.Error(t, err)
				require.Contains(t, err.Error(), tt.errorMsg)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.expected, result)
		})
	}
}
