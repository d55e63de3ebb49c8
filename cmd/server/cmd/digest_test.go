package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timetrack/internal/app/server/config"
)

func TestDigestCmd(t *testing.T) {
	tests := []struct {
		name      string
		algorithm string
		salt      string
		key       string
		want      string
	}{
		{name: "md5", algorithm: "md5", salt: "a", key: "bc", want: "900150983cd24fb0d6963f7d28e17f72"},
		{
			name:      "hmac-sha256",
			algorithm: "hmac-sha256",
			salt:      "key",
			key:       "The quick brown fox jumps over the lazy dog",
			want:      "f7bc83f430538424b13298e6aa6fb143ef4d59a14946175997479dbc2d1a3cd8",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg = &config.Config{APIKey: config.APIKey{Salt: tt.salt, Algorithm: tt.algorithm}}
			var out, errOut bytes.Buffer
			digestCmd.SetOut(&out)
			digestCmd.SetErr(&errOut)

			require.NoError(t, digestCmd.RunE(digestCmd, []string{tt.key}))

			assert.Equal(t, tt.want, strings.TrimSpace(out.String()))
			assert.Contains(t, errOut.String(), tt.algorithm)
		})
	}
}

func TestDigestCmd_UnknownAlgorithm(t *testing.T) {
	cfg = &config.Config{APIKey: config.APIKey{Algorithm: "sha1"}}

	assert.Error(t, digestCmd.RunE(digestCmd, []string{"k"}))
}

func TestMigrateDown_RequiresForce(t *testing.T) {
	cfg = &config.Config{DB: config.DB{DatabaseURI: "postgres://localhost/x", Migrations: "migrations"}}
	force = false

	err := migrateDownCmd.RunE(migrateDownCmd, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")
}
