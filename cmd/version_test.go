package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionCommand_PrintsConfiguredVersion(t *testing.T) {
	original := rootCmd.Version
	defer func() { rootCmd.Version = original }()
	rootCmd.Version = "1.2.3-test"

	versionCmd := newVersionCmd()
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)

	err := versionCmd.RunE(versionCmd, nil)
	assert.NoError(t, err)
	assert.Equal(t, "gotestd version 1.2.3-test\n", buf.String())
}
