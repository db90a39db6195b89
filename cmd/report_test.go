package cmd

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportCmdFlags(t *testing.T) {
	for _, name := range []string{"year", "month", "clean", "config", "output"} {
		assert.NotNil(t, reportCmd.Flags().Lookup(name), name)
	}
	for _, name := range []string{"year", "month"} {
		flag := reportCmd.Flags().Lookup(name)
		require.NotNil(t, flag)
		assert.Equal(t, []string{"true"}, flag.Annotations[cobra.BashCompOneRequiredFlag], name)
	}
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("verbose"))
}

func TestNewLogger(t *testing.T) {
	assert.NotNil(t, newLogger(false))
	assert.NotNil(t, newLogger(true))
}
