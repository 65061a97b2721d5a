package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandTree(t *testing.T) {
	root := newRootCmd()

	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "refresh", "migrate", "report"}, names)
}

func TestReportRequiresOrganization(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"report"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestServeFlags(t *testing.T) {
	cmd := newServeCmd()
	flag := cmd.Flags().Lookup("no-cache")
	require.NotNil(t, flag)
	assert.Equal(t, "false", flag.DefValue)
}
