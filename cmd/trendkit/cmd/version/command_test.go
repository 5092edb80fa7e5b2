package version

import (
	"bytes"
	"encoding/json"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/trendkit/internal/cmd/application"
)

func TestVersionCommand(t *testing.T) {
	app := &application.Mock{VersionFunc: func() string { return "v1.2.3" }}

	cmd := NewCommand(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(nil)
	require.NoError(t, cmd.Execute())

	var info Info
	require.NoError(t, json.Unmarshal(out.Bytes(), &info))
	assert.Equal(t, "v1.2.3", info.Version)
	assert.Equal(t, "unknown", info.Commit)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
}

func TestVersionCommandYAML(t *testing.T) {
	app := &application.Mock{OutputFormatFunc: func() string { return "yaml" }}

	cmd := NewCommand(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(nil)
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "version: dev")
}
