package commands_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ningg/checkstyle/cmd/checkstyle/commands"
)

func TestRulesCommand_Table(t *testing.T) {
	t.Parallel()

	cmd := commands.NewRulesCommand()

	var stdout bytes.Buffer

	cmd.SetOut(&stdout)
	cmd.SetArgs(nil)

	require.NoError(t, cmd.Execute())

	out := stdout.String()
	assert.Contains(t, out, "ClassMemberImpliedModifier")
	assert.Contains(t, out, "InterfaceMemberImpliedModifier")
	assert.Contains(t, out, "ModifierOrder")
	assert.Contains(t, out, "Total: 3 checks")
	assert.Contains(t, out, "enforceStaticOnNestedInterface=true")
}

func TestRulesCommand_YAML(t *testing.T) {
	t.Parallel()

	cmd := commands.NewRulesCommand()

	var stdout bytes.Buffer

	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"--format", "yaml"})

	require.NoError(t, cmd.Execute())

	var docs []struct {
		Name       string `yaml:"name"`
		Properties []struct {
			Name    string `yaml:"name"`
			Type    string `yaml:"type"`
			Default any    `yaml:"default"`
		} `yaml:"properties"`
	}

	require.NoError(t, yaml.Unmarshal(stdout.Bytes(), &docs))
	require.Len(t, docs, 3)
	assert.Equal(t, "ClassMemberImpliedModifier", docs[0].Name)
	require.Len(t, docs[0].Properties, 2)
	assert.Equal(t, "enforceStaticOnNestedEnum", docs[0].Properties[0].Name)
	assert.Equal(t, "bool", docs[0].Properties[0].Type)
	assert.Equal(t, true, docs[0].Properties[0].Default)
}

func TestRulesCommand_UnknownFormat(t *testing.T) {
	t.Parallel()

	cmd := commands.NewRulesCommand()
	cmd.SetOut(bytes.NewBuffer(nil))
	cmd.SetErr(bytes.NewBuffer(nil))
	cmd.SetArgs([]string{"--format", "xml"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}
