package checks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRegisterAndNew(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	require.NoError(t, registry.Register(func() Check { return newStubCheck() }))

	check, err := registry.New("Stub")
	require.NoError(t, err)
	assert.Equal(t, "Stub", check.Name())

	// Each New returns a fresh instance.
	other, err := registry.New("Stub")
	require.NoError(t, err)
	assert.NotSame(t, check, other)
}

func TestRegistryUnknownCheck(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()

	_, err := registry.New("Nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownCheck)
}

func TestRegistryDuplicate(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	require.NoError(t, registry.Register(func() Check { return newStubCheck() }))

	err := registry.Register(func() Check { return newStubCheck() })
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateCheck)
}

func TestRegistryNamesSorted(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()

	zulu := newStubCheck()
	zulu.name = "Zulu"
	alpha := newStubCheck()
	alpha.name = "Alpha"

	require.NoError(t, registry.Register(func() Check { return zulu }))
	require.NoError(t, registry.Register(func() Check { return alpha }))

	assert.Equal(t, []string{"Alpha", "Zulu"}, registry.Names())
}

func TestRegistryDescribe(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	require.NoError(t, registry.Register(func() Check { return newStubCheck() }))

	infos := registry.Describe()
	require.Len(t, infos, 1)
	assert.Equal(t, "Stub", infos[0].Name)
	assert.Equal(t, "stub", infos[0].Description)
}

func TestValidatePropertyNames(t *testing.T) {
	t.Parallel()

	props := map[string]any{"known": true}

	require.NoError(t, ValidatePropertyNames(props, "known", "alsoKnown"))

	err := ValidatePropertyNames(props, "alsoKnown")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownProperty)
}

func TestBoolValue(t *testing.T) {
	t.Parallel()

	props := map[string]any{"flag": false, "bad": "yes"}

	value, present, err := BoolValue(props, "flag")
	require.NoError(t, err)
	assert.True(t, present)
	assert.False(t, value)

	_, present, err = BoolValue(props, "missing")
	require.NoError(t, err)
	assert.False(t, present)

	_, _, err = BoolValue(props, "bad")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidProperty)
}

func TestPropertyTypeString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "bool", BoolProperty.String())
	assert.Equal(t, "int", IntProperty.String())
	assert.Equal(t, "string", StringProperty.String())
	assert.Panics(t, func() { _ = PropertyType(99).String() })
}
