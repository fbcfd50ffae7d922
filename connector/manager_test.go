package connector

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndNew(t *testing.T) {
	Register("manager-test-b", func() (Provider, error) { return namedProvider{}, nil })
	Register("manager-test-a", func() (Provider, error) { return nil, errors.New("boom") })

	p, err := New("manager-test-b")
	require.NoError(t, err)
	assert.IsType(t, namedProvider{}, p)

	_, err = New("manager-test-a")
	assert.EqualError(t, err, "boom")

	_, err = New("manager-test-missing")
	assert.Error(t, err)

	names := Names()
	assert.Contains(t, names, "manager-test-a")
	assert.Contains(t, names, "manager-test-b")
	assert.IsIncreasing(t, names)
	assert.Len(t, Builtins(), len(names))
}

func TestRegisterNilPanics(t *testing.T) {
	assert.Panics(t, func() { Register("manager-test-nil", nil) })
}
