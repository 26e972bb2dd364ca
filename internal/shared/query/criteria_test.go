package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleFilter struct {
	Name   *string `json:"nome,omitempty"`
	City   *string `json:"cidade,omitempty"`
	UserID *int64  `json:"userId,omitempty"`
	Active *bool   `json:"ativo,omitempty"`
}

func TestCriteria_EmptyFilterHasNoKeys(t *testing.T) {
	criteria, err := Criteria(sampleFilter{})
	require.NoError(t, err)
	assert.Empty(t, criteria)

	values, err := Values(sampleFilter{})
	require.NoError(t, err)
	assert.Empty(t, values)
}

func TestValues_EncodesSetFields(t *testing.T) {
	name := "Maria"
	id := int64(42)
	active := false

	values, err := Values(sampleFilter{Name: &name, UserID: &id, Active: &active})
	require.NoError(t, err)

	assert.Equal(t, url.Values{
		"nome":   {"Maria"},
		"userId": {"42"},
		"ativo":  {"false"},
	}, values)
}

func TestPageFilter(t *testing.T) {
	f := NewPageFilter(0, 0)
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 10, f.PageSize)

	f = NewPageFilter(3, 10)
	assert.Equal(t, 20, f.Offset())

	values := url.Values{}
	f.Apply(values)
	assert.Equal(t, "3", values.Get("page"))
	assert.Equal(t, "10", values.Get("limit"))
}
