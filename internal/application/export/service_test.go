package export

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpdesk/internal/shared/logger"
)

var pdfBytes = []byte("%PDF-1.4 contrato")

func TestPDF_WritesAndOpens(t *testing.T) {
	fs := afero.NewMemMapFs()
	var opened string
	svc := NewService(fs, "", logger.NewNop()).
		WithDir("/tmp").
		WithOpener(func(path string) error {
			opened = path
			return nil
		})

	path, err := svc.PDF(context.Background(), "contrato", 12, func(ctx context.Context, id int64) ([]byte, error) {
		assert.Equal(t, int64(12), id)
		return pdfBytes, nil
	}, true)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(path, "/tmp/contrato-12-"))
	assert.True(t, strings.HasSuffix(path, ".pdf"))
	assert.Equal(t, path, opened)

	data, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	assert.Equal(t, pdfBytes, data)
}

func TestPDF_ViewerFailureStillReturnsPath(t *testing.T) {
	fs := afero.NewMemMapFs()
	svc := NewService(fs, "", logger.NewNop()).
		WithDir("/tmp").
		WithOpener(func(string) error { return errors.New("no display") })

	path, err := svc.PDF(context.Background(), "ordem", 3, func(context.Context, int64) ([]byte, error) {
		return pdfBytes, nil
	}, true)
	require.NoError(t, err)
	assert.NotEmpty(t, path)
}

func TestPDF_DownloadFailure(t *testing.T) {
	fs := afero.NewMemMapFs()
	svc := NewService(fs, "", logger.NewNop()).WithDir("/tmp")

	_, err := svc.PDF(context.Background(), "ordem", 3, func(context.Context, int64) ([]byte, error) {
		return nil, errors.New("404")
	}, false)
	require.Error(t, err)

	entries, err := afero.ReadDir(fs, "/tmp")
	if err == nil {
		assert.Empty(t, entries)
	}
}

func TestCommandOpener(t *testing.T) {
	assert.Nil(t, CommandOpener(""))
	assert.Nil(t, CommandOpener("   "))
	assert.NotNil(t, CommandOpener("open -a Preview"))
}
