package dbsync

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type s3Mock struct {
	objects map[string][]byte
	err     error
}

func (m *s3Mock) MakeBucket(ctx context.Context) error {
	return nil
}

func (m *s3Mock) DownloadFile(ctx context.Context, objectName, filePath string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	body, ok := m.objects[objectName]
	if !ok {
		return false, nil
	}
	return true, os.WriteFile(filePath, body, 0o644)
}

func (m *s3Mock) UploadFile(ctx context.Context, objectName, filePath string) error {
	if m.err != nil {
		return m.err
	}
	body, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	m.objects[objectName] = body
	return nil
}

func TestPullReplacesLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.db")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))
	client := &s3Mock{objects: map[string][]byte{"remote.db": []byte("new")}}

	require.NoError(t, New(client, "remote.db", path).Pull(context.Background()))
	body, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "new", string(body))
}

func TestPullMissingObjectKeepsLocal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.db")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))
	client := &s3Mock{objects: map[string][]byte{}}

	require.NoError(t, New(client, "remote.db", path).Pull(context.Background()))
	body, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "old", string(body))
}

func TestPush(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.db")
	client := &s3Mock{objects: map[string][]byte{}}
	provider := New(client, "remote.db", path)

	require.Error(t, provider.Push(context.Background()))

	require.NoError(t, os.WriteFile(path, []byte("data"), 0o644))
	require.NoError(t, provider.Push(context.Background()))
	require.Equal(t, "data", string(client.objects["remote.db"]))

	client.err = errors.New("connection refused")
	require.Error(t, provider.Push(context.Background()))
}
