package firebase

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitFirebaseWithoutCredentials(t *testing.T) {
	_, err := InitFirebase(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestInitFirebaseMissingFile(t *testing.T) {
	_, err := InitFirebase(context.Background(), filepath.Join(t.TempDir(), "absent.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
