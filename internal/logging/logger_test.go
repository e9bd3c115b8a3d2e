package logging

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitLevels(t *testing.T) {
	lg, err := Init("DEBUG", "dev")
	require.NoError(t, err)
	assert.Equal(t, zap.DebugLevel, lg.Level.Level())

	lg, err = Init("nonsense", "prod")
	require.NoError(t, err)
	assert.Equal(t, zap.InfoLevel, lg.Level.Level())
}

func TestLevelHandlerChangesLevel(t *testing.T) {
	lg, err := Init("info", "dev")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/debug/loglevel", strings.NewReader(`{"level":"warn"}`))
	lg.LevelHandler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, zap.WarnLevel, lg.Level.Level())
}
