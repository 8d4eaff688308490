package version

import (
	"context"
	"net/http"
	"net/http/httptest"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withVersion restaura as variáveis globais ao fim do teste.
func withVersion(t *testing.T, version, commit, buildTime string) {
	t.Helper()
	oldV, oldC, oldB := Version, Commit, BuildTime
	Version, Commit, BuildTime = version, commit, buildTime
	t.Cleanup(func() { Version, Commit, BuildTime = oldV, oldC, oldB })
}

func TestFormatVersion(t *testing.T) {
	tests := []struct {
		name                     string
		version, commit, buildAt string
		want                     string
	}{
		{"dev", "0.0.0-dev", "", "", "0.0.0-dev (development)"},
		{"commit only", "1.2.3", "abc1234", "", "1.2.3 (commit: abc1234)"},
		{"full", "1.2.3", "abc1234", "2026-01-02T03:04:05Z", "1.2.3 (commit: abc1234, built at: 2026-01-02T03:04:05Z)"},
		{"empty version", "", "", "", "0.0.0-dev (development)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withVersion(t, tt.version, tt.commit, tt.buildAt)
			assert.Equal(t, tt.want, FormatVersion())
		})
	}
}

func TestPopulateFromBuildInfo(t *testing.T) {
	withVersion(t, "0.0.0-dev", "", "")

	populateFromBuildInfo(func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{
			Main: debug.Module{Version: "v1.4.0"},
			Settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "0123456789abcdef"},
				{Key: "vcs.time", Value: "2026-03-04T05:06:07-03:00"},
				{Key: "vcs.modified", Value: "true"},
			},
		}, true
	})

	assert.Equal(t, "1.4.0-dirty", Version)
	assert.Equal(t, "0123456", Commit)
	assert.Equal(t, "2026-03-04T08:06:07Z", BuildTime)
}

func TestPopulateFromBuildInfo_LdflagsWin(t *testing.T) {
	withVersion(t, "2.0.0", "fromldf", "")
	populateFromBuildInfo(func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Main: debug.Module{Version: "v9.9.9"}}, true
	})
	assert.Equal(t, "2.0.0", Version)
	assert.Equal(t, "fromldf", Commit)
}

func TestNewer(t *testing.T) {
	assert.True(t, Newer("1.2.3", "1.3.0"))
	assert.True(t, Newer("v1.2.3", "1.10.0"))
	assert.False(t, Newer("1.2.3", "1.2.3"))
	assert.False(t, Newer("1.3.0", "1.2.9"))
	assert.False(t, Newer("1.2.3", "latest"))
}

func TestLatest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"tag_name":"v1.5.2"}`))
	}))
	defer srv.Close()

	latest, err := Latest(context.Background(), srv.Client(), srv.URL+"/releases/latest")
	require.NoError(t, err)
	assert.Equal(t, "1.5.2", latest)

	_, err = Latest(context.Background(), srv.Client(), srv.URL+"/missing")
	assert.Error(t, err)
}
