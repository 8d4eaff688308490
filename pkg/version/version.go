package version

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"golang.org/x/mod/semver"
)

// Valores padrão (sobrescritos por ldflags ou por build info)
var (
	Version   = "0.0.0-dev"
	Commit    = ""
	BuildTime = ""
)

// ReleaseURL aponta para a última release publicada.
var ReleaseURL = "https://api.github.com/repos/ameg/ameg-charts-go/releases/latest"

func init() {
	populateFromBuildInfo(debug.ReadBuildInfo)
}

// populateFromBuildInfo completa Version/Commit/BuildTime com os dados vcs.* do binário.
// Valores vindos de ldflags têm prioridade.
func populateFromBuildInfo(read func() (*debug.BuildInfo, bool)) {
	if Version != "" && Version != "0.0.0-dev" {
		return
	}
	bi, ok := read()
	if !ok || bi == nil {
		return
	}

	settings := make(map[string]string, len(bi.Settings))
	for _, s := range bi.Settings {
		settings[s.Key] = s.Value
	}

	if rev := settings["vcs.revision"]; Commit == "" && len(rev) >= 7 {
		Commit = rev[:7]
	}
	if t := settings["vcs.time"]; BuildTime == "" && t != "" {
		if ts, err := time.Parse(time.RFC3339, t); err == nil {
			BuildTime = ts.UTC().Format("2006-01-02T15:04:05Z")
		}
	}

	// Módulo instalado via "go install ...@vX.Y.Z"
	if v := bi.Main.Version; v != "" && v != "(devel)" {
		Version = strings.TrimPrefix(v, "v")
	}
	if strings.EqualFold(settings["vcs.modified"], "true") && !strings.HasSuffix(Version, "-dirty") {
		Version += "-dirty"
	}
}

// Latest returns the tag of the most recent release, without the "v" prefix.
func Latest(ctx context.Context, client *http.Client, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("release lookup failed: HTTP %d", resp.StatusCode)
	}

	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return "", fmt.Errorf("invalid release payload: %w", err)
	}
	return strings.TrimPrefix(release.TagName, "v"), nil
}

// Newer reports whether latest is a higher semantic version than current.
func Newer(current, latest string) bool {
	c, l := "v"+strings.TrimPrefix(current, "v"), "v"+strings.TrimPrefix(latest, "v")
	if !semver.IsValid(c) || !semver.IsValid(l) {
		return false
	}
	return semver.Compare(l, c) > 0
}

// CheckLatestVersion avisa no terminal quando há uma release mais nova.
func CheckLatestVersion(currentVersion string) {
	// Versões dev não são verificadas
	if strings.HasSuffix(currentVersion, "-dev") {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	latest, err := Latest(ctx, http.DefaultClient, ReleaseURL)
	if err != nil || !Newer(currentVersion, latest) {
		return
	}
	pterm.Warning.Println(fmt.Sprintf("A new version of AMEG Charts is available: %s", latest))
	pterm.Info.Println("Please update using: go install github.com/ameg/ameg-charts-go/cmd/ameg-charts@latest")
}

// FormatVersion retorna a versão com commit e build time.
// Ex.: "1.2.3 (commit: abc1234, built at: 2026-01-23T10:20:30Z)"
func FormatVersion() string {
	ver := Version
	if ver == "" {
		ver = "0.0.0-dev"
	}

	switch {
	case Commit == "" && BuildTime == "":
		return fmt.Sprintf("%s (development)", ver)
	case BuildTime == "":
		return fmt.Sprintf("%s (commit: %s)", ver, Commit)
	case Commit == "":
		return fmt.Sprintf("%s (commit: development, built at: %s)", ver, BuildTime)
	default:
		return fmt.Sprintf("%s (commit: %s, built at: %s)", ver, Commit, BuildTime)
	}
}
