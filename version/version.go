package version

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/hostplay/hostplay/constant"
	"github.com/hostplay/hostplay/filesystem"
	"github.com/hostplay/hostplay/network"
	"github.com/hostplay/hostplay/util"
	"github.com/hostplay/hostplay/where"
	"github.com/metafates/gache"
)

// ReleasesURL is the GitHub API endpoint describing the latest release.
var ReleasesURL = "https://api.github.com/repos/hostplay/hostplay/releases/latest"

var versionCacher = gache.New[string](&gache.Options{
	Path:       where.Version(),
	Lifetime:   time.Hour * 24 * 2,
	FileSystem: &filesystem.GacheFs{},
})

// Latest retrieves the most recent stable release version, caching the answer for two days.
func Latest() (version string, err error) {
	ver, expired, err := versionCacher.Get()
	if err != nil {
		return "", err
	}

	if !expired && ver != "" {
		return ver, nil
	}

	req, err := http.NewRequest(http.MethodGet, ReleasesURL, nil)
	if err != nil {
		return
	}
	req.Header.Set("User-Agent", constant.UserAgent)

	resp, err := network.Client.Do(req)
	if err != nil {
		return
	}

	defer util.Ignore(resp.Body.Close)

	var release struct {
		TagName string `json:"tag_name"`
	}

	err = json.NewDecoder(resp.Body).Decode(&release)
	if err != nil {
		return
	}

	if release.TagName == "" {
		err = errors.New("empty tag name")
		return
	}

	version = release.TagName
	if version[0] == 'v' {
		version = version[1:]
	}
	_ = versionCacher.Set(version)
	return
}
