package planner

import (
	"strings"

	"github.com/yuya-takeyama/symsync/pkg/locator"
	"github.com/yuya-takeyama/symsync/pkg/manifest"
)

// Resolve maps a target onto the symbol store layout
// <root>/<component>/<hash>/<component> on both sides.
func Resolve(loc locator.Locator, target manifest.Target) Destination {
	rel := joinSlash(target.Component, target.Hash, target.Component)
	localDir := joinSlash(loc.LocalRoot, target.Component, target.Hash)

	return Destination{
		LocalDir:   localDir,
		LocalFile:  joinSlash(localDir, target.Component),
		RemoteFile: joinSlash(loc.RemoteRoot, rel),
	}
}

// joinSlash joins with '/' without cleaning, so URL schemes and
// Windows drive roots survive untouched.
func joinSlash(elem ...string) string {
	return strings.Join(elem, "/")
}
