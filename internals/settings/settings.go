// Package settings knows the keys of the global config
package settings

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/minepkg/xsboot/internals/globals"
	"github.com/minepkg/xsboot/internals/repoconfig"
	"github.com/minepkg/xsboot/internals/workspace"
	"github.com/spf13/viper"
)

const (
	KindString = iota
	KindBool
	KindInt
	KindFloat
	// KindList is set as comma separated string
	KindList
)

// Entry describes a config key
type Entry struct {
	Kind int
	Help string
}

// Entries are all supported global config keys
var Entries = map[string]Entry{
	"noninteractive":   {KindBool, "never ask questions"},
	"verboselogging":   {KindBool, "print more information"},
	"repositories":     {KindList, "repository list used when no project config sets one"},
	"repositoriesfile": {KindString, "repositories file used instead of the global list"},
	"sbtrepositories":  {KindString, "location of the sbt repositories file"},
	"cachedir":         {KindString, "where downloaded artifacts are stored"},
	"ivyhome":          {KindString, "ivy home of the \"local\" repository"},
	"mavenhome":        {KindString, "maven home of the \"maven-local\" repository"},
	"throttle":         {KindFloat, "maximum requests per second (0 disables the limit)"},
	"scalaversion":     {KindString, "scala version used outside of projects"},
}

// Keys returns the sorted config keys
func Keys() []string {
	keys := make([]string, 0, len(Entries))
	for key := range Entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// SetDefaults registers the defaults with viper
func SetDefaults() {
	viper.SetDefault("sbtrepositories", repoconfig.DefaultSbtFile())
	viper.SetDefault("throttle", 0)
	viper.SetDefault("scalaversion", "2.13.12")
}

// ParseValue converts raw into the type of key
func ParseValue(key string, raw string) (interface{}, error) {
	entry, ok := Entries[key]
	if !ok {
		return nil, fmt.Errorf("config key \"%s\" does not exist", key)
	}

	switch entry.Kind {
	case KindBool:
		return ParseBool(raw)
	case KindString:
		return raw, nil
	case KindInt:
		return strconv.Atoi(raw)
	case KindFloat:
		return strconv.ParseFloat(raw, 64)
	case KindList:
		list := []string{}
		for _, item := range strings.Split(raw, ",") {
			if item = strings.TrimSpace(item); item != "" {
				list = append(list, item)
			}
		}
		return list, nil
	default:
		return nil, fmt.Errorf("what? uncovered config values type")
	}
}

// ParseBool accepts the usual ways to say yes or no
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "yes", "ja", "on", "1":
		return true, nil
	case "false", "no", "nein", "off", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean value. Use \"true\" or \"false\"")
	}
}

// Workspace returns the workspace settings from the global config
func Workspace() workspace.Settings {
	return workspace.Settings{
		RepositoriesFile: viper.GetString("repositoriesfile"),
		Repositories:     viper.GetStringSlice("repositories"),
		SbtFile:          viper.GetString("sbtrepositories"),
		CacheDir:         viper.GetString("cachedir"),
		IvyHome:          viper.GetString("ivyhome"),
		MavenHome:        viper.GetString("mavenhome"),
		Throttle:         viper.GetFloat64("throttle"),
		GlobalDir:        globals.GlobalDir,
	}
}

// OpenWorkspace opens the current directory with the global settings
func OpenWorkspace() (*workspace.Workspace, error) {
	return workspace.OpenWd(Workspace())
}
