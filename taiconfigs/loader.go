package taiconfigs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/reusee/taicc/configs"
	"github.com/reusee/taicc/logs"
)

//go:embed schema.cue
var schema string

// Filenames are searched in the working directory, then the user config
// directory, then /etc. Earlier files take precedence.
var Filenames = []string{
	"taicc.cue",
	".taicc.cue",
}

func (Module) ConfigsLoader(
	logger logs.Logger,
) configs.Loader {

	var paths []string
	defer func() {
		if len(paths) > 0 {
			logger.Info("config file",
				"paths", paths,
			)
		}
	}()

	var dirs []string
	if workingDir, err := os.Getwd(); err == nil {
		dirs = append(dirs, workingDir)
	}
	if configDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, configDir)
	}
	dirs = append(dirs, "/etc")

	for _, dir := range dirs {
		for _, filename := range Filenames {
			path := filepath.Join(dir, filename)
			if _, err := os.Stat(path); err == nil {
				paths = append(paths, path)
			}
		}
	}

	return configs.NewLoader(paths, schema)
}
