package config

import (
	"fmt"
	"os"
)

const defaultConfig = `# packforge configuration
sources:
  - path: ./assets/models
    kind: models
  - path: ./assets/textures
    kind: textures

pack:
  mode: zip          # folder | zip | none
  archive: ./pack.zip
  directory: ./pack
  obfuscation: false
  cache_dir: ./.packforge

daemon:
  watch: true
  quiet_window: 2s
  max_delay: 30s

notify:
  enabled: false
  subject: packforge.builds

metrics:
  enabled: false
  listen: ":9190"

history:
  enabled: false
`

// Init writes a starter configuration file. An existing file is only
// overwritten with force.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file %s already exists (use --force to overwrite)", configPath)
	}
	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", configPath, err)
	}
	return nil
}
