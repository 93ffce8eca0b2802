package config

import (
	"fmt"
	"os"
)

// WriteTemplate writes a starter sitehub.yaml for site to path.
func WriteTemplate(path, site string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(fmt.Sprintf(starterTemplate, site)), 0o644)
}

const starterTemplate = `# sitehub configuration
site: %s

# content hub checkout shared by all sites
hub: ../content-hub
contentDir: src/content

# sibling site checkouts, used by "sitehub sync push --all"
sites:
  semio: ../semio
  quori: ../quori
  vizij: ../vizij

# leave empty for all collections
collections: []

cms:
  backend: github
  repo: semio-community/content-hub
  branch: main
  mediaFolder: public/images/uploads
  publicFolder: /images/uploads
  localBackend: false
  output: public/admin/config.yml

index:
  output: public/data
`
