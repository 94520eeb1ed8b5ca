package trackdef

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Load reads one definition file. A missing name defaults to the file stem.
func Load(path string) (Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("trackdef: read %s: %w", path, err)
	}

	var d Definition
	if err := json.Unmarshal(data, &d); err != nil {
		return Definition{}, fmt.Errorf("trackdef: parse %s: %w", path, err)
	}
	d.Path = path
	if d.Name == "" {
		d.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := d.Validate(); err != nil {
		return Definition{}, err
	}
	return d, nil
}

// LoadDir reads every *.json file under dir, sorted by name. Files that
// fail to load are returned in errs and skipped.
func LoadDir(dir string) (defs []Definition, errs []error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.ToLower(filepath.Ext(path)) != ".json" {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, []error{fmt.Errorf("trackdef: scan %s: %w", dir, err)}
	}
	sort.Strings(paths)

	seen := make(map[string]string)
	for _, p := range paths {
		d, err := Load(p)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if prev, dup := seen[d.Name]; dup {
			errs = append(errs, fmt.Errorf("trackdef: %s: name %q already defined in %s", p, d.Name, prev))
			continue
		}
		seen[d.Name] = p
		defs = append(defs, d)
	}
	return defs, errs
}
