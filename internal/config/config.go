package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Config holds definition/output paths and preview settings.
type Config struct {
	// Paths
	DefDir    string `json:"def_dir"`
	OutputDir string `json:"output_dir"`

	// Render settings
	RenderSize  int    `json:"render_size"`
	Supersample int    `json:"supersample"`
	Format      string `json:"format"` // webp, png or tga
	View        string `json:"view"`   // top or iso
	Workers     int    `json:"workers"`
}

// Formats and views accepted by Validate.
var (
	Formats = []string{"webp", "png", "tga"}
	Views   = []string{"top", "iso"}
)

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.DefDir != "" {
		c.DefDir = flags.DefDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Size > 0 {
		c.RenderSize = flags.Size
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.View != "" {
		c.View = flags.View
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.DefDir == "" {
		c.DefDir = detectDefDir()
	}
	if c.OutputDir == "" {
		c.OutputDir = "renders"
	} else if !filepath.IsAbs(c.OutputDir) && c.DefDir != "" && flags.OutputDir == "" {
		// Relative output paths in a config file sit beside the definitions.
		c.OutputDir = filepath.Join(filepath.Dir(c.DefDir), c.OutputDir)
	}

	if c.RenderSize <= 0 {
		c.RenderSize = 512
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	c.Format = strings.ToLower(c.Format)
	if c.Format == "" {
		c.Format = "webp"
	}
	c.View = strings.ToLower(c.View)
	if c.View == "" {
		c.View = "top"
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Validate reports settings Resolve cannot repair.
func (c *Config) Validate() error {
	if !contains(Formats, c.Format) {
		return fmt.Errorf("config: unknown format %q (want one of %s)", c.Format, strings.Join(Formats, ", "))
	}
	if !contains(Views, c.View) {
		return fmt.Errorf("config: unknown view %q (want one of %s)", c.View, strings.Join(Views, ", "))
	}
	if c.Supersample > 8 {
		return fmt.Errorf("config: supersample %d out of range 1-8", c.Supersample)
	}
	return nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	DefDir    string
	OutputDir string
	Size      int
	Format    string
	View      string
	Workers   int
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func detectDefDir() string {
	// Try relative to executable
	exe, _ := os.Executable()
	if exe != "" {
		dir := filepath.Dir(exe)
		for _, base := range []string{dir, filepath.Dir(dir), filepath.Join(dir, "..", "..")} {
			if isDir(filepath.Join(base, "tracks")) {
				return filepath.Join(base, "tracks")
			}
		}
	}

	// Try current working directory
	cwd, _ := os.Getwd()
	if isDir(filepath.Join(cwd, "tracks")) {
		return filepath.Join(cwd, "tracks")
	}

	return ""
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
