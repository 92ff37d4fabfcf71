package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// RenderSettings stores the defaults used by the render and wrap commands.
type RenderSettings struct {
	Width        int
	IndentString string
	IndentOnWrap int
	Color        string // auto, always or never
}

func defaultRenderSettings() RenderSettings {
	return RenderSettings{
		Width:        80,
		IndentString: "  ",
		IndentOnWrap: 1,
		Color:        "auto",
	}
}

// loadSettings overlays the settings present in the file at path onto the
// given defaults. A missing file is not an error; a malformed one is.
func loadSettings(path string, render RenderSettings, level string) (RenderSettings, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return render, level, nil
		}
		return render, level, err
	}

	var raw struct {
		Render struct {
			Width        *int    `json:"width"`
			IndentString *string `json:"indent"`
			IndentOnWrap *int    `json:"indent_on_wrap"`
			Color        *string `json:"color"`
		} `json:"render"`
		LogLevel *string `json:"log_level"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return render, level, fmt.Errorf("parse %s: %w", path, err)
	}
	if raw.Render.Width != nil {
		render.Width = *raw.Render.Width
	}
	if raw.Render.IndentString != nil {
		render.IndentString = *raw.Render.IndentString
	}
	if raw.Render.IndentOnWrap != nil {
		render.IndentOnWrap = *raw.Render.IndentOnWrap
	}
	if raw.Render.Color != nil {
		render.Color = *raw.Render.Color
	}
	if raw.LogLevel != nil {
		level = *raw.LogLevel
	}
	return render, level, nil
}

func saveSettings(path string, render RenderSettings, level string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	// Keep keys written by other versions.
	payload := map[string]any{}
	if existing, err := os.ReadFile(path); err == nil {
		_ = json.Unmarshal(existing, &payload)
	}

	section, ok := payload["render"].(map[string]any)
	if !ok || section == nil {
		section = map[string]any{}
	}
	section["width"] = render.Width
	section["indent"] = render.IndentString
	section["indent_on_wrap"] = render.IndentOnWrap
	section["color"] = render.Color
	payload["render"] = section
	payload["log_level"] = level

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Save persists the settings to the config file.
func (c *Config) Save() error {
	if c == nil || c.Paths == nil {
		return nil
	}
	return saveSettings(c.Paths.ConfigPath, c.Render, c.LogLevel)
}
