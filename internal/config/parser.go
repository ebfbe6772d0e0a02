package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/penmode/internal/toolmode"
)

// Parse reads configuration from an io.Reader. Unknown keys are ignored;
// malformed booleans and unknown renderer backends are errors.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var section string
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			key, value, ok = strings.Cut(line, ":")
		}
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.Trim(strings.TrimSpace(value), `"`)

		var err error
		switch section {
		case "":
			err = setRootField(cfg, key, value)
		case "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		}
		if err != nil {
			if section == "" {
				return nil, fmt.Errorf("line %d: root section: %w", lineNo, err)
			}
			return nil, fmt.Errorf("line %d: section [%s]: %w", lineNo, section, err)
		}
	}

	return cfg, scanner.Err()
}

func setRootField(cfg *Config, key, value string) error {
	var dst *bool
	switch key {
	case "renderer_backend":
		b, err := toolmode.ParseBackend(value)
		if err != nil {
			return err
		}
		cfg.Backend = b
		return nil
	case "save_dir":
		cfg.SaveDir = value
		return nil
	case "righthanded":
		dst = &cfg.Righthanded
	case "devel":
		dst = &cfg.Devel
	case "visual_debug":
		dst = &cfg.VisualDebug
	case "format_borders":
		dst = &cfg.FormatBorders
	case "touch_drawing":
		dst = &cfg.TouchDrawing
	case "autoexpand_height":
		dst = &cfg.AutoexpandHeight
	default:
		return nil
	}
	return parseBool(dst, key, value)
}

func setNotifyField(n *Notify, key, value string) error {
	switch key {
	case "save":
		return parseBool(&n.Save, key, value)
	case "export":
		return parseBool(&n.Export, key, value)
	case "copy":
		return parseBool(&n.Copy, key, value)
	}
	return nil
}

func parseBool(dst *bool, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	*dst = b
	return nil
}
