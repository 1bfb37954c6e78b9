package pipeline

import (
	"io"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/gridplot/pkg/errors"
)

// LoadConfig reads a TOML config file on top of [DefaultOptions]:
//
//	images = ["a.png", "b.png", "c.png", "d.png"]
//	rows = 2
//	column_labels = ["before", "after"]
//	column_label_alignment = "start"
//	top_padding = 40
//	output = "grid.png"
//	debug = true
//
// Unknown keys are rejected so typos do not silently fall back to defaults.
func LoadConfig(path string) (Options, error) {
	opts := DefaultOptions()
	md, err := toml.DecodeFile(path, &opts)
	if err != nil {
		return Options{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if err := checkUndecoded(md); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// DecodeConfig is like LoadConfig but reads from r.
func DecodeConfig(r io.Reader) (Options, error) {
	opts := DefaultOptions()
	md, err := toml.NewDecoder(r).Decode(&opts)
	if err != nil {
		return Options{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if err := checkUndecoded(md); err != nil {
		return Options{}, err
	}
	return opts, nil
}

func checkUndecoded(md toml.MetaData) error {
	undecoded := md.Undecoded()
	if len(undecoded) == 0 {
		return nil
	}
	keys := make([]string, len(undecoded))
	for i, k := range undecoded {
		keys[i] = k.String()
	}
	return errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
}
