// Package config loads the simplez settings file.
package config

import (
	"errors"
	"io"
	"iter"
	"maps"
	"os"
	"slices"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/ezrec/simplez/cpu"
	"github.com/ezrec/simplez/emulator"
	"github.com/ezrec/simplez/listing"
	"github.com/ezrec/simplez/translate"
)

var f = translate.From

var (
	ErrMaxTicks     = errors.New(f("max_ticks must not be negative"))
	ErrHistoryDepth = errors.New(f("history_depth must be positive"))
)

// ErrUnknownKey is a setting that is not understood.
type ErrUnknownKey string

func (err ErrUnknownKey) Error() string {
	return f("config key %v unknown", string(err))
}

// ErrPredefine is a predefined constant outside of a word.
type ErrPredefine string

func (err ErrPredefine) Error() string {
	return f("predefine %v out of range", string(err))
}

// Listing are the listing settings.
type Listing struct {
	SkipZero bool   `toml:"skip_zero"`
	Style    string `toml:"style"`
}

// Config are the settings of a simplez session.
type Config struct {
	Verbose      bool           `toml:"verbose"`
	MaxTicks     int            `toml:"max_ticks"`
	HistoryDepth int            `toml:"history_depth"`
	Listing      Listing        `toml:"listing"`
	Predefine    map[string]int `toml:"predefine"`
}

// Default returns the settings used when no file is given.
func Default() (conf *Config) {
	conf = &Config{
		MaxTicks:     emulator.DEFAULT_TICK_LIMIT,
		HistoryDepth: cpu.HISTORY_DEPTH,
		Listing: Listing{
			Style: listing.DEFAULT_STYLE,
		},
	}
	return
}

// Decode reads TOML settings over the defaults.
func Decode(input io.Reader) (conf *Config, err error) {
	conf = Default()

	md, err := toml.NewDecoder(input).Decode(conf)
	if err != nil {
		conf = nil
		return
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		conf = nil
		err = ErrUnknownKey(undecoded[0].String())
		return
	}

	err = conf.Validate()
	if err != nil {
		conf = nil
	}

	return
}

// Load reads TOML settings from a file.
func Load(path string) (conf *Config, err error) {
	file, err := os.Open(path)
	if err != nil {
		return
	}
	defer file.Close()

	conf, err = Decode(file)

	return
}

// Validate checks the ranges of the settings.
func (conf *Config) Validate() (err error) {
	if conf.MaxTicks < 0 {
		return ErrMaxTicks
	}
	if conf.HistoryDepth <= 0 {
		return ErrHistoryDepth
	}
	_, err = listing.StyleOf(conf.Listing.Style)
	if err != nil {
		return
	}
	for name, value := range conf.Predefine {
		if value < 0 || value > cpu.WORD_MASK {
			return ErrPredefine(name)
		}
	}

	return
}

// Predefines iterates over the predefined constants, sorted by name.
func (conf *Config) Predefines() iter.Seq2[string, int] {
	return func(yield func(name string, value int) bool) {
		for _, name := range slices.Sorted(maps.Keys(conf.Predefine)) {
			if !yield(name, conf.Predefine[name]) {
				return
			}
		}
	}
}

// Defines iterates over the settings, for display.
func (conf *Config) Defines() iter.Seq2[string, string] {
	return func(yield func(key string, value string) bool) {
		settings := []struct {
			key   string
			value string
		}{
			{"verbose", strconv.FormatBool(conf.Verbose)},
			{"max_ticks", strconv.Itoa(conf.MaxTicks)},
			{"history_depth", strconv.Itoa(conf.HistoryDepth)},
			{"listing.skip_zero", strconv.FormatBool(conf.Listing.SkipZero)},
			{"listing.style", conf.Listing.Style},
		}
		for _, setting := range settings {
			if !yield(setting.key, setting.value) {
				return
			}
		}
	}
}
