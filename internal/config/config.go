// Package config loads and validates .gherkinstub.yaml.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/chriserin/gherkinstub/internal/converter"
	"github.com/chriserin/gherkinstub/internal/naming"
)

// FileName is looked up in the working directory.
const FileName = ".gherkinstub.yaml"

// Config mirrors the converter options that may be set per project.
type Config struct {
	Location     string `yaml:"location" validate:"required"`
	Package      string `yaml:"package" validate:"required,gopackage"`
	MethodFormat string `yaml:"method_format" validate:"required,convention"`
	StrictNames  bool   `yaml:"strict_names"`
}

// Default is the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Location:     converter.DefaultLocation,
		MethodFormat: naming.SnakeCase.String(),
	}
}

// Load reads FileName from dir. A missing file yields Default; keys absent
// from the file keep their default values. The result is not validated so
// that flags can still fill in missing values.
func Load(dir string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}
	return cfg, nil
}

// Save writes cfg to dir/FileName.
func Save(dir string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, FileName), data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return yamlName(f.Tag.Get("yaml"))
	})
	mustRegister(v, "convention", func(fl validator.FieldLevel) bool {
		_, err := naming.ParseConvention(fl.Field().String())
		return err == nil
	})
	mustRegister(v, "gopackage", func(fl validator.FieldLevel) bool {
		for _, seg := range strings.Split(fl.Field().String(), ".") {
			if !naming.IsIdentifier(seg) {
				return false
			}
		}
		return true
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("registering %s validation: %v", tag, err))
	}
}

// Validate checks every field and reports all failures at once.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validation failed: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "convention":
		return fmt.Sprintf("%s %q must be camel or snake", fe.Field(), fe.Value())
	case "gopackage":
		return fmt.Sprintf("%s %q must be dot separated Go identifiers", fe.Field(), fe.Value())
	}
	return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
}

// ConverterOptions validates c and converts it for converter.New.
func (c *Config) ConverterOptions() (converter.Options, error) {
	if err := c.Validate(); err != nil {
		return converter.Options{}, err
	}
	conv, err := naming.ParseConvention(c.MethodFormat)
	if err != nil {
		return converter.Options{}, err
	}
	return converter.Options{
		Location:    c.Location,
		PackageName: c.Package,
		Convention:  conv,
		StrictNames: c.StrictNames,
	}, nil
}

func yamlName(tag string) string {
	name, _, _ := strings.Cut(tag, ",")
	return name
}
