package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/skyformat99/mustache"
)

type renderOptions struct {
	dataFile    string
	outputFile  string
	partialsDir string
	noEscape    bool
	fuel        uint64
}

// NewRenderCmd builds the root command: compile one template, bind a data
// document, write the rendered output.
func NewRenderCmd() *cobra.Command {
	o := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "mustache TEMPLATE",
		Short: "Render a mustache template against a data document",
		Long: `Render a mustache template against a data document.

The data document is YAML, JSON or TOML, chosen by file extension.
Partials referenced as {{>name}} are loaded from the partials directory
(defaulting to the template's directory) as name.mustache.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(args[0])
		},
	}

	cmd.Flags().StringVarP(&o.dataFile, "data", "d", "", "Data document file (YAML, JSON or TOML)")
	cmd.Flags().StringVarP(&o.outputFile, "output", "o", "", "Write output to file instead of stdout")
	cmd.Flags().StringVar(&o.partialsDir, "partials", "", "Directory to resolve partials from")
	cmd.Flags().BoolVar(&o.noEscape, "no-escape", false, "Disable HTML escaping of interpolations")
	cmd.Flags().Uint64Var(&o.fuel, "fuel", 0, "Abort renders that execute more than this many instructions (0 = unlimited)")

	return cmd
}

func (o *renderOptions) run(templatePath string) error {
	source, err := os.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("reading template: %w", err)
	}

	doc, err := o.loadDocument()
	if err != nil {
		return err
	}

	env := mustache.NewEnvironment()
	if o.noEscape {
		env.SetEscapeFunc(nil)
	}
	if o.fuel > 0 {
		env.SetFuel(o.fuel)
	}

	partialsDir := o.partialsDir
	if partialsDir == "" {
		partialsDir = filepath.Dir(templatePath)
	}
	env.SetLoader(func(name string) (string, error) {
		if filepath.Ext(name) == "" {
			name += ".mustache"
		}
		content, err := os.ReadFile(filepath.Join(partialsDir, name))
		if err != nil {
			return "", err
		}
		return string(content), nil
	})

	name := filepath.Base(templatePath)
	if err := env.AddTemplate(name, string(source)); err != nil {
		return err
	}
	tmpl, err := env.GetTemplate(name)
	if err != nil {
		return err
	}

	result, err := tmpl.Render(doc)
	if err != nil {
		return err
	}

	if o.outputFile != "" {
		return os.WriteFile(o.outputFile, []byte(result), 0644)
	}
	_, err = os.Stdout.WriteString(result)
	return err
}

func (o *renderOptions) loadDocument() (any, error) {
	if o.dataFile == "" {
		return map[string]any{}, nil
	}

	content, err := os.ReadFile(o.dataFile)
	if err != nil {
		return nil, fmt.Errorf("reading data document: %w", err)
	}

	var doc any
	switch strings.ToLower(filepath.Ext(o.dataFile)) {
	case ".toml":
		if err := toml.Unmarshal(content, &doc); err != nil {
			return nil, fmt.Errorf("decoding TOML data: %w", err)
		}
	default:
		// goccy/go-yaml decodes JSON as well, JSON being a YAML subset.
		if err := yaml.Unmarshal(content, &doc); err != nil {
			return nil, fmt.Errorf("decoding data document: %w", err)
		}
	}
	return doc, nil
}
