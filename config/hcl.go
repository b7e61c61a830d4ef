package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// loadHCL parses the HCL flavor of the config file:
//
//	forge {
//	  token = "${GITHUB_TOKEN}"
//	}
//
//	defaults {
//	  timeout = "5s"
//	}
//
//	check "utils4" {
//	  source  = "github"
//	  path    = "s3dev/utils4"
//	  version = "0.15.1"
//	}
func loadHCL(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file %q: %w", path, diags)
	}

	bodyContent, _, partialDiags := file.Body.PartialContent(&hcl.BodySchema{
		Blocks: []hcl.BlockHeaderSchema{
			{Type: "forge"},
			{Type: "defaults"},
			{Type: "check", LabelNames: []string{"name"}},
		},
	})
	if partialDiags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config file %q: %w", path, partialDiags)
	}

	var cfg Config
	for _, block := range bodyContent.Blocks {
		attrs, _ := block.Body.JustAttributes()

		switch block.Type {
		case "forge":
			cfg.Forge.Token = stringAttr(attrs, "token")
		case "defaults":
			raw := stringAttr(attrs, "timeout")
			if raw != "" {
				timeout, parseErr := time.ParseDuration(raw)
				if parseErr != nil {
					return nil, fmt.Errorf("invalid duration %q in %q: %w", raw, path, parseErr)
				}
				cfg.Defaults.Timeout = Duration(timeout)
			}
		case "check":
			chk := CheckConfig{
				Source:  stringAttr(attrs, "source"),
				Path:    stringAttr(attrs, "path"),
				Version: stringAttr(attrs, "version"),
				Token:   stringAttr(attrs, "token"),
			}
			if len(block.Labels) > 0 {
				chk.Name = block.Labels[0]
			}
			cfg.Checks = append(cfg.Checks, chk)
		}
	}

	return &cfg, nil
}

// stringAttr evaluates a literal string attribute; anything else counts as
// absent.
func stringAttr(attrs hcl.Attributes, name string) string {
	attr, ok := attrs[name]
	if !ok {
		return ""
	}
	value, diags := attr.Expr.Value(&hcl.EvalContext{})
	if diags.HasErrors() || value.Type() != cty.String {
		return ""
	}
	return value.AsString()
}
