package main

import (
	"fmt"
	"strings"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-answerform/pkg/definition"
	"github.com/goliatone/go-answerform/pkg/widget"
)

type definitionFlags struct {
	path  string
	patch string
}

func (f *definitionFlags) register(cmd *cobra.Command, withPatch bool) {
	cmd.Flags().StringVarP(&f.path, "definition", "d", "", "definition file (JSON or YAML)")
	_ = cmd.MarkFlagRequired("definition")
	if withPatch {
		cmd.Flags().StringVar(&f.patch, "patch", "", "JSON merge patch applied to the stored answer")
	}
}

// load reads the definition and applies the merge patch to its answer.
func (f *definitionFlags) load() (definition.Definition, error) {
	def, err := definition.LoadFile(f.path)
	if err != nil {
		return definition.Definition{}, err
	}
	if strings.TrimSpace(f.patch) == "" {
		return def, nil
	}
	def.Answer, err = patchAnswer(def.Answer, f.patch)
	if err != nil {
		return definition.Definition{}, err
	}
	return def, nil
}

// host mounts the definition on an in-memory host.
func (f *definitionFlags) host() (*widget.MemoryHost, definition.Definition, error) {
	def, err := f.load()
	if err != nil {
		return nil, definition.Definition{}, err
	}
	host := widget.NewMemoryHost(def.Answer, def.Fragments...)
	host.SetReadOnly(def.ReadOnly)
	return host, def, nil
}

func patchAnswer(stored, patch string) (string, error) {
	base := strings.TrimSpace(stored)
	if base == "" {
		base = "{}"
	}
	merged, err := jsonpatch.MergePatch([]byte(base), []byte(patch))
	if err != nil {
		return "", fmt.Errorf("apply patch: %w", err)
	}
	return string(merged), nil
}
