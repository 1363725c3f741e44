package model

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed settings.cue
var settingsSchemaSrc string

var (
	schemaOnce sync.Once
	schemaCtx  *cue.Context
	settingsV  cue.Value
	schemaErr  error
)

func loadSchema() {
	schemaCtx = cuecontext.New()
	v := schemaCtx.CompileString(settingsSchemaSrc)
	if err := v.Err(); err != nil {
		schemaErr = fmt.Errorf("compile settings schema: %w", err)
		return
	}
	settingsV = v.LookupPath(cue.ParsePath("#Settings"))
	if !settingsV.Exists() {
		schemaErr = fmt.Errorf("settings schema: #Settings not found")
	}
}

// ValidateSettings checks s against the embedded CUE schema.
func ValidateSettings(s Settings) error {
	schemaOnce.Do(loadSchema)
	if schemaErr != nil {
		return schemaErr
	}

	// Going through JSON turns nil audio selections into a concrete null.
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	v := schemaCtx.CompileBytes(data)
	if err := v.Err(); err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := settingsV.Unify(v).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}
