package translator

import (
	"context"
	"fmt"
	"sync"

	gst "github.com/richinsley/goshadertranslator"
)

const (
	StageVertex   = "vertex"
	StageFragment = "fragment"
)

var (
	translator     *gst.ShaderTranslator
	translatorErr  error
	translatorOnce sync.Once
)

// GetTranslator returns the process-wide translator, creating it on first use.
func GetTranslator() (*gst.ShaderTranslator, error) {
	translatorOnce.Do(func() {
		translator, translatorErr = gst.NewShaderTranslator(context.Background())
	})
	return translator, translatorErr
}

// Result is a translated shader stage.
type Result struct {
	Code string
	// Names maps identifiers from the source to the names in Code.
	Names map[string]string
}

// MappedName returns the translated identifier for name, or name itself if the
// translator did not report it.
func (r *Result) MappedName(name string) string {
	if r == nil {
		return name
	}
	if mapped, ok := r.Names[name]; ok && mapped != "" {
		return mapped
	}
	return name
}

// Translate converts GLSL ES 3.00 source for the given stage into desktop GLSL 4.10.
func Translate(source, stage string) (*Result, error) {
	t, err := GetTranslator()
	if err != nil {
		return nil, fmt.Errorf("failed to create shader translator: %w", err)
	}
	out, err := t.TranslateShader(source, stage, gst.ShaderSpecWebGL2, gst.OutputFormatGLSL410)
	if err != nil {
		return nil, fmt.Errorf("%s shader translation failed: %w", stage, err)
	}
	res := &Result{
		Code:  out.Code,
		Names: make(map[string]string, len(out.Variables)),
	}
	for name, v := range out.Variables {
		res.Names[name] = v.MappedName
	}
	return res, nil
}
