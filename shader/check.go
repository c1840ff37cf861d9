package shader

import (
	"fmt"

	xlate "github.com/richinsley/gobounce/translator"
)

// Report describes a shader pair that translated cleanly.
type Report struct {
	Vertex   *xlate.Result
	Fragment *xlate.Result
}

// Check translates both shaders without a GL context and verifies that every
// uniform the renderer uploads is declared.
func Check(vertexPath, fragmentPath string) (*Report, error) {
	r := &Report{}
	for _, s := range []struct {
		path  string
		stage string
		out   **xlate.Result
	}{
		{vertexPath, xlate.StageVertex, &r.Vertex},
		{fragmentPath, xlate.StageFragment, &r.Fragment},
	} {
		src, err := ReadSource(s.path)
		if err != nil {
			return nil, err
		}
		res, err := xlate.Translate(src, s.stage)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.path, err)
		}
		*s.out = res
	}

	if err := r.verify(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Report) verify() error {
	for _, name := range RequiredUniforms {
		_, inVertex := r.Vertex.Names[name]
		_, inFragment := r.Fragment.Names[name]
		if !inVertex && !inFragment {
			return fmt.Errorf("uniform %s is not declared by either shader", name)
		}
	}
	return nil
}
