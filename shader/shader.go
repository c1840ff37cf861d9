package shader

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	xlate "github.com/richinsley/gobounce/translator"
)

const (
	// PositionAttrib is the attribute location vPosition is bound to before linking.
	PositionAttrib = 0

	PositionName   = "vPosition"
	ProjectionName = "Projection"
	ModelViewName  = "ModelView"
	ColorName      = "objectColor"
)

// RequiredUniforms are the uniforms the renderer uploads every frame.
var RequiredUniforms = []string{ProjectionName, ModelViewName, ColorName}

// CompileError carries the driver's info log for a stage that failed to compile.
type CompileError struct {
	Path string
	Log  string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s failed to compile:\n%s", e.Path, e.Log)
}

// LinkError carries the driver's info log for a program that failed to link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("shader program failed to link:\n%s", e.Log)
}

// Program is a linked shader program and the name mapping of its sources.
type Program struct {
	ID       uint32
	vertex   *xlate.Result
	fragment *xlate.Result
}

// ReadSource reads a shader file fully into memory.
func ReadSource(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to open shader file %s: %w", path, err)
	}
	return string(b), nil
}

// Load reads, compiles and links the vertex and fragment shaders at the given
// paths. When translate is set both sources are first converted from GLSL ES
// 3.00 to desktop GLSL. The linked program is left bound.
func Load(vertexPath, fragmentPath string, translate bool) (*Program, error) {
	p := &Program{}
	vsSource, err := p.prepare(vertexPath, xlate.StageVertex, translate)
	if err != nil {
		return nil, err
	}
	fsSource, err := p.prepare(fragmentPath, xlate.StageFragment, translate)
	if err != nil {
		return nil, err
	}

	vertexShader, err := compileShader(vsSource, gl.VERTEX_SHADER)
	if err != nil {
		return nil, withPath(err, vertexPath)
	}
	fragmentShader, err := compileShader(fsSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return nil, withPath(err, fragmentPath)
	}

	p.ID, err = newProgram(vertexShader, fragmentShader, p.vertex.MappedName(PositionName))
	if err != nil {
		return nil, err
	}
	gl.UseProgram(p.ID)
	return p, nil
}

func (p *Program) prepare(path, stage string, translate bool) (string, error) {
	src, err := ReadSource(path)
	if err != nil {
		return "", err
	}
	if !translate {
		return src, nil
	}
	res, err := xlate.Translate(src, stage)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	if stage == xlate.StageVertex {
		p.vertex = res
	} else {
		p.fragment = res
	}
	return res.Code, nil
}

// UniformLocation looks up a uniform by its name in the shader source.
func (p *Program) UniformLocation(name string) int32 {
	mapped := p.fragment.MappedName(name)
	if mapped == name {
		mapped = p.vertex.MappedName(name)
	}
	return gl.GetUniformLocation(p.ID, gl.Str(mapped+"\x00"))
}

func (p *Program) Use() {
	gl.UseProgram(p.ID)
}

func (p *Program) Delete() {
	gl.DeleteProgram(p.ID)
}

func withPath(err error, path string) error {
	if ce, ok := err.(*CompileError); ok {
		ce.Path = path
		return ce
	}
	return err
}

func newProgram(vertexShader, fragmentShader uint32, positionName string) (uint32, error) {
	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.BindAttribLocation(program, PositionAttrib, gl.Str(positionName+"\x00"))
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, &LinkError{Log: strings.TrimRight(log, "\x00")}
	}

	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		gl.DeleteShader(shader)
		return 0, &CompileError{Log: strings.TrimRight(logText, "\x00")}
	}
	return shader, nil
}
