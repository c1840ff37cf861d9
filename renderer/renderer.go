package renderer

import (
	"fmt"
	"log"
	"sync"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/gobounce/geometry"
	"github.com/richinsley/gobounce/graphics"
	options "github.com/richinsley/gobounce/options"
	"github.com/richinsley/gobounce/scene"
	"github.com/richinsley/gobounce/shader"
)

// glInitOnce makes sure gl.Init() is called only once.
var glInitOnce sync.Once

var clearColor = [4]float32{0.2, 0.3, 0.3, 1.0}

// mesh is a geometry.Mesh uploaded to the GPU.
type mesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
	mode          uint32
}

type Renderer struct {
	context   graphics.Context
	program   *shader.Program
	meshes    map[scene.Shape]*mesh
	wireframe bool

	projectionLoc int32
	modelViewLoc  int32
	colorLoc      int32

	offscreenRenderer *OffscreenRenderer
	width             int
	height            int
}

// NewRenderer makes ctx current, loads the shader program and uploads the
// meshes. With recordMode set, frames are drawn into an offscreen framebuffer
// of the configured size instead of the window.
func NewRenderer(ctx graphics.Context, opts *options.BallOptions, recordMode bool) (*Renderer, error) {
	r := &Renderer{
		context: ctx,
		meshes:  make(map[scene.Shape]*mesh),
		width:   *opts.Width,
		height:  *opts.Height,
	}

	r.context.MakeCurrent()

	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", initErr)
	}
	log.Printf("OpenGL version %s", gl.GoStr(gl.GetString(gl.VERSION)))

	var err error
	r.program, err = shader.Load(*opts.VertexShader, *opts.FragmentShader, *opts.Translate)
	if err != nil {
		return nil, err
	}
	r.projectionLoc = r.program.UniformLocation(shader.ProjectionName)
	r.modelViewLoc = r.program.UniformLocation(shader.ModelViewName)
	r.colorLoc = r.program.UniformLocation(shader.ColorName)
	if r.projectionLoc < 0 || r.modelViewLoc < 0 || r.colorLoc < 0 {
		log.Printf("Warning: missing uniform (Projection=%d ModelView=%d objectColor=%d)",
			r.projectionLoc, r.modelViewLoc, r.colorLoc)
	}

	r.meshes[scene.Cube] = uploadMesh(geometry.Cube())
	r.meshes[scene.Sphere] = uploadMesh(geometry.DefaultSphere())

	gl.ClearColor(clearColor[0], clearColor[1], clearColor[2], clearColor[3])
	gl.Enable(gl.DEPTH_TEST)

	if recordMode {
		r.offscreenRenderer, err = NewOffscreenRenderer(r.width, r.height)
		if err != nil {
			r.Shutdown()
			return nil, fmt.Errorf("failed to create offscreen renderer: %w", err)
		}
	}

	return r, nil
}

func uploadMesh(m *geometry.Mesh) *mesh {
	out := &mesh{indexCount: int32(len(m.Indices)), mode: drawMode(m.Topology)}

	gl.GenVertexArrays(1, &out.vao)
	gl.GenBuffers(1, &out.vbo)
	gl.GenBuffers(1, &out.ebo)

	gl.BindVertexArray(out.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, out.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*4, gl.Ptr(m.Vertices), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, out.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(shader.PositionAttrib)
	gl.VertexAttribPointer(shader.PositionAttrib, 3, gl.FLOAT, false, 3*4, gl.PtrOffset(0))

	gl.BindVertexArray(0)
	return out
}

// drawMode maps a mesh topology to the primitive passed to DrawElements.
func drawMode(t geometry.Topology) uint32 {
	switch t {
	case geometry.TriangleStrip:
		return gl.TRIANGLE_STRIP
	default:
		return gl.TRIANGLES
	}
}

func (m *mesh) destroy() {
	gl.DeleteVertexArrays(1, &m.vao)
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteBuffers(1, &m.ebo)
}

// Resize matches the viewport to a new framebuffer size. It has no effect in
// record mode, where the offscreen target has a fixed size.
func (r *Renderer) Resize(width, height int) {
	if r.offscreenRenderer != nil {
		return
	}
	gl.Viewport(0, 0, int32(width), int32(height))
}

// RenderFrame draws the ball for the current state to the bound framebuffer.
func (r *Renderer) RenderFrame(s *scene.State) {
	if s.Wireframe != r.wireframe {
		r.wireframe = s.Wireframe
		if r.wireframe {
			gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		} else {
			gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
		}
	}

	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	r.program.Use()

	gl.UniformMatrix4fv(r.projectionLoc, 1, false, &s.Projection[0])
	gl.Uniform3fv(r.colorLoc, 1, &s.Color[0])
	model := s.Ball.ModelMatrix()
	gl.UniformMatrix4fv(r.modelViewLoc, 1, false, &model[0])

	m := r.meshes[s.Shape]
	if m == nil {
		return
	}
	gl.BindVertexArray(m.vao)
	gl.DrawElements(m.mode, m.indexCount, gl.UNSIGNED_INT, gl.PtrOffset(0))
	gl.BindVertexArray(0)
}

// ReadFrame renders s into the offscreen framebuffer and returns its RGBA
// pixels, bottom row first.
func (r *Renderer) ReadFrame(s *scene.State) ([]byte, error) {
	if r.offscreenRenderer == nil {
		return nil, fmt.Errorf("renderer was not created in record mode")
	}
	r.offscreenRenderer.Bind()
	r.RenderFrame(s)
	pixels, err := r.offscreenRenderer.ReadPixels()
	r.offscreenRenderer.Unbind()
	return pixels, err
}

func (r *Renderer) Shutdown() {
	for _, m := range r.meshes {
		m.destroy()
	}
	if r.program != nil {
		r.program.Delete()
	}
	if r.offscreenRenderer != nil {
		r.offscreenRenderer.Destroy()
	}
}
