// Package glscene renders a decoded model inside the lightbox with an
// orbiting camera.
package glscene

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/gear-carousel/internal/engine/camera"
	"github.com/Faultbox/gear-carousel/internal/engine/model"
	"github.com/Faultbox/gear-carousel/internal/engine/shader"
	"github.com/Faultbox/gear-carousel/internal/engine/texture/gltex"
	"github.com/Faultbox/gear-carousel/internal/lightbox"
	"github.com/Faultbox/gear-carousel/internal/logger"
	"github.com/Faultbox/gear-carousel/internal/viewer3d"
	"github.com/Faultbox/gear-carousel/pkg/math"
)

var errUnavailable = errors.New("scene unavailable")

// Options tune the camera of every scene.
type Options struct {
	MinDistance float32 // zero keeps the fitted range
	MaxDistance float32
}

// Factory returns a viewer3d.SceneFactory building GL scenes. The GPU
// upload happens on the first Draw, on the UI goroutine.
func Factory(opts Options) viewer3d.SceneFactory {
	return func(m *viewer3d.Model) lightbox.Scene {
		return newScene(m, opts)
	}
}

// Scene is a lightbox.Scene backed by OpenGL.
type Scene struct {
	model  *viewer3d.Model
	camera *camera.OrbitCamera
	log    *zap.Logger

	program  *shader.Program
	vao      uint32
	vbo      uint32
	ebo      uint32
	white    uint32
	textures map[string]uint32

	uploaded bool
	failed   bool
}

func newScene(m *viewer3d.Model, opts Options) *Scene {
	cam := camera.NewOrbitCamera()
	b := m.Mesh.Bounds
	cam.FitToBounds(math.V3(b.Min), math.V3(b.Max))
	if opts.MinDistance > 0 && opts.MaxDistance > opts.MinDistance {
		cam.SetDistanceRange(opts.MinDistance, opts.MaxDistance)
	}
	return &Scene{
		model:  m,
		camera: cam,
		log:    logger.Named("glscene"),
	}
}

// Camera exposes the orbit camera.
func (s *Scene) Camera() *camera.OrbitCamera {
	return s.camera
}

// Orbit rotates the camera by a pointer delta.
func (s *Scene) Orbit(dx, dy float32) {
	s.camera.Orbit(dx, dy)
}

// Zoom moves the camera; positive is closer.
func (s *Scene) Zoom(delta float32) {
	s.camera.Zoom(delta)
}

// Draw renders into the current viewport, which the caller has set to vp.
// It fails when the model cannot be uploaded or the scene was disposed.
func (s *Scene) Draw(vp lightbox.Viewport) error {
	if s.failed {
		return errUnavailable
	}
	if vp.W <= 0 || vp.H <= 0 {
		return nil
	}
	if !s.uploaded {
		if err := s.upload(); err != nil {
			s.failed = true
			s.release()
			return fmt.Errorf("upload %s: %w", s.model.Ref.Geometry, err)
		}
	}
	s.camera.Step()

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	p := s.program
	p.Use()
	proj := s.camera.ProjectionMatrix(float32(vp.W) / float32(vp.H))
	view := s.camera.ViewMatrix()
	ident := math.Identity()
	p.SetMat4("uProjection", (*[16]float32)(&proj))
	p.SetMat4("uView", (*[16]float32)(&view))
	p.SetMat4("uModel", (*[16]float32)(&ident))
	p.SetVec3("uLightDir", [3]float32{0.5, 1.0, 0.7})
	p.SetVec3("uCameraPos", s.camera.Position().Array())
	p.SetInt("uTexture", 0)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindVertexArray(s.vao)
	for _, g := range s.model.Mesh.Groups {
		mat := g.Material
		tex := s.white
		if t, ok := s.textures[mat.DiffuseMap]; ok {
			tex = t
		}
		gl.BindTexture(gl.TEXTURE_2D, tex)
		p.SetVec3("uAmbient", mat.Ambient)
		p.SetVec3("uDiffuse", mat.Diffuse)
		p.SetVec3("uSpecular", mat.Specular)
		p.SetFloat("uShininess", max(mat.Shininess, 1))
		p.SetFloat("uOpacity", mat.Opacity)

		//nolint:govet // GL element offset
		gl.DrawElements(gl.TRIANGLES, g.IndexCount, gl.UNSIGNED_INT, unsafe.Pointer(uintptr(g.StartIndex*4)))
	}
	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.Disable(gl.DEPTH_TEST)
	return nil
}

// Dispose frees GPU resources. The scene must not be drawn afterwards.
func (s *Scene) Dispose() {
	s.release()
	s.failed = true
}

func (s *Scene) upload() error {
	prog, err := shader.Compile(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return err
	}
	s.program = prog

	mesh := s.model.Mesh
	stride := int32(unsafe.Sizeof(model.Vertex{}))

	gl.GenVertexArrays(1, &s.vao)
	gl.BindVertexArray(s.vao)

	gl.GenBuffers(1, &s.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*int(stride), unsafe.Pointer(&mesh.Vertices[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &s.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, s.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, unsafe.Pointer(&mesh.Indices[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 12)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 24)
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)

	s.white = gltex.White()
	s.textures = make(map[string]uint32, len(s.model.Textures))
	for key, img := range s.model.Textures {
		s.textures[key] = gltex.Upload(img)
	}
	// CPU copies are no longer needed.
	s.model.Textures = nil

	s.uploaded = true
	s.log.Debug("model uploaded",
		zap.String("geometry", s.model.Ref.Geometry),
		zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("textures", len(s.textures)))
	return nil
}

func (s *Scene) release() {
	for _, t := range s.textures {
		gltex.Delete(t)
	}
	s.textures = nil
	gltex.Delete(s.white)
	s.white = 0
	if s.ebo != 0 {
		gl.DeleteBuffers(1, &s.ebo)
		s.ebo = 0
	}
	if s.vbo != 0 {
		gl.DeleteBuffers(1, &s.vbo)
		s.vbo = 0
	}
	if s.vao != 0 {
		gl.DeleteVertexArrays(1, &s.vao)
		s.vao = 0
	}
	if s.program != nil {
		s.program.Delete()
		s.program = nil
	}
	s.uploaded = false
}

const vertexShaderSource = `#version 410 core
layout (location = 0) in vec3 aPosition;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec2 aTexCoord;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProjection;

out vec3 vNormal;
out vec3 vWorldPos;
out vec2 vTexCoord;

void main() {
    vec4 world = uModel * vec4(aPosition, 1.0);
    vNormal = mat3(uModel) * aNormal;
    vWorldPos = world.xyz;
    vTexCoord = aTexCoord;
    gl_Position = uProjection * uView * world;
}
`

const fragmentShaderSource = `#version 410 core
in vec3 vNormal;
in vec3 vWorldPos;
in vec2 vTexCoord;

uniform sampler2D uTexture;
uniform vec3 uLightDir;
uniform vec3 uCameraPos;
uniform vec3 uAmbient;
uniform vec3 uDiffuse;
uniform vec3 uSpecular;
uniform float uShininess;
uniform float uOpacity;

out vec4 FragColor;

void main() {
    vec3 normal = normalize(vNormal);
    vec3 lightDir = normalize(uLightDir);
    vec3 viewDir = normalize(uCameraPos - vWorldPos);
    if (dot(normal, viewDir) < 0.0) {
        normal = -normal; // two-sided lighting
    }

    float diff = max(dot(normal, lightDir), 0.0);
    float spec = pow(max(dot(normal, normalize(lightDir + viewDir)), 0.0), uShininess);

    vec4 tex = texture(uTexture, vTexCoord);
    vec3 base = tex.rgb / max(tex.a, 0.001); // textures are premultiplied
    vec3 color = (uAmbient + 0.35 + diff * uDiffuse) * base + spec * uSpecular;
    FragColor = vec4(clamp(color, 0.0, 1.0), tex.a * uOpacity);
}
`
