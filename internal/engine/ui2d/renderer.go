// Package ui2d provides the 2D drawing layer of the gallery: rounded cards,
// soft shadows, images and bitmap text, in logical window units.
package ui2d

import (
	"fmt"
	gomath "math"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/gear-carousel/internal/engine/shader"
	"github.com/Faultbox/gear-carousel/internal/engine/texture/gltex"
)

// Image is an uploaded texture with its pixel size.
type Image struct {
	Tex    uint32
	Width  int
	Height int
}

// Renderer draws immediately; call order is paint order.
type Renderer struct {
	screenWidth  int
	screenHeight int
	pixelScale   float32 // drawable pixels per logical unit

	shapeShader *shader.Program
	textShader  *shader.Program

	quadVAO uint32
	quadVBO uint32

	textVAO      uint32
	textVBO      uint32
	textVertices []float32

	font *Font
	proj [16]float32
}

// New creates a renderer for a window of the given logical size.
func New(width, height int) (*Renderer, error) {
	r := &Renderer{
		pixelScale:   1,
		textVertices: make([]float32, 0, 4096),
		font:         NewFont(),
	}

	var err error
	if r.shapeShader, err = shader.Compile(shapeVertexSrc, shapeFragmentSrc); err != nil {
		return nil, fmt.Errorf("create shape shader: %w", err)
	}
	if r.textShader, err = shader.Compile(textVertexSrc, textFragmentSrc); err != nil {
		r.shapeShader.Delete()
		return nil, fmt.Errorf("create text shader: %w", err)
	}

	r.createQuadBuffers()
	r.createTextBuffers()
	r.font.tex = gltex.UploadNearest(r.font.atlas)
	r.Resize(width, height, width, height)
	return r, nil
}

// Resize updates the logical size and the framebuffer size in pixels.
func (r *Renderer) Resize(width, height, drawableW, drawableH int) {
	r.screenWidth = width
	r.screenHeight = height
	if width > 0 {
		r.pixelScale = float32(drawableW) / float32(width)
	}
	r.proj = orthoMatrix(0, float32(width), float32(height), 0, -1, 1)
}

// GetScreenSize returns the current logical dimensions.
func (r *Renderer) GetScreenSize() (int, int) {
	return r.screenWidth, r.screenHeight
}

// Font returns the text font.
func (r *Renderer) Font() *Font {
	return r.font
}

// Begin clears the frame and sets 2D state.
func (r *Renderer) Begin(clear Color) {
	r.resetViewport()
	gl.ClearColor(clear.R, clear.G, clear.B, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	r.set2DState()
}

func (r *Renderer) set2DState() {
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA) // premultiplied
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.SCISSOR_TEST)
}

func (r *Renderer) resetViewport() {
	gl.Viewport(0, 0, int32(float32(r.screenWidth)*r.pixelScale), int32(float32(r.screenHeight)*r.pixelScale))
}

// Close releases renderer resources.
func (r *Renderer) Close() {
	gltex.Delete(r.font.tex)
	if r.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &r.quadVAO)
	}
	if r.quadVBO != 0 {
		gl.DeleteBuffers(1, &r.quadVBO)
	}
	if r.textVAO != 0 {
		gl.DeleteVertexArrays(1, &r.textVAO)
	}
	if r.textVBO != 0 {
		gl.DeleteBuffers(1, &r.textVBO)
	}
	r.shapeShader.Delete()
	r.textShader.Delete()
}

// DrawRect draws a filled rectangle.
func (r *Renderer) DrawRect(rect Rect, c Color) {
	r.shape(rect, 0, 0, c, nil, 0)
}

// DrawRoundRect draws a filled rectangle with rounded corners.
func (r *Renderer) DrawRoundRect(rect Rect, radius float32, c Color) {
	r.shape(rect, radius, 0, c, nil, 0)
}

// DrawCircle draws a filled circle centered at (cx, cy).
func (r *Renderer) DrawCircle(cx, cy, radius float32, c Color) {
	r.shape(Rect{cx - radius, cy - radius, radius * 2, radius * 2}, radius, 0, c, nil, 0)
}

// DrawShadow draws a soft shadow under rect, blurred over softness units.
func (r *Renderer) DrawShadow(rect Rect, radius, softness float32, c Color) {
	r.shape(rect, radius, softness, c, nil, 0)
}

// DrawImage draws img to fill rect, cropping to cover it. opacity scales
// alpha; blur is an approximate blur radius in logical units.
func (r *Renderer) DrawImage(img Image, rect Rect, radius, opacity, blur float32) {
	if img.Tex == 0 {
		return
	}
	u0, v0, u1, v1 := CoverUV(img.Width, img.Height, rect.W, rect.H)
	uv := [4]float32{u0, v0, u1, v1}
	r.shape(rect, radius, 0, ColorWhite.WithAlpha(opacity), &sampled{img.Tex, uv}, lodBias(blur))
}

// lodBias maps a blur radius to a mip level offset. Each mip level halves
// resolution, so log2 of the kernel width is a reasonable match.
func lodBias(blur float32) float32 {
	if blur <= 0 {
		return 0
	}
	return float32(gomath.Log2(float64(1 + 2*blur)))
}

// sampled is a texture and the UV window mapped onto a shape.
type sampled struct {
	tex uint32
	uv  [4]float32
}

func (r *Renderer) shape(rect Rect, radius, feather float32, c Color, tex *sampled, bias float32) {
	if rect.W <= 0 || rect.H <= 0 || c.A <= 0 {
		return
	}
	outer := rect.Expand(feather + 1)
	radius = min(radius, rect.W/2, rect.H/2)

	p := r.shapeShader
	p.Use()
	p.SetMat4("uProjection", &r.proj)
	p.SetVec4("uRect", [4]float32{outer.X, outer.Y, outer.W, outer.H})
	p.SetVec4("uHalf", [4]float32{rect.W / 2, rect.H / 2, 0, 0})
	p.SetFloat("uRadius", radius)
	p.SetFloat("uFeather", feather)
	p.SetVec4("uColor", c.premul())
	p.SetFloat("uPixel", 1/r.pixelScale)

	if tex != nil {
		// Map the UV window onto rect, not the expanded quad.
		du := (tex.uv[2] - tex.uv[0]) / rect.W
		dv := (tex.uv[3] - tex.uv[1]) / rect.H
		grow := feather + 1
		p.SetVec4("uUV", [4]float32{
			tex.uv[0] - du*grow, tex.uv[1] - dv*grow,
			tex.uv[2] + du*grow, tex.uv[3] + dv*grow,
		})
		p.SetInt("uTextured", 1)
		p.SetInt("uTexture", 0)
		p.SetFloat("uLodBias", bias)
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, tex.tex)
	} else {
		p.SetInt("uTextured", 0)
	}

	gl.BindVertexArray(r.quadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// DrawText draws text with its top-left corner at (x, y).
func (r *Renderer) DrawText(x, y float32, text string, scale float32, c Color) {
	gw, gh := r.font.GlyphSize()
	charW := float32(gw) * scale
	charH := float32(gh) * scale
	pc := c.premul()

	r.textVertices = r.textVertices[:0]
	curX := x
	for _, char := range text {
		if char == '\n' {
			curX = x
			y += charH
			continue
		}
		u0, v0, u1, v1 := r.font.GlyphUV(char)
		r.textVertices = append(r.textVertices,
			curX, y, u0, v0, pc[0], pc[1], pc[2], pc[3],
			curX+charW, y, u1, v0, pc[0], pc[1], pc[2], pc[3],
			curX+charW, y+charH, u1, v1, pc[0], pc[1], pc[2], pc[3],
			curX, y, u0, v0, pc[0], pc[1], pc[2], pc[3],
			curX+charW, y+charH, u1, v1, pc[0], pc[1], pc[2], pc[3],
			curX, y+charH, u0, v1, pc[0], pc[1], pc[2], pc[3],
		)
		curX += charW
	}
	if len(r.textVertices) == 0 {
		return
	}

	r.textShader.Use()
	r.textShader.SetMat4("uProjection", &r.proj)
	r.textShader.SetInt("uTexture", 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.font.tex)

	gl.BindVertexArray(r.textVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.textVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(r.textVertices)*4, unsafe.Pointer(&r.textVertices[0]), gl.STREAM_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(r.textVertices)/8)) // pos2 + uv2 + color4
	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// DrawTextCentered draws text centered on (cx, cy).
func (r *Renderer) DrawTextCentered(cx, cy float32, text string, scale float32, c Color) {
	w, h := r.font.MeasureText(text, scale)
	r.DrawText(cx-w/2, cy-h/2, text, scale, c)
}

// MeasureText returns the width and height of rendered text.
func (r *Renderer) MeasureText(text string, scale float32) (float32, float32) {
	return r.font.MeasureText(text, scale)
}

// BeginViewport restricts drawing to rect, in logical units, for 3D
// content. EndViewport restores the 2D state.
func (r *Renderer) BeginViewport(rect Rect) (width, height int) {
	s := r.pixelScale
	x := int32(rect.X * s)
	y := int32((float32(r.screenHeight) - rect.Y - rect.H) * s) // GL origin is bottom-left
	w, h := int32(rect.W*s), int32(rect.H*s)
	gl.Viewport(x, y, w, h)
	gl.Enable(gl.SCISSOR_TEST)
	gl.Scissor(x, y, w, h)
	gl.Clear(gl.DEPTH_BUFFER_BIT)
	return int(w), int(h)
}

// EndViewport restores the full-window 2D state.
func (r *Renderer) EndViewport() {
	r.resetViewport()
	r.set2DState()
}

func orthoMatrix(left, right, bottom, top, near, far float32) [16]float32 {
	return [16]float32{
		2 / (right - left), 0, 0, 0,
		0, 2 / (top - bottom), 0, 0,
		0, 0, -2 / (far - near), 0,
		-(right + left) / (right - left), -(top + bottom) / (top - bottom), -(far + near) / (far - near), 1,
	}
}

func (r *Renderer) createQuadBuffers() {
	corners := []float32{0, 0, 1, 0, 1, 1, 0, 0, 1, 1, 0, 1}

	gl.GenVertexArrays(1, &r.quadVAO)
	gl.BindVertexArray(r.quadVAO)
	gl.GenBuffers(1, &r.quadVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(corners)*4, gl.Ptr(corners), gl.STATIC_DRAW)

	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 2*4, 0)
	gl.EnableVertexAttribArray(0)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (r *Renderer) createTextBuffers() {
	gl.GenVertexArrays(1, &r.textVAO)
	gl.BindVertexArray(r.textVAO)
	gl.GenBuffers(1, &r.textVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.textVBO)

	// pos(2) + texcoord(2) + color(4) = 8 floats
	stride := int32(8 * 4)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 2, gl.FLOAT, false, stride, 2*4)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 4, gl.FLOAT, false, stride, 4*4)
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

const shapeVertexSrc = `
#version 410 core

layout (location = 0) in vec2 aCorner;

uniform mat4 uProjection;
uniform vec4 uRect; // x, y, w, h of the expanded quad
uniform vec4 uUV;

out vec2 vLocal;
out vec2 vUV;

void main() {
	vec2 pos = uRect.xy + aCorner * uRect.zw;
	vLocal = (aCorner - 0.5) * uRect.zw;
	vUV = mix(uUV.xy, uUV.zw, aCorner);
	gl_Position = uProjection * vec4(pos, 0.0, 1.0);
}
`

const shapeFragmentSrc = `
#version 410 core

uniform vec4 uHalf;
uniform float uRadius;
uniform float uFeather;
uniform float uPixel;
uniform vec4 uColor; // premultiplied
uniform int uTextured;
uniform sampler2D uTexture;
uniform float uLodBias;

in vec2 vLocal;
in vec2 vUV;
out vec4 FragColor;

float roundedBox(vec2 p, vec2 b, float r) {
	vec2 q = abs(p) - b + r;
	return length(max(q, 0.0)) + min(max(q.x, q.y), 0.0) - r;
}

void main() {
	float d = roundedBox(vLocal, uHalf.xy, uRadius);
	float edge = max(uFeather, uPixel);
	float cover = 1.0 - smoothstep(-edge * 0.5, edge * 0.5, d);
	if (uFeather > 0.0) {
		cover = 1.0 - smoothstep(-uFeather, uFeather, d);
	}

	vec4 c = uColor;
	if (uTextured == 1) {
		c = texture(uTexture, vUV, uLodBias) * uColor.a;
	}
	FragColor = c * cover;
}
`

const textVertexSrc = `
#version 410 core

layout (location = 0) in vec2 aPos;
layout (location = 1) in vec2 aTexCoord;
layout (location = 2) in vec4 aColor;

uniform mat4 uProjection;

out vec2 vTexCoord;
out vec4 vColor;

void main() {
	gl_Position = uProjection * vec4(aPos, 0.0, 1.0);
	vTexCoord = aTexCoord;
	vColor = aColor;
}
`

const textFragmentSrc = `
#version 410 core

uniform sampler2D uTexture;

in vec2 vTexCoord;
in vec4 vColor;
out vec4 FragColor;

void main() {
	FragColor = vColor * texture(uTexture, vTexCoord).a;
}
`
