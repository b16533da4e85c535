package renderer

import (
	"Jewel3D/internal/logger"
	"fmt"
	"image"
	"image/draw"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// OpenGLDevice is the GL-backed implementation of Device. It tracks every
// handle it hands out so Cleanup can reclaim stragglers and stats stay honest.
type OpenGLDevice struct {
	defaultShader Shader
	textures      map[uint32]bool
	renderTargets map[uint32]uint32 // FBO -> attached depth renderbuffer
	cubemaps      map[uint32]bool
	stats         DeviceStats
}

func NewOpenGLDevice() *OpenGLDevice {
	return &OpenGLDevice{
		textures:      make(map[uint32]bool),
		renderTargets: make(map[uint32]uint32),
		cubemaps:      make(map[uint32]bool),
	}
}

func (dev *OpenGLDevice) Init(width, height int32, _ *glfw.Window) error {
	if err := gl.Init(); err != nil {
		logger.Log.Error("OpenGL initialization failed", zap.Error(err))
		return err
	}

	if Debug {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	}
	gl.Viewport(0, 0, width, height)
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.TEXTURE_CUBE_MAP_SEAMLESS)

	dev.defaultShader = InitPBRShader()
	dev.defaultShader.Compile()

	logger.Log.Info("OpenGL device initialized",
		zap.Int32("width", width), zap.Int32("height", height))
	return nil
}

func (dev *OpenGLDevice) CreateTextureFromImage(img image.Image) (uint32, error) {
	rgba, ok := img.(*image.RGBA)
	if !ok {
		// Convert to *image.RGBA if necessary
		b := img.Bounds()
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}
	if rgba.Stride != rgba.Rect.Size().X*4 {
		return 0, fmt.Errorf("unsupported stride")
	}

	var textureID uint32
	gl.GenTextures(1, &textureID)
	gl.BindTexture(gl.TEXTURE_2D, textureID)
	gl.TexImage2D(
		gl.TEXTURE_2D, 0, gl.RGBA,
		int32(rgba.Rect.Size().X), int32(rgba.Rect.Size().Y),
		0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)

	dev.textures[textureID] = true
	dev.stats.TexturesCreated++
	return textureID, nil
}

// CreateCubemap uploads a prefiltered cube mip chain as a float cubemap.
// levels[0] is the sharpest mip; each successive level encodes a rougher
// convolution at half the edge size.
func (dev *OpenGLDevice) CreateCubemap(levels []CubeLevel) (uint32, error) {
	if len(levels) == 0 {
		return 0, fmt.Errorf("cubemap needs at least one mip level")
	}

	var textureID uint32
	gl.GenTextures(1, &textureID)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, textureID)

	for mip, level := range levels {
		for face := 0; face < 6; face++ {
			gl.TexImage2D(
				uint32(gl.TEXTURE_CUBE_MAP_POSITIVE_X+face), int32(mip), gl.RGB32F,
				int32(level.Size), int32(level.Size),
				0, gl.RGB, gl.FLOAT, gl.Ptr(level.Faces[face]))
		}
	}

	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_BASE_LEVEL, 0)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAX_LEVEL, int32(len(levels)-1))

	dev.cubemaps[textureID] = true
	dev.stats.TexturesCreated++

	logger.Log.Info("Cubemap uploaded",
		zap.Uint32("textureID", textureID),
		zap.Int("mips", len(levels)),
		zap.Int("baseSize", levels[0].Size))
	return textureID, nil
}

func (dev *OpenGLDevice) DeleteTexture(id uint32) {
	if id == 0 {
		return
	}
	if !dev.textures[id] && !dev.cubemaps[id] {
		logger.Log.Warn("Attempted to delete unknown texture", zap.Uint32("textureID", id))
		return
	}
	gl.DeleteTextures(1, &id)
	delete(dev.textures, id)
	delete(dev.cubemaps, id)
	dev.stats.TexturesDeleted++
}

func (dev *OpenGLDevice) CreateRenderTarget(width, height int32) (uint32, error) {
	var fbo uint32
	gl.GenFramebuffers(1, &fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)

	var depth uint32
	gl.GenRenderbuffers(1, &depth)
	gl.BindRenderbuffer(gl.RENDERBUFFER, depth)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, width, height)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, depth)

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	dev.renderTargets[fbo] = depth
	dev.stats.RenderTargetsCreated++
	return fbo, nil
}

func (dev *OpenGLDevice) DeleteRenderTarget(id uint32) {
	if id == 0 {
		return
	}
	depth, exists := dev.renderTargets[id]
	if !exists {
		logger.Log.Warn("Attempted to delete unknown render target", zap.Uint32("fbo", id))
		return
	}
	gl.DeleteRenderbuffers(1, &depth)
	gl.DeleteFramebuffers(1, &id)
	delete(dev.renderTargets, id)
	dev.stats.RenderTargetsDeleted++
}

func (dev *OpenGLDevice) UploadMesh(mesh *Mesh) error {
	if mesh.Uploaded() {
		return nil
	}

	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.InterleavedData)*4, gl.Ptr(mesh.InterleavedData), gl.STATIC_DRAW)

	var ebo uint32
	gl.GenBuffers(1, &ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Faces)*4, gl.Ptr(mesh.Faces), gl.STATIC_DRAW)

	stride := int32(8 * 4)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)

	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)

	gl.VertexAttribPointer(2, 3, gl.FLOAT, false, stride, gl.PtrOffset(5*4))
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)

	mesh.VAO = vao
	mesh.VBO = vbo
	mesh.EBO = ebo
	mesh.MarkUploaded()
	dev.stats.MeshesUploaded++
	return nil
}

func (dev *OpenGLDevice) DeleteMesh(mesh *Mesh) {
	if mesh == nil || !mesh.Uploaded() {
		return
	}
	gl.DeleteVertexArrays(1, &mesh.VAO)
	gl.DeleteBuffers(1, &mesh.VBO)
	gl.DeleteBuffers(1, &mesh.EBO)
	mesh.VAO, mesh.VBO, mesh.EBO = 0, 0, 0
	dev.stats.MeshesDeleted++
}

// Draw renders the materialized hierarchy with the default PBR shader.
func (dev *OpenGLDevice) Draw(camera *Camera, root *Node, light *Light) {
	gl.ClearColor(ClearColorR, ClearColorG, ClearColorB, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if root == nil {
		return
	}

	shader := &dev.defaultShader
	shader.Use()

	viewProjection := camera.GetProjectionMatrix().Mul4(camera.GetViewMatrix())
	shader.SetMat4("viewProjection", viewProjection)
	shader.SetVec3("viewPos", camera.Position())
	if light != nil {
		shader.SetVec3("light.position", light.Position)
		shader.SetVec3("light.color", light.Color)
		shader.SetFloat("light.intensity", light.Intensity)
	}

	root.Walk(func(node *Node) bool {
		if node.Mesh == nil || node.Material == nil {
			return true
		}
		if !node.Mesh.Uploaded() {
			if err := dev.UploadMesh(node.Mesh); err != nil {
				return true
			}
		}

		mat := node.Material
		shader.SetMat4("model", node.ModelMatrix)
		shader.SetVec3("baseColor", vec3(mat.BaseColor))
		shader.SetFloat("metallic", mat.Metallic)
		shader.SetFloat("roughness", mat.Roughness)
		shader.SetFloat("transmission", mat.Transmission)
		shader.SetFloat("ior", mat.IOR)
		shader.SetFloat("clearcoat", mat.Clearcoat)
		shader.SetVec3("attenuationColor", vec3(mat.AttenuationColor))
		shader.SetFloat("envMapIntensity", mat.EnvMapIntensity)

		if mat.EnvMap != nil && !mat.EnvMap.Disposed() {
			gl.ActiveTexture(gl.TEXTURE0)
			gl.BindTexture(gl.TEXTURE_CUBE_MAP, mat.EnvMap.Texture())
			shader.SetInt("envMap", 0)
			shader.SetFloat("envMapMaxLod", float32(mat.EnvMap.Levels()-1))
		}

		gl.BindVertexArray(node.Mesh.VAO)
		gl.DrawElements(gl.TRIANGLES, int32(len(node.Mesh.Faces)), gl.UNSIGNED_INT, gl.PtrOffset(0))
		gl.BindVertexArray(0)
		return true
	})
}

func (dev *OpenGLDevice) UpdateViewport(width, height int32) {
	gl.Viewport(0, 0, width, height)
}

func (dev *OpenGLDevice) Stats() DeviceStats {
	return dev.stats
}

// Cleanup reclaims every live handle. Anything still alive here is a leak
// upstream, so it gets logged.
func (dev *OpenGLDevice) Cleanup() {
	leaked := len(dev.textures) + len(dev.cubemaps) + len(dev.renderTargets)
	if leaked > 0 {
		logger.Log.Warn("Device cleanup reclaiming leaked handles", zap.Int("count", leaked))
	}
	for id := range dev.textures {
		gl.DeleteTextures(1, &id)
		dev.stats.TexturesDeleted++
	}
	for id := range dev.cubemaps {
		gl.DeleteTextures(1, &id)
		dev.stats.TexturesDeleted++
	}
	for fbo, depth := range dev.renderTargets {
		gl.DeleteRenderbuffers(1, &depth)
		gl.DeleteFramebuffers(1, &fbo)
		dev.stats.RenderTargetsDeleted++
	}
	dev.textures = make(map[uint32]bool)
	dev.cubemaps = make(map[uint32]bool)
	dev.renderTargets = make(map[uint32]uint32)
	dev.defaultShader.Delete()
	logger.Log.Info("OpenGL device cleaned up")
}

func vec3(c [3]float32) mgl32.Vec3 {
	return mgl32.Vec3{c[0], c[1], c[2]}
}
