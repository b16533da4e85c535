package renderer

import (
	"Jewel3D/internal/logger"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// =============================================================
//
//	Shaders
//
// =============================================================
type Shader struct {
	vertexSource   string
	fragmentSource string
	program        uint32
	uniforms       *UniformCache
	isCompiled     bool
}

func (shader *Shader) Use() {
	gl.UseProgram(shader.program)
}

func (shader *Shader) Compile() {
	vertexShader := GenShader(shader.vertexSource, gl.VERTEX_SHADER)
	fragmentShader := GenShader(shader.fragmentSource, gl.FRAGMENT_SHADER)
	shader.program = GenShaderProgram(vertexShader, fragmentShader)
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)
	shader.uniforms = NewUniformCache(shader.program)
	shader.isCompiled = true
}

func (shader *Shader) Delete() {
	if shader.isCompiled {
		gl.DeleteProgram(shader.program)
		shader.isCompiled = false
	}
}

func (shader *Shader) SetVec3(name string, value mgl32.Vec3) {
	shader.uniforms.SetVec3(name, value.X(), value.Y(), value.Z())
}

func (shader *Shader) SetFloat(name string, value float32) {
	shader.uniforms.SetFloat(name, value)
}

func (shader *Shader) SetInt(name string, value int32) {
	shader.uniforms.SetInt(name, value)
}

func (shader *Shader) SetMat4(name string, value mgl32.Mat4) {
	shader.uniforms.SetMat4(name, value)
}

var pbrVertexShaderSource = `#version 330 core

layout(location = 0) in vec3 inPosition; // Vertex position
layout(location = 1) in vec2 inTexCoord; // Texture Coordinate
layout(location = 2) in vec3 inNormal;   // Vertex normal

uniform mat4 model;
uniform mat4 viewProjection;

out vec2 fragTexCoord;
out vec3 Normal;
out vec3 FragPos;

void main() {
    FragPos = vec3(model * vec4(inPosition, 1.0));
    Normal = mat3(model) * inNormal;
    fragTexCoord = inTexCoord;

    gl_Position = viewProjection * model * vec4(inPosition, 1.0);
}

` + "\x00"

var pbrFragmentShaderSource = `// Fragment Shader
#version 330 core
in vec2 fragTexCoord;
in vec3 Normal;
in vec3 FragPos;

uniform samplerCube envMap;
uniform float envMapMaxLod;
uniform float envMapIntensity;

uniform struct Light {
    vec3 position;
    vec3 color;
    float intensity;
} light;
uniform vec3 viewPos;

uniform vec3 baseColor;
uniform float metallic;
uniform float roughness;
uniform float transmission;
uniform float ior;
uniform float clearcoat;
uniform vec3 attenuationColor;

out vec4 FragColor;

void main() {
    vec3 norm = normalize(Normal);
    vec3 viewDir = normalize(viewPos - FragPos);

    // Environment reflection at a blur level matching surface roughness
    vec3 reflectDir = reflect(-viewDir, norm);
    vec3 envReflect = textureLod(envMap, reflectDir, roughness * envMapMaxLod).rgb;

    // Fresnel (Schlick) with IOR-derived F0
    float f0 = pow((ior - 1.0) / (ior + 1.0), 2.0);
    float fresnel = f0 + (1.0 - f0) * pow(1.0 - max(dot(norm, viewDir), 0.0), 5.0);

    // Key light (simple Blinn-Phong on top of the IBL)
    vec3 lightDir = normalize(light.position - FragPos);
    float diff = max(dot(norm, lightDir), 0.0);
    vec3 halfway = normalize(lightDir + viewDir);
    float spec = pow(max(dot(norm, halfway), 0.0), 64.0);

    vec3 color;
    if (transmission > 0.0) {
        // Refractive path: sample the environment through the surface
        vec3 refractDir = refract(-viewDir, norm, 1.0 / ior);
        vec3 envRefract = textureLod(envMap, refractDir, 0.0).rgb * attenuationColor;
        vec3 reflected = envReflect * envMapIntensity;
        color = mix(envRefract, reflected, fresnel) * baseColor;
        color += light.color * spec * light.intensity;
        if (clearcoat > 0.0) {
            color += envReflect * clearcoat * fresnel;
        }
    } else {
        // Metallic path: tinted environment reflection plus key light
        vec3 ambient = envReflect * envMapIntensity * mix(vec3(0.04), baseColor, metallic);
        vec3 diffuse = diff * light.color * baseColor * (1.0 - metallic);
        vec3 specular = spec * light.color * mix(vec3(0.04), baseColor, metallic);
        color = ambient + (diffuse + specular) * light.intensity;
    }

    FragColor = vec4(color, 1.0);
}
` + "\x00"

func InitPBRShader() Shader {
	return Shader{
		vertexSource:   pbrVertexShaderSource,
		fragmentSource: pbrFragmentShaderSource,
	}
}

func GenShader(source string, shaderType uint32) uint32 {
	shader := gl.CreateShader(shaderType)
	cSources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, cSources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))

		logger.Log.Error("Failed to compile", zap.Uint32("shader type:", shaderType), zap.String("log", log))
	}

	return shader
}

func GenShaderProgram(vertexShader, fragmentShader uint32) uint32 {
	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))

		logger.Log.Error("Failed to link shader program", zap.String("log", log))
	}

	return program
}
