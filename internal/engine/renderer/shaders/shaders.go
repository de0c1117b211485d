// Package shaders holds the GLSL sources used by the renderer.
package shaders

// Vertex attribute locations shared by every program.
const (
	AttribPosition = 0
	AttribNormal   = 1
	AttribColor    = 2
	AttribOffset   = 3 // Per-instance translation
)

// LitVertexShader transforms instanced geometry and forwards light-space
// positions for shadow lookup.
const LitVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPosition;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec4 aColor;
layout (location = 3) in vec3 aOffset;

uniform mat4 uViewProj;
uniform mat4 uLightViewProj;

out vec3 vWorldPos;
out vec3 vNormal;
out vec4 vColor;
out vec4 vLightSpacePos;

void main() {
    vec3 world = aPosition + aOffset;
    vWorldPos = world;
    vNormal = aNormal;
    vColor = aColor;
    vLightSpacePos = uLightViewProj * vec4(world, 1.0);
    gl_Position = uViewProj * vec4(world, 1.0);
}
`

// LitFragmentShader applies ambient, sun with 3x3 PCF shadows, point
// lights and linear fog.
const LitFragmentShader = `
#version 410 core

#define MAX_POINT_LIGHTS 8

in vec3 vWorldPos;
in vec3 vNormal;
in vec4 vColor;
in vec4 vLightSpacePos;

uniform vec3 uAmbient;
uniform vec3 uSunDir;
uniform vec3 uSunColor;

uniform bool uShadowsEnabled;
uniform bool uReceiveShadow;
uniform sampler2DShadow uShadowMap;
uniform float uShadowTexel;

uniform int uPointLightCount;
uniform vec3 uPointLightPositions[MAX_POINT_LIGHTS];
uniform vec3 uPointLightColors[MAX_POINT_LIGHTS];
uniform float uPointLightRanges[MAX_POINT_LIGHTS];
uniform float uPointLightIntensities[MAX_POINT_LIGHTS];

uniform vec3 uCameraPos;
uniform vec3 uFogColor;
uniform float uFogNear;
uniform float uFogFar;

out vec4 FragColor;

float shadowFactor(vec3 n) {
    vec3 p = vLightSpacePos.xyz / vLightSpacePos.w * 0.5 + 0.5;
    if (p.z > 1.0) {
        return 1.0;
    }
    float bias = max(0.002 * (1.0 - dot(n, uSunDir)), 0.0005);
    float lit = 0.0;
    for (int x = -1; x <= 1; x++) {
        for (int y = -1; y <= 1; y++) {
            lit += texture(uShadowMap, vec3(p.xy + vec2(x, y) * uShadowTexel, p.z - bias));
        }
    }
    return lit / 9.0;
}

void main() {
    vec3 n = normalize(vNormal);

    float diffuse = max(dot(n, uSunDir), 0.0);
    float shadow = (uShadowsEnabled && uReceiveShadow) ? shadowFactor(n) : 1.0;
    vec3 light = uAmbient + uSunColor * diffuse * shadow;

    for (int i = 0; i < uPointLightCount; i++) {
        vec3 toLight = uPointLightPositions[i] - vWorldPos;
        float dist = length(toLight);
        float falloff = clamp(1.0 - dist / uPointLightRanges[i], 0.0, 1.0);
        float facing = max(dot(n, toLight / max(dist, 0.0001)), 0.0);
        light += uPointLightColors[i] * uPointLightIntensities[i] * falloff * falloff * facing;
    }

    vec3 color = vColor.rgb * light;
    float fog = clamp((length(vWorldPos - uCameraPos) - uFogNear) / (uFogFar - uFogNear), 0.0, 1.0);
    FragColor = vec4(mix(color, uFogColor, fog), vColor.a);
}
`

// DepthVertexShader renders instanced geometry into the shadow map.
const DepthVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPosition;
layout (location = 3) in vec3 aOffset;

uniform mat4 uLightViewProj;

void main() {
    gl_Position = uLightViewProj * vec4(aPosition + aOffset, 1.0);
}
`

// DepthFragmentShader writes depth only.
const DepthFragmentShader = `
#version 410 core

void main() {
}
`
