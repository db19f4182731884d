// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package egl

// Core EGL values.
const (
	False Int = 0
	True  Int = 1

	None Int = 0x3038

	AlphaSize      Int = 0x3021
	BlueSize       Int = 0x3022
	GreenSize      Int = 0x3023
	RedSize        Int = 0x3024
	DepthSize      Int = 0x3025
	StencilSize    Int = 0x3026
	SurfaceType    Int = 0x3033
	RenderableType Int = 0x3040

	PbufferBit   Int = 0x0001
	WindowBit    Int = 0x0004
	OpenGLES2Bit Int = 0x0004
	OpenGLES3Bit Int = 0x0040

	Height        Int = 0x3056
	Width         Int = 0x3057
	Draw          Int = 0x3059
	Read          Int = 0x305A
	TextureRGBA   Int = 0x305E
	Texture2D     Int = 0x305F
	TextureFormat Int = 0x3080
	TextureTarget Int = 0x3081
	BackBuffer    Int = 0x3084

	ContextClientVersion Int = 0x3098
)

// ANGLE and EXT extension values.
const (
	PlatformANGLE   Enum = 0x3202
	D3DTextureANGLE Enum = 0x33A3

	FixedSizeANGLE                   Int = 0x3201
	PlatformANGLEType                Int = 0x3203
	PlatformANGLEMaxVersionMajor     Int = 0x3204
	PlatformANGLEMaxVersionMinor     Int = 0x3205
	PlatformANGLETypeDefault         Int = 0x3206
	PlatformANGLETypeD3D9            Int = 0x3207
	PlatformANGLETypeD3D11           Int = 0x3208
	PlatformANGLEDeviceType          Int = 0x3209
	PlatformANGLEDeviceTypeHardware  Int = 0x320A
	PlatformANGLEDeviceTypeD3DWARP   Int = 0x320B
	PlatformANGLEEnableAutomaticTrim Int = 0x320F

	DeviceEXTAttrib             Int = 0x322C
	D3D11DeviceANGLE            Int = 0x33A1
	ExperimentalPresentPath     Int = 0x33A4
	ExperimentalPresentPathFast Int = 0x33A9
)
