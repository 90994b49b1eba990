package render

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-scaffold/pkg/apperrors"
	"github.com/ekaya-inc/ekaya-scaffold/pkg/bindings"
)

func layerBindings() bindings.Bindings {
	return bindings.Bindings{
		"author":              "alice",
		"date":                "2026/03/09",
		"baseRequestMapping":  "/user-detail",
		"modelNameUpperCamel": "UserDetail",
		"modelNameLowerCamel": "userDetail",
		"basePackage":         "com.acme.shop",
		"servicePackage":      "com.acme.shop.service",
		"serviceImplPackage":  "com.acme.shop.service.impl",
		"controllerPackage":   "com.acme.shop.web",
		"modulePackage":       "com.acme.shop.model",
		"mapperPackage":       "com.acme.shop.dao",
		"tableName":           "t_user_detail",
	}
}

func newTestRenderer(t *testing.T, overwrite bool) *Renderer {
	t.Helper()
	templates, err := DefaultTemplates("")
	require.NoError(t, err)
	return NewRenderer(templates, overwrite, zap.NewNop())
}

func TestRender_Controller(t *testing.T) {
	r := newTestRenderer(t, true)
	target := filepath.Join(t.TempDir(), "deep", "nested", "UserDetailController.java")

	require.NoError(t, r.Render(layerBindings(), target, TemplateController))

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(content), "package com.acme.shop.web;")
	assert.Contains(t, string(content), `@RequestMapping("/user-detail")`)
	assert.Contains(t, string(content), "public class UserDetailController")
	assert.Contains(t, string(content), "private UserDetailService userDetailService;")
}

func TestRender_AllLayerTemplates(t *testing.T) {
	r := newTestRenderer(t, true)
	dir := t.TempDir()

	for _, id := range []string{TemplateController, TemplateService, TemplateServiceImpl} {
		t.Run(id, func(t *testing.T) {
			require.NoError(t, r.Render(layerBindings(), filepath.Join(dir, id+".java"), id))
		})
	}
}

func TestRender_ConfigTemplates(t *testing.T) {
	r := newTestRenderer(t, true)
	dir := t.TempDir()
	b := bindings.Bindings{
		"driver_class":         "com.mysql.cj.jdbc.Driver",
		"url":                  "jdbc:mysql://localhost:3306/shop",
		"username":             "root",
		"password":             "secret",
		"coreMapperPath":       "com.acme.shop.core.Mapper",
		"type_aliases_package": "com.acme.shop.model",
		"author":               "alice",
		"date":                 "2026/03/09",
		"basePackage":          "com.acme.shop",
		"corePackage":          "com.acme.shop.core",
		"mapperPackage":        "com.acme.shop.dao",
	}

	dev := filepath.Join(dir, "application-dev.yml")
	require.NoError(t, r.Render(b, dev, TemplateApplicationDev))
	content, err := os.ReadFile(dev)
	require.NoError(t, err)
	assert.Contains(t, string(content), "url: jdbc:mysql://localhost:3306/shop")
	assert.Contains(t, string(content), `password: "secret"`)

	mainCfg := filepath.Join(dir, "application.yml")
	require.NoError(t, r.Render(b, mainCfg, TemplateApplication))
	content, err = os.ReadFile(mainCfg)
	require.NoError(t, err)
	assert.Contains(t, string(content), "type-aliases-package: com.acme.shop.model")
	assert.Contains(t, string(content), "mappers: com.acme.shop.core.Mapper")

	configurator := filepath.Join(dir, "MybatisConfigurator.java")
	require.NoError(t, r.Render(b, configurator, TemplateMybatisConfigurator))
	content, err = os.ReadFile(configurator)
	require.NoError(t, err)
	assert.Contains(t, string(content), "package com.acme.shop.core;")
	assert.Contains(t, string(content), `configurer.setBasePackage("com.acme.shop.dao");`)
}

func TestRender_TwiceIsByteIdentical(t *testing.T) {
	r := newTestRenderer(t, true)
	target := filepath.Join(t.TempDir(), "UserDetailService.java")

	require.NoError(t, r.Render(layerBindings(), target, TemplateService))
	first, err := os.ReadFile(target)
	require.NoError(t, err)

	require.NoError(t, r.Render(layerBindings(), target, TemplateService))
	second, err := os.ReadFile(target)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRender_OverwritesExistingFile(t *testing.T) {
	r := newTestRenderer(t, true)
	target := filepath.Join(t.TempDir(), "UserDetailService.java")
	require.NoError(t, os.WriteFile(target, []byte("stale content that is much longer than nothing"), 0o644))

	require.NoError(t, r.Render(layerBindings(), target, TemplateService))

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "stale content")
}

func TestRender_NoOverwrite(t *testing.T) {
	r := newTestRenderer(t, false)
	target := filepath.Join(t.TempDir(), "UserDetailService.java")
	require.NoError(t, os.WriteFile(target, []byte("hand edited"), 0o644))

	err := r.Render(layerBindings(), target, TemplateService)

	require.ErrorIs(t, err, apperrors.ErrRender)
	require.ErrorIs(t, err, apperrors.ErrTargetExists)
	content, readErr := os.ReadFile(target)
	require.NoError(t, readErr)
	assert.Equal(t, "hand edited", string(content))
}

func TestRender_UnknownTemplate(t *testing.T) {
	r := newTestRenderer(t, true)
	target := filepath.Join(t.TempDir(), "x.java")

	err := r.Render(layerBindings(), target, "does-not-exist")

	require.ErrorIs(t, err, apperrors.ErrRender)
	var renderErr *apperrors.RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, "does-not-exist", renderErr.TemplateID)
	assert.Equal(t, target, renderErr.TargetFile)
	assert.NoFileExists(t, target)
}

func TestRender_MissingBinding(t *testing.T) {
	r := newTestRenderer(t, true)
	b := layerBindings()
	delete(b, "modelNameUpperCamel")

	err := r.Render(b, filepath.Join(t.TempDir(), "x.java"), TemplateController)

	assert.ErrorIs(t, err, apperrors.ErrRender)
}

func TestRender_ParentIsAFile(t *testing.T) {
	r := newTestRenderer(t, true)
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	err := r.Render(layerBindings(), filepath.Join(blocker, "x.java"), TemplateService)

	assert.ErrorIs(t, err, apperrors.ErrRender)
}

func TestDefaultTemplates_OverrideDirShadowsBuiltin(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "service.tmpl"),
		[]byte("custom {{ .modelNameUpperCamel | lower }}"), 0o644))

	templates, err := DefaultTemplates(dir)
	require.NoError(t, err)
	r := NewRenderer(templates, true, zap.NewNop())
	out := t.TempDir()

	require.NoError(t, r.Render(layerBindings(), filepath.Join(out, "s.java"), TemplateService))
	content, err := os.ReadFile(filepath.Join(out, "s.java"))
	require.NoError(t, err)
	assert.Equal(t, "custom userdetail", string(content))

	// Ids without an override still come from the built-in set.
	require.NoError(t, r.Render(layerBindings(), filepath.Join(out, "c.java"), TemplateController))
}

func TestDefaultTemplates_MissingOverrideDir(t *testing.T) {
	_, err := DefaultTemplates(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestTemplateSet_CachesParsedTemplate(t *testing.T) {
	set := NewTemplateSet(fstest.MapFS{
		"hello.tmpl": &fstest.MapFile{Data: []byte("hello {{ .name }}")},
	})

	first, err := set.Lookup("hello")
	require.NoError(t, err)
	second, err := set.Lookup("hello")
	require.NoError(t, err)
	assert.Same(t, first, second)

	_, err = set.Lookup("bad")
	assert.Error(t, err)
}

func TestTemplateSet_ParseError(t *testing.T) {
	set := NewTemplateSet(fstest.MapFS{
		"broken.tmpl": &fstest.MapFile{Data: []byte("{{ .name ")},
	})

	_, err := set.Lookup("broken")
	assert.Error(t, err)
}
