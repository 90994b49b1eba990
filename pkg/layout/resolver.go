// Package layout computes where generated files go inside the target project.
// Nothing here touches the filesystem.
package layout

import (
	"path/filepath"
	"strings"

	"github.com/ekaya-inc/ekaya-scaffold/pkg/models"
)

// Module identifiers used in split-module projects ("{artifactId}-{module}").
const (
	ModuleWeb     = "web"
	ModuleCore    = "core"
	ModuleService = "service"
	ModuleDAO     = "dao"
)

// Source roots inside a module.
const (
	JavaPath      = "src/main/java"
	ResourcesPath = "src/main/resources"
)

// Resolver maps a module to its project root.
type Resolver struct {
	SplitModule bool
}

// NewResolver returns a Resolver for the given module-split setting.
func NewResolver(splitModule bool) *Resolver {
	return &Resolver{SplitModule: splitModule}
}

// Resolve returns the root directory of module. With split modules off, every
// module shares detail.ProjectPath.
func (r *Resolver) Resolve(detail *models.CodeDefinitionDetail, module string) string {
	if !r.SplitModule {
		return detail.ProjectPath
	}
	return detail.ProjectPath + "/" + detail.ArtifactID + "-" + module
}

// JavaRoot returns the Java source root under a module root.
func JavaRoot(root string) string {
	return filepath.Join(root, JavaPath)
}

// ResourcesRoot returns the resources root under a module root.
func ResourcesRoot(root string) string {
	return filepath.Join(root, ResourcesPath)
}

// PackageDir converts "com.acme.web" to "com/acme/web" under base.
func PackageDir(base, pkg string) string {
	return filepath.Join(base, filepath.FromSlash(strings.ReplaceAll(pkg, ".", "/")))
}

// JavaFile returns the path of a Java source file in pkg under a module root.
func JavaFile(root, pkg, fileName string) string {
	return filepath.Join(PackageDir(JavaRoot(root), pkg), fileName)
}

// ResourceFile returns the path of a resource file under a module root.
func ResourceFile(root, fileName string) string {
	return filepath.Join(ResourcesRoot(root), fileName)
}
