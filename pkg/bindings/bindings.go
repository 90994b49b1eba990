// Package bindings assembles the values substituted into templates.
package bindings

import (
	"fmt"

	"github.com/ekaya-inc/ekaya-scaffold/pkg/apperrors"
	"github.com/ekaya-inc/ekaya-scaffold/pkg/models"
	"github.com/ekaya-inc/ekaya-scaffold/pkg/naming"
)

// Binding names shared with the templates.
const (
	KeyDriverClass        = "driver_class"
	KeyURL                = "url"
	KeyUsername           = "username"
	KeyPassword           = "password"
	KeyCoreMapperPath     = "coreMapperPath"
	KeyTypeAliasesPackage = "type_aliases_package"
	KeyAuthor             = "author"
	KeyDate               = "date"
	KeyBasePackage        = "basePackage"
	KeyCorePackage        = "corePackage"
	KeyMapperPackage      = "mapperPackage"

	KeyBaseRequestMapping  = "baseRequestMapping"
	KeyModelNameUpperCamel = "modelNameUpperCamel"
	KeyModelNameLowerCamel = "modelNameLowerCamel"
	KeyServicePackage      = "servicePackage"
	KeyServiceImplPackage  = "serviceImplPackage"
	KeyControllerPackage   = "controllerPackage"
	KeyModulePackage       = "modulePackage"
	KeyTableName           = "tableName"
)

// Bindings maps a binding name to its value. Every call builds a fresh map.
type Bindings map[string]any

// BuildConfig returns the bindings for the environment configuration templates.
func BuildConfig(detail *models.CodeDefinitionDetail, db *models.DBDefinition) (Bindings, error) {
	if db == nil {
		return nil, fmt.Errorf("build config bindings: %w", apperrors.ErrMissingDatabaseDefinition)
	}
	return Bindings{
		KeyDriverClass:        db.DriverClass,
		KeyURL:                db.URL,
		KeyUsername:           db.Username,
		KeyPassword:           db.Password,
		KeyCoreMapperPath:     detail.MapperInterfaceReference,
		KeyTypeAliasesPackage: detail.ModulePackage,
		KeyAuthor:             detail.Author,
		KeyDate:               detail.Date,
		KeyBasePackage:        detail.BasePackage,
		KeyCorePackage:        detail.CorePackage,
		KeyMapperPackage:      detail.MapperPackage,
	}, nil
}

// BuildLayer returns the bindings for the controller and service templates of
// one table. modelUpper must already be the effective model name.
func BuildLayer(modelUpper, table string, detail *models.CodeDefinitionDetail) (Bindings, error) {
	if modelUpper == "" {
		return nil, fmt.Errorf("build layer bindings for %q: %w: empty model name", table, apperrors.ErrInvalidIdentifier)
	}
	return Bindings{
		KeyAuthor:              detail.Author,
		KeyDate:                detail.Date,
		KeyBaseRequestMapping:  naming.ModelToMappingPath(modelUpper),
		KeyModelNameUpperCamel: modelUpper,
		KeyModelNameLowerCamel: naming.LowerFirst(modelUpper),
		KeyBasePackage:         detail.BasePackage,
		KeyServicePackage:      detail.ServicePackage,
		KeyServiceImplPackage:  detail.ServiceImplPackage,
		KeyControllerPackage:   detail.ControllerPackage,
		KeyModulePackage:       detail.ModulePackage,
		KeyMapperPackage:       detail.MapperPackage,
		KeyTableName:           table,
	}, nil
}
