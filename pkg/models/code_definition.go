// Package models contains domain types for ekaya-scaffold.
package models

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the format of the generation date handed to templates.
const DateLayout = "2006/01/02"

// CodeDefinition is the user-facing description of what to scaffold.
type CodeDefinition struct {
	GroupID     string `json:"group_id" yaml:"group_id"`
	ArtifactID  string `json:"artifact_id" yaml:"artifact_id"`
	Author      string `json:"author" yaml:"author"`
	BasePackage string `json:"base_package" yaml:"base_package"`

	// TableList is processed in order; the first failing table stops the run.
	TableList []string `json:"table_list" yaml:"table_list"`

	// ModelNames optionally overrides the derived model name per table,
	// e.g. {"t_user_detail": "User"}.
	ModelNames map[string]string `json:"model_names,omitempty" yaml:"model_names,omitempty"`
}

// CodeDefinitionDetail is the fully resolved input of one generation run.
// It is built once per invocation and treated as read-only afterwards.
type CodeDefinitionDetail struct {
	ProjectPath string `json:"project_path" yaml:"project_path"`
	CodeDefinition

	CorePackage              string `json:"core_package" yaml:"core_package"`
	ServicePackage           string `json:"service_package" yaml:"service_package"`
	ServiceImplPackage       string `json:"service_impl_package" yaml:"service_impl_package"`
	ControllerPackage        string `json:"controller_package" yaml:"controller_package"`
	MapperPackage            string `json:"mapper_package" yaml:"mapper_package"`
	ModulePackage            string `json:"module_package" yaml:"module_package"`
	MapperInterfaceReference string `json:"mapper_interface_reference" yaml:"mapper_interface_reference"`

	// Date is fixed when the detail is built so every file of a run shares it.
	Date string `json:"date" yaml:"date"`
}

// NewCodeDefinitionDetail builds a detail for def rooted at projectPath.
// Packages left empty in overrides are derived from def.BasePackage using the
// conventional layer suffixes.
func NewCodeDefinitionDetail(projectPath string, def CodeDefinition, overrides CodeDefinitionDetail, now time.Time) *CodeDefinitionDetail {
	base := def.BasePackage
	detail := &CodeDefinitionDetail{
		ProjectPath:              projectPath,
		CodeDefinition:           def,
		CorePackage:              firstNonEmpty(overrides.CorePackage, join(base, "core")),
		ServicePackage:           firstNonEmpty(overrides.ServicePackage, join(base, "service")),
		ServiceImplPackage:       firstNonEmpty(overrides.ServiceImplPackage, join(base, "service.impl")),
		ControllerPackage:        firstNonEmpty(overrides.ControllerPackage, join(base, "web")),
		MapperPackage:            firstNonEmpty(overrides.MapperPackage, join(base, "dao")),
		ModulePackage:            firstNonEmpty(overrides.ModulePackage, join(base, "model")),
		MapperInterfaceReference: firstNonEmpty(overrides.MapperInterfaceReference, join(base, "core.Mapper")),
		Date:                     firstNonEmpty(overrides.Date, now.Format(DateLayout)),
	}
	return detail
}

// ModelNameFor returns the explicit model name configured for table, or "".
func (d *CodeDefinitionDetail) ModelNameFor(table string) string {
	if d.ModelNames == nil {
		return ""
	}
	return d.ModelNames[table]
}

func join(base, suffix string) string {
	if base == "" {
		return suffix
	}
	return base + "." + suffix
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// PackageOverrides optionally replaces conventional layer packages.
type PackageOverrides struct {
	CorePackage              string `json:"core_package,omitempty" yaml:"core_package,omitempty"`
	ServicePackage           string `json:"service_package,omitempty" yaml:"service_package,omitempty"`
	ServiceImplPackage       string `json:"service_impl_package,omitempty" yaml:"service_impl_package,omitempty"`
	ControllerPackage        string `json:"controller_package,omitempty" yaml:"controller_package,omitempty"`
	MapperPackage            string `json:"mapper_package,omitempty" yaml:"mapper_package,omitempty"`
	ModulePackage            string `json:"module_package,omitempty" yaml:"module_package,omitempty"`
	MapperInterfaceReference string `json:"mapper_interface_reference,omitempty" yaml:"mapper_interface_reference,omitempty"`
}

// CodeDefinitionRequest is what a client submits to start a run.
type CodeDefinitionRequest struct {
	ProjectPath      string `json:"project_path" yaml:"project_path"`
	CodeDefinition   `yaml:",inline"`
	PackageOverrides `yaml:",inline"`
}

// Validate checks the fields every run needs.
func (r *CodeDefinitionRequest) Validate() error {
	var errs []error
	if strings.TrimSpace(r.ProjectPath) == "" {
		errs = append(errs, errors.New("project_path is required"))
	}
	if strings.TrimSpace(r.BasePackage) == "" {
		errs = append(errs, errors.New("base_package is required"))
	}
	if strings.TrimSpace(r.ArtifactID) == "" {
		errs = append(errs, errors.New("artifact_id is required"))
	}
	return errors.Join(errs...)
}

// ValidateFor checks the fields phase needs: everything Validate checks plus a
// non-empty table_list for every phase that generates code.
func (r *CodeDefinitionRequest) ValidateFor(phase string) error {
	err := r.Validate()
	if phase != PhaseConfig && len(r.TableList) == 0 {
		err = errors.Join(err, errors.New("table_list is required"))
	}
	return err
}

// Detail resolves the request into the detail of one run started at now.
func (r *CodeDefinitionRequest) Detail(now time.Time) *CodeDefinitionDetail {
	return NewCodeDefinitionDetail(r.ProjectPath, r.CodeDefinition, CodeDefinitionDetail{
		CorePackage:              r.CorePackage,
		ServicePackage:           r.ServicePackage,
		ServiceImplPackage:       r.ServiceImplPackage,
		ControllerPackage:        r.ControllerPackage,
		MapperPackage:            r.MapperPackage,
		ModulePackage:            r.ModulePackage,
		MapperInterfaceReference: r.MapperInterfaceReference,
	}, now)
}
