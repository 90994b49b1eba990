package schemagen

// Artifact is one file written by a generation.
type Artifact struct {
	Name string // Java type name or XML file name
	Path string
}

// Result is the outcome of Engine.Generate. Warnings describe problems that did
// not stop the generator, such as a table that does not exist; in that case no
// artifacts are produced and Err stays nil.
type Result struct {
	Table      string
	DomainName string
	Models     []Artifact
	Clients    []Artifact
	SQLMaps    []Artifact
	Warnings   []string
	Err        error
}

// Complete reports whether the run produced a model and at least one
// data-access artifact.
func (r *Result) Complete() bool {
	return len(r.Models) > 0 && len(r.Clients)+len(r.SQLMaps) > 0
}

// Artifacts returns every artifact in write order.
func (r *Result) Artifacts() []Artifact {
	all := make([]Artifact, 0, len(r.Models)+len(r.Clients)+len(r.SQLMaps))
	all = append(all, r.Models...)
	all = append(all, r.Clients...)
	return append(all, r.SQLMaps...)
}

func (r *Result) warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
}
