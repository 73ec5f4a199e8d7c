package driver

import (
	"context"
	"fmt"

	"orbit/internal/diag"
	"orbit/internal/phase"
	"orbit/internal/session"
	"orbit/internal/trace"
)

// Importer resolves every pragma addressed to it as a module name.
type Importer struct {
	phase.Base
}

func NewImporter(sess *session.Session, id string) *Importer {
	return &Importer{Base: phase.NewBase(sess, id)}
}

func (p *Importer) Execute(ctx context.Context, unit *Unit) (*Unit, error) {
	for _, a := range p.Session().AnnotationsFor(p.ID()) {
		prag, ok := a.(session.Pragma)
		if !ok {
			continue
		}
		dir, found := p.Session().FindModule(prag.Name)
		if !found {
			return nil, diag.Problem(diag.ModNotFound,
				fmt.Sprintf("could not find module %q", prag.Name),
				fmt.Sprintf("add the directory that contains %s with -I/--module-path", prag.Name),
				fmt.Sprintf("create a %s directory next to the sources", prag.Name),
				"remove the import pragma",
			).WithPath(unit.Path)
		}
		unit.Imports = append(unit.Imports, Import{Module: prag.Name, Dir: dir})
		trace.Point(trace.FromContext(ctx), trace.ScopeFile, "import:"+prag.Name, dir, trace.ParentSpan(ctx))
	}
	return unit, nil
}

// Exporter mangles every pragma addressed to it with the session's calling
// convention.
type Exporter struct {
	phase.Base
}

func NewExporter(sess *session.Session, id string) *Exporter {
	return &Exporter{Base: phase.NewBase(sess, id)}
}

func (p *Exporter) Execute(ctx context.Context, unit *Unit) (*Unit, error) {
	for _, a := range p.Session().AnnotationsFor(p.ID()) {
		prag, ok := a.(session.Pragma)
		if !ok {
			continue
		}
		sym := p.Session().Mangle(prag.Name)
		unit.Exports = append(unit.Exports, Export{Name: prag.Name, Symbol: sym})
		trace.Point(trace.FromContext(ctx), trace.ScopeFile, "export:"+prag.Name, sym, trace.ParentSpan(ctx))
	}
	return unit, nil
}
