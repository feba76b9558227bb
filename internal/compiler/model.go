package compiler

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/fluxutil/internal/frozen"
	"github.com/roach88/fluxutil/internal/model"
)

// CompileModels compiles every model under the top-level "model" field.
func CompileModels(root cue.Value, opts ...model.Option) ([]*model.Model, error) {
	modelsVal := root.LookupPath(cue.ParsePath("model"))
	if !modelsVal.Exists() {
		return nil, &CompileError{Field: "model", Message: "no models defined", Pos: root.Pos()}
	}

	iter, err := modelsVal.Fields()
	if err != nil {
		return nil, formatCUEError("model", err)
	}

	var models []*model.Model
	for iter.Next() {
		m, err := CompileModel(iter.Value(), opts...)
		if err != nil {
			return nil, err
		}
		models = append(models, m)
	}
	return models, nil
}

// CompileModel parses one model struct. The model ID is the struct label:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`model: core: { ... }`)
//	m, err := CompileModel(v.LookupPath(cue.ParsePath("model.core")))
func CompileModel(v cue.Value, opts ...model.Option) (*model.Model, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError("model", err)
	}

	id := labelOf(v)
	if id == "" {
		return nil, &CompileError{Field: "model", Message: "model must be a labelled struct", Pos: v.Pos()}
	}
	m := model.New(id, opts...)

	name, err := optionalString(v, "name", "model."+id+".name")
	if err != nil {
		return nil, err
	}
	m.Name = name

	mets, err := parseMetabolites(v, id)
	if err != nil {
		return nil, err
	}
	if _, err := m.AddMetabolites(mets...); err != nil {
		return nil, err
	}

	rxns, err := parseReactions(v, id, m)
	if err != nil {
		return nil, err
	}
	if err := m.AddReactions(rxns...); err != nil {
		return nil, err
	}

	return m, nil
}

func parseMetabolites(v cue.Value, modelID string) ([]*model.Metabolite, error) {
	metsVal := v.LookupPath(cue.ParsePath("metabolite"))
	if !metsVal.Exists() {
		return nil, nil
	}

	iter, err := metsVal.Fields()
	if err != nil {
		return nil, formatCUEError("model."+modelID+".metabolite", err)
	}

	var mets []*model.Metabolite
	for iter.Next() {
		id := iter.Label()
		field := "metabolite." + id
		mv := iter.Value()

		met := model.NewMetabolite(id, "", "")
		if met.Name, err = optionalString(mv, "name", field+".name"); err != nil {
			return nil, err
		}
		if met.Compartment, err = optionalString(mv, "compartment", field+".compartment"); err != nil {
			return nil, err
		}
		if met.Formula, err = optionalString(mv, "formula", field+".formula"); err != nil {
			return nil, err
		}
		if cv := mv.LookupPath(cue.ParsePath("charge")); cv.Exists() {
			charge, err := cv.Int64()
			if err != nil {
				return nil, formatCUEError(field+".charge", err)
			}
			met.Charge = int(charge)
		}
		if met.Annotation, err = parseAnnotation(mv, field); err != nil {
			return nil, err
		}
		mets = append(mets, met)
	}
	return mets, nil
}

func parseReactions(v cue.Value, modelID string, m *model.Model) ([]*model.Reaction, error) {
	rxnsVal := v.LookupPath(cue.ParsePath("reaction"))
	if !rxnsVal.Exists() {
		return nil, nil
	}

	iter, err := rxnsVal.Fields()
	if err != nil {
		return nil, formatCUEError("model."+modelID+".reaction", err)
	}

	var rxns []*model.Reaction
	for iter.Next() {
		id := iter.Label()
		field := "reaction." + id
		rv := iter.Value()

		name, err := optionalString(rv, "name", field+".name")
		if err != nil {
			return nil, err
		}
		rxn := model.NewReaction(id, name)
		if rxn.Subsystem, err = optionalString(rv, "subsystem", field+".subsystem"); err != nil {
			return nil, err
		}
		if rxn.Annotation, err = parseAnnotation(rv, field); err != nil {
			return nil, err
		}

		stoich, err := parseStoichiometry(rv, field, m)
		if err != nil {
			return nil, err
		}
		if err := rxn.AddMetabolites(stoich); err != nil {
			return nil, &CompileError{Field: field + ".metabolites", Message: err.Error(), Pos: rv.Pos()}
		}

		lower, err := optionalFloat(rv, "lower_bound", field+".lower_bound", 0)
		if err != nil {
			return nil, err
		}
		upper, err := optionalFloat(rv, "upper_bound", field+".upper_bound", model.DefaultUpperBound)
		if err != nil {
			return nil, err
		}
		if err := rxn.SetBounds(lower, upper); err != nil {
			return nil, &CompileError{Field: field + ".lower_bound", Message: err.Error(), Pos: rv.Pos()}
		}

		rxns = append(rxns, rxn)
	}
	return rxns, nil
}

// parseStoichiometry resolves metabolite IDs against m. Every participant
// must be declared under metabolite.
func parseStoichiometry(rv cue.Value, field string, m *model.Model) (map[*model.Metabolite]float64, error) {
	sv := rv.LookupPath(cue.ParsePath("metabolites"))
	if !sv.Exists() {
		return nil, nil
	}

	iter, err := sv.Fields()
	if err != nil {
		return nil, formatCUEError(field+".metabolites", err)
	}

	stoich := make(map[*model.Metabolite]float64)
	for iter.Next() {
		metID := iter.Label()
		met, ok := m.Metabolite(metID)
		if !ok {
			return nil, &CompileError{
				Field:   field + ".metabolites." + metID,
				Message: fmt.Sprintf("undeclared metabolite %q", metID),
				Pos:     iter.Value().Pos(),
			}
		}
		coeff, err := iter.Value().Float64()
		if err != nil {
			return nil, formatCUEError(field+".metabolites."+metID, err)
		}
		stoich[met] = coeff
	}
	return stoich, nil
}

// parseAnnotation reads a string-to-string struct. Values are NFC normalized.
func parseAnnotation(v cue.Value, field string) (frozen.Map[string, string], error) {
	av := v.LookupPath(cue.ParsePath("annotation"))
	if !av.Exists() {
		return frozen.Map[string, string]{}, nil
	}

	iter, err := av.Fields()
	if err != nil {
		return frozen.Map[string, string]{}, formatCUEError(field+".annotation", err)
	}

	d := frozen.NewDict[string, string]()
	for iter.Next() {
		s, err := iter.Value().String()
		if err != nil {
			return frozen.Map[string, string]{}, formatCUEError(field+".annotation."+iter.Label(), err)
		}
		d.Set(iter.Label(), norm.NFC.String(s))
	}
	return d.Freeze(), nil
}

// optionalString returns the NFC form of the string at path, or "" when the
// field is absent. Model files written on different platforms then compile
// to the same names.
func optionalString(v cue.Value, path, field string) (string, error) {
	sv := v.LookupPath(cue.ParsePath(path))
	if !sv.Exists() {
		return "", nil
	}
	s, err := sv.String()
	if err != nil {
		return "", formatCUEError(field, err)
	}
	return norm.NFC.String(s), nil
}

func optionalFloat(v cue.Value, path, field string, def float64) (float64, error) {
	fv := v.LookupPath(cue.ParsePath(path))
	if !fv.Exists() {
		return def, nil
	}
	f, err := fv.Float64()
	if err != nil {
		return 0, formatCUEError(field, err)
	}
	return f, nil
}

// labelOf returns the last path selector with CUE quoting removed.
func labelOf(v cue.Value) string {
	sels := v.Path().Selectors()
	if len(sels) == 0 {
		return ""
	}
	return strings.Trim(sels[len(sels)-1].String(), `"`)
}
