package compiler

import (
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fluxutil/internal/model"
)

const coreCUE = `
model: core: {
	name: "Toy core"

	metabolite: glc__D_e: {
		name:        "D-Glucose"
		compartment: "e"
		formula:     "C6H12O6"
		charge:      0
		annotation: kegg: "C00031"
	}
	metabolite: glc__D_c: {
		name:        "D-Glucose"
		compartment: "c"
	}

	reaction: EX_glc__D_e: {
		name:        "D-Glucose exchange"
		lower_bound: -10
		upper_bound: 1000
		metabolites: glc__D_e: -1
	}
	reaction: GLCt: {
		name:      "Glucose transport"
		subsystem: "Transport"
		metabolites: {
			glc__D_e: -1
			glc__D_c: 1
		}
	}
}
`

func compile(t *testing.T, src string) cue.Value {
	t.Helper()
	v := cuecontext.New().CompileString(src)
	require.NoError(t, v.Err())
	return v
}

func TestCompileModel(t *testing.T) {
	v := compile(t, coreCUE)

	m, err := CompileModel(v.LookupPath(cue.ParsePath("model.core")))
	require.NoError(t, err)

	assert.Equal(t, "core", m.ID)
	assert.Equal(t, "Toy core", m.Name)

	mets := m.Metabolites()
	require.Len(t, mets, 2)
	assert.Equal(t, "glc__D_e", mets[0].ID)
	assert.Equal(t, "e", mets[0].Compartment)
	assert.Equal(t, "C6H12O6", mets[0].Formula)
	kegg, ok := mets[0].Annotation.Get("kegg")
	require.True(t, ok)
	assert.Equal(t, "C00031", kegg)

	ex, ok := m.Reaction("EX_glc__D_e")
	require.True(t, ok)
	lb, ub := ex.Bounds()
	assert.Equal(t, -10.0, lb)
	assert.Equal(t, 1000.0, ub)
	assert.True(t, ex.IsBoundary())

	tr, ok := m.Reaction("GLCt")
	require.True(t, ok)
	assert.Equal(t, "Transport", tr.Subsystem)
	assert.Equal(t, map[string]float64{"glc__D_e": -1, "glc__D_c": 1}, tr.Stoichiometry().ToMap())
	lb, ub = tr.Bounds()
	assert.Equal(t, 0.0, lb, "default lower bound")
	assert.Equal(t, model.DefaultUpperBound, ub, "default upper bound")

	assert.Same(t, mets[0], tr.Metabolites()[1], "reactions share the model's metabolites")
}

func TestCompileModelNormalizesStrings(t *testing.T) {
	v := compile(t, `
model: accents: {
	name: "Cafe\u0301"
	metabolite: caf_c: {
		name:        "Cafe\u0301ine"
		compartment: "c"
		annotation: note: "Cafe\u0301"
	}
}
`)
	m, err := CompileModel(v.LookupPath(cue.ParsePath("model.accents")))
	require.NoError(t, err)

	assert.Equal(t, "Caf\u00e9", m.Name)
	met, ok := m.Metabolite("caf_c")
	require.True(t, ok)
	assert.Equal(t, "Caf\u00e9ine", met.Name)
	note, _ := met.Annotation.Get("note")
	assert.Equal(t, "Caf\u00e9", note)
}

func TestCompileModels(t *testing.T) {
	v := compile(t, coreCUE+`
model: other: {
	metabolite: a: compartment: "c"
}
`)
	models, err := CompileModels(v)
	require.NoError(t, err)
	require.Len(t, models, 2)
	assert.Equal(t, "core", models[0].ID)
	assert.Equal(t, "other", models[1].ID)
}

func TestCompileModelsMissing(t *testing.T) {
	_, err := CompileModels(compile(t, `foo: 1`))
	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "model", ce.Field)
}

func TestCompileModelErrors(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		field string
	}{
		{
			name:  "undeclared metabolite",
			src:   `model: m: reaction: R: metabolites: nope: -1`,
			field: "reaction.R.metabolites.nope",
		},
		{
			name:  "bad bounds",
			src:   `model: m: { metabolite: a: {}, reaction: R: { lower_bound: 5, upper_bound: 1, metabolites: a: -1 } }`,
			field: "reaction.R.lower_bound",
		},
		{
			name:  "name not a string",
			src:   `model: m: name: 3`,
			field: "model.m.name",
		},
		{
			name:  "charge not an int",
			src:   `model: m: metabolite: a: charge: "minus one"`,
			field: "metabolite.a.charge",
		},
		{
			name:  "annotation not a string",
			src:   `model: m: metabolite: a: annotation: kegg: 12`,
			field: "metabolite.a.annotation.kegg",
		},
		{
			name:  "coefficient not a number",
			src:   `model: m: { metabolite: a: {}, reaction: R: metabolites: a: "x" }`,
			field: "reaction.R.metabolites.a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := compile(t, tt.src)
			_, err := CompileModel(v.LookupPath(cue.ParsePath("model.m")))
			require.Error(t, err)

			var ce *CompileError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.field, ce.Field)
		})
	}
}

func TestCompileErrorFormat(t *testing.T) {
	assert.Equal(t, "f: boom", (&CompileError{Field: "f", Message: "boom"}).Error())
}
