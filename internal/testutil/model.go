package testutil

import (
	"github.com/roach88/fluxutil/internal/frozen"
	"github.com/roach88/fluxutil/internal/model"
)

// CoreModel builds a small glucose uptake and glycolysis fragment:
//
//	EX_glc__D_e: glc__D_e <=>
//	GLCpts:      glc__D_e + pep_c --> g6p_c + pyr_c
//	PGI:         g6p_c <=> f6p_c
//
// Every call returns a fresh model.
func CoreModel(opts ...model.Option) *model.Model {
	m := model.New("core", opts...)
	m.Name = "Glucose core"

	glcE := model.NewMetabolite("glc__D_e", "D-Glucose", "e")
	glcE.Formula = "C6H12O6"
	glcE.Annotation = frozen.New(frozen.P("kegg", "C00031"))
	pep := model.NewMetabolite("pep_c", "Phosphoenolpyruvate", "c")
	pep.Charge = -3
	g6p := model.NewMetabolite("g6p_c", "D-Glucose 6-phosphate", "c")
	g6p.Charge = -2
	pyr := model.NewMetabolite("pyr_c", "Pyruvate", "c")
	pyr.Charge = -1
	f6p := model.NewMetabolite("f6p_c", "D-Fructose 6-phosphate", "c")
	f6p.Charge = -2

	ex := model.NewReaction("EX_glc__D_e", "D-Glucose exchange")
	mustAdd(ex, map[*model.Metabolite]float64{glcE: -1})
	mustBounds(ex, -10, 1000)

	pts := model.NewReaction("GLCpts", "D-glucose transport via PEP:Pyr PTS")
	pts.Subsystem = "Transport"
	mustAdd(pts, map[*model.Metabolite]float64{glcE: -1, pep: -1, g6p: 1, pyr: 1})

	pgi := model.NewReaction("PGI", "Glucose-6-phosphate isomerase")
	pgi.Subsystem = "Glycolysis"
	pgi.Annotation = frozen.New(frozen.P("ec", "5.3.1.9"))
	mustAdd(pgi, map[*model.Metabolite]float64{g6p: -1, f6p: 1})
	mustBounds(pgi, -1000, 1000)

	if err := m.AddReactions(ex, pts, pgi); err != nil {
		panic(err)
	}
	return m
}

func mustAdd(r *model.Reaction, stoich map[*model.Metabolite]float64) {
	if err := r.AddMetabolites(stoich); err != nil {
		panic(err)
	}
}

func mustBounds(r *model.Reaction, lower, upper float64) {
	if err := r.SetBounds(lower, upper); err != nil {
		panic(err)
	}
}
