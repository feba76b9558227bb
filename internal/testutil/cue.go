package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// CoreModelCUE is CoreModel written as a CUE definition.
const CoreModelCUE = `package models

model: core: {
	name: "Glucose core"

	metabolite: glc__D_e: {
		name:        "D-Glucose"
		compartment: "e"
		formula:     "C6H12O6"
		annotation: kegg: "C00031"
	}
	metabolite: pep_c: {
		name:        "Phosphoenolpyruvate"
		compartment: "c"
		charge:      -3
	}
	metabolite: g6p_c: {
		name:        "D-Glucose 6-phosphate"
		compartment: "c"
		charge:      -2
	}
	metabolite: pyr_c: {
		name:        "Pyruvate"
		compartment: "c"
		charge:      -1
	}
	metabolite: f6p_c: {
		name:        "D-Fructose 6-phosphate"
		compartment: "c"
		charge:      -2
	}

	reaction: EX_glc__D_e: {
		name:        "D-Glucose exchange"
		lower_bound: -10
		metabolites: glc__D_e: -1
	}
	reaction: GLCpts: {
		name:      "D-glucose transport via PEP:Pyr PTS"
		subsystem: "Transport"
		metabolites: {
			glc__D_e: -1
			pep_c:    -1
			g6p_c:    1
			pyr_c:    1
		}
	}
	reaction: PGI: {
		name:        "Glucose-6-phosphate isomerase"
		subsystem:   "Glycolysis"
		lower_bound: -1000
		annotation: ec: "5.3.1.9"
		metabolites: {
			g6p_c: -1
			f6p_c: 1
		}
	}
}
`

// ModelDir writes each source to its own .cue file in a fresh temp dir
// and returns the dir. With no sources it writes CoreModelCUE.
func ModelDir(t testing.TB, sources ...string) string {
	t.Helper()
	if len(sources) == 0 {
		sources = []string{CoreModelCUE}
	}
	dir := t.TempDir()
	for i, src := range sources {
		path := filepath.Join(dir, fmt.Sprintf("model_%d.cue", i))
		if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	return dir
}
