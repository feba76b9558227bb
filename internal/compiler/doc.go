// Package compiler turns CUE model definitions into model.Model values.
//
// A definitions file looks like:
//
//	model: e_coli_core: {
//		name: "E. coli core"
//		metabolite: glc__D_e: {
//			name:        "D-Glucose"
//			compartment: "e"
//			formula:     "C6H12O6"
//			annotation: kegg: "C00031"
//		}
//		reaction: EX_glc__D_e: {
//			name:        "D-Glucose exchange"
//			lower_bound: -10
//			metabolites: glc__D_e: -1
//		}
//	}
//
// The CUE SDK is used directly; there is no subprocess. Metabolites and
// reactions keep their declaration order.
package compiler
