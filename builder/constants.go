// SPDX-License-Identifier: MIT
// Package: epinet/builder

package builder

// Canonical constructor names used as error prefixes.
const (
	MethodEnrollWhere      = "EnrollWhere"
	MethodRandomMeanDegree = "RandomMeanDegree"
	MethodRandomSparse     = "RandomSparse"
)

// Probability domain shared by RandomSparse and EnrollWhere.
const (
	probMin = 0.0
	probMax = 1.0
)

// minRandomVertices is the smallest network that can hold a link.
const minRandomVertices = 2
